package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Site references are plain labels on purpose: deleting a site leaves its
// canteens, questions, users and feedback behind.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS sites (
		id BIGSERIAL PRIMARY KEY,
		location TEXT NOT NULL,
		branch_location TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS canteens (
		id BIGSERIAL PRIMARY KEY,
		site TEXT NOT NULL,
		name TEXT NOT NULL,
		UNIQUE (site, name)
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id BIGSERIAL PRIMARY KEY,
		site TEXT NOT NULL,
		question_text TEXT NOT NULL,
		emoji TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		site TEXT NOT NULL,
		username TEXT NOT NULL,
		password TEXT NOT NULL,
		UNIQUE (site, username)
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT,
		site TEXT NOT NULL,
		canteen_id BIGINT NOT NULL,
		rating NUMERIC(5,2) NOT NULL,
		username TEXT,
		responses JSONB NOT NULL,
		"timestamp" BIGINT NOT NULL
	)`,
}

// Migrate applies the schema. Statements are idempotent so running it on an
// existing database is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
