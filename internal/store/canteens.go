package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Canteen struct {
	ID   int64  `json:"id"`
	Site string `json:"site"`
	Name string `json:"name"`
}

type CanteensStore struct {
	db *pgxpool.Pool
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// resolveCanteen returns the id of the canteen with this (site, name) pair,
// inserting the row when it does not exist yet. It runs on the caller's
// transaction so a later failure in the same unit of work rolls the creation
// back, and so two concurrent first submissions cannot both create the row:
// the loser hits the unique constraint and gets ErrConflict, which the caller
// resolves by retrying the whole transaction and re-reading.
func resolveCanteen(ctx context.Context, tx pgx.Tx, site, name string) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `SELECT id FROM canteens WHERE site = $1 AND name = $2`, site, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	err = tx.QueryRow(ctx, `INSERT INTO canteens (site, name) VALUES ($1, $2) RETURNING id`, site, name).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	return id, nil
}

func (s *CanteensStore) Create(ctx context.Context, canteen *Canteen) error {
	query := `INSERT INTO canteens (site, name) VALUES ($1, $2) RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := s.db.QueryRow(ctx, query, canteen.Site, canteen.Name).Scan(&canteen.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *CanteensStore) ListNames(ctx context.Context, site string) ([]string, error) {
	query := `SELECT name FROM canteens WHERE site = $1 ORDER BY id`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, site)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *CanteensStore) Delete(ctx context.Context, site, name string) error {
	query := `DELETE FROM canteens WHERE site = $1 AND name = $2`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	result, err := s.db.Exec(ctx, query, site, name)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
