package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mensa/internal/db"
)

type Site struct {
	ID             int64     `json:"id"`
	Location       string    `json:"location"`
	BranchLocation string    `json:"branch_location"`
	CreatedAt      time.Time `json:"created_at"`
}

// Every new site starts with the same survey.
var defaultQuestions = []struct {
	text  string
	emoji string
}{
	{"How was the taste of the food?", "😀"},
	{"Was the food served hot and fresh?", "🙂"},
	{"How was the cleanliness of the dining area?", "😐"},
	{"Was the staff polite and helpful?", "😞"},
	{"Would you recommend our canteen to others?", "👍"},
}

type SitesStore struct {
	db *pgxpool.Pool
}

// Create inserts the site and seeds its default questions in one transaction;
// a site never appears without its starter survey.
func (s *SitesStore) Create(ctx context.Context, site *Site) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return db.WithTx(s.db, ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO sites (location, branch_location) VALUES ($1, $2)
			RETURNING id, created_at
		`
		err := tx.QueryRow(ctx, query, site.Location, site.BranchLocation).Scan(&site.ID, &site.CreatedAt)
		if err != nil {
			return err
		}

		for _, q := range defaultQuestions {
			_, err := tx.Exec(ctx,
				`INSERT INTO questions (site, question_text, emoji) VALUES ($1, $2, $3)`,
				site.Location, q.text, q.emoji,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SitesStore) List(ctx context.Context) ([]Site, error) {
	query := `SELECT id, location, branch_location, created_at FROM sites ORDER BY id`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []Site
	for rows.Next() {
		var site Site
		if err := rows.Scan(&site.ID, &site.Location, &site.BranchLocation, &site.CreatedAt); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

func (s *SitesStore) Update(ctx context.Context, id int64, location, branchLocation string) error {
	query := `UPDATE sites SET location = $1, branch_location = $2 WHERE id = $3`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, query, location, branchLocation, id)
	return err
}

// Delete removes the site row only. Canteens, questions, users and feedback
// reference sites by label, so they stay behind as accepted orphans.
func (s *SitesStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM sites WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, query, id)
	return err
}
