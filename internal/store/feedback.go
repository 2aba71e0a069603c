package store

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mensa/internal/db"
)

// ErrNoResponses is returned when a submission carries no usable responses
// array. It is a validation failure, not a storage one.
var ErrNoResponses = errors.New("responses must be a non-empty array")

type Feedback struct {
	ID        int64           `json:"id"`
	UserID    *int64          `json:"user_id"`
	Site      string          `json:"site"`
	CanteenID int64           `json:"canteen_id"`
	Rating    float64         `json:"rating"`
	Username  *string         `json:"username"`
	Responses json.RawMessage `json:"responses"`
	Timestamp int64           `json:"timestamp"`
}

// submittedResponse picks out the only field aggregation interprets. All other
// fields of a response pass through to storage untouched.
type submittedResponse struct {
	Rating *float64 `json:"rating"`
}

// OverallRating derives the single score for a submission: the arithmetic mean
// of every response's rating, a missing rating counting as zero, rounded to
// two decimal places. Rounding happens once, on the mean, never per item.
func OverallRating(raw json.RawMessage) (float64, error) {
	var responses []submittedResponse
	if err := json.Unmarshal(raw, &responses); err != nil {
		return 0, ErrNoResponses
	}
	if len(responses) == 0 {
		return 0, ErrNoResponses
	}

	var sum float64
	for _, r := range responses {
		if r.Rating != nil {
			sum += *r.Rating
		}
	}
	return math.Round(sum/float64(len(responses))*100) / 100, nil
}

type FeedbackStore struct {
	db *pgxpool.Pool
}

// Create computes the overall rating, resolves (creating if needed) the
// canteen, and inserts the feedback row — all inside one transaction, so a
// failed insert leaves neither a feedback row nor a freshly created canteen
// behind. Losing the canteen-creation race to a concurrent submission aborts
// the transaction with ErrConflict; one retry re-reads the winner's row.
func (s *FeedbackStore) Create(ctx context.Context, fb *Feedback, canteenName string) error {
	err := s.create(ctx, fb, canteenName)
	if errors.Is(err, ErrConflict) {
		err = s.create(ctx, fb, canteenName)
	}
	return err
}

func (s *FeedbackStore) create(ctx context.Context, fb *Feedback, canteenName string) error {
	rating, err := OverallRating(fb.Responses)
	if err != nil {
		return err
	}
	fb.Rating = rating

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return db.WithTx(s.db, ctx, func(tx pgx.Tx) error {
		canteenID, err := resolveCanteen(ctx, tx, fb.Site, canteenName)
		if err != nil {
			return err
		}
		fb.CanteenID = canteenID
		fb.Timestamp = time.Now().UnixMilli()

		query := `
			INSERT INTO feedback (user_id, site, canteen_id, rating, username, responses, "timestamp")
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		return tx.QueryRow(ctx, query,
			fb.UserID,
			fb.Site,
			fb.CanteenID,
			fb.Rating,
			fb.Username,
			[]byte(fb.Responses),
			fb.Timestamp,
		).Scan(&fb.ID)
	})
}

func (s *FeedbackStore) List(ctx context.Context) ([]Feedback, error) {
	query := `
		SELECT id, user_id, site, canteen_id, rating, username, responses, "timestamp"
		FROM feedback
		ORDER BY "timestamp" DESC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedback []Feedback
	for rows.Next() {
		var fb Feedback
		var responses []byte
		err := rows.Scan(
			&fb.ID,
			&fb.UserID,
			&fb.Site,
			&fb.CanteenID,
			&fb.Rating,
			&fb.Username,
			&responses,
			&fb.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		fb.Responses = responses
		feedback = append(feedback, fb)
	}
	return feedback, rows.Err()
}

// SetRating overwrites the stored rating directly, bypassing aggregation.
// Manual correction only.
func (s *FeedbackStore) SetRating(ctx context.Context, id int64, rating float64) error {
	query := `UPDATE feedback SET rating = $1 WHERE id = $2`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, query, rating, id)
	return err
}

// Delete is idempotent: removing an id that does not exist is a success.
func (s *FeedbackStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM feedback WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, query, id)
	return err
}
