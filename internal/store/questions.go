package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Question struct {
	ID           int64   `json:"id"`
	Site         string  `json:"site,omitempty"`
	QuestionText string  `json:"question_text"`
	Emoji        *string `json:"emoji,omitempty"`
}

type QuestionsStore struct {
	db *pgxpool.Pool
}

func (s *QuestionsStore) Create(ctx context.Context, site, text string) error {
	query := `INSERT INTO questions (site, question_text) VALUES ($1, $2)`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, query, site, text)
	return err
}

func (s *QuestionsStore) List(ctx context.Context, site string) ([]Question, error) {
	query := `SELECT id, question_text FROM questions WHERE site = $1 ORDER BY id`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, site)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.QuestionText); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *QuestionsStore) UpdateText(ctx context.Context, id int64, text string) error {
	query := `UPDATE questions SET question_text = $1 WHERE id = $2`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, query, text, id)
	return err
}

func (s *QuestionsStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM questions WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, query, id)
	return err
}
