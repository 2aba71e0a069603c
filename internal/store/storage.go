package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Users interface {
		Create(context.Context, *User) error
		GetBySiteUsername(ctx context.Context, site, username string) (*User, error)
		List(context.Context) ([]User, error)
		Update(ctx context.Context, id int64, site, username string, plainPassword *string) error
		Delete(ctx context.Context, id int64) error
	}
	Canteens interface {
		Create(context.Context, *Canteen) error
		ListNames(ctx context.Context, site string) ([]string, error)
		Delete(ctx context.Context, site, name string) error
	}
	Questions interface {
		Create(ctx context.Context, site, text string) error
		List(ctx context.Context, site string) ([]Question, error)
		UpdateText(ctx context.Context, id int64, text string) error
		Delete(ctx context.Context, id int64) error
	}
	Sites interface {
		Create(context.Context, *Site) error
		List(context.Context) ([]Site, error)
		Update(ctx context.Context, id int64, location, branchLocation string) error
		Delete(ctx context.Context, id int64) error
	}
	Feedback interface {
		Create(ctx context.Context, fb *Feedback, canteenName string) error
		List(context.Context) ([]Feedback, error)
		SetRating(ctx context.Context, id int64, rating float64) error
		Delete(ctx context.Context, id int64) error
	}
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Users:     &UsersStore{db},
		Canteens:  &CanteensStore{db},
		Questions: &QuestionsStore{db},
		Sites:     &SitesStore{db},
		Feedback:  &FeedbackStore{db},
	}
}
