package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mensa/internal/store"
)

// The empty stores below mimic the real stores' zero-row result: a nil slice
// and no error.

type emptyUsersStore struct{}

func (emptyUsersStore) Create(context.Context, *store.User) error { return nil }
func (emptyUsersStore) GetBySiteUsername(ctx context.Context, site, username string) (*store.User, error) {
	return nil, store.ErrNotFound
}
func (emptyUsersStore) List(context.Context) ([]store.User, error) { return nil, nil }
func (emptyUsersStore) Update(ctx context.Context, id int64, site, username string, plainPassword *string) error {
	return nil
}
func (emptyUsersStore) Delete(ctx context.Context, id int64) error { return nil }

type emptyCanteensStore struct{}

func (emptyCanteensStore) Create(context.Context, *store.Canteen) error { return nil }
func (emptyCanteensStore) ListNames(ctx context.Context, site string) ([]string, error) {
	return nil, nil
}
func (emptyCanteensStore) Delete(ctx context.Context, site, name string) error { return nil }

type emptyQuestionsStore struct{}

func (emptyQuestionsStore) Create(ctx context.Context, site, text string) error { return nil }
func (emptyQuestionsStore) List(ctx context.Context, site string) ([]store.Question, error) {
	return nil, nil
}
func (emptyQuestionsStore) UpdateText(ctx context.Context, id int64, text string) error {
	return nil
}
func (emptyQuestionsStore) Delete(ctx context.Context, id int64) error { return nil }

type emptySitesStore struct{}

func (emptySitesStore) Create(context.Context, *store.Site) error  { return nil }
func (emptySitesStore) List(context.Context) ([]store.Site, error) { return nil, nil }
func (emptySitesStore) Update(ctx context.Context, id int64, location, branchLocation string) error {
	return nil
}
func (emptySitesStore) Delete(ctx context.Context, id int64) error { return nil }

type emptyFeedbackStore struct{}

func (emptyFeedbackStore) Create(ctx context.Context, fb *store.Feedback, canteenName string) error {
	return nil
}
func (emptyFeedbackStore) List(context.Context) ([]store.Feedback, error) { return nil, nil }
func (emptyFeedbackStore) SetRating(ctx context.Context, id int64, r float64) error {
	return nil
}
func (emptyFeedbackStore) Delete(ctx context.Context, id int64) error { return nil }

// Listings must serialize as JSON arrays even when no rows exist, never null.
func TestEmptyListingsSerializeAsArrays(t *testing.T) {
	app := newTestApplication()
	app.store = store.Storage{
		Users:     emptyUsersStore{},
		Canteens:  emptyCanteensStore{},
		Questions: emptyQuestionsStore{},
		Sites:     emptySitesStore{},
		Feedback:  emptyFeedbackStore{},
	}
	mux := app.mount()

	cases := []struct {
		path string
		key  string
	}{
		{"/admin/users", "users"},
		{"/admin/feedback", "feedback"},
		{"/sites", "sites"},
		{"/questions?site=kathmandu", "questions"},
		{"/canteens?site=kathmandu", "canteens"},
	}

	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, c.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var body map[string]json.RawMessage
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got := string(body[c.key]); got != "[]" {
				t.Errorf("%s = %s, want []", c.key, got)
			}
		})
	}
}
