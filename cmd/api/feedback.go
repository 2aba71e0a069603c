package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"mensa/internal/notify"
	"mensa/internal/store"
)

type CreateFeedbackPayload struct {
	Site      string          `json:"site" validate:"required"`
	Canteen   string          `json:"canteen" validate:"required"`
	Responses json.RawMessage `json:"responses" validate:"required"`
	UserID    *int64          `json:"userId"`
	Username  *string         `json:"username"`
}

func (app *application) createFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateFeedbackPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing feedback data"))
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing feedback data"))
		return
	}

	fb := &store.Feedback{
		UserID:    payload.UserID,
		Site:      payload.Site,
		Username:  payload.Username,
		Responses: payload.Responses,
	}

	if err := app.store.Feedback.Create(r.Context(), fb, payload.Canteen); err != nil {
		switch {
		case errors.Is(err, store.ErrNoResponses):
			app.badRequestResponse(w, r, errors.New("Missing feedback data"))
		case errors.Is(err, store.ErrConflict):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	// Fire and forget: the broadcast never blocks and a missing or broken
	// observer never fails the submission.
	app.hub.Broadcast(notify.SignalUpdate)

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

const heartbeatInterval = 30 * time.Second

// feedbackUpdatesHandler serves the push stream. Signals carry no payload;
// observers re-fetch aggregate data whenever anything other than the initial
// handshake arrives.
func (app *application) feedbackUpdatesHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		app.internalServerError(w, r, errors.New("streaming unsupported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := app.hub.Subscribe()
	defer app.hub.Unsubscribe(sub)

	app.logger.Infow("push stream opened", "client", sub.ID(), "observers", app.hub.Len())

	fmt.Fprintf(w, "data: %s\n\n", notify.SignalConnected)
	flusher.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			app.logger.Infow("push stream closed", "client", sub.ID())
			return
		case <-ticker.C:
			if _, err := fmt.Fprintf(w, "data: %s\n\n", notify.SignalHeartbeat); err != nil {
				return
			}
			flusher.Flush()
		case sig, open := <-sub.C():
			if !open {
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", sig); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (app *application) listFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	feedback, err := app.store.Feedback.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if feedback == nil {
		feedback = []store.Feedback{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"feedback": feedback})
}

// Rating is deliberately not a pointer: a zero rating fails `required`, so
// both an omitted and a zero value are rejected as missing.
type UpdateFeedbackRatingPayload struct {
	Rating float64 `json:"rating" validate:"required"`
}

func (app *application) updateFeedbackRatingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "feedbackID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("Invalid feedback ID"))
		return
	}

	var payload UpdateFeedbackRatingPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing rating"))
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing rating"))
		return
	}

	if err := app.store.Feedback.SetRating(r.Context(), id, payload.Rating); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (app *application) deleteFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "feedbackID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("Invalid feedback ID"))
		return
	}

	if err := app.store.Feedback.Delete(r.Context(), id); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
