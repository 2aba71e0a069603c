package main

import (
	"bufio"
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mensa/internal/notify"
)

func TestCreateFeedbackValidation(t *testing.T) {
	app := newTestApplication()
	mux := app.mount()

	// None of these reach the store: validation fails first.
	cases := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"missing site", `{"canteen":"main","responses":[{"rating":4}]}`},
		{"missing canteen", `{"site":"kathmandu","responses":[{"rating":4}]}`},
		{"missing responses", `{"site":"kathmandu","canteen":"main"}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/feedback", bytes.NewBufferString(c.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestUpdateFeedbackRatingValidation(t *testing.T) {
	app := newTestApplication()
	mux := app.mount()

	// A zero rating counts as missing, same as omitting the field; none of
	// these reach the store.
	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"null rating", `{"rating":null}`},
		{"zero rating", `{"rating":0}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/admin/feedback/1", bytes.NewBufferString(c.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// readSSELine pulls lines off the stream until one carrying data arrives.
func readSSELine(t *testing.T, scanner *bufio.Scanner) string {
	t.Helper()
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			return line
		}
	}
	t.Fatalf("stream ended early: %v", scanner.Err())
	return ""
}

func TestFeedbackUpdatesStream(t *testing.T) {
	app := newTestApplication()
	srv := httptest.NewServer(app.mount())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/feedback-updates")
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q, want text/event-stream", ct)
	}

	scanner := bufio.NewScanner(resp.Body)

	if got := readSSELine(t, scanner); got != "data: connected" {
		t.Fatalf("handshake = %q, want %q", got, "data: connected")
	}

	// The subscriber is registered before the handshake is written, so the
	// registry is already populated here; assert and broadcast.
	if app.hub.Len() != 1 {
		t.Fatalf("observers = %d, want 1", app.hub.Len())
	}
	app.hub.Broadcast(notify.SignalUpdate)

	if got := readSSELine(t, scanner); got != "data: update" {
		t.Fatalf("signal = %q, want %q", got, "data: update")
	}
}

func TestClosedStreamIsDeregistered(t *testing.T) {
	app := newTestApplication()
	srv := httptest.NewServer(app.mount())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/feedback-updates")
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}

	scanner := bufio.NewScanner(resp.Body)
	if got := readSSELine(t, scanner); got != "data: connected" {
		t.Fatalf("handshake = %q", got)
	}

	resp.Body.Close()

	// Disconnect detection is asynchronous; give the handler a moment.
	deadline := time.Now().Add(2 * time.Second)
	for app.hub.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("observer still registered after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Broadcasting into an empty registry must not panic or error.
	app.hub.Broadcast(notify.SignalUpdate)
}
