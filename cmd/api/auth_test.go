package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mensa/internal/auth"
)

func TestAdminLogin(t *testing.T) {
	app := newTestApplication()
	mux := app.mount()

	// Wrong password is a 401.
	req := httptest.NewRequest(http.MethodPost, "/admin-login", bytes.NewBufferString(`{"password":"wrong"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	// Right password returns a token carrying the admin role.
	req = httptest.NewRequest(http.MethodPost, "/admin-login", bytes.NewBufferString(`{"password":"admin123"}`))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Token == "" {
		t.Fatalf("unexpected body: %+v", body)
	}

	parsed, err := app.authenticator.ValidateToken(body.Token)
	if err != nil {
		t.Fatalf("validate issued token: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["role"] != "admin" {
		t.Errorf("role = %v, want admin", claims["role"])
	}
}

func TestProfileRejectsBadTokens(t *testing.T) {
	app := newTestApplication()
	mux := app.mount()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-token"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestProfileRejectsExpiredToken(t *testing.T) {
	app := newTestApplication()
	expired, err := auth.NewJWTAuthenticator("test-secret", "mensa", "mensa", -time.Minute).
		GenerateUserToken(7, "pokhara", "sita")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	mux := app.mount()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestProfileEchoesClaims(t *testing.T) {
	app := newTestApplication()
	mux := app.mount()

	token, err := app.authenticator.GenerateUserToken(7, "pokhara", "sita")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		User map[string]any `json:"user"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.User["username"] != "sita" || body.User["site"] != "pokhara" {
		t.Errorf("unexpected claims: %v", body.User)
	}
	if body.User["userId"].(float64) != 7 {
		t.Errorf("userId = %v, want 7", body.User["userId"])
	}
}
