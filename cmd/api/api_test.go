package main

import (
	"time"

	"go.uber.org/zap"

	"mensa/internal/auth"
	"mensa/internal/notify"
	"mensa/internal/ratelimiter"
)

func newTestApplication() *application {
	cfg := config{
		addr: ":0",
		env:  "test",
		auth: authConfig{
			adminPassword: "admin123",
			token: tokenConfig{
				secret: "test-secret",
				exp:    2 * time.Hour,
				iss:    "mensa",
			},
		},
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: 100,
			TimeFrame:            5 * time.Second,
			Enabled:              false,
		},
	}

	return &application{
		config:        cfg,
		logger:        zap.NewNop().Sugar(),
		authenticator: auth.NewJWTAuthenticator(cfg.auth.token.secret, cfg.auth.token.iss, cfg.auth.token.iss, cfg.auth.token.exp),
		hub:           notify.NewHub(),
		rateLimiter:   ratelimiter.NewFixedWindowLimiter(cfg.rateLimiter.RequestsPerTimeFrame, cfg.rateLimiter.TimeFrame),
	}
}
