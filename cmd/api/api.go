package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"mensa/internal/auth"
	"mensa/internal/notify"
	"mensa/internal/ratelimiter"
	"mensa/internal/store"
)

type application struct {
	config        config
	store         store.Storage
	logger        *zap.SugaredLogger
	authenticator auth.Authenticator
	hub           *notify.Hub
	rateLimiter   ratelimiter.Limiter
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	adminPassword string
	token         tokenConfig
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(app.RateLimiterMiddleware)

	// The push stream stays outside the timeout group: its connections are
	// long-lived on purpose.
	r.Get("/feedback-updates", app.feedbackUpdatesHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/health", app.healthCheckHandler)

		r.Post("/admin-login", app.adminLoginHandler)
		r.Post("/signup", app.signupHandler)
		r.Post("/login", app.loginHandler)
		r.With(app.AuthTokenMiddleware).Get("/profile", app.profileHandler)

		r.Post("/feedback", app.createFeedbackHandler)

		r.Get("/canteens", app.listCanteensHandler)

		r.Route("/questions", func(r chi.Router) {
			r.Get("/", app.listQuestionsHandler)
			r.Post("/", app.createQuestionHandler)
			r.Put("/{questionID}", app.updateQuestionHandler)
			r.Delete("/{questionID}", app.deleteQuestionHandler)
		})

		r.Route("/sites", func(r chi.Router) {
			r.Get("/", app.listSitesHandler)
			r.Post("/", app.createSiteHandler)
			r.Put("/{siteID}", app.updateSiteHandler)
			r.Delete("/{siteID}", app.deleteSiteHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/users", func(r chi.Router) {
				r.Get("/", app.listUsersHandler)
				r.Post("/", app.createUserHandler)
				r.Put("/{userID}", app.updateUserHandler)
				r.Delete("/{userID}", app.deleteUserHandler)
			})

			r.Route("/feedback", func(r chi.Router) {
				r.Get("/", app.listFeedbackHandler)
				r.Put("/{feedbackID}", app.updateFeedbackRatingHandler)
				r.Delete("/{feedbackID}", app.deleteFeedbackHandler)
			})

			r.Post("/canteens", app.createCanteenHandler)
			r.Delete("/canteens", app.deleteCanteenHandler)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:    app.config.addr,
		Handler: mux,
		// No WriteTimeout: it would sever open push streams.
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
