package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/credits-leaderboard/internal/api/handlers"
	"github.com/baharkarakas/credits-leaderboard/internal/auth"
	"github.com/baharkarakas/credits-leaderboard/internal/config"
	"github.com/baharkarakas/credits-leaderboard/internal/metrics"
	"github.com/baharkarakas/credits-leaderboard/internal/middleware"
	"github.com/baharkarakas/credits-leaderboard/internal/services"
)

func NewRouter(cfg config.Config, svc *services.LeaderboardService, log *slog.Logger) http.Handler {
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, 15*time.Minute)
	authMW := middleware.NewAuthMiddleware(tm)
	lb := handlers.NewLeaderboardHandler(svc, cfg.MaxBodyBytes, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/leaderboard/rank", lb.Rank)

		r.Group(func(r chi.Router) {
			r.Use(authMW.Auth)
			r.Get("/groups/{groupId}/leaderboard", lb.Group)
		})
	})

	return r
}
