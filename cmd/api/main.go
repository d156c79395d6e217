package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/credits-leaderboard/internal/api"
	"github.com/baharkarakas/credits-leaderboard/internal/config"
	"github.com/baharkarakas/credits-leaderboard/internal/db"
	"github.com/baharkarakas/credits-leaderboard/internal/logger"
	"github.com/baharkarakas/credits-leaderboard/internal/metrics"
	"github.com/baharkarakas/credits-leaderboard/internal/repository/postgres"
	"github.com/baharkarakas/credits-leaderboard/internal/services"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env, os.Stdout)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	svc := services.NewLeaderboardService(repos.Groups, repos.Wallets, log)

	metrics.Init()
	r := api.NewRouter(cfg, svc, log)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}
