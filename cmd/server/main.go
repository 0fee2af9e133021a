package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/neexbeast/weather-dashboard/internal/api"
	"github.com/neexbeast/weather-dashboard/internal/cache"
	"github.com/neexbeast/weather-dashboard/internal/config"
	"github.com/neexbeast/weather-dashboard/internal/dashboard"
	"github.com/neexbeast/weather-dashboard/internal/storage"
	"github.com/neexbeast/weather-dashboard/internal/view"
	"github.com/neexbeast/weather-dashboard/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("loading .env failed", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx := context.Background()

	client := weather.NewClientWithURL(cfg.WeatherAPIBaseURL, cfg.WeatherAPIKey)
	if cfg.ProviderTimeout > 0 {
		client = client.WithTimeout(cfg.ProviderTimeout)
	}
	if cfg.ProviderRPS > 0 {
		client = client.WithRateLimit(cfg.ProviderRPS, cfg.ProviderBurst)
	}
	coordinator := weather.NewCoordinator(client, log)

	ctrl := dashboard.New(coordinator, cfg.DefaultPlace, log)

	// Interface-typed so a disabled backend stays a true nil.
	var (
		weatherCache api.WeatherCache
		history      api.HistoryRepo
		dbPinger     api.Pinger
		redisPinger  api.Pinger
	)

	if cfg.DatabaseURL != "" {
		pool, err := storage.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		if err := storage.RunMigrations(ctx, pool, storage.Migrations); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		log.Info("migrations applied")

		repo := storage.NewRepository(pool)
		ctrl.SetRecorder(repo)
		history = repo
		dbPinger = pool
	} else {
		log.Info("DATABASE_URL not set, search history disabled")
	}

	if cfg.RedisURL != "" {
		c, err := cache.Open(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = c.Close() }()

		weatherCache = c
		redisPinger = c
	} else {
		log.Info("REDIS_URL not set, weather cache disabled")
	}

	renderer, err := view.New()
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	handlers := api.NewHandlers(ctrl, renderer, coordinator, weatherCache, history, log)
	router := api.NewRouter(handlers, api.RouterConfig{
		Token:              cfg.APIToken,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		DB:                 dbPinger,
		Redis:              redisPinger,
	}, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "port", cfg.Port, "default_place", cfg.DefaultPlace)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	ctrl.Start(ctx)

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	// In-flight searches settle before the backends they record into close.
	ctrl.Wait()

	log.Info("server shut down cleanly")
	return nil
}
