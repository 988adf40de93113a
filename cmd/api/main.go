package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/therohansaxena/AddressBook/internal/cache"
	"github.com/therohansaxena/AddressBook/internal/config"
	"github.com/therohansaxena/AddressBook/internal/db"
	httpx "github.com/therohansaxena/AddressBook/internal/http"
	"github.com/therohansaxena/AddressBook/internal/notifications"
	"github.com/therohansaxena/AddressBook/internal/observability"
)

func main() {
	// .env is optional, real env always wins
	_ = godotenv.Load()

	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	// tracing (optional endpoint, defaults to the local collector)
	shutdownTracer, err := observability.InitTracer(context.Background(), os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"), cfg.TraceSampleRatio)

	if err != nil {
		log.Warn("tracer init failed, continuing without tracing", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	// database + migrations; DB_DISABLED=1 runs on the in-memory repos
	pool, err := setupDB(cfg, log)

	if err != nil {
		log.Error("database setup failed", "err", err)
		os.Exit(1)
	}

	if pool != nil {
		defer pool.Close()
	}

	cacheStore := newCacheStore(cfg, log)

	// notifier with circuit breaker protection

	notifier := notifications.NewProtectedNotifier(
		notifications.NewLogNotifier(),
		notifications.ProtectedNotifierConfig{},
	)

	router := httpx.NewRouter(log, pool, cfg, cacheStore, notifier)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)
			return
		}

		err = shutdownTracer(ctx)

		if err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

func setupDB(cfg config.Config, log *slog.Logger) (*pgxpool.Pool, error) {
	if os.Getenv("DB_DISABLED") == "1" {
		log.Warn("running with in-memory repositories, data will not survive a restart")
		return nil, nil
	}

	err := db.RunMigrations(cfg.DBURL)

	if err != nil {
		return nil, err
	}

	return db.NewPool(cfg.DBURL)
}

func newCacheStore(cfg config.Config, log *slog.Logger) cache.Store {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second

	switch cfg.CacheBackend {
	case "redis":
		store := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      ttl,
		})

		ctx, cancel := config.WithTimeout(2 * time.Second)
		defer cancel()

		err := store.Ping(ctx)

		if err != nil {
			log.Warn("redis unreachable, falling back to in-process cache", "err", err)
			return cache.NewMemory(ttl)
		}

		return store
	case "none":
		return cache.NewNoop()
	default:
		return cache.NewMemory(ttl)
	}
}
