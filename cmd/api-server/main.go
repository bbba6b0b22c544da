package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/armacare/insurance-admin/internal/api"
	"github.com/armacare/insurance-admin/internal/billing"
	"github.com/armacare/insurance-admin/internal/config"
	"github.com/armacare/insurance-admin/internal/db"
	"github.com/armacare/insurance-admin/internal/insurance"
	"github.com/armacare/insurance-admin/internal/logging"
	"github.com/armacare/insurance-admin/internal/professional"
	redisclient "github.com/armacare/insurance-admin/internal/redis"

	"github.com/redis/go-redis/v9"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("api-server", "dev")
		bootLog.Fatal().Err(err).Msg("config load error")
	}

	log := logging.New("api-server", cfg.Env)
	log.Info().Str("env", cfg.Env).Str("http_port", cfg.HTTPPort).Msg("api-server starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	log.Info().Msg("connected to Postgres")

	// Redis only backs the read cache; the API serves uncached reads
	// without it.
	var (
		rdb   *redis.Client
		cache professional.Cache
	)
	rdb, err = redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, caching disabled")
		rdb = nil
	} else {
		cache = redisclient.NewCache(rdb, cfg.CacheTTL)
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("error closing redis")
			}
		}()
		log.Info().Msg("connected to Redis")
	}

	professionalSvc := professional.NewService(professional.NewPgRepository(pgPool), cache, log)
	insuranceSvc := insurance.NewService(insurance.NewPgRepository(pgPool), log)
	billingSvc := billing.NewService(billing.NewPgRepository(pgPool))

	router := api.NewRouter(api.RouterConfig{
		Professionals: professionalSvc,
		Insurance:     insuranceSvc,
		Billing:       billingSvc,
		PgPool:        pgPool,
		Redis:         rdb,
		Logger:        log,
		Env:           cfg.Env,
		Version:       version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server error")
			os.Exit(1)
		}
	case <-rootCtx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		_ = srv.Close()
	}

	log.Info().Msg("api-server stopped")
}
