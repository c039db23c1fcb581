// @title           Rentalinx Back-office API
// @version         1.0
// @description     Authentication, role-based access and user management for the Rentalinx back-office.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rentalinx/backoffice/internal/api"
	"github.com/rentalinx/backoffice/internal/api/metrics"
	"github.com/rentalinx/backoffice/internal/core/ports"
	"github.com/rentalinx/backoffice/internal/core/service"
	"github.com/rentalinx/backoffice/internal/infrastructure/db"
	"github.com/rentalinx/backoffice/internal/infrastructure/db/redis"
	"github.com/rentalinx/backoffice/internal/infrastructure/queue"
	"github.com/rentalinx/backoffice/internal/pkg/config"
	"github.com/rentalinx/backoffice/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "backoffice-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("credential store unavailable")
	}
	defer closeStore(context.Background())

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer rdb.Close()

	lastLogin := queue.NewDispatcher(cfg.Login.LastLoginWorkers, store, logger.Component("last_login"))
	lastLogin.Start(ctx)
	metrics.RegisterLastLoginQueueDepth(lastLogin.Depth)

	sessions := redis.NewSessionStores(rdb)
	hasher := service.NewCompositeHasher()

	auth := service.NewAuthFactory(service.AuthDeps{
		Accounts:  store,
		Sessions:  sessions,
		Hasher:    hasher,
		LastLogin: lastLogin,
		Guard:     redis.NewLoginGuard(rdb),
		Limiter:   redis.NewAttemptLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.AttemptWindow),
		ShortTTL:  cfg.Session.ShortTTL,
		LongTTL:   cfg.Session.LongTTL,
	}, logger.Component("auth"))

	e := api.NewRouter(api.Deps{
		Auth:     auth,
		Tokens:   service.NewTokenIssuer(cfg.JWTSecret),
		Accounts: service.NewAccountService(store, hasher, logger.Component("accounts")),
		Checks: map[string]ports.Pinger{
			"credential_store": store,
			"redis":            sessions,
		},
		Log: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("driver", cfg.StoreDriver).Msg("back-office api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
