package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frauddetect/fraud-detection/internal/auth/api"
	"github.com/frauddetect/fraud-detection/internal/auth/api/handler"
	"github.com/frauddetect/fraud-detection/internal/auth/core/ports"
	"github.com/frauddetect/fraud-detection/internal/auth/core/service"
	authredis "github.com/frauddetect/fraud-detection/internal/auth/infrastructure/redis"
	"github.com/frauddetect/fraud-detection/internal/auth/infrastructure/store"
	"github.com/frauddetect/fraud-detection/internal/pkg/config"
	"github.com/frauddetect/fraud-detection/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAuth(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Token registry backend ---
	var tokenStore ports.TokenStore
	readiness := map[string]handler.Pinger{}

	switch cfg.TokenStore {
	case "redis":
		client, err := authredis.Connect(ctx, authredis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close")
			}
		}()

		rs := authredis.NewTokenStore(client)
		tokenStore = rs
		readiness["redis"] = rs
	default:
		mem := store.NewMemoryTokenStore(log)
		go mem.RunSweeper(ctx, cfg.SweepInterval)
		tokenStore = mem
	}

	// --- Services ---
	users := store.NewMemoryUserStore()
	authService := service.NewAuthService(users, log)
	if err := authService.Seed(ctx, service.DefaultUsers); err != nil {
		log.Fatal().Err(err).Msg("seed users")
	}
	tokenService := service.NewTokenService(tokenStore, cfg.TokenTTL, log)

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Tokens:    tokenService,
		Readiness: readiness,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("token_store", cfg.TokenStore).Msg("authentication service listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("authentication service stopped")
}
