package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frauddetect/fraud-detection/internal/pkg/config"
	"github.com/frauddetect/fraud-detection/internal/transaction/api"
	"github.com/frauddetect/fraud-detection/internal/transaction/api/handler"
	"github.com/frauddetect/fraud-detection/internal/transaction/authclient"
	"github.com/frauddetect/fraud-detection/internal/transaction/core/service"
	txmongo "github.com/frauddetect/fraud-detection/internal/transaction/infrastructure/db/mongo"
	"github.com/frauddetect/fraud-detection/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadTransaction(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Record store ---
	client, db, err := txmongo.Connect(ctx, txmongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	// --- Dependencies ---
	verifier := authclient.NewClient(cfg.AuthServiceURL, cfg.AuthVerifyTimeout, log)
	txRepo := txmongo.NewTransactionRepository(db)
	predRepo := txmongo.NewPredictionRepository(db)
	txService := service.NewTransactionService(txRepo, predRepo, log)

	e := api.NewRouter(api.Deps{
		Service:  txService,
		Verifier: verifier,
		Readiness: map[string]handler.Pinger{
			"mongodb":      txmongo.NewPinger(client),
			"auth_service": verifier,
		},
		Log: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("auth_service_url", cfg.AuthServiceURL).Msg("transaction service listening")
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
	log.Info().Msg("transaction service stopped")
}
