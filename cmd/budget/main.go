package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"budget/internal/amqp"
	"budget/internal/auth"
	"budget/internal/cli"
	apphttp "budget/internal/http"
	"budget/internal/ledger"
	applog "budget/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	be := cli.InitBackend(logger, cfg)

	// Optional AMQP event publishing; the ledger works without it.
	var events ledger.Events
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("AMQP connection failed, continuing without events", "error", err)
		} else {
			amqpClient = client
			events = client
			logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	store := ledger.NewStore(be.Store, events)

	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if _, err := store.LoadAll(startCtx); err != nil {
		startCancel()
		logger.Error("Ledger load failed", "error", err)
		os.Exit(1)
	}

	settings := ledger.NewSettings(be.Store)
	if err := settings.Load(startCtx); err != nil {
		startCancel()
		logger.Error("Settings load failed", "error", err)
		os.Exit(1)
	}
	gate := auth.NewGate(startCtx, be.Store)
	startCancel()

	srv := apphttp.NewServer(":"+cfg.Port, store, settings, gate, cfg.SessionTTL)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("Ledger close error", "error", err)
		}
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Error("AMQP close error", "error", err)
			}
		}
		if err := be.Cleanup(); err != nil {
			logger.Error("Backend cleanup error", "error", err)
		}
	})

	logger.Info("Starting budget server",
		"port", cfg.Port,
		"backend", cfg.StorageBackend,
		"events", cfg.AMQPURL != "")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
