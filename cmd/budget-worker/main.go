package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"budget/internal/amqp"
	"budget/internal/cli"
	"budget/internal/export"
	exportgoogle "budget/internal/export/google"
	exportmem "budget/internal/export/memory"
	"budget/internal/ledger"
	applog "budget/internal/log"
	"budget/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	be := cli.InitBackend(logger, cfg)

	store := ledger.NewStore(be.Store, nil)

	var exporter export.SnapshotWriter
	if cfg.GoogleSpreadsheetID != "" {
		gcli, err := exportgoogle.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Google Sheets client initialization failed", "error", err)
			os.Exit(1)
		}
		exporter = gcli
		logger.Info("Exporting snapshots to Google Sheets",
			"spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
	} else {
		exporter = exportmem.New()
		logger.Info("No spreadsheet configured, exporting to memory sink")
	}

	w := worker.NewSyncWorker(store, exporter)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if err := store.Close(); err != nil {
			logger.Error("Ledger close error", "error", err)
		}
		if err := be.Cleanup(); err != nil {
			logger.Error("Backend cleanup error", "error", err)
		}
	})

	startCtx, startCancel := context.WithTimeout(ctx, 30*time.Second)
	if err := w.StartupExport(startCtx); err != nil {
		logger.Error("Startup export failed", "error", err)
	}
	startCancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.RunPeriodic(gctx, cfg.ExportInterval)
	})

	if cfg.AMQPURL != "" {
		g.Go(func() error {
			return amqp.ConsumeWithReconnect(gctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue,
				func(msg *amqp.ChangeMessage) error {
					return w.HandleChange(gctx, msg)
				})
		})
		logger.Info("Consuming ledger change events",
			"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled, relying on periodic export only",
			"interval", cfg.ExportInterval.String())
	}

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
