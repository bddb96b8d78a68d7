// Package worker mirrors the persisted ledger to an export destination in
// response to ledger-change events.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budget/internal/amqp"
	"budget/internal/export"
	"budget/internal/ledger"
)

// SyncWorker reloads the full collection on every change event and rewrites
// the export destination with it. Events carry no payload, so a burst of
// changes just produces a few redundant full snapshots.
type SyncWorker struct {
	ledger   *ledger.Store
	exporter export.SnapshotWriter
}

func NewSyncWorker(ledgerStore *ledger.Store, exporter export.SnapshotWriter) *SyncWorker {
	return &SyncWorker{
		ledger:   ledgerStore,
		exporter: exporter,
	}
}

// HandleChange processes one ledger-change message. Returning an error makes
// the consumer nack and requeue the message.
func (w *SyncWorker) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	slog.InfoContext(ctx, "Processing ledger change",
		"kind", msg.Kind,
		"transaction_id", msg.TransactionID)
	return w.exportSnapshot(ctx)
}

// StartupExport writes one snapshot on worker start so the mirror catches up
// on anything missed while the worker was down.
func (w *SyncWorker) StartupExport(ctx context.Context) error {
	slog.InfoContext(ctx, "Performing startup export")
	return w.exportSnapshot(ctx)
}

// RunPeriodic exports on a fixed interval until the context ends. It backs
// the event-driven path: a lost message costs at most one interval of mirror
// staleness.
func (w *SyncWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.exportSnapshot(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", "error", err)
			}
		}
	}
}

func (w *SyncWorker) exportSnapshot(ctx context.Context) error {
	txs, err := w.ledger.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	if err := w.exporter.WriteSnapshot(ctx, txs); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	slog.InfoContext(ctx, "Snapshot exported", "transactions", len(txs))
	return nil
}
