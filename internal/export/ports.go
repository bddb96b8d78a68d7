// Package export defines the outbound port for mirroring the transaction
// collection to an external destination.
package export

import (
	"context"

	"budget/internal/core"
)

// SnapshotWriter replaces the destination's content with the given full
// collection. Mirrors are rewritten whole, like the primary store.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, txs []core.Transaction) error
}
