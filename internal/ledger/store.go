// Package ledger owns the in-memory transaction collection and is solely
// responsible for synchronizing it to the key-value store. Every mutation
// updates memory first, then enqueues a snapshot of the entire collection on
// a single-writer queue, so snapshots reach storage in mutation order.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"budget/internal/core"
	"budget/internal/kv"
)

// Events is the outbound port for ledger-change notifications. Publishing is
// fire-and-forget: failures are logged, never surfaced to the caller.
type Events interface {
	PublishChange(ctx context.Context, kind, transactionID string) error
}

// Change kinds published after successful mutations.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

const persistTimeout = 5 * time.Second

type persistRequest struct {
	snapshot []byte
	done     chan struct{} // non-nil for flush barriers
}

// Store is the transaction store. All exported methods are safe for
// concurrent use.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	events Events

	txs      []core.Transaction
	revision uint64

	// id generation state: millisecond timestamp plus a monotonic suffix for
	// same-instant additions
	lastMS int64
	seq    int

	writes     chan persistRequest
	writerDone chan struct{}
	closeOnce  sync.Once
}

// NewStore creates a store persisting through the given key-value store.
// events may be nil to disable change notifications.
func NewStore(store kv.Store, events Events) *Store {
	s := &Store{
		kv:         store,
		events:     events,
		writes:     make(chan persistRequest, 64),
		writerDone: make(chan struct{}),
	}
	go s.writer()
	return s
}

// LoadAll reads the full collection from storage and adopts it as the
// in-memory state. Pending snapshots are flushed first, so a reload can
// never resurrect storage state older than an already-accepted mutation.
// A missing key yields an empty collection; a malformed payload is logged
// and fails closed to empty rather than propagating to the caller.
func (s *Store) LoadAll(ctx context.Context) ([]core.Transaction, error) {
	if err := s.Flush(ctx); err != nil {
		return nil, fmt.Errorf("flush before load: %w", err)
	}

	data, err := s.kv.Get(ctx, kv.KeyTransactions)
	if err != nil {
		if err != kv.ErrNotFound {
			slog.ErrorContext(ctx, "Failed to load transactions, starting empty",
				"error", err, "key", kv.KeyTransactions)
		}
		return s.reset(nil), nil
	}

	var txs []core.Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		slog.ErrorContext(ctx, "Malformed transaction payload, starting empty",
			"error", err, "key", kv.KeyTransactions, "bytes", len(data))
		return s.reset(nil), nil
	}
	return s.reset(txs), nil
}

// Ping probes the underlying storage without touching the in-memory
// collection. A missing transactions key just means nothing has been
// persisted yet.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.kv.Get(ctx, kv.KeyTransactions); err != nil && err != kv.ErrNotFound {
		return fmt.Errorf("storage probe: %w", err)
	}
	return nil
}

func (s *Store) reset(txs []core.Transaction) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = txs
	s.revision++
	return append([]core.Transaction(nil), txs...)
}

// Add validates the fields, appends a new transaction and persists the
// collection. The raw amount must parse as a signed decimal.
func (s *Store) Add(ctx context.Context, desc, rawAmount, category string) (core.Transaction, error) {
	amount, err := core.ParseAmount(rawAmount)
	if err != nil {
		return core.Transaction{}, err
	}

	tx := core.Transaction{
		Desc:     strings.TrimSpace(desc),
		Amount:   amount,
		Category: category,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	tx.ID = s.nextID()
	s.txs = append(s.txs, tx)
	s.revision++
	snapshot := s.marshalLocked(ctx)
	s.mu.Unlock()

	s.enqueue(snapshot)
	s.publish(ctx, ChangeCreated, tx.ID)

	slog.InfoContext(ctx, "Transaction added",
		"id", tx.ID, "description", tx.Desc, "amount", tx.Amount, "category", tx.Category)
	return tx, nil
}

// Update replaces the fields of the transaction with the given id, keeping
// its id and position. An unknown id returns core.ErrNotFound with no
// mutation.
func (s *Store) Update(ctx context.Context, id, desc, rawAmount, category string) (core.Transaction, error) {
	amount, err := core.ParseAmount(rawAmount)
	if err != nil {
		return core.Transaction{}, err
	}

	next := core.Transaction{
		ID:       id,
		Desc:     strings.TrimSpace(desc),
		Amount:   amount,
		Category: category,
	}
	if err := next.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return core.Transaction{}, fmt.Errorf("update %s: %w", id, core.ErrNotFound)
	}
	s.txs[idx] = next
	s.revision++
	snapshot := s.marshalLocked(ctx)
	s.mu.Unlock()

	s.enqueue(snapshot)
	s.publish(ctx, ChangeUpdated, id)

	slog.InfoContext(ctx, "Transaction updated", "id", id, "amount", next.Amount)
	return next, nil
}

// Remove deletes the transaction with the given id. An absent id is a silent
// no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		slog.DebugContext(ctx, "Remove of unknown transaction ignored", "id", id)
		return nil
	}
	s.txs = append(s.txs[:idx], s.txs[idx+1:]...)
	s.revision++
	snapshot := s.marshalLocked(ctx)
	s.mu.Unlock()

	s.enqueue(snapshot)
	s.publish(ctx, ChangeDeleted, id)

	slog.InfoContext(ctx, "Transaction removed", "id", id)
	return nil
}

// Transactions returns a copy of the collection in insertion order.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txs...)
}

// Revision increments on every mutation and reload; callers use it as a
// cache key for derived views.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Flush blocks until every snapshot enqueued before the call has been
// written (or abandoned after its retry).
func (s *Store) Flush(ctx context.Context) error {
	done := make(chan struct{})
	select {
	case s.writes <- persistRequest{done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the persistence writer after draining pending snapshots.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.writes)
		<-s.writerDone
	})
	return nil
}

func (s *Store) indexLocked(id string) int {
	for i := range s.txs {
		if s.txs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) marshalLocked(ctx context.Context) []byte {
	data, err := json.Marshal(s.txs)
	if err != nil {
		// Transactions are plain values; marshal cannot realistically fail.
		slog.ErrorContext(ctx, "Failed to marshal transactions", "error", err)
		return nil
	}
	return data
}

func (s *Store) enqueue(snapshot []byte) {
	if snapshot == nil {
		return
	}
	s.writes <- persistRequest{snapshot: snapshot}
}

// writer applies snapshots in order. A failed write is retried once, then
// logged and dropped; the next mutation rewrites the whole collection anyway.
func (s *Store) writer() {
	defer close(s.writerDone)
	for req := range s.writes {
		if req.done != nil {
			close(req.done)
			continue
		}
		s.write(req.snapshot)
	}
}

func (s *Store) write(snapshot []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	err := s.kv.Set(ctx, kv.KeyTransactions, snapshot)
	if err == nil {
		return
	}
	slog.Warn("Transaction snapshot write failed, retrying once", "error", err)

	if err := s.kv.Set(ctx, kv.KeyTransactions, snapshot); err != nil {
		slog.Error("Transaction snapshot write failed after retry",
			"error", err, "bytes", len(snapshot))
	}
}

func (s *Store) publish(ctx context.Context, kind, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishChange(ctx, kind, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger change",
			"error", err, "kind", kind, "id", id)
	}
}

// nextID generates a time-derived id that stays unique for same-millisecond
// additions by appending a monotonic suffix.
func (s *Store) nextID() string {
	ms := time.Now().UnixMilli()
	if ms <= s.lastMS {
		s.seq++
		return strconv.FormatInt(s.lastMS, 10) + "-" + strconv.Itoa(s.seq)
	}
	s.lastMS = ms
	s.seq = 0
	return strconv.FormatInt(ms, 10)
}
