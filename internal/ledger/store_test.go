package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"budget/internal/core"
	"budget/internal/kv"
)

func newTestStore(t *testing.T) (*Store, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemoryStore()
	s := NewStore(mem, nil)
	t.Cleanup(func() { s.Close() })
	return s, mem
}

func TestAddAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)

	tx, err := s.Add(ctx, "Coffee", "-4.50", "Food & Dining")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if tx.ID == "" || tx.Amount != -4.50 || tx.Desc != "Coffee" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	// A fresh store over the same key-value data reproduces the record.
	reloaded := NewStore(mem, nil)
	defer reloaded.Close()
	txs, err := reloaded.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction after reload, got %d", len(txs))
	}
	got := txs[0]
	if got.ID != tx.ID || got.Desc != tx.Desc || got.Amount != tx.Amount || got.Category != tx.Category {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, tx)
	}
}

func TestAddValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	cases := []struct {
		name     string
		desc     string
		raw      string
		category string
		err      error
	}{
		{"empty description", "", "5", "Other", core.ErrEmptyDescription},
		{"blank description", "   ", "5", "Other", core.ErrEmptyDescription},
		{"bad amount", "x", "abc", "Other", core.ErrInvalidAmount},
		{"empty amount", "x", "", "Other", core.ErrInvalidAmount},
		{"empty category", "x", "5", "", core.ErrEmptyCategory},
		{"unknown category", "x", "5", "Gadgets", core.ErrUnknownCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Add(ctx, tc.desc, tc.raw, tc.category); !errors.Is(err, tc.err) {
				t.Fatalf("Add() err = %v, want %v", err, tc.err)
			}
		})
	}
	if got := s.Transactions(); len(got) != 0 {
		t.Fatalf("rejected adds must not mutate the store, have %d", len(got))
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	first, _ := s.Add(ctx, "Coffee", "-4.50", "Food & Dining")
	second, _ := s.Add(ctx, "Paycheck", "2000", "Salary")

	updated, err := s.Update(ctx, first.ID, "Espresso", "-3.00", "Food & Dining")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != first.ID || updated.Desc != "Espresso" || updated.Amount != -3.0 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	// Position and ids are preserved.
	txs := s.Transactions()
	if txs[0].ID != first.ID || txs[1].ID != second.ID {
		t.Fatalf("update must preserve order: %+v", txs)
	}
}

func TestUpdateNotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	s.Add(ctx, "Coffee", "-4.50", "Food & Dining")

	before := s.Transactions()
	if _, err := s.Update(ctx, "missing", "x", "1", "Other"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("update unknown id: err = %v, want ErrNotFound", err)
	}
	after := s.Transactions()
	if len(before) != len(after) || before[0] != after[0] {
		t.Fatalf("failed update must leave the store unchanged")
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	tx, _ := s.Add(ctx, "Coffee", "-4.50", "Food & Dining")
	if err := s.Remove(ctx, tx.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := s.Transactions(); len(got) != 0 {
		t.Fatalf("expected empty store after remove, got %d", len(got))
	}

	// Absent id is a silent no-op.
	if err := s.Remove(ctx, "missing"); err != nil {
		t.Fatalf("remove absent id: %v", err)
	}
}

func TestLoadAllMalformedFailsClosed(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	mem.Set(ctx, kv.KeyTransactions, []byte("{not json"))

	s := NewStore(mem, nil)
	defer s.Close()
	txs, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("malformed payload must not fail the caller: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("malformed payload should yield an empty collection")
	}
}

func TestLoadAllMissingKey(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	txs, err := s.LoadAll(ctx)
	if err != nil || len(txs) != 0 {
		t.Fatalf("cold start should yield empty collection: %v, %d", err, len(txs))
	}
}

func TestIDsUniqueUnderRapidAdds(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		tx, err := s.Add(ctx, "burst", "1", "Other")
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if seen[tx.ID] {
			t.Fatalf("duplicate id %s at add %d", tx.ID, i)
		}
		seen[tx.ID] = true
	}
}

func TestEveryMutationPersistsFullCollection(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)

	a, _ := s.Add(ctx, "one", "1", "Other")
	s.Add(ctx, "two", "2", "Other")
	s.Remove(ctx, a.ID)
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	data, err := mem.Get(ctx, kv.KeyTransactions)
	if err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}
	var stored []core.Transaction
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("snapshot not valid JSON: %v", err)
	}
	if len(stored) != 1 || stored[0].Desc != "two" {
		t.Fatalf("snapshot should reflect the latest state, got %+v", stored)
	}
}

// laggingStore holds every Set until released, simulating slow storage so
// snapshots sit in the persistence queue.
type laggingStore struct {
	*kv.MemoryStore
	release chan struct{}
}

func (s *laggingStore) Set(ctx context.Context, key string, value []byte) error {
	<-s.release
	return s.MemoryStore.Set(ctx, key, value)
}

func TestReloadCannotShadowPendingWrite(t *testing.T) {
	ctx := context.Background()
	lagging := &laggingStore{MemoryStore: kv.NewMemoryStore(), release: make(chan struct{})}
	s := NewStore(lagging, nil)
	defer s.Close()

	tx, err := s.Add(ctx, "Coffee", "-4.50", "Food & Dining")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Reload while the snapshot is still queued behind the slow write. It
	// must wait for the write rather than adopt the stale storage state.
	loaded := make(chan []core.Transaction, 1)
	go func() {
		txs, err := s.LoadAll(ctx)
		if err != nil {
			t.Errorf("load: %v", err)
		}
		loaded <- txs
	}()
	close(lagging.release)

	txs := <-loaded
	if len(txs) != 1 || txs[0].ID != tx.ID {
		t.Fatalf("reload dropped a pending write: %+v", txs)
	}
	if got := s.Transactions(); len(got) != 1 || got[0].ID != tx.ID {
		t.Fatalf("accepted mutation missing after reload: %+v", got)
	}
}

func TestLoadAllFailsWhenFlushCannotComplete(t *testing.T) {
	ctx := context.Background()
	lagging := &laggingStore{MemoryStore: kv.NewMemoryStore(), release: make(chan struct{})}
	s := NewStore(lagging, nil)
	defer s.Close()
	defer close(lagging.release)

	if _, err := s.Add(ctx, "Coffee", "-4.50", "Food & Dining"); err != nil {
		t.Fatalf("add: %v", err)
	}

	cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if _, err := s.LoadAll(cctx); err == nil {
		t.Fatalf("LoadAll must fail rather than reload past an unflushed write")
	}
}

func TestPingDoesNotTouchCollection(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	tx, _ := s.Add(ctx, "Coffee", "-4.50", "Food & Dining")
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if got := s.Transactions(); len(got) != 1 || got[0].ID != tx.ID {
		t.Fatalf("ping must leave the collection alone: %+v", got)
	}
}

type recordingEvents struct {
	kinds []string
	ids   []string
}

func (r *recordingEvents) PublishChange(_ context.Context, kind, id string) error {
	r.kinds = append(r.kinds, kind)
	r.ids = append(r.ids, id)
	return nil
}

func TestMutationsPublishEvents(t *testing.T) {
	ctx := context.Background()
	events := &recordingEvents{}
	s := NewStore(kv.NewMemoryStore(), events)
	defer s.Close()

	tx, _ := s.Add(ctx, "Coffee", "-4.50", "Food & Dining")
	s.Update(ctx, tx.ID, "Espresso", "-3", "Food & Dining")
	s.Remove(ctx, tx.ID)

	want := []string{ChangeCreated, ChangeUpdated, ChangeDeleted}
	if len(events.kinds) != 3 {
		t.Fatalf("expected 3 events, got %v", events.kinds)
	}
	for i, k := range want {
		if events.kinds[i] != k || events.ids[i] != tx.ID {
			t.Fatalf("event %d = %s/%s, want %s/%s", i, events.kinds[i], events.ids[i], k, tx.ID)
		}
	}
}
