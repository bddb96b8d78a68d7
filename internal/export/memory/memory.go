// Package memory provides an in-memory SnapshotWriter for tests and local
// runs without a spreadsheet.
package memory

import (
	"context"
	"sync"

	"budget/internal/core"
)

type Store struct {
	mu        sync.Mutex
	snapshots [][]core.Transaction
	failNext  error
}

func New() *Store { return &Store{} }

func (s *Store) WriteSnapshot(_ context.Context, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	s.snapshots = append(s.snapshots, append([]core.Transaction(nil), txs...))
	return nil
}

// Snapshots returns every snapshot written so far, oldest first.
func (s *Store) Snapshots() [][]core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]core.Transaction, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}

// Latest returns the most recent snapshot, or nil when none were written.
func (s *Store) Latest() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.snapshots) == 0 {
		return nil
	}
	return s.snapshots[len(s.snapshots)-1]
}

// FailNext makes the next WriteSnapshot call return err.
func (s *Store) FailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}
