// Package kv provides the flat key-value persistence capability the rest of
// the application depends on. The namespace is small and fixed: the full
// transaction collection, the currency symbol, the budget figure and the
// credential record each live under one key.
package kv

import (
	"context"
	"errors"
)

// Well-known keys of the persisted namespace.
const (
	KeyTransactions = "transactions"
	KeyCurrency     = "currency"
	KeyBudget       = "userBudget"
	KeyCredentials  = "credentials"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("key not found")

// Store is the persistence port. Implementations must be safe for use from
// multiple goroutines.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
