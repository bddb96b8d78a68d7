package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"budget/internal/core"
	"budget/internal/kv"
)

// Settings holds the currency symbol and the budget figure. Both must be set
// before transaction entry is permitted; callers check Configured.
type Settings struct {
	mu        sync.Mutex
	kv        kv.Store
	currency  string
	budgetRaw string
}

func NewSettings(store kv.Store) *Settings {
	return &Settings{kv: store}
}

// Load reads the persisted currency and budget. Missing keys leave the
// fields empty; read failures are logged and fall back to empty values.
func (s *Settings) Load(ctx context.Context) error {
	currency := s.loadKey(ctx, kv.KeyCurrency)
	budget := s.loadKey(ctx, kv.KeyBudget)

	s.mu.Lock()
	s.currency = currency
	s.budgetRaw = budget
	s.mu.Unlock()
	return nil
}

func (s *Settings) loadKey(ctx context.Context, key string) string {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if err != kv.ErrNotFound {
			slog.ErrorContext(ctx, "Failed to load setting, using default",
				"error", err, "key", key)
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Currency returns the selected symbol, or "" when not yet chosen.
func (s *Settings) Currency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// SetCurrency persists a symbol from the supported set.
func (s *Settings) SetCurrency(ctx context.Context, symbol string) error {
	if !core.ValidCurrencySymbol(symbol) {
		return fmt.Errorf("set currency %q: %w", symbol, core.ErrUnknownCurrency)
	}
	if err := s.kv.Set(ctx, kv.KeyCurrency, []byte(symbol)); err != nil {
		return fmt.Errorf("persist currency: %w", err)
	}
	s.mu.Lock()
	s.currency = symbol
	s.mu.Unlock()
	return nil
}

// Budget returns the raw budget decimal string, or "" when not yet set.
func (s *Settings) Budget() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgetRaw
}

// SetBudget persists the raw budget figure, which must parse to a positive
// decimal.
func (s *Settings) SetBudget(ctx context.Context, raw string) error {
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("set budget %q: %w", raw, core.ErrInvalidAmount)
	}
	if err := s.kv.Set(ctx, kv.KeyBudget, []byte(raw)); err != nil {
		return fmt.Errorf("persist budget: %w", err)
	}
	s.mu.Lock()
	s.budgetRaw = raw
	s.mu.Unlock()
	return nil
}

// Configured reports whether both currency and budget have been set.
func (s *Settings) Configured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency != "" && s.budgetRaw != ""
}
