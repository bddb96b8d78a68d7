// Package auth implements the local authentication gate. The system supports
// exactly one local account; creating a new one overwrites the prior record.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"budget/internal/core"
	"budget/internal/kv"
)

// State is the gate's position in its signup/login/authenticated machine.
type State string

const (
	// StateSignup is the entry state when no credential record exists.
	StateSignup State = "signup"
	// StateLogin is the entry state when a credential record exists.
	StateLogin State = "login"
	// StateAuthenticated grants access to the rest of the app.
	StateAuthenticated State = "authenticated"
)

// credentialRecord is the single persisted account.
type credentialRecord struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// Gate is the credential check gating access to the application.
type Gate struct {
	mu    sync.Mutex
	kv    kv.Store
	state State
	cred  *credentialRecord
	user  string // session username, set while authenticated
}

// NewGate loads the credential record and picks the entry state: Signup on
// first ever run, Login when an account exists. A failed read is treated as
// first run — the gate must never block the app on storage trouble.
func NewGate(ctx context.Context, store kv.Store) *Gate {
	g := &Gate{kv: store, state: StateSignup}

	data, err := store.Get(ctx, kv.KeyCredentials)
	if err != nil {
		if err != kv.ErrNotFound {
			slog.ErrorContext(ctx, "Failed to load credentials, starting in signup",
				"error", err)
		}
		return g
	}

	var cred credentialRecord
	if err := json.Unmarshal(data, &cred); err != nil {
		slog.ErrorContext(ctx, "Malformed credential record, starting in signup",
			"error", err)
		return g
	}
	g.cred = &cred
	g.state = StateLogin
	return g
}

// State returns the gate's current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Username returns the authenticated username, or "" outside a session.
func (g *Gate) Username() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.user
}

// Signup creates (or overwrites) the single local account and transitions to
// Authenticated. Empty fields are a validation error with no state change.
func (g *Gate) Signup(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return core.ErrEmptyCredentials
	}

	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	cred := credentialRecord{Username: username, PasswordHash: hash}
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := g.kv.Set(ctx, kv.KeyCredentials, data); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}

	g.mu.Lock()
	g.cred = &cred
	g.state = StateAuthenticated
	g.user = username
	g.mu.Unlock()

	slog.InfoContext(ctx, "Account created", "username", username)
	return nil
}

// Login verifies the credentials against the stored record. With no record
// it returns core.ErrNoAccount and falls back to Signup so the caller can
// switch mode.
func (g *Gate) Login(ctx context.Context, username, password string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cred == nil {
		g.state = StateSignup
		return core.ErrNoAccount
	}
	if username != g.cred.Username || !checkPassword(password, g.cred.PasswordHash) {
		slog.WarnContext(ctx, "Login rejected", "username", username)
		return core.ErrInvalidCredentials
	}

	g.state = StateAuthenticated
	g.user = username
	slog.InfoContext(ctx, "Login successful", "username", username)
	return nil
}

// Logout clears the in-memory session and transitions to Login. The
// persisted credential record is kept.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.user = ""
	g.state = StateLogin
}
