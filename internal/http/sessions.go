package http

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

const sessionCookieName = "budget_session"

// sessionStore tracks bearer tokens issued at login. Tokens live in memory
// only; restarting the server logs everyone out, which matches the gate
// requiring a fresh login per process.
type sessionStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	tokens map[string]time.Time
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{ttl: ttl, tokens: make(map[string]time.Time)}
}

func (ss *sessionStore) issue() string {
	token := newToken()
	ss.mu.Lock()
	ss.tokens[token] = time.Now().Add(ss.ttl)
	ss.mu.Unlock()
	return token
}

func (ss *sessionStore) valid(token string) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	deadline, ok := ss.tokens[token]
	if !ok {
		return false
	}
	if time.Now().After(deadline) {
		delete(ss.tokens, token)
		return false
	}
	return true
}

// revokeAll drops every live token. There is only one account, so logging
// out logs it out everywhere.
func (ss *sessionStore) revokeAll() {
	ss.mu.Lock()
	ss.tokens = make(map[string]time.Time)
	ss.mu.Unlock()
}

// Sweep drops expired tokens. Satisfies cache.Sweeper.
func (ss *sessionStore) Sweep() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	now := time.Now()
	removed := 0
	for token, deadline := range ss.tokens {
		if now.After(deadline) {
			delete(ss.tokens, token)
			removed++
		}
	}
	return removed
}

func newToken() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "tok_" + hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(bytes)
}
