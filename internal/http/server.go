package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"budget/internal/auth"
	"budget/internal/cache"
	"budget/internal/ledger"
)

// Server exposes the ledger, settings and auth gate as a JSON API.
type Server struct {
	http.Server
	ledger   *ledger.Store
	settings *ledger.Settings
	gate     *auth.Gate
	sessions *sessionStore

	rateLimiter  *rateLimiter
	summaryCache *cache.LRU[summaryResponse]

	janitorStop  context.CancelFunc
	janitorDone  chan struct{}
	shutdownOnce sync.Once
}

// Simple in-memory rate limiter
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{clients: make(map[string]*clientInfo)}
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	// Reset counter if more than 1 minute has passed
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 requests per minute
	client.requests++
	client.lastRequest = now
	return client.requests <= 60
}

// Sweep drops client entries idle for more than 10 minutes so the map
// does not grow without bound. Satisfies cache.Sweeper.
func (rl *rateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	removed := 0
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
			removed++
		}
	}
	return removed
}

// NewServer wires routes and background sweeps, returning a ready-to-run server.
func NewServer(addr string, store *ledger.Store, settings *ledger.Settings, gate *auth.Gate, sessionTTL time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		ledger:       store,
		settings:     settings,
		gate:         gate,
		sessions:     newSessionStore(sessionTTL),
		rateLimiter:  newRateLimiter(),
		summaryCache: cache.NewLRU[summaryResponse](100, 5*time.Minute),
		janitorDone:  make(chan struct{}),
	}

	janitorCtx, cancel := context.WithCancel(context.Background())
	s.janitorStop = cancel
	janitor := cache.NewJanitor(10*time.Minute, s.summaryCache, s.rateLimiter, s.sessions)
	go func() {
		defer close(s.janitorDone)
		janitor.Run(janitorCtx)
	}()

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.HandleFunc("POST /api/signup", s.withMiddleware(s.handleSignup))
	mux.HandleFunc("POST /api/login", s.withMiddleware(s.handleLogin))
	mux.HandleFunc("POST /api/logout", s.withMiddleware(s.requireSession(s.handleLogout)))
	mux.HandleFunc("GET /api/state", s.withMiddleware(s.handleState))

	mux.HandleFunc("GET /api/settings", s.withMiddleware(s.requireSession(s.handleGetSettings)))
	mux.HandleFunc("PUT /api/settings", s.withMiddleware(s.requireSession(s.handlePutSettings)))

	mux.HandleFunc("GET /api/transactions", s.withMiddleware(s.requireSession(s.handleListTransactions)))
	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.requireSession(s.requireConfigured(s.handleCreateTransaction))))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withMiddleware(s.requireSession(s.requireConfigured(s.handleUpdateTransaction))))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withMiddleware(s.requireSession(s.requireConfigured(s.handleDeleteTransaction))))

	mux.HandleFunc("GET /api/summary", s.withMiddleware(s.requireSession(s.handleSummary)))

	return s
}

// Shutdown stops the janitor and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.janitorStop != nil {
			s.janitorStop()
			<-s.janitorDone
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		// Rate-limit mutations only; reads are cheap and cached.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

// requireSession rejects requests without a live session cookie.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookieName)
		if err != nil || !s.sessions.valid(c.Value) {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	}
}

// requireConfigured blocks ledger mutations until currency and budget are set.
func (s *Server) requireConfigured(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.settings.Configured() {
			respondError(w, http.StatusConflict, "currency and budget must be configured first")
			return
		}
		next(w, r)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Probe storage without touching the live collection; a reload here
	// could shadow mutations still sitting in the persistence queue.
	if err := s.ledger.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "storage not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
