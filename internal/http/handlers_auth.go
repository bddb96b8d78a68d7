package http

import (
	"errors"
	"log/slog"
	"net/http"

	"budget/internal/core"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type stateResponse struct {
	State      string `json:"state"`
	Username   string `json:"username,omitempty"`
	Configured bool   `json:"configured"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state := string(s.gate.State())
	resp := stateResponse{State: state, Configured: s.settings.Configured()}

	if c, err := r.Cookie(sessionCookieName); err == nil && s.sessions.valid(c.Value) {
		resp.Username = s.gate.Username()
	} else if state == "authenticated" {
		// Gate says authenticated but this client has no session.
		resp.State = "login"
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	username := sanitizeInput(req.Username)
	if err := s.gate.Signup(r.Context(), username, req.Password); err != nil {
		if errors.Is(err, core.ErrEmptyCredentials) {
			respondError(w, http.StatusUnprocessableEntity, "username and password are required")
			return
		}
		slog.ErrorContext(r.Context(), "Signup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "could not create account")
		return
	}

	s.openSession(w)
	slog.InfoContext(r.Context(), "Account created", "username", username)
	respondJSON(w, http.StatusCreated, stateResponse{State: string(s.gate.State()), Username: s.gate.Username(), Configured: s.settings.Configured()})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	username := sanitizeInput(req.Username)
	if err := s.gate.Login(r.Context(), username, req.Password); err != nil {
		switch {
		case errors.Is(err, core.ErrNoAccount):
			respondError(w, http.StatusConflict, "no account exists, sign up first")
		case errors.Is(err, core.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "invalid username or password")
		default:
			slog.ErrorContext(r.Context(), "Login failed", "error", err)
			respondError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	s.openSession(w)
	slog.InfoContext(r.Context(), "Login succeeded", "username", username)
	respondJSON(w, http.StatusOK, stateResponse{State: string(s.gate.State()), Username: s.gate.Username(), Configured: s.settings.Configured()})
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	// One account: logging out invalidates every session, not just this one.
	s.sessions.revokeAll()
	s.gate.Logout()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	respondJSON(w, http.StatusOK, stateResponse{State: string(s.gate.State()), Configured: s.settings.Configured()})
}

func (s *Server) openSession(w http.ResponseWriter) {
	token := s.sessions.issue()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
