package http

import (
	"errors"
	"log/slog"
	"net/http"

	"budget/internal/core"
)

type settingsResponse struct {
	Currency   string          `json:"currency"`
	Budget     string          `json:"budget"`
	Configured bool            `json:"configured"`
	Currencies []core.Currency `json:"currencies"`
	Categories []string        `json:"categories"`
}

type settingsRequest struct {
	Currency string `json:"currency,omitempty"`
	Budget   string `json:"budget,omitempty"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.settingsPayload())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Currency != "" {
		if err := s.settings.SetCurrency(r.Context(), req.Currency); err != nil {
			if errors.Is(err, core.ErrUnknownCurrency) {
				respondError(w, http.StatusUnprocessableEntity, "unknown currency symbol")
				return
			}
			slog.ErrorContext(r.Context(), "Currency update failed", "error", err)
			respondError(w, http.StatusInternalServerError, "could not save currency")
			return
		}
	}
	if req.Budget != "" {
		raw := core.ToRaw(req.Budget)
		if err := s.settings.SetBudget(r.Context(), raw); err != nil {
			if errors.Is(err, core.ErrInvalidAmount) {
				respondError(w, http.StatusUnprocessableEntity, "budget must be a positive amount")
				return
			}
			slog.ErrorContext(r.Context(), "Budget update failed", "error", err)
			respondError(w, http.StatusInternalServerError, "could not save budget")
			return
		}
	}

	// Formatted amounts embed the currency symbol, so any settings change
	// invalidates cached summaries.
	s.summaryCache.Invalidate(s.summaryKey())
	respondJSON(w, http.StatusOK, s.settingsPayload())
}

func (s *Server) settingsPayload() settingsResponse {
	return settingsResponse{
		Currency:   s.settings.Currency(),
		Budget:     s.settings.Budget(),
		Configured: s.settings.Configured(),
		Currencies: core.Currencies,
		Categories: core.DefaultCategories,
	}
}
