package http

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"budget/internal/core"
)

type transactionRequest struct {
	Desc     string `json:"desc"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
}

// transactionView is a ledger row decorated for display: the formatted
// amount carries the configured currency symbol, and percentOfBudget is
// the row's share of the budget (0 when no budget is set).
type transactionView struct {
	core.Transaction
	Formatted       string  `json:"formatted"`
	PercentOfBudget float64 `json:"percentOfBudget"`
}

func (s *Server) view(tx core.Transaction) transactionView {
	raw := strconv.FormatFloat(math.Abs(tx.Amount), 'f', -1, 64)
	formatted := core.Format(core.ToRaw(raw), s.settings.Currency())
	if tx.IsExpense() {
		formatted = "-" + formatted
	} else if tx.IsIncome() {
		formatted = "+" + formatted
	}
	return transactionView{
		Transaction:     tx,
		Formatted:       formatted,
		PercentOfBudget: core.PercentOfBudget(tx.Amount, s.settings.Budget()),
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs := s.ledger.Transactions()
	views := make([]transactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, s.view(tx))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := s.ledger.Add(r.Context(), sanitizeInput(req.Desc), req.Amount, req.Category)
	if err != nil {
		s.respondLedgerError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, s.view(tx))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := s.ledger.Update(r.Context(), id, sanitizeInput(req.Desc), req.Amount, req.Category)
	if err != nil {
		s.respondLedgerError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s.view(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	// Removing an unknown id is a silent no-op, so delete is idempotent.
	if err := s.ledger.Remove(r.Context(), r.PathValue("id")); err != nil {
		slog.ErrorContext(r.Context(), "Transaction remove failed", "error", err)
		respondError(w, http.StatusInternalServerError, "could not remove transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) respondLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		respondError(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, core.ErrInvalidAmount):
		respondError(w, http.StatusUnprocessableEntity, "amount must be a signed decimal")
	case errors.Is(err, core.ErrEmptyDescription):
		respondError(w, http.StatusUnprocessableEntity, "description is required")
	case errors.Is(err, core.ErrEmptyCategory), errors.Is(err, core.ErrUnknownCategory):
		respondError(w, http.StatusUnprocessableEntity, "category is missing or unknown")
	default:
		slog.ErrorContext(r.Context(), "Ledger operation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "ledger operation failed")
	}
}
