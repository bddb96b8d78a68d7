package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"budget/internal/core"
)

// summaryResponse is the dashboard payload: headline totals, the chart
// breakdowns for income and expenses, and the budget monitor's verdict.
type summaryResponse struct {
	Balance           float64              `json:"balance"`
	BalanceFormatted  string               `json:"balanceFormatted"`
	TotalIncome       float64              `json:"totalIncome"`
	TotalExpense      float64              `json:"totalExpense"`
	IncomeByCategory  []core.CategoryTotal `json:"incomeByCategory"`
	ExpenseByCategory []core.CategoryTotal `json:"expenseByCategory"`
	Budget            core.BudgetStatus    `json:"budget"`
	TransactionCount  int                  `json:"transactionCount"`
}

func (s *Server) summaryKey() string {
	return strconv.FormatUint(s.ledger.Revision(), 10)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	key := s.summaryKey()
	if cached, ok := s.summaryCache.Get(key); ok {
		slog.DebugContext(r.Context(), "Summary cache hit", "revision", key)
		respondJSON(w, http.StatusOK, cached)
		return
	}

	txs := s.ledger.Transactions()

	totalIncome := core.TotalIncome(txs)
	totalExpense := core.TotalExpense(txs)
	balance := totalIncome - totalExpense

	symbol := s.settings.Currency()
	balanceRaw := strconv.FormatFloat(math.Abs(balance), 'f', -1, 64)
	balanceFormatted := core.Format(core.ToRaw(balanceRaw), symbol)
	if balance < 0 {
		balanceFormatted = "-" + balanceFormatted
	}

	resp := summaryResponse{
		Balance:           balance,
		BalanceFormatted:  balanceFormatted,
		TotalIncome:       totalIncome,
		TotalExpense:      totalExpense,
		IncomeByCategory:  core.Aggregate(core.Incomes(txs)),
		ExpenseByCategory: core.Aggregate(core.Expenses(txs)),
		Budget:            core.EvaluateBudget(totalExpense, s.settings.Budget()),
		TransactionCount:  len(txs),
	}

	s.summaryCache.Put(key, resp)
	slog.DebugContext(r.Context(), "Summary cached", "revision", key, "transactions", len(txs))
	respondJSON(w, http.StatusOK, resp)
}
