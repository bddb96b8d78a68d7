package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BudgetLevel classifies total expenses against the configured budget.
type BudgetLevel string

const (
	// BudgetNone means no budget is configured; the monitor stays silent.
	BudgetNone BudgetLevel = "none"
	// BudgetNormal means expenses are below 80% of the budget.
	BudgetNormal BudgetLevel = "normal"
	// BudgetWarning means expenses have reached 80% of the budget.
	BudgetWarning BudgetLevel = "warning"
	// BudgetExceeded means expenses have reached or passed the budget.
	BudgetExceeded BudgetLevel = "exceeded"
)

// BudgetStatus is the monitor's verdict for the current expense total.
type BudgetStatus struct {
	Level   BudgetLevel `json:"level"`
	Ratio   float64     `json:"ratio"`
	Message string      `json:"message,omitempty"`
}

// Alert reports whether the status should surface a banner to the user.
func (s BudgetStatus) Alert() bool {
	return s.Level == BudgetWarning || s.Level == BudgetExceeded
}

// EvaluateBudget classifies totalExpense against the raw budget string.
// An absent or non-positive budget yields BudgetNone. Boundary ratios
// classify upward: exactly 0.8 is a warning, exactly 1.0 is exceeded.
func EvaluateBudget(totalExpense float64, budgetRaw string) BudgetStatus {
	budget, ok := parseBudget(budgetRaw)
	if !ok {
		return BudgetStatus{Level: BudgetNone}
	}

	ratio := totalExpense / budget
	switch {
	case ratio >= 1.0:
		return BudgetStatus{
			Level:   BudgetExceeded,
			Ratio:   ratio,
			Message: "You have exceeded your budget!",
		}
	case ratio >= 0.8:
		return BudgetStatus{
			Level:   BudgetWarning,
			Ratio:   ratio,
			Message: fmt.Sprintf("You have used %d%% of your budget.", int(math.Round(ratio*100))),
		}
	default:
		return BudgetStatus{Level: BudgetNormal, Ratio: ratio}
	}
}

// PercentOfBudget computes abs(amount) as a percentage of the budget, rounded
// to one decimal place. It reports 0 when no budget is configured.
func PercentOfBudget(amount float64, budgetRaw string) float64 {
	budget, ok := parseBudget(budgetRaw)
	if !ok {
		return 0
	}
	return math.Round(math.Abs(amount)/budget*1000) / 10
}

func parseBudget(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
