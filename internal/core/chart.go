package core

import "math"

// maxLabelLength caps category labels in chart legends.
const maxLabelLength = 10

// chartPalette is the fixed 6-color palette; entries cycle by position index.
var chartPalette = []string{
	"#43e97b", "#4f8cff", "#f9d423", "#fc466b", "#f7971e", "#a259c6",
}

const (
	legendFontColor  = "#333"
	legendFontSize   = 14
	legendFontSizeSm = 12
)

// CategoryTotal is one chart entry: the absolute amounts of a category summed
// together with its legend styling. Recomputed from scratch on every render,
// never persisted.
type CategoryTotal struct {
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`
	Color           string  `json:"color"`
	LegendFontColor string  `json:"legendFontColor"`
	LegendFontSize  int     `json:"legendFontSize"`
}

// Aggregate reduces transactions into per-category totals of abs(amount).
// Output order follows the first occurrence of each category in the input.
func Aggregate(txs []Transaction) []CategoryTotal {
	totals := make(map[string]float64)
	var order []string
	for _, tx := range txs {
		if _, seen := totals[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		totals[tx.Category] += math.Abs(tx.Amount)
	}

	out := make([]CategoryTotal, 0, len(order))
	for i, cat := range order {
		out = append(out, CategoryTotal{
			Name:            truncateLabel(cat),
			Amount:          totals[cat],
			Color:           chartPalette[i%len(chartPalette)],
			LegendFontColor: legendFontColor,
			LegendFontSize:  legendSize(cat),
		})
	}
	return out
}

// Incomes returns the transactions belonging to the income view.
func Incomes(txs []Transaction) []Transaction {
	var out []Transaction
	for _, tx := range txs {
		if tx.IsIncome() {
			out = append(out, tx)
		}
	}
	return out
}

// Expenses returns the transactions belonging to the expense view.
func Expenses(txs []Transaction) []Transaction {
	var out []Transaction
	for _, tx := range txs {
		if tx.IsExpense() {
			out = append(out, tx)
		}
	}
	return out
}

// TotalIncome sums abs(amount) over positive-amount transactions.
func TotalIncome(txs []Transaction) float64 {
	var sum float64
	for _, tx := range txs {
		if tx.IsIncome() {
			sum += math.Abs(tx.Amount)
		}
	}
	return sum
}

// TotalExpense sums abs(amount) over negative-amount transactions.
func TotalExpense(txs []Transaction) float64 {
	var sum float64
	for _, tx := range txs {
		if tx.IsExpense() {
			sum += math.Abs(tx.Amount)
		}
	}
	return sum
}

func truncateLabel(name string) string {
	runes := []rune(name)
	if len(runes) <= maxLabelLength {
		return name
	}
	return string(runes[:maxLabelLength]) + "…"
}

// legendSize shrinks the legend font when the untruncated name overflows.
func legendSize(name string) int {
	if len([]rune(name)) > maxLabelLength {
		return legendFontSizeSm
	}
	return legendFontSize
}
