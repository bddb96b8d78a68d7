package core

import "testing"

func TestAggregateEmpty(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(got))
	}
}

func TestAggregateSingle(t *testing.T) {
	got := Aggregate([]Transaction{{ID: "1", Desc: "Coffee", Amount: -4.50, Category: "Food & Dining"}})
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].Amount != 4.50 {
		t.Fatalf("expected abs amount 4.50, got %v", got[0].Amount)
	}
}

func TestAggregateGroupsByFirstOccurrence(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Desc: "Bus", Amount: -2, Category: "Transportation"},
		{ID: "2", Desc: "Lunch", Amount: -8, Category: "Food & Dining"},
		{ID: "3", Desc: "Train", Amount: -5, Category: "Transportation"},
	}
	got := Aggregate(txs)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Name != "Transporta…" || got[0].Amount != 7 {
		t.Fatalf("entry 0 = %+v, want Transporta… / 7", got[0])
	}
	if got[1].Name != "Food & Din…" || got[1].Amount != 8 {
		t.Fatalf("entry 1 = %+v, want Food & Din… / 8", got[1])
	}
}

func TestAggregateLegendStyling(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Amount: 10, Category: "Salary"},
		{ID: "2", Amount: 20, Category: "Entertainment"},
	}
	got := Aggregate(txs)
	// Short name keeps the full label and regular font.
	if got[0].Name != "Salary" || got[0].LegendFontSize != 14 {
		t.Fatalf("entry 0 = %+v, want untruncated Salary at size 14", got[0])
	}
	// "Entertainment" is 13 runes: truncated with ellipsis and shrunk legend.
	if got[1].Name != "Entertainm…" || got[1].LegendFontSize != 12 {
		t.Fatalf("entry 1 = %+v, want Entertainm… at size 12", got[1])
	}
	if got[0].Color != "#43e97b" || got[1].Color != "#4f8cff" {
		t.Fatalf("palette slots wrong: %s, %s", got[0].Color, got[1].Color)
	}
	if got[0].LegendFontColor != "#333" {
		t.Fatalf("legend font color = %s", got[0].LegendFontColor)
	}
}

func TestAggregatePaletteCycles(t *testing.T) {
	cats := []string{"Food & Dining", "Transportation", "Salary", "Entertainment", "Freelance", "Other"}
	var txs []Transaction
	for _, c := range cats {
		txs = append(txs, Transaction{Amount: 1, Category: c})
	}
	// A seventh distinct category wraps back to the first palette slot; the
	// closed set only has six, so reuse the first with a different name is not
	// possible here — verify the sixth slot instead and the modulo directly.
	got := Aggregate(txs)
	if got[5].Color != "#a259c6" {
		t.Fatalf("sixth entry color = %s, want #a259c6", got[5].Color)
	}
	if chartPalette[6%len(chartPalette)] != "#43e97b" {
		t.Fatalf("palette should cycle back to the first slot")
	}
}

func TestIncomeExpenseViews(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Desc: "Coffee", Amount: -4.50, Category: "Food & Dining"},
		{ID: "2", Desc: "Paycheck", Amount: 2000, Category: "Salary"},
		{ID: "3", Desc: "Nothing", Amount: 0, Category: "Other"},
	}

	if got := TotalIncome(txs); got != 2000 {
		t.Fatalf("TotalIncome = %v, want 2000", got)
	}
	if got := TotalExpense(txs); got != 4.50 {
		t.Fatalf("TotalExpense = %v, want 4.50", got)
	}

	income := Aggregate(Incomes(txs))
	if len(income) != 1 || income[0].Name != "Salary" || income[0].Amount != 2000 {
		t.Fatalf("income chart = %+v", income)
	}
	expense := Aggregate(Expenses(txs))
	if len(expense) != 1 || expense[0].Name != "Food & Din…" || expense[0].Amount != 4.5 {
		t.Fatalf("expense chart = %+v", expense)
	}
}
