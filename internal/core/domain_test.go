package core

import (
	"errors"
	"strings"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	cases := []struct {
		name string
		tx   Transaction
		err  error
	}{
		{"valid expense", Transaction{Desc: "Coffee", Amount: -4.5, Category: "Food & Dining"}, nil},
		{"valid income", Transaction{Desc: "Paycheck", Amount: 2000, Category: "Salary"}, nil},
		{"empty description", Transaction{Desc: "  ", Amount: 1, Category: "Other"}, ErrEmptyDescription},
		{"empty category", Transaction{Desc: "x", Amount: 1, Category: ""}, ErrEmptyCategory},
		{"unknown category", Transaction{Desc: "x", Amount: 1, Category: "Gadgets"}, ErrUnknownCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tx.Validate()
			if !errors.Is(err, tc.err) {
				t.Fatalf("Validate() = %v, want %v", err, tc.err)
			}
		})
	}

	long := Transaction{Desc: strings.Repeat("a", 201), Amount: 1, Category: "Other"}
	if long.Validate() == nil {
		t.Fatalf("overlong description should fail validation")
	}
}

func TestCurrencySet(t *testing.T) {
	for _, sym := range []string{"$", "€", "£", "KSh", "₦", "₹", "¥"} {
		if !ValidCurrencySymbol(sym) {
			t.Fatalf("symbol %q should be valid", sym)
		}
	}
	if ValidCurrencySymbol("BTC") {
		t.Fatalf("BTC is not in the currency set")
	}
}

func TestViews(t *testing.T) {
	zero := Transaction{Amount: 0}
	if zero.IsIncome() || zero.IsExpense() {
		t.Fatalf("zero amount belongs to neither view")
	}
}
