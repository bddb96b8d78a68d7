package core

import (
	"errors"
	"strings"
)

type (
	// Transaction is a signed monetary record. The sign of Amount encodes
	// direction: positive is income, negative is expense.
	Transaction struct {
		ID       string  `json:"id"`
		Desc     string  `json:"desc"`
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
	}

	// Currency pairs a display label with the symbol prepended to amounts.
	Currency struct {
		Label  string
		Symbol string
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrEmptyCategory      = errors.New("empty category")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrUnknownCurrency    = errors.New("unknown currency")
	ErrNotFound           = errors.New("transaction not found")
	ErrNoAccount          = errors.New("no account")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyCredentials   = errors.New("empty username or password")
)

// Currencies is the closed set of supported currencies.
var Currencies = []Currency{
	{Label: "USD", Symbol: "$"},
	{Label: "EUR", Symbol: "€"},
	{Label: "GBP", Symbol: "£"},
	{Label: "KES", Symbol: "KSh"},
	{Label: "NGN", Symbol: "₦"},
	{Label: "INR", Symbol: "₹"},
	{Label: "JPY", Symbol: "¥"},
}

// DefaultCategories is the closed set of transaction categories.
var DefaultCategories = []string{
	"Food & Dining",
	"Transportation",
	"Salary",
	"Entertainment",
	"Freelance",
	"Other",
}

// ValidCurrencySymbol reports whether symbol belongs to the supported set.
func ValidCurrencySymbol(symbol string) bool {
	for _, c := range Currencies {
		if c.Symbol == symbol {
			return true
		}
	}
	return false
}

// ValidCategory reports whether name belongs to the category set.
func ValidCategory(name string) bool {
	for _, c := range DefaultCategories {
		if c == name {
			return true
		}
	}
	return false
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Desc)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Desc) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if !ValidCategory(t.Category) {
		return ErrUnknownCategory
	}
	return nil
}

// IsIncome reports whether the transaction counts toward the income view.
func (t Transaction) IsIncome() bool { return t.Amount > 0 }

// IsExpense reports whether the transaction counts toward the expense view.
// A zero amount belongs to neither view.
func (t Transaction) IsExpense() bool { return t.Amount < 0 }
