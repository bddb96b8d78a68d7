// Package core provides the pure domain logic for the budget tracker:
// amount text handling, category aggregation and budget evaluation.
//
// This file contains the currency text functions. Amounts move through the
// system as "raw" text (digits plus at most one decimal point, optionally a
// leading minus sign when typed directly) and are rendered with a currency
// symbol and thousands separators only for display.
package core

import (
	"strconv"
	"strings"
)

// ToRaw strips a display string down to its raw numeric payload. Every rune
// that is not a digit or a decimal point is removed; if more than one decimal
// point survives, everything after the second one is truncated away rather
// than merged.
//
// Examples:
//
//	ToRaw("$1,234.50") -> "1234.50"
//	ToRaw("1.2.3")     -> "1.2"
//	ToRaw("abc")       -> ""
func ToRaw(input string) string {
	var b strings.Builder
	for _, r := range input {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	parts := strings.Split(cleaned, ".")
	if len(parts) > 2 {
		cleaned = parts[0] + "." + parts[1]
	}
	return cleaned
}

// Format renders a raw numeric string for display: thousands separators in
// the integer part, the fractional part reattached verbatim, and the currency
// symbol prepended with no space. It is best-effort text handling and never
// fails: an empty raw formats to the symbol alone, a lone "." to symbol+".".
func Format(raw, symbol string) string {
	intPart := raw
	fracPart := ""
	hasDot := false
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		intPart = raw[:i]
		fracPart = raw[i+1:]
		hasDot = true
	}

	formatted := groupThousands(intPart)
	if hasDot {
		formatted += "." + fracPart
	}
	return symbol + formatted
}

// groupThousands inserts a comma every three digits from the right.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	rem := len(s) % 3
	if rem > 0 {
		b.WriteString(s[:rem])
	}
	for i := rem; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// ParseAmount parses a raw amount string into a signed decimal value. The
// sign encodes direction, so "-4.50" is a valid expense amount.
func ParseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
