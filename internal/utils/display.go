package utils

import "github.com/shopspring/decimal"

// StringOr returns s, or the fallback when s is empty. Display sites use it
// so malformed collaborator data never crashes rendering.
func StringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Dash is StringOr with the conventional "-" placeholder.
func Dash(s string) string {
	return StringOr(s, "-")
}

// AmountString formats a decimal with two places for table display.
func AmountString(d decimal.Decimal) string {
	return d.StringFixed(2)
}
