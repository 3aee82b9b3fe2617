package chart

import (
	"fmt"
	"math"
	"strings"
)

// FormatNumber renders a value compactly: billions/millions/thousands
// get a suffix, integral values drop decimals, the rest keep two.
func FormatNumber(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatCurrency is FormatNumber with a dollar prefix.
func FormatCurrency(v float64) string {
	return "$" + FormatNumber(v)
}

// FormatPercent renders a ratio as a percentage with one decimal.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100.0)
}

// FormatValue picks a formatter from the field name: rate-ish fields
// render as percentages, money-ish fields as currency, the rest as
// plain numbers.
func FormatValue(field string, v float64) string {
	f := strings.ToLower(field)
	switch {
	case strings.Contains(f, "percent") || strings.Contains(f, "pct") || strings.Contains(f, "rate"):
		return FormatPercent(v)
	case strings.Contains(f, "price") || strings.Contains(f, "cost") ||
		strings.Contains(f, "revenue") || strings.Contains(f, "amount") ||
		strings.Contains(f, "$"):
		return FormatCurrency(v)
	default:
		return FormatNumber(v)
	}
}

// Truncate caps a string at max runes, keeping a "..." tail when there
// is room for one.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
