package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2_500_000_000, "2.5B"},
		{1_500_000, "1.5M"},
		{1234, "1.2K"},
		{999, "999"},
		{42, "42"},
		{42.5, "42.50"},
		{0, "0"},
		{-12.345, "-12.35"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in), "FormatNumber(%v)", tt.in)
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1.5M", FormatCurrency(1_500_000))
	assert.Equal(t, "$42", FormatCurrency(42))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "15.5%", FormatPercent(0.155))
	assert.Equal(t, "100.0%", FormatPercent(1))
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		field string
		in    float64
		want  string
	}{
		{"total_revenue", 1_500_000, "$1.5M"},
		{"unit_price", 42, "$42"},
		{"conversion_rate", 0.155, "15.5%"},
		{"pct_complete", 0.5, "50.0%"},
		{"row_count", 1234, "1.2K"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.field, tt.in), "field %q", tt.field)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 30))
	assert.Equal(t, "exactly", Truncate("exactly", 7))
	assert.Equal(t, "a long valu...", Truncate("a long value indeed", 14))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}
