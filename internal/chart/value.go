package chart

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Cell values come out of encoding/json as nil, bool, float64, string,
// []any, or map[string]any. The coercions below are total over that
// universe so views and templates never branch on type themselves.

// ToString renders a cell for display. Numbers drop a trailing ".0",
// nil renders as "null", containers render as compact JSON.
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

// ToFloat coerces a cell to a number: numbers pass through, numeric
// strings parse, everything else is zero.
func ToFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// IsNumeric reports whether a cell is a number or a string that parses
// as one.
func IsNumeric(v any) bool {
	switch t := v.(type) {
	case float64:
		return true
	case string:
		_, err := strconv.ParseFloat(t, 64)
		return err == nil
	default:
		return false
	}
}
