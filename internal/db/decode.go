package db

import (
	"fmt"
	"time"
)

// decodeValue maps driver values onto the chart cell universe. Numbers
// widen to float64, temporal types render as ISO-ish strings, blobs are
// summarized by length, and composite types fall back to their string
// form.
func decodeValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case bool:
		return t
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	case float64:
		return t
	case string:
		return t
	case time.Time:
		return formatTime(t)
	case []byte:
		return fmt.Sprintf("<blob %d bytes>", len(t))
	default:
		if s, ok := v.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("%v", v)
	}
}

// formatTime distinguishes DATE, TIME, and TIMESTAMP values by shape:
// a year at or below 1 means a bare time of day, a zero clock means a
// bare date.
func formatTime(t time.Time) string {
	switch {
	case t.Year() <= 1:
		return t.Format("15:04:05")
	case t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0:
		return t.Format("2006-01-02")
	default:
		return t.Format("2006-01-02T15:04:05")
	}
}
