package db

import (
	"math/big"
	"testing"
	"time"
)

func TestDecodeValue(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	clock := time.Date(1, 1, 1, 9, 45, 30, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bool", true, true},
		{"int64 widens", int64(42), 42.0},
		{"uint32 widens", uint32(7), 7.0},
		{"float32 widens", float32(1.5), 1.5},
		{"string", "hello", "hello"},
		{"timestamp", ts, "2024-03-15T10:30:00"},
		{"date", date, "2024-03-15"},
		{"time of day", clock, "09:45:30"},
		{"blob summarized", []byte{1, 2, 3}, "<blob 3 bytes>"},
		{"stringer", big.NewInt(12345678901234), "12345678901234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeValue(tt.in)
			if got != tt.want {
				t.Errorf("decodeValue(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
