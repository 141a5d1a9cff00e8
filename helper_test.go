package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// testNow is the clock of the test stores.
var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newStore opens a fresh file backed store with a fixed clock.
func newStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "ledger.db"), opts...)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// D is a helper for tests to create a decimal from a const.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// TS is a helper for tests to create a timestamp from a const.
func TS(s string) time.Time {
	ts, err := ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// rowA is the BUY of one BTC on kraken used across the store tests.
func rowA() Row {
	return Row{
		ID:        "a1",
		Timestamp: TS("2024-01-01T00:00:00Z"),
		Type:      Buy,
		Asset:     "BTC",
		Amount:    D("1"),
		Currency:  "USD",
		Venue:     "kraken",
	}
}

// mustAppend appends r and fails the test on error.
func mustAppend(t *testing.T, s *Store, r Row) Outcome {
	t.Helper()
	out, err := s.Append(context.Background(), r)
	if err != nil {
		t.Fatalf("Append(%v) error = %v", r, err)
	}
	return out
}

// all collects every row of s.
func all(t *testing.T, s *Store) []Record {
	t.Helper()
	recs, err := Collect(s.AllRows(context.Background()))
	if err != nil {
		t.Fatalf("AllRows() error = %v", err)
	}
	return recs
}
