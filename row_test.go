package ledger

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"BUY", Buy, false},
		{"sell", Sell, false},
		{" Transfer ", Transfer, false},
		{"fee", Fee, false},
		{"REVERSAL", Reversal, false},
		{"DEPOSIT", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonical(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	r := Row{
		ID:        " x1 ",
		Timestamp: time.Date(2026, 1, 15, 11, 0, 0, 750_000_000, paris),
		Type:      "buy",
		Asset:     " btc",
		Amount:    D("0.5"),
		Currency:  "eur ",
		Venue:     " Kraken ",
		Note:      "  first buy ",
	}
	want := Row{
		ID:        "x1",
		Timestamp: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		Type:      Buy,
		Asset:     "BTC",
		Amount:    D("0.5"),
		Currency:  "EUR",
		Venue:     "kraken",
		Note:      "first buy",
	}
	if diff := cmp.Diff(want, r.Canonical()); diff != "" {
		t.Errorf("Canonical() mismatch (-want +got):\n%s", diff)
	}
}

func TestCanonicalAssignsID(t *testing.T) {
	r := rowA()
	r.ID = ""
	c := r.Canonical()
	if c.ID == "" {
		t.Fatal("Canonical() left the ID empty")
	}
	if c2 := r.Canonical(); c2.ID == c.ID {
		t.Errorf("Canonical() assigned the same ID twice: %q", c.ID)
	}
	if got := c.Canonical().ID; got != c.ID {
		t.Errorf("Canonical() changed an existing ID: %q -> %q", c.ID, got)
	}
}

func TestFingerprint(t *testing.T) {
	base := rowA()
	fp := base.Fingerprint()

	if len(fp) != 64 {
		t.Fatalf("Fingerprint() = %q, want 64 hex digits", fp)
	}
	if got := base.Canonical().Fingerprint(); got != fp {
		t.Errorf("Fingerprint() of the canonical row = %s, want %s", got, fp)
	}

	same := map[string]func(r *Row){
		"venue case":      func(r *Row) { r.Venue = "Kraken" },
		"asset case":      func(r *Row) { r.Asset = "btc" },
		"type case":       func(r *Row) { r.Type = "buy" },
		"other id":        func(r *Row) { r.ID = "b2" },
		"price":           func(r *Row) { r.Price = decimal.NewNullDecimal(D("42000")) },
		"note":            func(r *Row) { r.Note = "imported twice" },
		"currency":        func(r *Row) { r.Currency = "EUR" },
		"trailing zeros":  func(r *Row) { r.Amount = D("1.000") },
		"sub second":      func(r *Row) { r.Timestamp = r.Timestamp.Add(300 * time.Millisecond) },
		"other time zone": func(r *Row) { r.Timestamp = r.Timestamp.In(time.FixedZone("X", -5*3600)) },
	}
	for name, change := range same {
		t.Run("same/"+name, func(t *testing.T) {
			r := rowA()
			change(&r)
			if got := r.Fingerprint(); got != fp {
				t.Errorf("Fingerprint() = %s, want %s", got, fp)
			}
		})
	}

	different := map[string]func(r *Row){
		"timestamp": func(r *Row) { r.Timestamp = r.Timestamp.Add(time.Second) },
		"type":      func(r *Row) { r.Type = Transfer },
		"venue":     func(r *Row) { r.Venue = "binance" },
		"asset":     func(r *Row) { r.Asset = "ETH" },
		"amount":    func(r *Row) { r.Amount = D("1.00000001") },
		"sign":      func(r *Row) { r.Amount = D("-1") },
	}
	for name, change := range different {
		t.Run("different/"+name, func(t *testing.T) {
			r := rowA()
			change(&r)
			if got := r.Fingerprint(); got == fp {
				t.Errorf("Fingerprint() did not change")
			}
		})
	}
}

func TestNegate(t *testing.T) {
	r := rowA()
	r.Price = decimal.NewNullDecimal(D("42000.50"))
	got := r.Negate(testNow, "reversal of a1")
	want := Row{
		Timestamp: testNow,
		Type:      Reversal,
		Asset:     "BTC",
		Amount:    D("-1"),
		Currency:  "USD",
		Price:     decimal.NewNullDecimal(D("42000.50")),
		Venue:     "kraken",
		Note:      "reversal of a1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Negate() mismatch (-want +got):\n%s", diff)
	}
}

func TestExact(t *testing.T) {
	tests := []struct{ in, want string }{
		{"-5.50", "-5.50"},
		{"0.5", "0.5"},
		{"20000", "20000"},
		{"0.00010000", "0.00010000"},
		{"-0.0001", "-0.0001"},
	}
	for _, tt := range tests {
		if got := Exact(D(tt.in)); got != tt.want {
			t.Errorf("Exact(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
