package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// timestampLayouts are the accepted textual timestamp forms, tried in order.
// Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseTimestamp parses a timestamp in one of the accepted layouts and
// returns it in UTC with second precision.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp %q, want format %q", s, timestampLayouts[0])
}

// Candidate is the textual form of a row, as read from a tabular source or
// typed by a user. Every field is kept as text until Parse accepts it.
type Candidate struct {
	ID        string
	Timestamp string
	Type      string
	Asset     string
	Amount    string
	Currency  string
	Price     string
	Venue     string
	Note      string
}

// Parse is the syntactic gate in front of the store. It returns the
// canonical Row for c, or a *ValidationError listing every field that failed.
//
// Parse never looks at other rows: a SELL that drives a balance negative is
// accepted here and reported later by diagnostics.
func Parse(c Candidate) (Row, error) {
	var vs []Violation
	add := func(field, format string, args ...any) {
		vs = append(vs, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	row := Row{
		ID:       c.ID,
		Asset:    c.Asset,
		Currency: c.Currency,
		Venue:    c.Venue,
		Note:     c.Note,
	}

	if strings.TrimSpace(c.Timestamp) == "" {
		add("timestamp", "missing")
	} else if ts, err := ParseTimestamp(c.Timestamp); err != nil {
		add("timestamp", "%v", err)
	} else {
		row.Timestamp = ts
	}

	if strings.TrimSpace(c.Type) == "" {
		add("type", "missing")
	} else if t, err := ParseType(c.Type); err != nil {
		add("type", "%v", err)
	} else {
		row.Type = t
	}

	if strings.TrimSpace(c.Amount) == "" {
		add("amount", "missing")
	} else if amount, err := decimal.NewFromString(strings.TrimSpace(c.Amount)); err != nil {
		add("amount", "not an exact decimal: %q", c.Amount)
	} else if amount.IsZero() {
		add("amount", "must not be zero")
	} else {
		row.Amount = amount
	}

	if p := strings.TrimSpace(c.Price); p != "" {
		if price, err := decimal.NewFromString(p); err != nil {
			add("price", "not an exact decimal: %q", c.Price)
		} else {
			row.Price = decimal.NewNullDecimal(price)
		}
	}

	if strings.TrimSpace(c.Asset) == "" {
		add("asset", "missing")
	}
	if strings.TrimSpace(c.Currency) == "" {
		add("currency", "missing")
	}
	if strings.TrimSpace(c.Venue) == "" {
		add("venue", "missing")
	}

	if len(vs) > 0 {
		return Row{}, &ValidationError{Violations: vs}
	}
	return row.Canonical(), nil
}

// Validate applies the syntactic checks of Parse to a row built in code.
// It returns nil or a *ValidationError.
func Validate(r Row) error {
	vs := r.check()
	if r.Amount.IsZero() {
		vs = append(vs, Violation{Field: "amount", Message: "must not be zero"})
	}
	if len(vs) > 0 {
		return &ValidationError{Violations: vs}
	}
	return nil
}

// check is the minimal re-check the store applies before any write:
// required fields are present and the type is in the enumeration.
func (r Row) check() []Violation {
	var vs []Violation
	if strings.TrimSpace(r.ID) == "" {
		vs = append(vs, Violation{Field: "id", Message: "missing"})
	}
	if r.Timestamp.IsZero() {
		vs = append(vs, Violation{Field: "timestamp", Message: "missing"})
	}
	if !r.Type.Valid() {
		vs = append(vs, Violation{Field: "type", Message: fmt.Sprintf("unknown type %q, want one of %v", r.Type, Types)})
	}
	if strings.TrimSpace(r.Asset) == "" {
		vs = append(vs, Violation{Field: "asset", Message: "missing"})
	}
	if strings.TrimSpace(r.Currency) == "" {
		vs = append(vs, Violation{Field: "currency", Message: "missing"})
	}
	if strings.TrimSpace(r.Venue) == "" {
		vs = append(vs, Violation{Field: "venue", Message: "missing"})
	}
	return vs
}
