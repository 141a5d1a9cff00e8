package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is a typed string for identifying the kind of flow a row records.
type Type string

// Flow types. REVERSAL is the only correction primitive.
const (
	Buy      Type = "BUY"
	Sell     Type = "SELL"
	Transfer Type = "TRANSFER"
	Fee      Type = "FEE"
	Reversal Type = "REVERSAL"
)

// Types lists every valid flow type in a stable order.
var Types = []Type{Buy, Sell, Transfer, Fee, Reversal}

// Valid reports whether t is one of the enumerated flow types.
func (t Type) Valid() bool {
	switch t {
	case Buy, Sell, Transfer, Fee, Reversal:
		return true
	}
	return false
}

// ParseType parses a flow type, case insensitive.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown type %q, want one of %v", s, Types)
	}
	return t, nil
}

// TimestampFormat is the layout used to store and fingerprint timestamps.
const TimestampFormat = "2006-01-02T15:04:05Z"

// fingerprintFormat has no zone marker: every canonical timestamp is UTC.
const fingerprintFormat = "2006-01-02T15:04:05"

// Row is one atomic flow of an asset.
//
// The sign of Amount encodes the direction: positive is inbound to Venue,
// negative is outbound. Price is informative only and never enters a
// balance. Note is the only place for external references.
type Row struct {
	ID        string              // shared by the two legs of a double-entry pair
	Timestamp time.Time           // UTC, second precision
	Type      Type                // flow type
	Asset     string              // upper case
	Amount    decimal.Decimal     // non zero
	Currency  string              // counter currency of the flow
	Price     decimal.NullDecimal // optional
	Venue     string              // lower case; exchange, wallet or bank alike
	Note      string              // optional free text
}

// Canonical returns the canonical form of r: venue in lower case, asset and
// currency in upper case, timestamp in UTC truncated to the second, and a
// fresh ID when none was given.
func (r Row) Canonical() Row {
	r.ID = strings.TrimSpace(r.ID)
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if !r.Timestamp.IsZero() {
		r.Timestamp = r.Timestamp.UTC().Truncate(time.Second)
	}
	r.Type = Type(strings.ToUpper(strings.TrimSpace(string(r.Type))))
	r.Asset = CanonicalAsset(r.Asset)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	r.Venue = CanonicalVenue(r.Venue)
	r.Note = strings.TrimSpace(r.Note)
	return r
}

// CanonicalAsset returns the canonical spelling of an asset symbol.
func CanonicalAsset(asset string) string { return strings.ToUpper(strings.TrimSpace(asset)) }

// CanonicalVenue returns the canonical spelling of a venue name.
func CanonicalVenue(venue string) string { return strings.ToLower(strings.TrimSpace(venue)) }

// Fingerprint returns the dedup key of r: the hex SHA-256 digest of its
// timestamp, type, venue, asset and amount.
//
// ID, Price, Note and Currency do not take part, so re-importing the same
// event with a different narrative still deduplicates. Fingerprint
// canonicalizes the fields it reads, the result is the same for r and
// r.Canonical().
func (r Row) Fingerprint() string {
	ts := r.Timestamp.UTC().Truncate(time.Second).Format(fingerprintFormat)
	normalized := ts +
		strings.ToUpper(strings.TrimSpace(string(r.Type))) +
		CanonicalVenue(r.Venue) +
		CanonicalAsset(r.Asset) +
		r.Amount.StringFixed(8)
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Negate returns the REVERSAL row correcting r. The returned row has no ID
// yet.
func (r Row) Negate(at time.Time, note string) Row {
	return Row{
		Timestamp: at,
		Type:      Reversal,
		Asset:     r.Asset,
		Amount:    r.Amount.Neg(),
		Currency:  r.Currency,
		Price:     r.Price,
		Venue:     r.Venue,
		Note:      note,
	}
}

// String returns a one line description of the row.
func (r Row) String() string {
	return fmt.Sprintf("%s %s %s %s @%s", r.Timestamp.UTC().Format(TimestampFormat), r.Type, Exact(r.Amount), r.Asset, r.Venue)
}

// Record is a Row as persisted by a Store.
type Record struct {
	Row
	Seq        int64     // insertion order, unique in a store
	FP         string    // fingerprint, the dedup key
	ImportedAt time.Time // when the row was accepted
}

// Exact formats d keeping the number of decimals it was created with, so
// "-5.50" is not turned into "-5.5".
func Exact(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
