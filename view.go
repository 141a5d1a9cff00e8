package ledger

import (
	"context"
	"fmt"
	"iter"
	"sort"

	"github.com/shopspring/decimal"
)

// WarningKind identifies a diagnostic.
type WarningKind string

// NegativeBalance is raised when the flows of an asset leave less than
// nothing on a venue.
const NegativeBalance WarningKind = "NEGATIVE_BALANCE"

// Warning is an informational diagnostic. It never blocks a write.
type Warning struct {
	Kind    WarningKind
	Asset   string
	Venue   string // empty when computed over every venue
	Balance decimal.Decimal
}

func (w Warning) String() string {
	where := w.Venue
	if where == "" {
		where = "all venues"
	}
	return fmt.Sprintf("negative balance: %s on %s = %s", w.Asset, where, Exact(w.Balance))
}

// Diagnosis is a balance along with the warnings it raises.
type Diagnosis struct {
	Asset    string
	Venue    string
	Balance  decimal.Decimal
	Warnings []Warning
}

// Balance is the net amount of one asset, on one venue or on all of them.
type Balance struct {
	Venue  string // empty for an all-venue balance
	Asset  string
	Amount decimal.Decimal
}

// View derives read-only views from a Store. Nothing it computes is ever
// stored.
type View struct {
	store *Store
}

// NewView returns a view over s.
func NewView(s *Store) *View { return &View{store: s} }

// Timeline returns every row in chronological order.
func (v *View) Timeline(ctx context.Context) iter.Seq2[Record, error] {
	return v.store.AllRows(ctx)
}

// RowsByAsset returns the rows of one asset in chronological order.
func (v *View) RowsByAsset(ctx context.Context, asset string) iter.Seq2[Record, error] {
	return v.store.RowsByAsset(ctx, asset)
}

// RowsByVenue returns the rows of one venue in chronological order.
func (v *View) RowsByVenue(ctx context.Context, venue string) iter.Seq2[Record, error] {
	return v.store.RowsByVenue(ctx, venue)
}

// Balance returns the sum of the amounts of asset, restricted to venue when
// venue is not empty. Reversals count like any other row, so a row and its
// reversal net to zero.
func (v *View) Balance(ctx context.Context, asset, venue string) (decimal.Decimal, error) {
	venue = CanonicalVenue(venue)
	balance := decimal.Zero
	for rec, err := range v.store.RowsByAsset(ctx, asset) {
		if err != nil {
			return decimal.Zero, err
		}
		if venue != "" && rec.Venue != venue {
			continue
		}
		balance = balance.Add(rec.Amount)
	}
	return balance, nil
}

// Diagnose returns the balance of asset (on venue, if not empty) with a
// warning when it is negative. A negative balance is never an error; the
// only errors are storage failures.
func (v *View) Diagnose(ctx context.Context, asset, venue string) (Diagnosis, error) {
	balance, err := v.Balance(ctx, asset, venue)
	if err != nil {
		return Diagnosis{}, err
	}
	d := Diagnosis{
		Asset:   CanonicalAsset(asset),
		Venue:   CanonicalVenue(venue),
		Balance: balance,
	}
	if balance.IsNegative() {
		d.Warnings = append(d.Warnings, Warning{Kind: NegativeBalance, Asset: d.Asset, Venue: d.Venue, Balance: balance})
	}
	return d, nil
}

// AssetBalances returns the net amount of every asset over all venues,
// sorted by asset.
func (v *View) AssetBalances(ctx context.Context) ([]Balance, error) {
	totals := make(map[string]decimal.Decimal)
	for rec, err := range v.store.AllRows(ctx) {
		if err != nil {
			return nil, err
		}
		totals[rec.Asset] = totals[rec.Asset].Add(rec.Amount)
	}
	balances := make([]Balance, 0, len(totals))
	for asset, amount := range totals {
		balances = append(balances, Balance{Asset: asset, Amount: amount})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].Asset < balances[j].Asset })
	return balances, nil
}

// VenueBalances returns the net amount of every asset on every venue,
// sorted by venue then asset.
func (v *View) VenueBalances(ctx context.Context) ([]Balance, error) {
	type key struct{ venue, asset string }
	totals := make(map[key]decimal.Decimal)
	for rec, err := range v.store.AllRows(ctx) {
		if err != nil {
			return nil, err
		}
		k := key{rec.Venue, rec.Asset}
		totals[k] = totals[k].Add(rec.Amount)
	}
	balances := make([]Balance, 0, len(totals))
	for k, amount := range totals {
		balances = append(balances, Balance{Venue: k.venue, Asset: k.asset, Amount: amount})
	}
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Venue != balances[j].Venue {
			return balances[i].Venue < balances[j].Venue
		}
		return balances[i].Asset < balances[j].Asset
	})
	return balances, nil
}

// Diagnostics returns a warning for every venue holding a negative balance
// of an asset.
func (v *View) Diagnostics(ctx context.Context) ([]Warning, error) {
	balances, err := v.VenueBalances(ctx)
	if err != nil {
		return nil, err
	}
	var warnings []Warning
	for _, b := range balances {
		if b.Amount.IsNegative() {
			warnings = append(warnings, Warning{Kind: NegativeBalance, Asset: b.Asset, Venue: b.Venue, Balance: b.Amount})
		}
	}
	return warnings, nil
}
