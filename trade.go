package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trade describes an exchange of an asset against a currency on a venue.
// Amounts are given as magnitudes; the direction comes from Type.
type Trade struct {
	Timestamp      time.Time
	Type           Type // Buy or Sell
	Asset          string
	AssetAmount    decimal.Decimal
	Currency       string
	CurrencyAmount decimal.Decimal
	Venue          string
	Price          decimal.NullDecimal
	Note           string
}

// Legs returns the two rows of the double-entry pair recording t. Both legs
// share a fresh ID.
//
// A Buy brings the asset in and the currency out; a Sell does the opposite.
// The currency leg swaps Asset and Currency.
func (t Trade) Legs() (asset, currency Row, err error) {
	var assetSign, currencySign decimal.Decimal
	switch t.Type {
	case Buy:
		assetSign, currencySign = t.AssetAmount.Abs(), t.CurrencyAmount.Abs().Neg()
	case Sell:
		assetSign, currencySign = t.AssetAmount.Abs().Neg(), t.CurrencyAmount.Abs()
	default:
		return Row{}, Row{}, fmt.Errorf("trade type must be %s or %s, got %q", Buy, Sell, t.Type)
	}
	if t.AssetAmount.IsZero() || t.CurrencyAmount.IsZero() {
		return Row{}, Row{}, errors.New("trade amounts must not be zero")
	}

	id := uuid.NewString()
	asset = Row{
		ID:        id,
		Timestamp: t.Timestamp,
		Type:      t.Type,
		Asset:     t.Asset,
		Amount:    assetSign,
		Currency:  t.Currency,
		Price:     t.Price,
		Venue:     t.Venue,
		Note:      t.Note,
	}
	currency = Row{
		ID:        id,
		Timestamp: t.Timestamp,
		Type:      t.Type,
		Asset:     t.Currency,
		Amount:    currencySign,
		Currency:  t.Asset,
		Price:     t.Price,
		Venue:     t.Venue,
		Note:      t.Note,
	}
	return asset.Canonical(), currency.Canonical(), nil
}
