package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/ledger"
	"github.com/etnz/ledger/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type tradeCmd struct {
	timestamp string
	typ       string
	asset     string
	quantity  string
	currency  string
	total     string
	venue     string
	note      string
}

func (*tradeCmd) Name() string { return "trade" }
func (*tradeCmd) Synopsis() string {
	return "record a buy or a sell as a double-entry pair of rows"
}
func (*tradeCmd) Usage() string {
	return `ldg trade -type <buy|sell> -asset <asset> -q <quantity> -currency <currency> -total <amount> [-venue <venue>] [-t <timestamp>] [-note <note>]

  Records an exchange as two rows sharing one id: the asset leg and the
  currency leg. A buy brings the asset in and the currency out, a sell does
  the opposite. Quantities are given without sign.

  Both legs are written in a single transaction. The unit price is derived
  from the total and the quantity and stored for information.
`
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.timestamp, "t", "", "Timestamp of the trade, defaults to now")
	f.StringVar(&c.typ, "type", "", "buy or sell (required)")
	f.StringVar(&c.asset, "asset", "", "Asset traded (required)")
	f.StringVar(&c.quantity, "q", "", "Quantity of asset (required)")
	f.StringVar(&c.currency, "currency", "", "Currency paid or received (required)")
	f.StringVar(&c.total, "total", "", "Amount of currency paid or received (required)")
	f.StringVar(&c.venue, "venue", "", "Venue of the trade")
	f.StringVar(&c.note, "note", "", "Free text")
}

func (c *tradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	typ, err := ledger.ParseType(c.typ)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	quantity, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid quantity %q: %v\n", c.quantity, err)
		return subcommands.ExitUsageError
	}
	total, err := decimal.NewFromString(c.total)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid total %q: %v\n", c.total, err)
		return subcommands.ExitUsageError
	}
	at := time.Now()
	if c.timestamp != "" {
		if at, err = ledger.ParseTimestamp(c.timestamp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	s, cfg, err := OpenStore(ctx)
	if err != nil {
		return exitOn(err)
	}
	defer s.Close()

	venue := c.venue
	if venue == "" {
		venue = cfg.DefaultVenue
	}
	trade := ledger.Trade{
		Timestamp:      at,
		Type:           typ,
		Asset:          c.asset,
		AssetAmount:    quantity,
		Currency:       c.currency,
		CurrencyAmount: total,
		Venue:          venue,
		Note:           c.note,
	}
	if !quantity.IsZero() {
		trade.Price = decimal.NewNullDecimal(total.Abs().DivRound(quantity.Abs(), 8))
	}
	assetLeg, currencyLeg, err := trade.Legs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	outs, err := s.AppendPair(ctx, assetLeg, currencyLeg)
	if err != nil {
		return exitOn(err)
	}
	printMarkdown(renderer.RenderOutcomes([]renderer.Outcome{
		renderer.NewOutcome(outs[0], assetLeg),
		renderer.NewOutcome(outs[1], currencyLeg),
	}))
	return subcommands.ExitSuccess
}
