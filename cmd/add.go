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
)

type addCmd struct {
	id        string
	timestamp string
	typ       string
	asset     string
	amount    string
	currency  string
	price     string
	venue     string
	note      string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "append a single row to the ledger" }
func (*addCmd) Usage() string {
	return `ldg add -type <type> -asset <asset> -amount <amount> -currency <currency> [-venue <venue>] [-t <timestamp>] [-price <price>] [-note <note>] [-id <id>]

  Appends one flow to the ledger. The sign of the amount is the direction:
  positive comes into the venue, negative leaves it.

  - type: BUY, SELL, TRANSFER, FEE or REVERSAL.
  - t: "2006-01-02T15:04:05" in UTC, defaults to now.
  - venue: defaults to LEDGER_DEFAULT_VENUE.

  Appending a row that is already in the ledger changes nothing and reports
  the existing row.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Row id, a fresh one is generated by default")
	f.StringVar(&c.timestamp, "t", "", "Timestamp of the flow, defaults to now")
	f.StringVar(&c.typ, "type", "", "Flow type (required)")
	f.StringVar(&c.asset, "asset", "", "Asset symbol (required)")
	f.StringVar(&c.amount, "amount", "", "Signed amount (required)")
	f.StringVar(&c.currency, "currency", "", "Counter currency (required)")
	f.StringVar(&c.price, "price", "", "Unit price, informative only")
	f.StringVar(&c.venue, "venue", "", "Venue of the flow")
	f.StringVar(&c.note, "note", "", "Free text")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, cfg, err := OpenStore(ctx)
	if err != nil {
		return exitOn(err)
	}
	defer s.Close()

	ts := c.timestamp
	if ts == "" {
		ts = time.Now().UTC().Format(ledger.TimestampFormat)
	}
	venue := c.venue
	if venue == "" {
		venue = cfg.DefaultVenue
	}

	row, err := ledger.Parse(ledger.Candidate{
		ID:        c.id,
		Timestamp: ts,
		Type:      c.typ,
		Asset:     c.asset,
		Amount:    c.amount,
		Currency:  c.currency,
		Price:     c.price,
		Venue:     venue,
		Note:      c.note,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	out, err := s.Append(ctx, row)
	if err != nil {
		return exitOn(err)
	}
	printMarkdown(renderer.RenderOutcomes([]renderer.Outcome{renderer.NewOutcome(out, row)}))
	return subcommands.ExitSuccess
}
