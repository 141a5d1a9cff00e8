package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ledger"
	"github.com/etnz/ledger/renderer"
	"github.com/google/subcommands"
)

type balanceCmd struct {
	asset string
	venue string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "compute the balance of an asset" }
func (*balanceCmd) Usage() string {
	return `ldg balance -asset <asset> [-venue <venue>]

  Sums every row of the asset, on one venue or on all of them. Reversals are
  counted like any other row. A negative balance is reported as a warning,
  never as an error.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "Asset to compute (required)")
	f.StringVar(&c.venue, "venue", "", "Restrict to one venue")
}

func (c *balanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" {
		fmt.Fprintln(os.Stderr, "Error: -asset is required.")
		return subcommands.ExitUsageError
	}

	s, _, err := OpenStore(ctx)
	if err != nil {
		return exitOn(err)
	}
	defer s.Close()

	d, err := ledger.NewView(s).Diagnose(ctx, c.asset, c.venue)
	if err != nil {
		return exitOn(err)
	}
	title := "Balance of " + d.Asset
	if d.Venue != "" {
		title += " on " + d.Venue
	}
	b := renderer.NewBalances(title, d.Venue != "", []ledger.Balance{{Venue: d.Venue, Asset: d.Asset, Amount: d.Balance}})
	printMarkdown(renderer.RenderBalances(b))
	for _, w := range d.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	return subcommands.ExitSuccess
}
