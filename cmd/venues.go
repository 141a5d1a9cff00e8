package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/ledger"
	"github.com/etnz/ledger/renderer"
	"github.com/google/subcommands"
)

type venuesCmd struct {
	table bool
}

func (*venuesCmd) Name() string     { return "venues" }
func (*venuesCmd) Synopsis() string { return "list the balance of every asset on every venue" }
func (*venuesCmd) Usage() string {
	return `ldg venues [-table]

  Lists, for every venue, the balance of each asset that ever flowed through
  it. Negative balances are flagged.
`
}

func (c *venuesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.table, "table", false, "Print a plain text table instead of markdown")
}

func (c *venuesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, _, err := OpenStore(ctx)
	if err != nil {
		return exitOn(err)
	}
	defer s.Close()

	balances, err := ledger.NewView(s).VenueBalances(ctx)
	if err != nil {
		return exitOn(err)
	}
	b := renderer.NewBalances("Venues", true, balances)
	if c.table {
		renderer.BalancesTable(os.Stdout, b)
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderBalances(b))
	return subcommands.ExitSuccess
}
