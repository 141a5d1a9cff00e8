package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/ledger"
	"github.com/etnz/ledger/renderer"
	"github.com/google/subcommands"
)

type assetsCmd struct {
	table bool
}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "list the balance of every asset over all venues" }
func (*assetsCmd) Usage() string {
	return `ldg assets [-table]

  Lists every asset found in the ledger with its balance summed over all
  venues.
`
}

func (c *assetsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.table, "table", false, "Print a plain text table instead of markdown")
}

func (c *assetsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, _, err := OpenStore(ctx)
	if err != nil {
		return exitOn(err)
	}
	defer s.Close()

	balances, err := ledger.NewView(s).AssetBalances(ctx)
	if err != nil {
		return exitOn(err)
	}
	b := renderer.NewBalances("Assets", false, balances)
	if c.table {
		renderer.BalancesTable(os.Stdout, b)
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderBalances(b))
	return subcommands.ExitSuccess
}
