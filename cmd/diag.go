package cmd

import (
	"context"
	"flag"

	"github.com/etnz/ledger"
	"github.com/etnz/ledger/renderer"
	"github.com/google/subcommands"
)

type diagCmd struct {
	strict bool
}

func (*diagCmd) Name() string     { return "diag" }
func (*diagCmd) Synopsis() string { return "report negative balances" }
func (*diagCmd) Usage() string {
	return `ldg diag [-strict]

  Computes the balance of every asset on every venue and warns about the
  negative ones. Usually a missing deposit or transfer. Warnings never
  block anything; with -strict the command exits with a failure status when
  there is at least one.
`
}

func (c *diagCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Exit with a failure status when there are warnings")
}

func (c *diagCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, _, err := OpenStore(ctx)
	if err != nil {
		return exitOn(err)
	}
	defer s.Close()

	n, err := s.Count(ctx)
	if err != nil {
		return exitOn(err)
	}
	warnings, err := ledger.NewView(s).Diagnostics(ctx)
	if err != nil {
		return exitOn(err)
	}
	printMarkdown(renderer.RenderDiagnostics(renderer.NewDiagnostics(n, warnings)))
	if c.strict && len(warnings) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
