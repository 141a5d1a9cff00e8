package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ledger"
	"github.com/etnz/ledger/renderer"
	"github.com/google/subcommands"
)

type reverseCmd struct {
	seq  int64
	note string
}

func (*reverseCmd) Name() string     { return "reverse" }
func (*reverseCmd) Synopsis() string { return "correct a row by appending its reversal" }
func (*reverseCmd) Usage() string {
	return `ldg reverse [-note <note>] <id>
ldg reverse -seq <n> [-note <note>]

  Appends REVERSAL rows negating the rows with the given id. Both legs of a
  trade are reversed together. The corrected rows stay in the ledger.

  -seq reverses a single row, addressed by its number as shown by "ldg tx".
`
}

func (c *reverseCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.seq, "seq", 0, "Number of the single row to reverse")
	f.StringVar(&c.note, "note", "", "Reason for the correction")
}

func (c *reverseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.seq == 0) == (f.NArg() == 0) || f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: give exactly one row id, or -seq.")
		return subcommands.ExitUsageError
	}

	s, _, err := OpenStore(ctx)
	if err != nil {
		return exitOn(err)
	}
	defer s.Close()

	var outs []ledger.Outcome
	if c.seq != 0 {
		out, err := s.ReverseSeq(ctx, c.seq, c.note)
		if err != nil {
			return reverseFailed(err)
		}
		outs = append(outs, out)
	} else {
		if outs, err = s.Reverse(ctx, f.Arg(0), c.note); err != nil {
			return reverseFailed(err)
		}
	}

	var rendered []renderer.Outcome
	for _, out := range outs {
		rec, err := s.Row(ctx, out.Seq)
		if err != nil {
			return exitOn(err)
		}
		rendered = append(rendered, renderer.NewOutcome(out, rec.Row))
	}
	printMarkdown(renderer.RenderOutcomes(rendered))
	return subcommands.ExitSuccess
}

func reverseFailed(err error) subcommands.ExitStatus {
	var nf *ledger.NotFoundError
	if errors.As(err, &nf) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return exitOn(err)
}
