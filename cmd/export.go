package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/ledger"
	"github.com/google/subcommands"
)

// exporters maps the export formats to their writer.
var exporters = map[string]func(io.Writer, iter.Seq2[ledger.Record, error]) (int, error){
	"csv":   ledger.ExportCSV,
	"json":  ledger.ExportJSON,
	"jsonl": ledger.ExportJSONL,
}

type exportCmd struct {
	format string
	output string
	asset  string
	venue  string
	from   string
	to     string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger rows to CSV or JSON" }
func (*exportCmd) Usage() string {
	return `ldg export [-format csv|json|jsonl] [-o <file>] [-asset <asset>] [-venue <venue>] [-from <date>] [-to <date>]

  Writes the rows of the ledger in chronological order. Amounts and prices
  keep their exact decimal text. A CSV export can be imported into another
  ledger.

  By default the file is written in LEDGER_EXPORT_DIR and named after the
  current date. Use "-o -" to write to the standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "csv", "Export format: csv, json or jsonl")
	f.StringVar(&c.output, "o", "", "Output file, - for the standard output")
	f.StringVar(&c.asset, "asset", "", "Only rows of this asset")
	f.StringVar(&c.venue, "venue", "", "Only rows of this venue")
	f.StringVar(&c.from, "from", "", "Only rows at or after this date")
	f.StringVar(&c.to, "to", "", "Only rows at or before this date")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	export, ok := exporters[c.format]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown export format %q.\n", c.format)
		return subcommands.ExitUsageError
	}
	filter, err := parseFilter(c.asset, c.venue, c.from, c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, cfg, err := OpenStore(ctx)
	if err != nil {
		return exitOn(err)
	}
	defer s.Close()

	var w io.Writer = os.Stdout
	output := c.output
	if output != "-" {
		if output == "" {
			output = filepath.Join(cfg.ExportDir, "ledger-"+time.Now().Format("2006-01-02")+"."+c.format)
		}
		if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
			return exitOn(err)
		}
		file, err := os.Create(output)
		if err != nil {
			return exitOn(err)
		}
		defer file.Close()
		w = file
	}

	n, err := export(w, filter.Apply(scope(ctx, ledger.NewView(s), filter)))
	if err != nil {
		return exitOn(err)
	}
	if output != "-" {
		fmt.Fprintf(os.Stderr, "Exported %d row(s) to %s\n", n, output)
	}
	return subcommands.ExitSuccess
}
