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

type importCmd struct {
	check bool
}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "append the rows of CSV or spreadsheet files to the ledger"
}
func (*importCmd) Usage() string {
	return `ldg import [-check] <file>...

  Reads candidate rows from .csv, .xlsx or .xlsm files and appends them to the
  ledger. Columns are id, timestamp, type, asset, amount, currency, price,
  venue and note; spreadsheets are read from the "raw" sheet when present.

  Rows already in the ledger are skipped, so importing the same file twice
  inserts nothing the second time. Lines that fail validation are reported
  and do not stop the import.

  -check only reads and validates the files, nothing is written.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.check, "check", false, "Validate the files without writing to the ledger")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	files := f.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one file to import is required.")
		return subcommands.ExitUsageError
	}

	if c.check {
		return c.checkFiles(files)
	}

	s, _, err := OpenStore(ctx)
	if err != nil {
		return exitOn(err)
	}
	defer s.Close()

	for _, file := range files {
		res, err := ledger.ImportFile(ctx, s, file)
		printMarkdown(renderer.RenderImport(renderer.NewImport(file, res)))
		if err != nil {
			return exitOn(err)
		}
	}
	return subcommands.ExitSuccess
}

// checkFiles loads the files and reports the lines that would be rejected.
func (c *importCmd) checkFiles(files []string) subcommands.ExitStatus {
	status := subcommands.ExitSuccess
	for _, file := range files {
		loaded, err := ledger.Load(file)
		if err != nil {
			return exitOn(err)
		}
		res := ledger.ImportResult{LoadErrors: loaded.Errors}
		printMarkdown(renderer.RenderImport(renderer.NewImport(file, res)))
		fmt.Fprintf(os.Stderr, "%s: %d valid row(s), %d invalid line(s)\n", file, len(loaded.Rows), len(loaded.Errors))
		if len(loaded.Errors) > 0 {
			status = subcommands.ExitFailure
		}
	}
	return status
}
