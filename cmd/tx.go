package cmd

import (
	"context"
	"flag"
	"fmt"
	"iter"
	"os"
	"time"

	"github.com/etnz/ledger"
	"github.com/etnz/ledger/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	asset  string
	venue  string
	from   string
	to     string
	head   int
	tail   int
	recent int
	table  bool
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the rows of the ledger in chronological order" }
func (*txCmd) Usage() string {
	return `ldg tx [-asset <asset>] [-venue <venue>] [-from <date>] [-to <date>] [-head <n>] [-tail <n>] [-recent <n>] [-table]

  Lists rows from the ledger, oldest first, with options for filtering and
  limiting the output. Dates are "2006-01-02" or full timestamps; both bounds
  are inclusive.

  -recent lists the last n rows added to the ledger, newest first, whatever
  their timestamp. The filters apply to those n rows.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.asset, "asset", "", "Only rows of this asset")
	f.StringVar(&p.venue, "venue", "", "Only rows of this venue")
	f.StringVar(&p.from, "from", "", "Only rows at or after this date")
	f.StringVar(&p.to, "to", "", "Only rows at or before this date")
	f.IntVar(&p.head, "head", 0, "Show only the first N rows.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N rows.")
	f.IntVar(&p.recent, "recent", 0, "Show the last N rows added, newest first.")
	f.BoolVar(&p.table, "table", false, "Print a plain text table instead of markdown")
}

func (p *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (p.head > 0 && p.tail > 0) || (p.recent > 0 && (p.head > 0 || p.tail > 0)) {
		fmt.Fprintln(os.Stderr, "Error: -head, -tail and -recent flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	filter, err := parseFilter(p.asset, p.venue, p.from, p.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, _, err := OpenStore(ctx)
	if err != nil {
		return exitOn(err)
	}
	defer s.Close()

	var recs []ledger.Record
	if p.recent > 0 {
		recs, err = recentRows(ctx, s, p.recent, filter)
	} else {
		recs, err = ledger.Collect(filter.Apply(scope(ctx, ledger.NewView(s), filter)))
	}
	if err != nil {
		return exitOn(err)
	}
	if p.head > 0 && len(recs) > p.head {
		recs = recs[:p.head]
	}
	if p.tail > 0 && len(recs) > p.tail {
		recs = recs[len(recs)-p.tail:]
	}

	title := "Timeline"
	switch {
	case p.recent > 0:
		title = "Recently added"
	case filter.Asset != "" && filter.Venue != "":
		title = fmt.Sprintf("Timeline of %s on %s", ledger.CanonicalAsset(filter.Asset), ledger.CanonicalVenue(filter.Venue))
	case filter.Asset != "":
		title = "Timeline of " + ledger.CanonicalAsset(filter.Asset)
	case filter.Venue != "":
		title = "Timeline of " + ledger.CanonicalVenue(filter.Venue)
	}
	timeline := renderer.NewTimeline(title, recs)
	if p.table {
		renderer.TimelineTable(os.Stdout, timeline)
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderTimeline(timeline))
	return subcommands.ExitSuccess
}

// recentRows returns the n rows added last, newest first, that pass filter.
func recentRows(ctx context.Context, s *ledger.Store, n int, filter ledger.Filter) ([]ledger.Record, error) {
	recs, err := s.Recent(ctx, n)
	if err != nil {
		return nil, err
	}
	kept := recs[:0]
	for _, rec := range recs {
		if filter.Match(rec.Row) {
			kept = append(kept, rec)
		}
	}
	return kept, nil
}

// scope picks the narrowest view query for the filter.
func scope(ctx context.Context, v *ledger.View, filter ledger.Filter) iter.Seq2[ledger.Record, error] {
	switch {
	case filter.Asset != "":
		return v.RowsByAsset(ctx, filter.Asset)
	case filter.Venue != "":
		return v.RowsByVenue(ctx, filter.Venue)
	default:
		return v.Timeline(ctx)
	}
}

// parseFilter builds a filter from command line values. A date alone as the
// upper bound covers the whole day.
func parseFilter(asset, venue, from, to string) (ledger.Filter, error) {
	filter := ledger.Filter{Asset: asset, Venue: venue}
	var err error
	if from != "" {
		if filter.From, err = parseBound(from, false); err != nil {
			return ledger.Filter{}, err
		}
	}
	if to != "" {
		if filter.To, err = parseBound(to, true); err != nil {
			return ledger.Filter{}, err
		}
	}
	return filter, nil
}

func parseBound(s string, end bool) (time.Time, error) {
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		if end {
			return d.Add(24*time.Hour - time.Second), nil
		}
		return d, nil
	}
	return ledger.ParseTimestamp(s)
}
