package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"time"
)

// this file contains functions to handle the export format.
// CSV exports use the same columns as imports, so an export can be loaded
// back into another ledger and deduplicates against itself.

// Filter selects rows for an export. Zero fields do not filter.
type Filter struct {
	Asset string
	Venue string
	From  time.Time // inclusive
	To    time.Time // inclusive
}

// Match reports whether r passes the filter.
func (f Filter) Match(r Row) bool {
	if f.Asset != "" && r.Asset != CanonicalAsset(f.Asset) {
		return false
	}
	if f.Venue != "" && r.Venue != CanonicalVenue(f.Venue) {
		return false
	}
	if !f.From.IsZero() && r.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && r.Timestamp.After(f.To) {
		return false
	}
	return true
}

// Apply returns the records of seq that pass the filter.
func (f Filter) Apply(seq iter.Seq2[Record, error]) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for rec, err := range seq {
			if err == nil && !f.Match(rec.Row) {
				continue
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

func priceText(r Row) string {
	if !r.Price.Valid {
		return ""
	}
	return Exact(r.Price.Decimal)
}

// ExportCSV writes the records as CSV with a header line and returns the
// number of records written. Decimals keep their exact text.
func ExportCSV(w io.Writer, rows iter.Seq2[Record, error]) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return 0, fmt.Errorf("could not write CSV header: %w", err)
	}
	n := 0
	for rec, err := range rows {
		if err != nil {
			return n, err
		}
		line := []string{
			rec.ID,
			rec.Timestamp.Format(TimestampFormat),
			string(rec.Type),
			rec.Asset,
			Exact(rec.Amount),
			rec.Currency,
			priceText(rec.Row),
			rec.Venue,
			rec.Note,
		}
		if err := cw.Write(line); err != nil {
			return n, fmt.Errorf("could not write CSV line: %w", err)
		}
		n++
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return n, fmt.Errorf("could not write CSV: %w", err)
	}
	return n, nil
}

// encodeRow marshals r with the export field order. Decimals are strings.
// In compact mode empty optional fields are omitted, otherwise they are null.
func encodeRow(r Row, compact bool) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.ID)
	w.Append("timestamp", r.Timestamp.Format(TimestampFormat))
	w.Append("type", r.Type)
	w.Append("asset", r.Asset)
	w.Append("amount", Exact(r.Amount))
	w.Append("currency", r.Currency)
	if compact {
		w.Optional("price", priceText(r))
		w.Append("venue", r.Venue)
		w.Optional("note", r.Note)
		return w.MarshalJSON()
	}
	w.Append("price", nullable(priceText(r)))
	w.Append("venue", r.Venue)
	w.Append("note", nullable(r.Note))
	return w.MarshalJSON()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ExportJSON writes the records as a JSON array and returns the number of
// records written.
func ExportJSON(w io.Writer, rows iter.Seq2[Record, error]) (int, error) {
	n := 0
	for rec, err := range rows {
		if err != nil {
			return n, err
		}
		data, err := encodeRow(rec.Row, false)
		if err != nil {
			return n, fmt.Errorf("could not encode row #%d: %w", rec.Seq, err)
		}
		sep := ",\n  "
		if n == 0 {
			sep = "[\n  "
		}
		if _, err := fmt.Fprintf(w, "%s%s", sep, data); err != nil {
			return n, err
		}
		n++
	}
	closing := "\n]\n"
	if n == 0 {
		closing = "[]\n"
	}
	_, err := io.WriteString(w, closing)
	return n, err
}

// ExportJSONL writes one compact JSON object per line and returns the
// number of records written.
func ExportJSONL(w io.Writer, rows iter.Seq2[Record, error]) (int, error) {
	n := 0
	for rec, err := range rows {
		if err != nil {
			return n, err
		}
		data, err := encodeRow(rec.Row, true)
		if err != nil {
			return n, fmt.Errorf("could not encode row #%d: %w", rec.Seq, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
