package ledger

import (
	"context"
	"errors"
	"fmt"
)

// Rejection is a row the store refused.
type Rejection struct {
	Row Row
	Err *ValidationError
}

// ImportResult summarizes an import. Re-importing the same source yields
// zero Inserted and every row Skipped.
type ImportResult struct {
	Inserted   int         // rows accepted
	Skipped    int         // rows deduplicated
	LoadErrors []LoadError // source lines that did not parse
	Rejected   []Rejection // rows the store refused
	Warnings   []Warning   // diagnostics after the import
	Outcomes   []Outcome   // one per accepted or skipped row, in order
}

// Import appends rows to s one at a time. Duplicates are counted as
// skipped; rows refused by the store are collected. A storage failure stops
// the import and is returned with the partial result.
func Import(ctx context.Context, s *Store, rows []Row) (ImportResult, error) {
	var result ImportResult
	for _, row := range rows {
		out, err := s.Append(ctx, row)
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			result.Rejected = append(result.Rejected, Rejection{Row: row, Err: ve})
			continue
		case err != nil:
			return result, err
		}
		result.Outcomes = append(result.Outcomes, out)
		switch out.Status {
		case Accepted:
			result.Inserted++
		case Deduplicated:
			result.Skipped++
		}
	}
	return result, nil
}

// ImportFile loads the file at path, appends the rows that parse, and
// reports the diagnostics of the resulting ledger.
func ImportFile(ctx context.Context, s *Store, path string) (ImportResult, error) {
	loaded, err := Load(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("could not load %q: %w", path, err)
	}
	result, err := Import(ctx, s, loaded.Rows)
	result.LoadErrors = loaded.Errors
	if err != nil {
		return result, err
	}
	if result.Warnings, err = NewView(s).Diagnostics(ctx); err != nil {
		return result, err
	}
	return result, nil
}
