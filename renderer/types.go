package renderer

import (
	"strconv"

	"github.com/etnz/ledger"
)

// Row is a ledger row prepared for rendering. Decimals keep their exact text.
type Row struct {
	Seq       int64  `json:"seq"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Asset     string `json:"asset"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Price     string `json:"price,omitempty"`
	Venue     string `json:"venue"`
	Note      string `json:"note,omitempty"`
}

// NewRow converts a persisted record.
func NewRow(rec ledger.Record) Row {
	r := Row{
		Seq:       rec.Seq,
		ID:        rec.ID,
		Timestamp: rec.Timestamp.Format(ledger.TimestampFormat),
		Type:      string(rec.Type),
		Asset:     rec.Asset,
		Amount:    ledger.Exact(rec.Amount),
		Currency:  rec.Currency,
		Venue:     rec.Venue,
		Note:      rec.Note,
	}
	if rec.Price.Valid {
		r.Price = ledger.Exact(rec.Price.Decimal)
	}
	return r
}

// Timeline is a titled list of rows.
type Timeline struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// NewTimeline converts records in the order given.
func NewTimeline(title string, recs []ledger.Record) *Timeline {
	t := &Timeline{Title: title}
	for _, rec := range recs {
		t.Rows = append(t.Rows, NewRow(rec))
	}
	return t
}

// BalanceLine is one line of a balance report.
type BalanceLine struct {
	Venue    string `json:"venue,omitempty"`
	Asset    string `json:"asset"`
	Amount   string `json:"amount"`
	Negative bool   `json:"negative,omitempty"`
}

// Balances is a balance report, per asset or per venue and asset.
type Balances struct {
	Title   string        `json:"title"`
	ByVenue bool          `json:"byVenue"`
	Lines   []BalanceLine `json:"lines"`
}

// NewBalances converts balances. The venue column is shown when byVenue is
// set.
func NewBalances(title string, byVenue bool, bs []ledger.Balance) *Balances {
	b := &Balances{Title: title, ByVenue: byVenue}
	for _, bal := range bs {
		b.Lines = append(b.Lines, BalanceLine{
			Venue:    bal.Venue,
			Asset:    bal.Asset,
			Amount:   ledger.Exact(bal.Amount),
			Negative: bal.Amount.IsNegative(),
		})
	}
	return b
}

// Diagnostics lists the warnings raised by a ledger.
type Diagnostics struct {
	Rows     int      `json:"rows"`
	Warnings []string `json:"warnings"`
}

// NewDiagnostics converts warnings computed over a ledger of n rows.
func NewDiagnostics(n int, ws []ledger.Warning) *Diagnostics {
	return &Diagnostics{Rows: n, Warnings: warningTexts(ws)}
}

func warningTexts(ws []ledger.Warning) []string {
	var texts []string
	for _, w := range ws {
		texts = append(texts, w.String())
	}
	return texts
}

// Outcome is the result of one write.
type Outcome struct {
	Status string `json:"status"`
	Seq    int64  `json:"seq"`
	ID     string `json:"id"`
	Row    string `json:"row"`
}

// NewOutcome describes the outcome o of writing r.
func NewOutcome(o ledger.Outcome, r ledger.Row) Outcome {
	return Outcome{Status: o.Status.String(), Seq: o.Seq, ID: o.ID, Row: r.String()}
}

// Issue is a source line or a row that did not make it into the ledger.
type Issue struct {
	Where   string `json:"where"`
	Message string `json:"message"`
}

// Import is the report of an import.
type Import struct {
	Source   string   `json:"source"`
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Issues   []Issue  `json:"issues"`
	Warnings []string `json:"warnings"`
}

// NewImport converts the result of importing source.
func NewImport(source string, res ledger.ImportResult) *Import {
	imp := &Import{
		Source:   source,
		Inserted: res.Inserted,
		Skipped:  res.Skipped,
		Warnings: warningTexts(res.Warnings),
	}
	for _, e := range res.LoadErrors {
		imp.Issues = append(imp.Issues, Issue{Where: "line " + strconv.Itoa(e.Line), Message: e.Err.Error()})
	}
	for _, r := range res.Rejected {
		imp.Issues = append(imp.Issues, Issue{Where: r.Row.String(), Message: r.Err.Error()})
	}
	return imp
}
