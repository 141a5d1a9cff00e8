package ledger

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func TestScenarioA1(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	v := NewView(s)

	out := mustAppend(t, s, rowA())
	if out.Status != Accepted || out.ID != "a1" || out.Seq != 1 {
		t.Errorf("Append(A) = %+v, want accepted a1 #1", out)
	}

	out = mustAppend(t, s, rowA())
	if out.Status != Deduplicated || out.Seq != 1 {
		t.Errorf("Append(A) again = %+v, want deduplicated #1", out)
	}
	if n, _ := s.Count(ctx); n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}

	outs, err := s.Reverse(ctx, "a1", "typo fix")
	if err != nil {
		t.Fatalf("Reverse() error = %v", err)
	}
	if len(outs) != 1 || outs[0].Status != Accepted {
		t.Fatalf("Reverse() = %+v, want one accepted outcome", outs)
	}
	if n, _ := s.Count(ctx); n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
	balance, err := v.Balance(ctx, "BTC", "kraken")
	if err != nil {
		t.Fatalf("Balance() error = %v", err)
	}
	if !balance.IsZero() {
		t.Errorf("Balance(BTC, kraken) = %s, want 0", balance)
	}
}

func TestAppendIdempotent(t *testing.T) {
	s := newStore(t)
	first := mustAppend(t, s, rowA())

	// same event, different narrative and spelling.
	again := rowA()
	again.ID = "other"
	again.Venue = "Kraken"
	again.Asset = "btc"
	again.Note = "imported from the bank statement"
	again.Price = decimal.NewNullDecimal(D("42000"))
	second := mustAppend(t, s, again)

	if second.Status != Deduplicated {
		t.Errorf("Append() status = %v, want deduplicated", second.Status)
	}
	if second.Seq != first.Seq || second.ID != first.ID || second.FP != first.FP {
		t.Errorf("Append() = %+v, want the existing row %+v", second, first)
	}
	recs := all(t, s)
	if len(recs) != 1 {
		t.Fatalf("AllRows() has %d rows, want 1", len(recs))
	}
	if recs[0].Note != "" || recs[0].Price.Valid {
		t.Errorf("stored row was changed by a duplicate: %+v", recs[0])
	}
}

func TestAppendStoresCanonicalRow(t *testing.T) {
	s := newStore(t)
	r := Row{
		Timestamp: TS("2026-01-15T10:00:00"),
		Type:      "fee",
		Asset:     "eth",
		Amount:    D("-0.00210"),
		Currency:  "eur",
		Price:     decimal.NewNullDecimal(D("3100.50")),
		Venue:     " Binance",
		Note:      " gas ",
	}
	out := mustAppend(t, s, r)
	got, err := s.Row(context.Background(), out.Seq)
	if err != nil {
		t.Fatalf("Row() error = %v", err)
	}
	want := Record{
		Row: Row{
			ID:        out.ID,
			Timestamp: TS("2026-01-15T10:00:00"),
			Type:      Fee,
			Asset:     "ETH",
			Amount:    D("-0.00210"),
			Currency:  "EUR",
			Price:     decimal.NewNullDecimal(D("3100.50")),
			Venue:     "binance",
			Note:      "gas",
		},
		Seq:        out.Seq,
		FP:         out.FP,
		ImportedAt: testNow,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Row() mismatch (-want +got):\n%s", diff)
	}
	if Exact(got.Amount) != "-0.00210" || Exact(got.Price.Decimal) != "3100.50" {
		t.Errorf("decimals lost their exact text: %s %s", Exact(got.Amount), Exact(got.Price.Decimal))
	}
	if got.FP != r.Fingerprint() {
		t.Errorf("stored fingerprint = %s, want %s", got.FP, r.Fingerprint())
	}
}

func TestAppendRejectsInvalidRows(t *testing.T) {
	s := newStore(t)
	tests := map[string]func(r *Row){
		"unknown type":     func(r *Row) { r.Type = "DIVIDEND" },
		"missing asset":    func(r *Row) { r.Asset = " " },
		"missing venue":    func(r *Row) { r.Venue = "" },
		"missing currency": func(r *Row) { r.Currency = "" },
		"no timestamp":     func(r *Row) { r.Timestamp = time.Time{} },
	}
	for name, change := range tests {
		t.Run(name, func(t *testing.T) {
			r := rowA()
			change(&r)
			_, err := s.Append(context.Background(), r)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("Append() error = %v, want a *ValidationError", err)
			}
		})
	}
	if n, _ := s.Count(context.Background()); n != 0 {
		t.Errorf("Count() = %d after rejected appends, want 0", n)
	}
}

func TestImmutability(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	mustAppend(t, s, rowA())
	before := all(t, s)

	b := rowA()
	b.ID = "b1"
	b.Timestamp = TS("2023-06-01T00:00:00")
	b.Amount = D("2")
	mustAppend(t, s, b)

	after := all(t, s)
	if len(after) != 2 {
		t.Fatalf("AllRows() has %d rows, want 2", len(after))
	}
	// b is older, so it comes first; A is untouched.
	if diff := cmp.Diff(before[0], after[1]); diff != "" {
		t.Errorf("stored row changed (-before +after):\n%s", diff)
	}

	// even direct SQL cannot change or remove a row.
	for _, stmt := range []string{
		`UPDATE ledger SET amount = '5' WHERE id = 'a1'`,
		`DELETE FROM ledger WHERE id = 'a1'`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err == nil {
			t.Errorf("%s succeeded, want it aborted", stmt)
		}
	}
	if diff := cmp.Diff(after, all(t, s)); diff != "" {
		t.Errorf("rows changed by direct SQL (-want +got):\n%s", diff)
	}
}

func TestReverseNotFound(t *testing.T) {
	s := newStore(t)
	mustAppend(t, s, rowA())

	_, err := s.Reverse(context.Background(), "nope", "")
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Target != "nope" {
		t.Errorf("Reverse() error = %v, want a *NotFoundError for nope", err)
	}
	_, err = s.ReverseSeq(context.Background(), 42, "")
	if !errors.As(err, &nf) {
		t.Errorf("ReverseSeq() error = %v, want a *NotFoundError", err)
	}
	if n, _ := s.Count(context.Background()); n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestReverseRow(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	a := rowA()
	a.Price = decimal.NewNullDecimal(D("42000.00"))
	mustAppend(t, s, a)

	outs, err := s.Reverse(ctx, "a1", "typo fix")
	if err != nil {
		t.Fatalf("Reverse() error = %v", err)
	}
	rev, err := s.Row(ctx, outs[0].Seq)
	if err != nil {
		t.Fatalf("Row() error = %v", err)
	}
	want := Row{
		ID:        outs[0].ID,
		Timestamp: a.Timestamp,
		Type:      Reversal,
		Asset:     "BTC",
		Amount:    D("-1"),
		Currency:  "USD",
		Price:     decimal.NewNullDecimal(D("42000.00")),
		Venue:     "kraken",
		Note:      "reversal of a1: typo fix",
	}
	if diff := cmp.Diff(want, rev.Row); diff != "" {
		t.Errorf("reversal row mismatch (-want +got):\n%s", diff)
	}
	if rev.ID == "a1" {
		t.Error("reversal row reuses the id of the corrected row")
	}

	// a row is reversed once.
	_, err = s.Reverse(ctx, "a1", "again")
	var re *ReversedError
	if !errors.As(err, &re) || re.Target != "a1" || re.Seq != outs[0].Seq {
		t.Errorf("Reverse() again error = %v, want a *ReversedError pointing at #%d", err, outs[0].Seq)
	}
	if n, _ := s.Count(ctx); n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func TestReverseRowsAlike(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	// two identical buys a month apart, corrected within the same clock second.
	a, b := rowA(), rowA()
	b.ID, b.Timestamp = "b1", TS("2024-02-01T00:00:00")
	mustAppend(t, s, a)
	mustAppend(t, s, b)

	for _, id := range []string{"a1", "b1"} {
		outs, err := s.Reverse(ctx, id, "")
		if err != nil {
			t.Fatalf("Reverse(%s) error = %v", id, err)
		}
		if len(outs) != 1 || outs[0].Status != Accepted {
			t.Fatalf("Reverse(%s) = %+v, want one accepted outcome", id, outs)
		}
		rev, err := s.Row(ctx, outs[0].Seq)
		if err != nil {
			t.Fatal(err)
		}
		if want := "reversal of " + id; rev.Note != want {
			t.Errorf("Reverse(%s) note = %q, want %q", id, rev.Note, want)
		}
	}
	balance, err := NewView(s).Balance(ctx, "BTC", "kraken")
	if err != nil {
		t.Fatal(err)
	}
	if !balance.IsZero() {
		t.Errorf("Balance(BTC, kraken) = %s, want 0", balance)
	}
	if n, _ := s.Count(ctx); n != 4 {
		t.Errorf("Count() = %d, want 4", n)
	}
}

func TestReverseLegThenPair(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	a, b := rowA(), rowA()
	b.Asset, b.Currency, b.Amount = "USD", "BTC", D("-42000")
	outs, err := s.AppendPair(ctx, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ReverseSeq(ctx, outs[0].Seq, ""); err != nil {
		t.Fatal(err)
	}
	// the pair is not half reversed: nothing is written for the USD leg either.
	_, err = s.Reverse(ctx, "a1", "")
	var re *ReversedError
	if !errors.As(err, &re) {
		t.Errorf("Reverse() error = %v, want a *ReversedError", err)
	}
	if n, _ := s.Count(ctx); n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
}

func TestReversePair(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	asset, currency, err := Trade{
		Timestamp:      TS("2026-01-15T10:00:00"),
		Type:           Buy,
		Asset:          "BTC",
		AssetAmount:    D("0.5"),
		Currency:       "EUR",
		CurrencyAmount: D("20000"),
		Venue:          "kraken",
	}.Legs()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AppendPair(ctx, asset, currency); err != nil {
		t.Fatalf("AppendPair() error = %v", err)
	}

	outs, err := s.Reverse(ctx, asset.ID, "")
	if err != nil {
		t.Fatalf("Reverse() error = %v", err)
	}
	if len(outs) != 2 {
		t.Fatalf("Reverse() of a pair = %d outcomes, want 2", len(outs))
	}
	if outs[0].ID != outs[1].ID || outs[0].ID == asset.ID {
		t.Errorf("reversal legs ids = %q %q, want a new shared id", outs[0].ID, outs[1].ID)
	}
	v := NewView(s)
	for _, a := range []string{"BTC", "EUR"} {
		b, err := v.Balance(ctx, a, "kraken")
		if err != nil {
			t.Fatal(err)
		}
		if !b.IsZero() {
			t.Errorf("Balance(%s) = %s, want 0", a, b)
		}
	}
}

func TestReverseSeqSingleLeg(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	asset, currency, err := Trade{
		Timestamp:      TS("2026-01-15T10:00:00"),
		Type:           Sell,
		Asset:          "ETH",
		AssetAmount:    D("2"),
		Currency:       "EUR",
		CurrencyAmount: D("6000"),
		Venue:          "kraken",
	}.Legs()
	if err != nil {
		t.Fatal(err)
	}
	outs, err := s.AppendPair(ctx, asset, currency)
	if err != nil {
		t.Fatal(err)
	}

	rev, err := s.ReverseSeq(ctx, outs[1].Seq, "wrong total")
	if err != nil {
		t.Fatalf("ReverseSeq() error = %v", err)
	}
	rec, err := s.Row(ctx, rev.Seq)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Asset != "EUR" || Exact(rec.Amount) != "-6000" {
		t.Errorf("ReverseSeq() appended %v, want -6000 EUR", rec.Row)
	}
	b, _ := NewView(s).Balance(ctx, "ETH", "")
	if !b.Equal(D("-2")) {
		t.Errorf("Balance(ETH) = %s, want -2", b)
	}
}

func TestAppendPair(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	a, b := rowA(), rowA()
	a.ID, b.ID = "", ""
	b.Asset, b.Currency, b.Amount = "USD", "BTC", D("-42000")
	outs, err := s.AppendPair(ctx, a, b)
	if err != nil {
		t.Fatalf("AppendPair() error = %v", err)
	}
	if outs[0].ID == "" || outs[0].ID != outs[1].ID {
		t.Errorf("AppendPair() ids = %q %q, want a shared id", outs[0].ID, outs[1].ID)
	}
	recs, err := s.RowsByID(ctx, outs[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Errorf("RowsByID() = %d rows, want 2", len(recs))
	}

	// a third row cannot join the pair.
	c := rowA()
	c.ID = outs[0].ID
	c.Asset = "ETH"
	_, err = s.Append(ctx, c)
	var ve *ValidationError
	if !errors.As(err, &ve) || !ve.Has("id") {
		t.Errorf("Append() third leg error = %v, want an id violation", err)
	}
}

func TestAppendSharedID(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	mustAppend(t, s, rowA())

	tests := []struct {
		name    string
		change  func(r *Row)
		wantErr bool
	}{
		{"other time", func(r *Row) { r.Timestamp = r.Timestamp.Add(time.Hour) }, true},
		{"other type", func(r *Row) { r.Type = Fee }, true},
		{"other leg", func(r *Row) { r.Asset, r.Currency, r.Amount = "USD", "BTC", D("-42000") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rowA()
			r.Asset = "ETH"
			tt.change(&r)
			_, err := s.Append(ctx, r)
			var ve *ValidationError
			if tt.wantErr != errors.As(err, &ve) {
				t.Fatalf("Append() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !ve.Has("id") {
				t.Errorf("Append() error = %v, want an id violation", err)
			}
		})
	}
}

func TestAppendPairIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	a, b := rowA(), rowA()
	a.ID, b.ID = "p1", "p2"
	b.Asset = "USD"
	_, err := s.AppendPair(ctx, a, b)
	var ve *ValidationError
	if !errors.As(err, &ve) || !ve.Has("id") {
		t.Errorf("AppendPair() error = %v, want an id violation", err)
	}
	if n, _ := s.Count(ctx); n != 0 {
		t.Errorf("Count() = %d, want nothing written", n)
	}

	// the second leg fails inside the transaction: the first is rolled back.
	mustAppend(t, s, Row{ID: "x", Timestamp: rowA().Timestamp, Type: Buy, Asset: "EUR", Amount: D("-1"), Currency: "BTC", Venue: "kraken"})
	a, b = rowA(), rowA()
	a.ID, b.ID = "x", "x"
	b.Asset = "USD"
	if _, err := s.AppendPair(ctx, a, b); !errors.As(err, &ve) {
		t.Errorf("AppendPair() error = %v, want the id already used", err)
	}
	recs, err := s.RowsByID(ctx, "x")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Errorf("RowsByID(x) = %d rows, want the first leg rolled back", len(recs))
	}
}

func TestAllRowsOrder(t *testing.T) {
	s := newStore(t)
	mk := func(id, ts, asset string) Row {
		return Row{ID: id, Timestamp: TS(ts), Type: Transfer, Asset: asset, Amount: D("1"), Currency: "EUR", Venue: "bank"}
	}
	mustAppend(t, s, mk("c", "2026-01-03T00:00:00", "X"))
	mustAppend(t, s, mk("b2", "2026-01-02T00:00:00", "Z"))
	mustAppend(t, s, mk("b1", "2026-01-02T00:00:00", "Y"))
	mustAppend(t, s, mk("a", "2026-01-01T00:00:00", "X"))

	var got []string
	for _, rec := range all(t, s) {
		got = append(got, rec.ID)
	}
	// same timestamp: insertion order.
	want := []string{"a", "b2", "b1", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AllRows() order mismatch (-want +got):\n%s", diff)
	}

	recs, err := Collect(s.RowsByAsset(context.Background(), "x"))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || recs[0].ID != "a" || recs[1].ID != "c" {
		t.Errorf("RowsByAsset(x) = %v", recs)
	}
	recs, err = Collect(s.RowsByVenue(context.Background(), "BANK"))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 4 {
		t.Errorf("RowsByVenue(BANK) = %d rows, want 4", len(recs))
	}
}

func TestScanIsRestartable(t *testing.T) {
	s := newStore(t)
	mustAppend(t, s, rowA())
	rows := s.AllRows(context.Background())

	first, err := Collect(rows)
	if err != nil {
		t.Fatal(err)
	}
	b := rowA()
	b.Amount = D("3")
	mustAppend(t, s, b)
	second, err := Collect(rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 || len(second) != 2 {
		t.Errorf("ranges saw %d then %d rows, want 1 then 2", len(first), len(second))
	}
}

func TestAppendWhileScanning(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	for i := 1; i <= 3; i++ {
		r := rowA()
		r.ID = ""
		r.Amount = decimal.NewFromInt(int64(i))
		mustAppend(t, s, r)
	}
	seen := 0
	for rec, err := range s.AllRows(ctx) {
		if err != nil {
			t.Fatal(err)
		}
		seen++
		r := rec.Row
		r.ID = ""
		r.Type = Transfer
		if _, err := s.Append(ctx, r); err != nil {
			t.Fatalf("Append() during a scan error = %v", err)
		}
	}
	if seen < 3 {
		t.Errorf("scan saw %d rows, want at least 3", seen)
	}
}

func TestRecent(t *testing.T) {
	s := newStore(t)
	for _, ts := range []string{"2026-01-03T00:00:00", "2026-01-01T00:00:00", "2026-01-02T00:00:00"} {
		r := rowA()
		r.ID = ""
		r.Timestamp = TS(ts)
		mustAppend(t, s, r)
	}
	recs, err := s.Recent(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	got := []int64{recs[0].Seq, recs[1].Seq}
	if diff := cmp.Diff([]int64{3, 2}, got); diff != "" {
		t.Errorf("Recent() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	v := NewView(s)

	if recs := all(t, s); len(recs) != 0 {
		t.Errorf("AllRows() = %v, want nothing", recs)
	}
	d, err := v.Diagnose(ctx, "anything", "anywhere")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Balance.IsZero() || len(d.Warnings) != 0 {
		t.Errorf("Diagnose() = %+v, want 0 and no warning", d)
	}
	ws, err := v.Diagnostics(ctx)
	if err != nil || len(ws) != 0 {
		t.Errorf("Diagnostics() = %v, %v", ws, err)
	}
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")
	s, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	mustAppend(t, s, rowA())
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() again error = %v", err)
	}
	defer s.Close()
	out := mustAppend(t, s, rowA())
	if out.Status != Deduplicated {
		t.Errorf("Append() after reopening = %v, want deduplicated", out.Status)
	}
}

func TestStoresAreIndependent(t *testing.T) {
	a, b := newStore(t), newStore(t)
	mustAppend(t, a, rowA())
	if out := mustAppend(t, b, rowA()); out.Status != Accepted {
		t.Errorf("Append() in another store = %v, want accepted", out.Status)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	mustAppend(t, s, rowA())
	if n, err := s.Count(ctx); err != nil || n != 1 {
		t.Errorf("Count() = %d, %v, want 1", n, err)
	}
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() twice error = %v", err)
	}

	checks := map[string]error{}
	_, checks["Append"] = s.Append(ctx, rowA())
	_, checks["Reverse"] = s.Reverse(ctx, "a1", "")
	_, checks["Count"] = s.Count(ctx)
	_, checks["AllRows"] = Collect(s.AllRows(ctx))
	for op, err := range checks {
		var se *StorageError
		if !errors.As(err, &se) || !errors.Is(err, ErrClosed) {
			t.Errorf("%s on a closed store error = %v, want a *StorageError wrapping ErrClosed", op, err)
		}
	}
}

func TestStorageError(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	// a broken table surfaces as a storage failure, not as a panic.
	if _, err := s.db.ExecContext(ctx, `ALTER TABLE ledger RENAME TO broken`); err != nil {
		t.Fatal(err)
	}
	_, err := s.Append(ctx, rowA())
	var se *StorageError
	if !errors.As(err, &se) {
		t.Errorf("Append() error = %v, want a *StorageError", err)
	}
	_, err = Collect(s.AllRows(ctx))
	if !errors.As(err, &se) {
		t.Errorf("AllRows() error = %v, want a *StorageError", err)
	}
}

func TestFailureLogLevels(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	s := newStore(t, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	mustAppend(t, s, rowA())

	// a refused row is the caller's concern.
	r := rowA()
	r.Asset, r.Timestamp = "ETH", r.Timestamp.Add(time.Hour)
	if _, err := s.Append(ctx, r); err == nil {
		t.Fatal("Append() error = nil, want an id violation")
	}
	if strings.Contains(buf.String(), `"level":"error"`) {
		t.Errorf("a refused row was logged as an error:\n%s", buf.String())
	}

	if _, err := s.db.ExecContext(ctx, `ALTER TABLE ledger RENAME TO broken`); err != nil {
		t.Fatal(err)
	}
	r.ID = ""
	if _, err := s.Append(ctx, r); err == nil {
		t.Fatal("Append() error = nil, want a storage failure")
	}
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Errorf("a storage failure was not logged as an error:\n%s", buf.String())
	}
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	var se *StorageError
	if !errors.As(err, &se) {
		t.Errorf("Open(\"\") error = %v, want a *StorageError", err)
	}
}

func TestOutcomesCompare(t *testing.T) {
	s := newStore(t)
	out := mustAppend(t, s, rowA())
	want := Outcome{Status: Accepted, Seq: 1, ID: "a1"}
	if diff := cmp.Diff(want, out, cmpopts.IgnoreFields(Outcome{}, "FP")); diff != "" {
		t.Errorf("Append() mismatch (-want +got):\n%s", diff)
	}
}
