package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// Status is the outcome of an append.
type Status int

const (
	// Accepted means the row was new and has been persisted.
	Accepted Status = iota
	// Deduplicated means a row with the same fingerprint was already
	// persisted; nothing was written. It is a normal result, not an error.
	Deduplicated
)

func (s Status) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Deduplicated:
		return "deduplicated"
	default:
		return "unknown"
	}
}

// Outcome describes the result of appending one row. For a Deduplicated
// outcome, Seq and ID designate the row already in the store.
type Outcome struct {
	Status Status
	Seq    int64
	ID     string
	FP     string
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to record when rows are imported.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger of the store.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store is the append-only ledger. It is the only writer of the persisted
// rows and offers no way to update or delete one.
//
// A Store owns its database handle; several stores on different files can
// live side by side.
type Store struct {
	db     *sql.DB
	path   string
	now    func() time.Time
	log    zerolog.Logger
	closed bool
}

// Open opens, or creates, the ledger stored in the SQLite file at path and
// brings its schema up to date.
//
// The special path ":memory:" opens a private in-memory ledger bound to a
// single connection: do not append while ranging over one of its scans.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, &StorageError{Op: "open", Err: errors.New("empty database path")}
	}
	s := &Store{
		path: path,
		now:  time.Now,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	if path == ":memory:" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: fmt.Errorf("could not open %q: %w", path, err)}
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &StorageError{Op: "open", Err: fmt.Errorf("could not open %q: %w", path, err)}
	}
	if err := migrateSchema(db); err != nil {
		db.Close()
		return nil, &StorageError{Op: "migrate", Err: err}
	}
	s.db = db
	s.log.Debug().Str("path", path).Msg("ledger opened")
	return s, nil
}

// Close releases the database handle. Any later operation fails with
// ErrClosed.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return &StorageError{Op: "close", Err: err}
	}
	s.log.Debug().Str("path", s.path).Msg("ledger closed")
	return nil
}

func (s *Store) ready(op string) error {
	if s.closed {
		return &StorageError{Op: op, Err: ErrClosed}
	}
	return nil
}

// withTx runs fn in a single transaction. The transaction is committed when
// fn returns nil and rolled back on every other exit path, panics included.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) (err error) {
	if err := s.ready(op); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(op, err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
		if err != nil {
			tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = storageErr(op, cerr)
		}
	}()
	if err := fn(tx); err != nil {
		return storageErr(op, err)
	}
	return nil
}

// Append persists r unless a row with the same fingerprint already exists.
//
// r is canonicalized first. A row missing a required field or with an
// unknown type is rejected with a *ValidationError before anything is
// written. A duplicate fingerprint yields a Deduplicated outcome and no
// error. Persistence failures are returned as *StorageError.
func (s *Store) Append(ctx context.Context, r Row) (Outcome, error) {
	r = r.Canonical()
	if vs := r.check(); len(vs) > 0 {
		return Outcome{}, &ValidationError{Violations: vs}
	}
	var out Outcome
	err := s.withTx(ctx, "append", func(tx *sql.Tx) error {
		var err error
		out, err = s.appendTx(ctx, tx, r)
		return err
	})
	if err != nil {
		s.logFailure(err).Str("row", r.String()).Msg("append failed")
		return Outcome{}, err
	}
	return out, nil
}

// logFailure logs storage failures as errors and refusals at debug level.
func (s *Store) logFailure(err error) *zerolog.Event {
	var se *StorageError
	if errors.As(err, &se) {
		return s.log.Error().Err(err)
	}
	return s.log.Debug().Err(err)
}

// AppendPair persists the two legs of a double-entry event in a single
// transaction. The legs must share their ID; when both are empty a fresh one
// is assigned.
func (s *Store) AppendPair(ctx context.Context, a, b Row) ([2]Outcome, error) {
	if strings.TrimSpace(a.ID) == "" && strings.TrimSpace(b.ID) == "" {
		a.ID = uuid.NewString()
		b.ID = a.ID
	}
	a, b = a.Canonical(), b.Canonical()
	vs := append(a.check(), b.check()...)
	if a.ID != b.ID {
		vs = append(vs, Violation{Field: "id", Message: fmt.Sprintf("legs of a pair must share their id, got %q and %q", a.ID, b.ID)})
	}
	if len(vs) > 0 {
		return [2]Outcome{}, &ValidationError{Violations: vs}
	}

	var outs [2]Outcome
	err := s.withTx(ctx, "append pair", func(tx *sql.Tx) error {
		for i, r := range []Row{a, b} {
			out, err := s.appendTx(ctx, tx, r)
			if err != nil {
				return err
			}
			outs[i] = out
		}
		return nil
	})
	if err != nil {
		s.logFailure(err).Str("id", a.ID).Msg("append pair failed")
		return [2]Outcome{}, err
	}
	return outs, nil
}

// appendTx is the check-then-insert step of every write. r must be canonical.
func (s *Store) appendTx(ctx context.Context, tx *sql.Tx, r Row) (Outcome, error) {
	fp := r.Fingerprint()

	var (
		seq int64
		id  string
	)
	err := tx.QueryRowContext(ctx, `SELECT seq, id FROM ledger WHERE row_fp = ?`, fp).Scan(&seq, &id)
	switch {
	case err == nil:
		s.log.Debug().Str("fp", fp).Int64("seq", seq).Msg("row deduplicated")
		return Outcome{Status: Deduplicated, Seq: seq, ID: id, FP: fp}, nil
	case !errors.Is(err, sql.ErrNoRows):
		return Outcome{}, err
	}

	// an id is shared by at most the two legs of a double-entry pair, and
	// both legs record the same event: same timestamp, same type.
	sharing, err := Collect(queryRecords(ctx, tx, selectRecords+` WHERE id = ?`, r.ID))
	if err != nil {
		return Outcome{}, err
	}
	switch {
	case len(sharing) >= 2:
		return Outcome{}, &ValidationError{Violations: []Violation{{
			Field:   "id",
			Message: fmt.Sprintf("id %q is already used by both legs of a double-entry pair", r.ID),
		}}}
	case len(sharing) == 1 && (!sharing[0].Timestamp.Equal(r.Timestamp) || sharing[0].Type != r.Type):
		return Outcome{}, &ValidationError{Violations: []Violation{{
			Field:   "id",
			Message: fmt.Sprintf("id %q is already used by row #%d, which is not the other leg of the same event", r.ID, sharing[0].Seq),
		}}}
	}

	var price, note any
	if r.Price.Valid {
		price = Exact(r.Price.Decimal)
	}
	if r.Note != "" {
		note = r.Note
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO ledger (id, timestamp, type, asset, amount, currency, price, venue, note, row_fp, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.Timestamp.Format(TimestampFormat),
		string(r.Type),
		r.Asset,
		Exact(r.Amount),
		r.Currency,
		price,
		r.Venue,
		note,
		fp,
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return Outcome{}, err
	}
	seq, err = res.LastInsertId()
	if err != nil {
		return Outcome{}, err
	}
	s.log.Debug().Str("fp", fp).Int64("seq", seq).Str("row", r.String()).Msg("row accepted")
	return Outcome{Status: Accepted, Seq: seq, ID: r.ID, FP: fp}, nil
}

// reversalNote composes the note of a reversal row so that it references
// the corrected row.
func reversalNote(target, note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return "reversal of " + target
	}
	return "reversal of " + target + ": " + note
}

// Reverse corrects the rows identified by id by appending REVERSAL rows that
// negate them. A double-entry pair is reversed as a whole; the reversal legs
// share a new id, returned in the outcomes. The original rows are untouched.
//
// A reversal carries the timestamp of the row it corrects, so its
// fingerprint is tied to that row. It fails with a *NotFoundError when no
// row carries id, and with a *ReversedError when the reversal is already in
// the ledger; every outcome it returns is Accepted.
func (s *Store) Reverse(ctx context.Context, id, note string) ([]Outcome, error) {
	id = strings.TrimSpace(id)
	var outs []Outcome
	err := s.withTx(ctx, "reverse", func(tx *sql.Tx) error {
		targets, err := Collect(queryRecords(ctx, tx, selectRecords+` WHERE id = ? ORDER BY seq`, id))
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			return &NotFoundError{Target: id}
		}
		outs, err = s.reverseTx(ctx, tx, targets, reversalNote(id, note))
		return err
	})
	if err != nil {
		return nil, err
	}
	return outs, nil
}

// ReverseSeq corrects exactly one persisted row, addressed by its sequence
// number, even when it is one leg of a pair.
func (s *Store) ReverseSeq(ctx context.Context, seq int64, note string) (Outcome, error) {
	var outs []Outcome
	err := s.withTx(ctx, "reverse", func(tx *sql.Tx) error {
		targets, err := Collect(queryRecords(ctx, tx, selectRecords+` WHERE seq = ?`, seq))
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			return &NotFoundError{Target: fmt.Sprintf("#%d", seq)}
		}
		outs, err = s.reverseTx(ctx, tx, targets, reversalNote(targets[0].ID, note))
		return err
	})
	if err != nil {
		return Outcome{}, err
	}
	return outs[0], nil
}

func (s *Store) reverseTx(ctx context.Context, tx *sql.Tx, targets []Record, note string) ([]Outcome, error) {
	id := uuid.NewString()
	outs := make([]Outcome, 0, len(targets))
	for _, target := range targets {
		rev := target.Row.Negate(target.Timestamp, note)
		rev.ID = id
		rev = rev.Canonical()
		if err := Validate(rev); err != nil {
			return nil, err
		}
		out, err := s.appendTx(ctx, tx, rev)
		if err != nil {
			return nil, err
		}
		if out.Status == Deduplicated {
			return nil, &ReversedError{Target: target.ID, Seq: out.Seq}
		}
		outs = append(outs, out)
	}
	return outs, nil
}

const selectRecords = `SELECT seq, id, timestamp, type, asset, amount, currency, price, venue, note, row_fp, imported_at FROM ledger`

const chronological = ` ORDER BY timestamp ASC, seq ASC`

// AllRows returns every persisted row in chronological order. Rows sharing a
// timestamp keep their insertion order.
//
// The sequence is lazy and restartable: each range runs a fresh query and
// observes the ledger as it is when the range starts.
func (s *Store) AllRows(ctx context.Context) iter.Seq2[Record, error] {
	return s.scan(ctx, "all rows", selectRecords+chronological)
}

// RowsByAsset is AllRows restricted to one asset.
func (s *Store) RowsByAsset(ctx context.Context, asset string) iter.Seq2[Record, error] {
	return s.scan(ctx, "rows by asset", selectRecords+` WHERE asset = ?`+chronological, CanonicalAsset(asset))
}

// RowsByVenue is AllRows restricted to one venue.
func (s *Store) RowsByVenue(ctx context.Context, venue string) iter.Seq2[Record, error] {
	return s.scan(ctx, "rows by venue", selectRecords+` WHERE venue = ?`+chronological, CanonicalVenue(venue))
}

// RowsByID returns the rows carrying id: one row, or the two legs of a pair.
func (s *Store) RowsByID(ctx context.Context, id string) ([]Record, error) {
	return Collect(s.scan(ctx, "rows by id", selectRecords+` WHERE id = ? ORDER BY seq`, strings.TrimSpace(id)))
}

// Row returns the row persisted with sequence number seq.
func (s *Store) Row(ctx context.Context, seq int64) (Record, error) {
	recs, err := Collect(s.scan(ctx, "row", selectRecords+` WHERE seq = ?`, seq))
	if err != nil {
		return Record{}, err
	}
	if len(recs) == 0 {
		return Record{}, &NotFoundError{Target: fmt.Sprintf("#%d", seq)}
	}
	return recs[0], nil
}

// Recent returns the n most recently accepted rows, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Record, error) {
	return Collect(s.scan(ctx, "recent", selectRecords+` ORDER BY seq DESC LIMIT ?`, n))
}

// Count returns the number of persisted rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := s.ready("count"); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ledger`).Scan(&n); err != nil {
		return 0, storageErr("count", err)
	}
	return n, nil
}

func (s *Store) scan(ctx context.Context, op, query string, args ...any) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		if err := s.ready(op); err != nil {
			yield(Record{}, err)
			return
		}
		for rec, err := range queryRecords(ctx, s.db, query, args...) {
			if err != nil {
				yield(Record{}, storageErr(op, err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryRecords(ctx context.Context, q queryer, query string, args ...any) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			yield(Record{}, err)
			return
		}
		defer rows.Close()
		for rows.Next() {
			rec, err := scanRecord(rows)
			if err != nil {
				yield(Record{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(Record{}, err)
		}
	}
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		rec                         Record
		ts, typ, amount, importedAt string
		price, note                 sql.NullString
	)
	err := rows.Scan(&rec.Seq, &rec.ID, &ts, &typ, &rec.Asset, &amount, &rec.Currency, &price, &rec.Venue, &note, &rec.FP, &importedAt)
	if err != nil {
		return Record{}, err
	}
	if rec.Timestamp, err = time.Parse(TimestampFormat, ts); err != nil {
		return Record{}, fmt.Errorf("row #%d: invalid timestamp %q: %w", rec.Seq, ts, err)
	}
	if rec.Amount, err = decimal.NewFromString(amount); err != nil {
		return Record{}, fmt.Errorf("row #%d: invalid amount %q: %w", rec.Seq, amount, err)
	}
	if price.Valid {
		p, err := decimal.NewFromString(price.String)
		if err != nil {
			return Record{}, fmt.Errorf("row #%d: invalid price %q: %w", rec.Seq, price.String, err)
		}
		rec.Price = decimal.NewNullDecimal(p)
	}
	if rec.ImportedAt, err = time.Parse(time.RFC3339Nano, importedAt); err != nil {
		return Record{}, fmt.Errorf("row #%d: invalid import time %q: %w", rec.Seq, importedAt, err)
	}
	rec.Type = Type(typ)
	rec.Note = note.String
	return rec, nil
}

// Collect drains a record sequence into a slice, stopping at the first
// error.
func Collect(seq iter.Seq2[Record, error]) ([]Record, error) {
	var recs []Record
	for rec, err := range seq {
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
