package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("ledger store is closed")

// Violation is a single field level validation failure.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string { return v.Field + ": " + v.Message }

// ValidationError reports a row that failed the syntactic checks. It is
// always returned before any write is attempted.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return "invalid row: " + strings.Join(msgs, "; ")
}

// Has reports whether field has at least one violation.
func (e *ValidationError) Has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// NotFoundError reports a reversal target that does not exist.
type NotFoundError struct {
	Target string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("row %s not found", e.Target)
}

// ReversedError reports a reversal target whose reversal is already in the
// ledger. Nothing was written.
type ReversedError struct {
	Target string
	Seq    int64 // the existing reversal row
}

func (e *ReversedError) Error() string {
	return fmt.Sprintf("row %s is already reversed by row #%d", e.Target, e.Seq)
}

// StorageError reports a failure of the persistence medium. The current
// operation has been rolled back and is not retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// storageErr wraps err into a *StorageError unless it is nil or already
// one of the typed ledger errors.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		se *StorageError
		ve *ValidationError
		ne *NotFoundError
		re *ReversedError
	)
	if errors.As(err, &se) || errors.As(err, &ve) || errors.As(err, &ne) || errors.As(err, &re) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
