// Package ledger provides an append-only log of asset flows for a personal
// investment portfolio. The log is the single source of truth: every balance
// or report is computed from it on read and never stored.
//
// The core pieces are:
//   - Row: one atomic flow (BUY, SELL, TRANSFER, FEE or REVERSAL) of an asset
//     on a venue, with a signed exact decimal amount and a fingerprint used
//     to detect duplicates.
//   - Parse and Validate: the syntactic gate every row passes before it can
//     be persisted.
//   - Store: the SQLite backed log. Rows can be appended, never updated or
//     deleted; mistakes are corrected by appending REVERSAL rows.
//   - View: timelines, balances and diagnostics derived from the store.
//   - Load, Import and the Export functions: moving rows between the store
//     and CSV, spreadsheet and JSON files.
//
// This package serves as the foundation of the `ldg` command-line tool.
package ledger
