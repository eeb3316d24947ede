package position

import "errors"

var (
	// ErrInvalidArgument covers bad constructor or method input:
	// non-positive amounts, prices or percentages.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAlreadyClosed is returned when closing a closed position.
	ErrAlreadyClosed = errors.New("position is already closed")

	// ErrEmptyLedger is returned for operations on a hub with no positions.
	ErrEmptyLedger = errors.New("no positions exist")

	// ErrLedgerCorrupt means an internal consistency invariant was
	// violated. It is a programming error and should abort the run.
	ErrLedgerCorrupt = errors.New("position ledger corrupt")
)
