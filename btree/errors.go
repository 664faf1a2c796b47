package btree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("btree: invalid configuration")
	// ErrOutOfRange signals an offset outside of the indexed span.
	ErrOutOfRange = errors.New("btree: offset out of range")
	// ErrInvalidArgument signals a negative or malformed metric, or an
	// operation the tree cannot represent (e.g., counter overflow).
	ErrInvalidArgument = errors.New("btree: invalid argument")
	// ErrInvariantViolation signals an internal consistency failure. It
	// should never surface in correct operation.
	ErrInvariantViolation = errors.New("btree: invariant violation")
)
