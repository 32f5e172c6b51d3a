package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrPosOutOfRange indicates a position outside the sequence.
	ErrPosOutOfRange = errors.New("position out of range")

	// ErrRangeInvalid indicates an invalid range (inverted or out of bounds).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrNoSelection indicates an operation that needs a non-empty
	// selection was called without one.
	ErrNoSelection = errors.New("nothing is selected")

	// ErrMultiRangeReplace indicates replace was attempted on a
	// multi-range selection.
	ErrMultiRangeReplace = errors.New("replace requires a single selected range")

	// ErrReadOnly indicates a write operation on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")
)
