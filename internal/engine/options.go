package engine

import "github.com/dshills/seqstorm/internal/engine/sequence"

// Default configuration values.
const (
	DefaultMaxUndoEntries = 1000
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithSequence sets the initial sequence text.
func WithSequence(text string) Option {
	return func(e *Engine) {
		e.initText = text
	}
}

// WithAlphabet restricts the sequence to the given residue alphabet.
func WithAlphabet(a sequence.Alphabet) Option {
	return func(e *Engine) {
		e.alphabet = a
	}
}

// WithCircular marks the sequence as circular.
func WithCircular(circular bool) Option {
	return func(e *Engine) {
		e.circular = circular
	}
}

// WithMaxUndoEntries bounds the undo history.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithReadOnly creates a read-only engine; write operations return
// ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
