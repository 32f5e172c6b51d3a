// Package sequence stores the residues the coordinate model indexes into.
// It is a flat byte buffer restricted to a nucleotide alphabet, with splice
// edits (insert, delete, replace), strand complement helpers, and a
// monotonically increasing revision id per mutation.
package sequence

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

// Errors returned by sequence operations.
var (
	// ErrPosOutOfRange indicates a position outside [0, Len()].
	ErrPosOutOfRange = errors.New("position out of range")

	// ErrRangeInvalid indicates an inverted or out-of-bounds range.
	ErrRangeInvalid = errors.New("invalid sequence range")

	// ErrInvalidResidue indicates a character outside the alphabet.
	ErrInvalidResidue = errors.New("invalid residue")
)

// RevisionID uniquely identifies a sequence revision. Every mutation
// produces a new one.
type RevisionID uint64

var revisionCounter uint64

func nextRevision() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}

// Alphabet is the set of residue characters a sequence accepts.
// Matching is case-insensitive; residues are stored upper-case.
type Alphabet string

// AlphabetIUPAC covers the IUPAC nucleotide codes including ambiguity
// characters.
const AlphabetIUPAC Alphabet = "ACGTUNRYSWKMBDHV"

// Contains returns true if the alphabet accepts c (either case).
func (a Alphabet) Contains(c byte) bool {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return strings.IndexByte(string(a), c) >= 0
}

// Sequence is a mutable residue buffer. It is not safe for concurrent use;
// the owning engine serializes access.
type Sequence struct {
	residues []byte
	alphabet Alphabet
	circular bool
	revision RevisionID
}

// Option configures a Sequence during creation.
type Option func(*Sequence)

// WithAlphabet restricts the sequence to the given alphabet.
func WithAlphabet(a Alphabet) Option {
	return func(s *Sequence) {
		if a != "" {
			s.alphabet = a
		}
	}
}

// WithCircular marks the sequence as circular (origin-wrapping features
// and selections are meaningful).
func WithCircular(circular bool) Option {
	return func(s *Sequence) {
		s.circular = circular
	}
}

// New creates a sequence from text, validating every residue.
func New(text string, opts ...Option) (*Sequence, error) {
	s := &Sequence{alphabet: AlphabetIUPAC}
	for _, opt := range opts {
		opt(s)
	}
	normalized, err := s.normalize(text)
	if err != nil {
		return nil, err
	}
	s.residues = normalized
	s.revision = nextRevision()
	return s, nil
}

// normalize upper-cases text and validates it against the alphabet.
func (s *Sequence) normalize(text string) ([]byte, error) {
	out := make([]byte, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !s.alphabet.Contains(c) {
			return nil, fmt.Errorf("%w %q at offset %d", ErrInvalidResidue, c, i)
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return out, nil
}

// Len returns the number of residues.
func (s *Sequence) Len() int {
	return len(s.residues)
}

// Circular returns true if the sequence is circular.
func (s *Sequence) Circular() bool {
	return s.circular
}

// Alphabet returns the sequence's alphabet.
func (s *Sequence) Alphabet() Alphabet {
	return s.alphabet
}

// Revision returns the current revision id.
func (s *Sequence) Revision() RevisionID {
	return s.revision
}

// Text returns the full sequence.
func (s *Sequence) Text() string {
	return string(s.residues)
}

// TextRange returns the residues in [start, end).
func (s *Sequence) TextRange(start, end int) (string, error) {
	if err := s.checkRange(start, end); err != nil {
		return "", err
	}
	return string(s.residues[start:end]), nil
}

// Insert places text at pos. Validation happens before any mutation.
func (s *Sequence) Insert(pos int, text string) error {
	if pos < 0 || pos > len(s.residues) {
		return fmt.Errorf("%w: %d (length %d)", ErrPosOutOfRange, pos, len(s.residues))
	}
	normalized, err := s.normalize(text)
	if err != nil {
		return err
	}
	s.residues = append(s.residues[:pos], append(normalized, s.residues[pos:]...)...)
	s.revision = nextRevision()
	return nil
}

// Delete removes [start, end) and returns the removed residues.
// Zero-length deletes are rejected.
func (s *Sequence) Delete(start, end int) (string, error) {
	if err := s.checkRange(start, end); err != nil {
		return "", err
	}
	if start == end {
		return "", fmt.Errorf("%w: zero-length delete at %d", ErrRangeInvalid, start)
	}
	removed := string(s.residues[start:end])
	s.residues = append(s.residues[:start], s.residues[end:]...)
	s.revision = nextRevision()
	return removed, nil
}

// Replace substitutes [start, end) with text and returns the removed
// residues. All-or-nothing: text is validated first.
func (s *Sequence) Replace(start, end int, text string) (string, error) {
	if err := s.checkRange(start, end); err != nil {
		return "", err
	}
	normalized, err := s.normalize(text)
	if err != nil {
		return "", err
	}
	removed := string(s.residues[start:end])
	tail := make([]byte, len(s.residues)-end)
	copy(tail, s.residues[end:])
	s.residues = append(append(s.residues[:start], normalized...), tail...)
	s.revision = nextRevision()
	return removed, nil
}

func (s *Sequence) checkRange(start, end int) error {
	if start < 0 || end > len(s.residues) || start > end {
		return fmt.Errorf("%w: [%d,%d) against length %d", ErrRangeInvalid, start, end, len(s.residues))
	}
	return nil
}
