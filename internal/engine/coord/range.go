package coord

import (
	"strconv"
	"strings"
)

// Orientation is the strand a range reads on.
type Orientation uint8

const (
	// OrientPlus reads on the forward strand.
	OrientPlus Orientation = iota
	// OrientMinus reads on the complementary strand.
	OrientMinus
	// OrientNone has no strand meaning (selections, unstranded annotations).
	OrientNone
	// OrientMixed is only ever reported by Span.Orientation when the
	// span's ranges disagree. A Range never holds it.
	OrientMixed
)

// String returns a short name for the orientation.
func (o Orientation) String() string {
	switch o {
	case OrientPlus:
		return "plus"
	case OrientMinus:
		return "minus"
	case OrientNone:
		return "none"
	case OrientMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// Range is one contiguous interval on a sequence.
// Coordinates are fenced: 0-based, half-open [Start, End).
// Start == End is a valid zero-length range (a cursor or point).
type Range struct {
	Start           int
	End             int
	Orientation     Orientation
	StartIndefinite bool
	EndIndefinite   bool
}

// NewRange creates a plus-strand range with definite bounds.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// NewPoint creates a zero-length, unoriented range at pos.
func NewPoint(pos int) Range {
	return Range{Start: pos, End: pos, Orientation: OrientNone}
}

// Len returns the number of bases the range covers.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsPoint returns true if the range has zero length.
func (r Range) IsPoint() bool {
	return r.Start == r.End
}

// IsValid returns true if 0 <= Start <= End.
func (r Range) IsValid() bool {
	return r.Start >= 0 && r.Start <= r.End
}

// Contains returns true if pos indexes a base inside the range.
func (r Range) Contains(pos int) bool {
	return pos >= r.Start && pos < r.End
}

// ContainsRange returns true if other lies entirely within r.
func (r Range) ContainsRange(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Overlaps reports whether the two half-open intervals share at least one
// base. Touching ranges (r.End == other.Start) do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && r.End > other.Start
}

// Touches reports whether the ranges overlap or abut end-to-start.
func (r Range) Touches(other Range) bool {
	return r.Start <= other.End && r.End >= other.Start
}

// Intersect returns the overlapping part of two ranges, or a zero-length
// range if they do not overlap. Orientation and boundary flags follow r.
func (r Range) Intersect(other Range) Range {
	start := r.Start
	if other.Start > start {
		start = other.Start
	}
	end := r.End
	if other.End < end {
		end = other.End
	}
	if start >= end {
		return Range{Start: start, End: start, Orientation: r.Orientation}
	}
	out := r
	out.Start = start
	out.End = end
	return out
}

// Shift returns the range moved by delta bases.
func (r Range) Shift(delta int) Range {
	r.Start += delta
	r.End += delta
	return r
}

// Collapse returns a zero-length range at pos preserving orientation.
func (r Range) Collapse(pos int) Range {
	r.Start = pos
	r.End = pos
	return r
}

// Equal reports full value equality including orientation and boundary flags.
func (r Range) Equal(other Range) bool {
	return r == other
}

// String serializes the range in span notation. A zero-length unoriented
// range with definite bounds serializes as a bare position.
func (r Range) String() string {
	if r.IsPoint() && r.Orientation == OrientNone && !r.StartIndefinite && !r.EndIndefinite {
		return strconv.Itoa(r.Start)
	}

	var b strings.Builder
	switch r.Orientation {
	case OrientMinus:
		b.WriteByte('(')
	case OrientNone:
		b.WriteByte('[')
	}
	if r.StartIndefinite {
		b.WriteByte('<')
	}
	b.WriteString(strconv.Itoa(r.Start))
	b.WriteString("..")
	if r.EndIndefinite {
		b.WriteByte('>')
	}
	b.WriteString(strconv.Itoa(r.End))
	switch r.Orientation {
	case OrientMinus:
		b.WriteByte(')')
	case OrientNone:
		b.WriteByte(']')
	}
	return b.String()
}
