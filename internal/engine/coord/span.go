package coord

import "strings"

// Span is one feature's location: an ordered, non-empty list of ranges with
// join semantics. Order is biological assembly order, not necessarily
// ascending coordinates.
type Span []Range

// NewSpan creates a span from the given ranges.
func NewSpan(ranges ...Range) Span {
	return Span(ranges)
}

// PointSpan creates a degenerate span: a single zero-length range at pos.
func PointSpan(pos int) Span {
	return Span{NewPoint(pos)}
}

// IsValid returns true if the span is non-empty and every range is valid.
func (s Span) IsValid() bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !r.IsValid() {
			return false
		}
	}
	return true
}

// IsDegenerate returns true if every range in the span has zero length.
func (s Span) IsDegenerate() bool {
	for _, r := range s {
		if !r.IsPoint() {
			return false
		}
	}
	return len(s) > 0
}

// Bounds returns the min-start/max-end envelope of the span.
// The envelope carries no orientation or boundary flags.
func (s Span) Bounds() Range {
	if len(s) == 0 {
		return Range{Orientation: OrientNone}
	}
	start := s[0].Start
	end := s[0].End
	for _, r := range s[1:] {
		if r.Start < start {
			start = r.Start
		}
		if r.End > end {
			end = r.End
		}
	}
	return Range{Start: start, End: end, Orientation: OrientNone}
}

// TotalLength returns the summed length of the individual ranges.
func (s Span) TotalLength() int {
	total := 0
	for _, r := range s {
		total += r.Len()
	}
	return total
}

// Orientation returns the shared orientation of all ranges, or OrientMixed
// if they disagree.
func (s Span) Orientation() Orientation {
	if len(s) == 0 {
		return OrientNone
	}
	o := s[0].Orientation
	for _, r := range s[1:] {
		if r.Orientation != o {
			return OrientMixed
		}
	}
	return o
}

// Clone returns an independent copy of the span.
func (s Span) Clone() Span {
	if s == nil {
		return nil
	}
	out := make(Span, len(s))
	copy(out, s)
	return out
}

// Equal reports value equality of two spans, order significant.
func (s Span) Equal(other Span) bool {
	if len(s) != len(other) {
		return false
	}
	for i, r := range s {
		if r != other[i] {
			return false
		}
	}
	return true
}

// OverlapsRange returns true if any range of the span overlaps r.
func (s Span) OverlapsRange(r Range) bool {
	for _, sr := range s {
		if sr.Overlaps(r) {
			return true
		}
	}
	return false
}

// String serializes the span, joining fragment tokens with " + ".
func (s Span) String() string {
	if len(s) == 0 {
		return ""
	}
	parts := make([]string, len(s))
	for i, r := range s {
		parts[i] = r.String()
	}
	return strings.Join(parts, " + ")
}
