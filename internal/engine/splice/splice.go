// Package splice implements the edit-adjustment engine: pure functions that
// re-derive ranges, spans, and selections after a sequence is spliced
// (inserted into, deleted from, or both at once).
//
// Every function here is pure. Nothing in this package mutates its inputs
// or holds state; callers apply the returned coordinates themselves.
package splice

import (
	"fmt"
	"sort"

	"github.com/dshills/seqstorm/internal/engine/coord"
)

// Splice is one edit to the sequence: Removed bases are cut at Pos and
// Inserted bases are put in their place. A pure insertion has Removed == 0;
// a pure deletion has Inserted == 0; a replace has both non-zero.
type Splice struct {
	Pos      int // fenced position the edit starts at
	Removed  int // number of bases removed
	Inserted int // number of bases inserted
}

// Insert builds a pure insertion of n bases at pos.
func Insert(pos, n int) Splice {
	return Splice{Pos: pos, Inserted: n}
}

// Delete builds a pure deletion of the bases in [start, end).
func Delete(start, end int) Splice {
	return Splice{Pos: start, Removed: end - start}
}

// Replace builds a combined edit replacing [start, end) with n bases.
func Replace(start, end, n int) Splice {
	return Splice{Pos: start, Removed: end - start, Inserted: n}
}

// End returns the fenced position just past the removed region.
func (s Splice) End() int {
	return s.Pos + s.Removed
}

// Delta returns the sequence length change the splice causes.
func (s Splice) Delta() int {
	return s.Inserted - s.Removed
}

// String returns a human-readable description of the splice.
func (s Splice) String() string {
	switch {
	case s.Removed == 0:
		return fmt.Sprintf("insert %d@%d", s.Inserted, s.Pos)
	case s.Inserted == 0:
		return fmt.Sprintf("delete [%d,%d)", s.Pos, s.End())
	default:
		return fmt.Sprintf("replace [%d,%d) with %d", s.Pos, s.End(), s.Inserted)
	}
}

// Validate checks the splice against the current sequence length.
func (s Splice) Validate(seqLen int) error {
	if s.Pos < 0 || s.Removed < 0 || s.Inserted < 0 {
		return fmt.Errorf("splice %s: negative parameter", s)
	}
	if s.Pos > seqLen {
		return fmt.Errorf("splice %s: position beyond sequence length %d", s, seqLen)
	}
	if s.End() > seqLen {
		return fmt.Errorf("splice %s: removed region beyond sequence length %d", s, seqLen)
	}
	return nil
}

// AdjustRange computes the post-edit coordinates of a range.
//
// The returned bool is true when the range was entirely contained in the
// removed region and collapsed to a zero-length range at the landing
// position (Pos + Inserted). The caller decides whether a collapsed range
// is kept or dropped.
//
// Pure insertions at a range boundary are asymmetric on purpose: text
// inserted exactly at the range start becomes part of the range (the start
// does not move, the end grows), while text inserted exactly at the range
// end stays outside it.
func AdjustRange(r coord.Range, sp Splice) (coord.Range, bool) {
	if sp.Removed == 0 {
		return adjustForInsert(r, sp.Pos, sp.Inserted), false
	}

	editEnd := sp.End()
	delta := sp.Delta()
	landing := sp.Pos + sp.Inserted

	switch {
	case r.End <= sp.Pos:
		// Entirely before the edit.
		return r, false

	case r.Start >= editEnd:
		// Entirely after the edit.
		return r.Shift(delta), false

	case r.Start >= sp.Pos && r.End <= editEnd:
		// Entirely inside the removed region.
		return r.Collapse(landing), true

	case r.Start < sp.Pos && r.End <= editEnd:
		// Overlaps the left edge: starts before, ends inside.
		r.End = landing
		return r, false

	case r.Start >= sp.Pos && r.End > editEnd:
		// Overlaps the right edge: starts inside, ends after.
		r.Start = landing
		r.End += delta
		return r, false

	default:
		// The edit is strictly inside the range.
		r.End += delta
		return r, false
	}
}

// adjustForInsert applies the pure-insertion rules, including the boundary
// asymmetry described on AdjustRange.
func adjustForInsert(r coord.Range, pos, n int) coord.Range {
	switch {
	case pos >= r.End:
		// At or past the range end: outside, nothing moves.
		return r
	case pos >= r.Start:
		// Strictly inside, or exactly at the start: the range absorbs
		// the inserted bases.
		r.End += n
		return r
	default:
		// Entirely before the range.
		return r.Shift(n)
	}
}

// AdjustSpan computes the post-edit span. Ranges that collapse inside the
// removed region are dropped from the span; if every range collapses the
// span degenerates to a single zero-length range at the landing position
// (preserving the first range's orientation) rather than disappearing.
// The returned bool is true for a degenerate result.
func AdjustSpan(s coord.Span, sp Splice) (coord.Span, bool) {
	if len(s) == 0 {
		return nil, false
	}

	out := make(coord.Span, 0, len(s))
	var firstCollapsed coord.Range
	collapsedAny := false
	for _, r := range s {
		adjusted, collapsed := AdjustRange(r, sp)
		if collapsed {
			if !collapsedAny {
				firstCollapsed = adjusted
				collapsedAny = true
			}
			continue
		}
		out = append(out, adjusted)
	}

	if len(out) == 0 {
		return coord.Span{firstCollapsed}, true
	}
	return out, out.IsDegenerate()
}

// AdjustRanges adjusts an independent list of ranges (a selection domain),
// dropping any that collapse. Returns nil if every range collapsed.
func AdjustRanges(ranges []coord.Range, sp Splice) []coord.Range {
	var out []coord.Range
	for _, r := range ranges {
		adjusted, collapsed := AdjustRange(r, sp)
		if collapsed {
			continue
		}
		out = append(out, adjusted)
	}
	return out
}

// SortHighToLow orders splices by descending position. Multi-range edits
// must be applied in this order so that each splice is computed against
// coordinates that later (lower) splices have not yet shifted.
func SortHighToLow(splices []Splice) {
	sort.Slice(splices, func(i, j int) bool {
		return splices[i].Pos > splices[j].Pos
	})
}

// DeleteRanges converts a set of selection ranges into deletion splices in
// high-to-low application order.
func DeleteRanges(ranges []coord.Range) []Splice {
	splices := make([]Splice, 0, len(ranges))
	for _, r := range ranges {
		if r.IsPoint() {
			continue
		}
		splices = append(splices, Delete(r.Start, r.End))
	}
	SortHighToLow(splices)
	return splices
}
