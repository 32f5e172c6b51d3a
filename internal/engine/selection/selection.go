// Package selection maintains the user's current multi-region selection:
// an ordered list of non-overlapping, non-touching ranges on the sequence.
package selection

import (
	"errors"
	"sort"
	"strings"

	"github.com/dshills/seqstorm/internal/engine/coord"
)

// Errors returned by selection operations.
var (
	// ErrRangeOverlaps indicates a new range overlaps or touches an
	// existing one. Touching ranges must be pre-merged by the caller.
	ErrRangeOverlaps = errors.New("range overlaps or touches an existing selection")

	// ErrRangeInvalid indicates an invalid range (negative or inverted).
	ErrRangeInvalid = errors.New("invalid selection range")
)

// Domain is the current selection. A nil or empty domain means nothing is
// selected. The zero value is ready to use.
type Domain struct {
	ranges []coord.Range
}

// New creates an empty selection domain.
func New() *Domain {
	return &Domain{}
}

// FromRanges creates a domain from already-disjoint ranges.
// Returns ErrRangeOverlaps if any pair overlaps or touches.
func FromRanges(ranges []coord.Range) (*Domain, error) {
	d := New()
	for _, r := range ranges {
		if err := d.add(r); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Select parses span notation and replaces the domain with the parsed
// ranges. On a parse error the prior selection is kept untouched.
func (d *Domain) Select(text string) error {
	span, err := coord.ParseSpan(text)
	if err != nil {
		return err
	}
	replacement := New()
	for _, r := range span {
		if err := replacement.add(r); err != nil {
			return err
		}
	}
	d.ranges = replacement.ranges
	return nil
}

// AddRange appends a new disjoint range (Ctrl+drag adds a region).
// start == end adds a cursor.
func (d *Domain) AddRange(start, end int) error {
	return d.add(coord.Range{Start: start, End: end, Orientation: coord.OrientNone})
}

func (d *Domain) add(r coord.Range) error {
	if !r.IsValid() {
		return ErrRangeInvalid
	}
	for _, existing := range d.ranges {
		if existing.Overlaps(r) {
			return ErrRangeOverlaps
		}
		// Touching ranges must be pre-merged by the caller. Cursors are
		// exempt: a zero-length range may sit at another range's edge,
		// but not on top of another cursor.
		if existing.Touches(r) && !existing.IsPoint() && !r.IsPoint() {
			return ErrRangeOverlaps
		}
		if existing.IsPoint() && r.IsPoint() && existing.Start == r.Start {
			return ErrRangeOverlaps
		}
	}
	d.ranges = append(d.ranges, r)
	d.sort()
	return nil
}

// Clear removes the selection entirely.
func (d *Domain) Clear() {
	d.ranges = nil
}

// SetCursor collapses the selection to a single zero-length cursor at pos.
func (d *Domain) SetCursor(pos int) {
	d.ranges = []coord.Range{coord.NewPoint(pos)}
}

// SetRanges replaces the domain's ranges without disjointness checks.
// Used by the edit engine, whose outputs are disjoint by construction.
func (d *Domain) SetRanges(ranges []coord.Range) {
	if len(ranges) == 0 {
		d.ranges = nil
		return
	}
	d.ranges = make([]coord.Range, len(ranges))
	copy(d.ranges, ranges)
	d.sort()
}

// Ranges returns a copy of the selected ranges, sorted by start.
// Returns nil when nothing is selected.
func (d *Domain) Ranges() []coord.Range {
	if d == nil || len(d.ranges) == 0 {
		return nil
	}
	out := make([]coord.Range, len(d.ranges))
	copy(out, d.ranges)
	return out
}

// IsEmpty returns true when nothing is selected.
func (d *Domain) IsEmpty() bool {
	return d == nil || len(d.ranges) == 0
}

// IsCursor returns true when the selection is a single zero-length range.
func (d *Domain) IsCursor() bool {
	return d != nil && len(d.ranges) == 1 && d.ranges[0].IsPoint()
}

// Cursor returns the cursor position and true if the selection is a cursor.
func (d *Domain) Cursor() (int, bool) {
	if !d.IsCursor() {
		return 0, false
	}
	return d.ranges[0].Start, true
}

// TotalLength returns the summed length of all selected ranges.
func (d *Domain) TotalLength() int {
	if d == nil {
		return 0
	}
	total := 0
	for _, r := range d.ranges {
		total += r.Len()
	}
	return total
}

// Count returns the number of selected ranges.
func (d *Domain) Count() int {
	if d == nil {
		return 0
	}
	return len(d.ranges)
}

// Contains returns true if pos indexes a selected base.
func (d *Domain) Contains(pos int) bool {
	if d == nil {
		return false
	}
	for _, r := range d.ranges {
		if r.Contains(pos) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the domain.
func (d *Domain) Clone() *Domain {
	if d == nil {
		return nil
	}
	return &Domain{ranges: d.Ranges()}
}

// String serializes the selection in span notation, or "" when empty.
func (d *Domain) String() string {
	if d.IsEmpty() {
		return ""
	}
	parts := make([]string, len(d.ranges))
	for i, r := range d.ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, " + ")
}

func (d *Domain) sort() {
	sort.Slice(d.ranges, func(i, j int) bool {
		if d.ranges[i].Start != d.ranges[j].Start {
			return d.ranges[i].Start < d.ranges[j].Start
		}
		return d.ranges[i].End < d.ranges[j].End
	})
}

// ContiguousWithWrap reports whether the ranges tile end-to-end with no
// gaps when read on a circular sequence of length seqLen: after sorting by
// start, each range's end must equal the next range's start, and for the
// wrap case the last range ends at seqLen while the first starts at 0.
// A single range is trivially contiguous.
func ContiguousWithWrap(ranges []coord.Range, seqLen int) bool {
	if len(ranges) == 0 {
		return false
	}
	if len(ranges) == 1 {
		return true
	}

	sorted := make([]coord.Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	gaps := 0
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].End != sorted[i+1].Start {
			gaps++
		}
	}
	if gaps == 0 {
		return true
	}

	// A single interior gap is still contiguous when the set wraps the
	// origin: the arc runs last-range -> seqLen -> 0 -> first-range and
	// the gap holds the arc's two open endpoints.
	wraps := sorted[0].Start == 0 && sorted[len(sorted)-1].End == seqLen
	return gaps == 1 && wraps
}
