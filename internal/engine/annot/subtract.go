package annot

import (
	"github.com/dshills/seqstorm/internal/engine/coord"
	"github.com/dshills/seqstorm/internal/engine/selection"
)

// Subtract computes selection minus the annotation's span as a new
// selection domain: every selected range has the annotation's ranges cut
// out of it, splitting where the feature sits inside a selected region.
// The original domain is untouched. A nil or empty selection yields an
// empty domain.
func Subtract(a *Annotation, dom *selection.Domain) *selection.Domain {
	out := selection.New()
	if dom.IsEmpty() {
		return out
	}

	var remaining []coord.Range
	for _, sel := range dom.Ranges() {
		remaining = append(remaining, subtractSpan(sel, a.Span)...)
	}
	out.SetRanges(remaining)
	return out
}

// subtractSpan cuts every range of span out of r.
func subtractSpan(r coord.Range, span coord.Span) []coord.Range {
	pieces := []coord.Range{r}
	for _, cut := range span {
		var next []coord.Range
		for _, p := range pieces {
			next = append(next, subtractRange(p, cut)...)
		}
		pieces = next
	}
	return pieces
}

// subtractRange returns the parts of r not covered by cut: zero, one, or
// two ranges.
func subtractRange(r, cut coord.Range) []coord.Range {
	if !r.Overlaps(cut) {
		return []coord.Range{r}
	}

	var out []coord.Range
	if cut.Start > r.Start {
		left := r
		left.End = cut.Start
		out = append(out, left)
	}
	if cut.End < r.End {
		right := r
		right.Start = cut.End
		out = append(out, right)
	}
	return out
}
