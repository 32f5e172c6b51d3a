// Package annot provides the feature annotation record: a span plus
// metadata, mutated in place by the edit-adjustment engine as the sequence
// changes.
package annot

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/seqstorm/internal/engine/coord"
	"github.com/dshills/seqstorm/internal/engine/splice"
)

// Errors returned by annotation operations.
var (
	// ErrSpanEmpty indicates an annotation with no location.
	ErrSpanEmpty = errors.New("annotation span is empty")

	// ErrSpanInvalid indicates a span with an invalid range.
	ErrSpanInvalid = errors.New("annotation span is invalid")
)

// Annotation is one feature on the sequence. The editor owns the
// authoritative copy; a mirroring backend is synchronized by id.
type Annotation struct {
	ID         string
	Caption    string
	Type       string
	Span       coord.Span
	Attributes map[string]string
}

// Spec describes an annotation to create. ID is optional; one is assigned
// when absent.
type Spec struct {
	ID         string
	Caption    string
	Type       string
	Span       coord.Span
	Attributes map[string]string
}

// New validates the spec and builds an annotation, assigning a fresh id
// if the spec carries none.
func New(spec Spec) (*Annotation, error) {
	if len(spec.Span) == 0 {
		return nil, ErrSpanEmpty
	}
	if !spec.Span.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrSpanInvalid, spec.Span)
	}
	id := spec.ID
	if id == "" {
		id = uuid.NewString()
	}
	a := &Annotation{
		ID:      id,
		Caption: spec.Caption,
		Type:    spec.Type,
		Span:    spec.Span.Clone(),
	}
	if len(spec.Attributes) > 0 {
		a.Attributes = make(map[string]string, len(spec.Attributes))
		for k, v := range spec.Attributes {
			a.Attributes[k] = v
		}
	}
	return a, nil
}

// Parse builds an annotation from span notation.
func Parse(caption, typ, spanText string) (*Annotation, error) {
	span, err := coord.ParseSpan(spanText)
	if err != nil {
		return nil, err
	}
	return New(Spec{Caption: caption, Type: typ, Span: span})
}

// ApplySplice re-derives the annotation's span after an edit, mutating the
// annotation in place. Returns true if the span degenerated to a single
// zero-length point; the caller decides whether to keep or discard it.
func (a *Annotation) ApplySplice(sp splice.Splice) bool {
	adjusted, degenerate := splice.AdjustSpan(a.Span, sp)
	a.Span = adjusted
	return degenerate
}

// Clone returns an independent copy of the annotation.
func (a *Annotation) Clone() *Annotation {
	out := &Annotation{
		ID:      a.ID,
		Caption: a.Caption,
		Type:    a.Type,
		Span:    a.Span.Clone(),
	}
	if len(a.Attributes) > 0 {
		out.Attributes = make(map[string]string, len(a.Attributes))
		for k, v := range a.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}

// String returns the caption and span for logs and debugging.
func (a *Annotation) String() string {
	return fmt.Sprintf("%s [%s]", a.Caption, a.Span)
}

// MergeDirection selects which neighbor MergeRanges combines with.
type MergeDirection int

const (
	// MergeWithNext combines range i with range i+1.
	MergeWithNext MergeDirection = iota
	// MergeWithPrev combines range i with range i-1.
	MergeWithPrev
)

// MergeRanges combines two adjacent same-orientation ranges of the span
// into one contiguous range. It returns false, without modifying the
// annotation, when the merge is not applicable: index out of bounds,
// ranges not abutting end-to-start, or differing orientation.
func (a *Annotation) MergeRanges(i int, dir MergeDirection) bool {
	j := i + 1
	if dir == MergeWithPrev {
		i, j = i-1, i
	}
	if i < 0 || j >= len(a.Span) || j != i+1 {
		return false
	}
	left, right := a.Span[i], a.Span[j]
	if left.Orientation != right.Orientation {
		return false
	}
	if left.End != right.Start {
		return false
	}

	merged := coord.Range{
		Start:           left.Start,
		End:             right.End,
		Orientation:     left.Orientation,
		StartIndefinite: left.StartIndefinite,
		EndIndefinite:   right.EndIndefinite,
	}
	span := make(coord.Span, 0, len(a.Span)-1)
	span = append(span, a.Span[:i]...)
	span = append(span, merged)
	span = append(span, a.Span[j+1:]...)
	a.Span = span
	return true
}
