package engine

import (
	"fmt"
	"sync"

	"github.com/dshills/seqstorm/internal/engine/annot"
	"github.com/dshills/seqstorm/internal/engine/coord"
	"github.com/dshills/seqstorm/internal/engine/history"
	"github.com/dshills/seqstorm/internal/engine/selection"
	"github.com/dshills/seqstorm/internal/engine/sequence"
	"github.com/dshills/seqstorm/internal/engine/splice"
)

// Re-export commonly used types for convenience.
type (
	// Range is one contiguous interval on the sequence.
	Range = coord.Range

	// Span is one feature's location.
	Span = coord.Span

	// Splice is a single edit to the sequence.
	Splice = splice.Splice

	// Annotation is a feature record.
	Annotation = annot.Annotation

	// AnnotationSpec describes an annotation to create.
	AnnotationSpec = annot.Spec

	// RevisionID identifies a sequence revision.
	RevisionID = sequence.RevisionID
)

// Engine is the editor core: the sequence, the selection domain, and the
// annotation list, kept mutually consistent across edits. Each mutating
// operation validates before touching any state and returns a ChangeSet
// describing everything it changed.
//
// The coordinate computations themselves are pure (see the splice
// package); Engine adds the stateful orchestration, undo history, and a
// mutex so the asynchronous backend acknowledgement path may safely read
// while the UI thread edits.
type Engine struct {
	mu sync.RWMutex

	seq  *sequence.Sequence
	sel  *selection.Domain
	anns *annot.Set
	hist *history.History

	readOnly bool

	// Creation-time configuration.
	initText       string
	alphabet       sequence.Alphabet
	circular       bool
	maxUndoEntries int
}

// New creates an engine with the given options.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		maxUndoEntries: DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(e)
	}

	seqOpts := []sequence.Option{sequence.WithCircular(e.circular)}
	if e.alphabet != "" {
		seqOpts = append(seqOpts, sequence.WithAlphabet(e.alphabet))
	}
	seq, err := sequence.New(e.initText, seqOpts...)
	if err != nil {
		return nil, err
	}

	e.seq = seq
	e.sel = selection.New()
	e.anns = annot.NewSet()
	e.hist = history.New(e.maxUndoEntries)
	return e, nil
}

// state bundles the mutable parts for history commands.
func (e *Engine) state() history.State {
	return history.State{Seq: e.seq, Sel: e.sel, Annotations: e.anns}
}

// ============================================================================
// Read operations
// ============================================================================

// Text returns the full sequence.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.seq.Text()
}

// TextRange returns the residues in [start, end).
func (e *Engine) TextRange(start, end int) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.seq.TextRange(start, end)
}

// Complement returns the base-wise complement of [start, end) in forward
// order, as shown on the lower strand of the view.
func (e *Engine) Complement(start, end int) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.seq.Complement(start, end)
}

// Len returns the sequence length.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.seq.Len()
}

// Circular returns true if the sequence is circular.
func (e *Engine) Circular() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.seq.Circular()
}

// Revision returns the current sequence revision.
func (e *Engine) Revision() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.seq.Revision()
}

// IsReadOnly returns true if the engine rejects writes.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Selection returns the current selection ranges, nil when nothing is
// selected.
func (e *Engine) Selection() []Range {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel.Ranges()
}

// SelectionIsContiguous reports whether the selection tiles end-to-end,
// honoring circular wraparound.
func (e *Engine) SelectionIsContiguous() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ranges := e.sel.Ranges()
	if ranges == nil {
		return false
	}
	return selection.ContiguousWithWrap(ranges, e.seq.Len())
}

// FeatureText returns the text a feature reads: the concatenation of its
// ranges in assembly order, reverse-complemented for minus-strand ranges.
func (e *Engine) FeatureText(id string) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	a, err := e.anns.ByID(id)
	if err != nil {
		return "", err
	}
	var out []byte
	for _, r := range a.Span {
		var part string
		if r.Orientation == coord.OrientMinus {
			part, err = e.seq.ReverseComplement(r.Start, r.End)
		} else {
			part, err = e.seq.TextRange(r.Start, r.End)
		}
		if err != nil {
			return "", err
		}
		out = append(out, part...)
	}
	return string(out), nil
}

// ============================================================================
// Selection operations
// ============================================================================

// Select parses span notation and replaces the selection. The prior
// selection survives a parse error.
func (e *Engine) Select(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Select(text)
}

// AddSelectionRange appends a disjoint range to the selection.
func (e *Engine) AddSelectionRange(start, end int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if start < 0 || end > e.seq.Len() || start > end {
		return fmt.Errorf("%w: [%d,%d) against length %d", ErrRangeInvalid, start, end, e.seq.Len())
	}
	return e.sel.AddRange(start, end)
}

// ClearSelection removes the selection entirely.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel.Clear()
}

// SelectAnnotation sets the selection to the annotation's span.
func (e *Engine) SelectAnnotation(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, err := e.anns.ByID(id)
	if err != nil {
		return err
	}
	e.sel.SetRanges([]coord.Range(a.Span.Clone()))
	return nil
}

// ============================================================================
// Edit operations
// ============================================================================

// InsertText inserts text at pos, re-deriving the selection and every
// annotation span.
func (e *Engine) InsertText(pos int, text string) (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ChangeSet{}, ErrReadOnly
	}
	if text == "" {
		return ChangeSet{}, fmt.Errorf("%w: empty insert", ErrRangeInvalid)
	}
	sp := splice.Insert(pos, len(text))
	if err := sp.Validate(e.seq.Len()); err != nil {
		return ChangeSet{}, fmt.Errorf("%w: %v", ErrPosOutOfRange, err)
	}

	selAfter := splice.AdjustRanges(e.sel.Ranges(), sp)
	return e.commitEdit([]Splice{sp}, []string{text}, selAfter, "Insert")
}

// DeleteRange deletes the bases in [start, end). The selection becomes a
// cursor at the deletion point.
func (e *Engine) DeleteRange(start, end int) (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ChangeSet{}, ErrReadOnly
	}
	return e.deleteLocked([]coord.Range{{Start: start, End: end, Orientation: coord.OrientNone}})
}

// DeleteSelection deletes every selected range, highest first, and applies
// the post-delete selection rule: a contiguous deletion (including
// circular wraparound) leaves a cursor at the lowest surviving boundary;
// a gapped multi-range deletion clears the selection.
func (e *Engine) DeleteSelection() (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ChangeSet{}, ErrReadOnly
	}
	ranges := e.sel.Ranges()
	if len(ranges) == 0 {
		return ChangeSet{}, ErrNoSelection
	}
	return e.deleteLocked(ranges)
}

func (e *Engine) deleteLocked(ranges []coord.Range) (ChangeSet, error) {
	nonEmpty := make([]coord.Range, 0, len(ranges))
	for _, r := range ranges {
		if !r.IsPoint() {
			nonEmpty = append(nonEmpty, r)
		}
	}
	if len(nonEmpty) == 0 {
		return ChangeSet{}, fmt.Errorf("%w: nothing to delete", ErrNoSelection)
	}

	splices := splice.DeleteRanges(nonEmpty)
	for _, sp := range splices {
		if err := sp.Validate(e.seq.Len()); err != nil {
			return ChangeSet{}, fmt.Errorf("%w: %v", ErrRangeInvalid, err)
		}
	}

	selAfter := postDeleteSelection(nonEmpty, e.seq.Len())
	inserted := make([]string, len(splices))
	return e.commitEdit(splices, inserted, selAfter, "Delete")
}

// ReplaceSelection replaces the single selected range with text. The
// selection afterwards brackets the inserted text.
func (e *Engine) ReplaceSelection(text string) (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ChangeSet{}, ErrReadOnly
	}
	ranges := e.sel.Ranges()
	if len(ranges) == 0 {
		return ChangeSet{}, ErrNoSelection
	}
	if len(ranges) > 1 {
		return ChangeSet{}, ErrMultiRangeReplace
	}
	return e.replaceLocked(ranges[0].Start, ranges[0].End, text)
}

// ReplaceRange replaces [start, end) with text as one combined splice.
func (e *Engine) ReplaceRange(start, end int, text string) (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ChangeSet{}, ErrReadOnly
	}
	return e.replaceLocked(start, end, text)
}

func (e *Engine) replaceLocked(start, end int, text string) (ChangeSet, error) {
	sp := splice.Replace(start, end, len(text))
	if err := sp.Validate(e.seq.Len()); err != nil {
		return ChangeSet{}, fmt.Errorf("%w: %v", ErrRangeInvalid, err)
	}

	// The post-replace selection does not follow the adjustment rule:
	// it is forced to bracket the newly inserted text.
	var selAfter []coord.Range
	if len(text) > 0 {
		selAfter = []coord.Range{{Start: start, End: start + len(text), Orientation: coord.OrientNone}}
	} else {
		selAfter = []coord.Range{coord.NewPoint(start)}
	}
	return e.commitEdit([]Splice{sp}, []string{text}, selAfter, "Replace")
}

// commitEdit validates nothing further: splices are already checked. It
// computes post-edit annotation spans, applies everything, records undo
// state, and reports the ChangeSet. Annotation adjustment is computed on
// copies first so a failure cannot leave partial state.
func (e *Engine) commitEdit(splices []Splice, inserted []string, selAfter []coord.Range, desc string) (ChangeSet, error) {
	selBefore := e.sel.Ranges()

	// Compute every post-edit span before touching anything.
	type spanUpdate struct {
		id         string
		span       coord.Span
		degenerate bool
	}
	var updates []spanUpdate
	spansBefore := make(map[string]coord.Span)
	spansAfter := make(map[string]coord.Span)
	for _, a := range e.anns.All() {
		after := a.Span.Clone()
		degenerate := false
		for _, sp := range splices {
			after, degenerate = splice.AdjustSpan(after, sp)
		}
		if after.Equal(a.Span) {
			continue
		}
		updates = append(updates, spanUpdate{id: a.ID, span: after, degenerate: degenerate})
		spansBefore[a.ID] = a.Span.Clone()
		spansAfter[a.ID] = after.Clone()
	}

	// Apply the splices to the sequence.
	removed := make([]string, len(splices))
	for i, sp := range splices {
		text, err := e.seq.Replace(sp.Pos, sp.End(), inserted[i])
		if err != nil {
			// Only the residue check can fail here, and only on the
			// first splice of an insert or replace, so no prior splice
			// has touched the sequence yet.
			return ChangeSet{}, err
		}
		removed[i] = text
	}

	// Commit the derived coordinates.
	cs := ChangeSet{
		Revision:  e.seq.Revision(),
		Splices:   splices,
		Selection: selAfter,
	}
	for _, u := range updates {
		a, err := e.anns.ByID(u.id)
		if err != nil {
			continue
		}
		a.Span = u.span
		cs.Mutated = append(cs.Mutated, u.id)
		if u.degenerate {
			cs.Degenerate = append(cs.Degenerate, u.id)
		}
	}
	e.sel.SetRanges(selAfter)

	e.hist.Push(&editCommand{
		splices:     splices,
		removed:     removed,
		inserted:    inserted,
		selBefore:   selBefore,
		selAfter:    selAfter,
		spansBefore: spansBefore,
		spansAfter:  spansAfter,
		desc:        desc,
	})
	return cs, nil
}

// postDeleteSelection applies the post-delete cursor rule.
func postDeleteSelection(deleted []coord.Range, seqLen int) []coord.Range {
	if len(deleted) == 1 {
		return []coord.Range{coord.NewPoint(deleted[0].Start)}
	}
	if !selection.ContiguousWithWrap(deleted, seqLen) {
		return nil
	}
	lowest := deleted[0].Start
	for _, r := range deleted[1:] {
		if r.Start < lowest {
			lowest = r.Start
		}
	}
	return []coord.Range{coord.NewPoint(lowest)}
}

// ============================================================================
// Annotation operations
// ============================================================================

// AddAnnotation validates spec and adds the annotation, assigning an id
// if the spec has none.
func (e *Engine) AddAnnotation(spec AnnotationSpec) (*Annotation, ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return nil, ChangeSet{}, ErrReadOnly
	}
	a, err := annot.New(spec)
	if err != nil {
		return nil, ChangeSet{}, err
	}
	if b := a.Span.Bounds(); b.End > e.seq.Len() {
		return nil, ChangeSet{}, fmt.Errorf("%w: span %s beyond length %d", ErrRangeInvalid, a.Span, e.seq.Len())
	}

	e.anns.Add(a)
	e.hist.Push(&addAnnotationCommand{annotation: a.Clone()})
	return a.Clone(), ChangeSet{Created: []string{a.ID}}, nil
}

// UpdateAnnotation replaces the caption, type, span, and attributes of an
// existing annotation.
func (e *Engine) UpdateAnnotation(id string, spec AnnotationSpec) (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ChangeSet{}, ErrReadOnly
	}
	existing, err := e.anns.ByID(id)
	if err != nil {
		return ChangeSet{}, err
	}
	spec.ID = id
	replacement, err := annot.New(spec)
	if err != nil {
		return ChangeSet{}, err
	}

	before := existing.Clone()
	*existing = *replacement
	e.hist.Push(&updateAnnotationCommand{before: before, after: replacement.Clone()})
	return ChangeSet{Mutated: []string{id}}, nil
}

// RemoveAnnotation deletes an annotation by id.
func (e *Engine) RemoveAnnotation(id string) (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ChangeSet{}, ErrReadOnly
	}
	a, err := e.anns.ByID(id)
	if err != nil {
		return ChangeSet{}, err
	}
	removed := a.Clone()
	if err := e.anns.Remove(id); err != nil {
		return ChangeSet{}, err
	}
	e.hist.Push(&removeAnnotationCommand{annotation: removed})
	return ChangeSet{Removed: []string{id}}, nil
}

// Annotations returns copies of all annotations in insertion order.
func (e *Engine) Annotations() []*Annotation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	all := e.anns.All()
	out := make([]*Annotation, len(all))
	for i, a := range all {
		out[i] = a.Clone()
	}
	return out
}

// AnnotationByID returns a copy of the annotation with the given id.
func (e *Engine) AnnotationByID(id string) (*Annotation, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	a, err := e.anns.ByID(id)
	if err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

// AnnotationCount returns the number of annotations.
func (e *Engine) AnnotationCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.anns.Len()
}

// MergeAnnotationRanges merges two adjacent same-orientation ranges of an
// annotation's span. The bool reports whether the merge applied; an
// inapplicable merge is a no-op, not an error.
func (e *Engine) MergeAnnotationRanges(id string, i int, dir annot.MergeDirection) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return false, ErrReadOnly
	}
	a, err := e.anns.ByID(id)
	if err != nil {
		return false, err
	}
	before := a.Clone()
	if !a.MergeRanges(i, dir) {
		return false, nil
	}
	e.hist.Push(&updateAnnotationCommand{before: before, after: a.Clone()})
	return true, nil
}

// SubtractAnnotationFromSelection removes the annotation's span from the
// current selection ("exclude this feature from selection").
func (e *Engine) SubtractAnnotationFromSelection(id string) (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, err := e.anns.ByID(id)
	if err != nil {
		return ChangeSet{}, err
	}
	result := annot.Subtract(a, e.sel)
	e.sel.SetRanges(result.Ranges())
	return ChangeSet{Selection: e.sel.Ranges()}, nil
}

// ============================================================================
// Undo / Redo
// ============================================================================

// Undo reverses the most recent edit and reports what changed.
func (e *Engine) Undo() (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ChangeSet{}, ErrReadOnly
	}
	if err := e.hist.Undo(e.state()); err != nil {
		return ChangeSet{}, err
	}
	return e.snapshotChangeSet(), nil
}

// Redo re-applies the most recently undone edit.
func (e *Engine) Redo() (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ChangeSet{}, ErrReadOnly
	}
	if err := e.hist.Redo(e.state()); err != nil {
		return ChangeSet{}, err
	}
	return e.snapshotChangeSet(), nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hist.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hist.CanRedo()
}

// snapshotChangeSet reports the full post-undo/redo state; undo can touch
// any subset of entities, so everything is listed.
func (e *Engine) snapshotChangeSet() ChangeSet {
	cs := ChangeSet{
		Revision:  e.seq.Revision(),
		Selection: e.sel.Ranges(),
	}
	for _, a := range e.anns.All() {
		cs.Mutated = append(cs.Mutated, a.ID)
	}
	return cs
}
