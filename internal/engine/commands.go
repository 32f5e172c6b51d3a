package engine

import (
	"github.com/dshills/seqstorm/internal/engine/annot"
	"github.com/dshills/seqstorm/internal/engine/coord"
	"github.com/dshills/seqstorm/internal/engine/history"
	"github.com/dshills/seqstorm/internal/engine/splice"
)

// editCommand records a sequence edit: the splices in application order,
// the text each one removed and inserted, and the selection and
// annotation spans on both sides of the edit.
//
// Splices are stored at pre-edit coordinates, high to low, so replaying
// them forward is valid (each splice only disturbs coordinates above the
// ones still pending) and undoing them in reverse restores low positions
// first.
type editCommand struct {
	splices  []splice.Splice
	removed  []string
	inserted []string

	selBefore []coord.Range
	selAfter  []coord.Range

	spansBefore map[string]coord.Span
	spansAfter  map[string]coord.Span

	desc string
}

// Execute re-applies the edit (redo path; the initial application happens
// in the engine before the command is pushed).
func (c *editCommand) Execute(st history.State) error {
	for i, sp := range c.splices {
		if _, err := st.Seq.Replace(sp.Pos, sp.End(), c.inserted[i]); err != nil {
			return err
		}
	}
	c.restoreSpans(st, c.spansAfter)
	st.Sel.SetRanges(cloneRanges(c.selAfter))
	return nil
}

// Undo reverses the splices. Reversal walks the list backwards: at each
// step the splice's position is still valid because every lower splice
// has not been reinstated yet.
func (c *editCommand) Undo(st history.State) error {
	for i := len(c.splices) - 1; i >= 0; i-- {
		sp := c.splices[i]
		if _, err := st.Seq.Replace(sp.Pos, sp.Pos+sp.Inserted, c.removed[i]); err != nil {
			return err
		}
	}
	c.restoreSpans(st, c.spansBefore)
	st.Sel.SetRanges(cloneRanges(c.selBefore))
	return nil
}

func (c *editCommand) restoreSpans(st history.State, spans map[string]coord.Span) {
	for id, span := range spans {
		a, err := st.Annotations.ByID(id)
		if err != nil {
			// The annotation was removed after this edit; its span will
			// come back with the remove command's own undo.
			continue
		}
		a.Span = span.Clone()
	}
}

func (c *editCommand) Description() string { return c.desc }

func cloneRanges(ranges []coord.Range) []coord.Range {
	if ranges == nil {
		return nil
	}
	out := make([]coord.Range, len(ranges))
	copy(out, ranges)
	return out
}

// addAnnotationCommand records an annotation creation.
type addAnnotationCommand struct {
	annotation *annot.Annotation
}

func (c *addAnnotationCommand) Execute(st history.State) error {
	st.Annotations.Add(c.annotation.Clone())
	return nil
}

func (c *addAnnotationCommand) Undo(st history.State) error {
	return st.Annotations.Remove(c.annotation.ID)
}

func (c *addAnnotationCommand) Description() string { return "Add annotation" }

// removeAnnotationCommand records an annotation deletion.
type removeAnnotationCommand struct {
	annotation *annot.Annotation
}

func (c *removeAnnotationCommand) Execute(st history.State) error {
	return st.Annotations.Remove(c.annotation.ID)
}

func (c *removeAnnotationCommand) Undo(st history.State) error {
	st.Annotations.Add(c.annotation.Clone())
	return nil
}

func (c *removeAnnotationCommand) Description() string { return "Remove annotation" }

// updateAnnotationCommand records a full annotation replacement, covering
// both direct updates and range merges.
type updateAnnotationCommand struct {
	before *annot.Annotation
	after  *annot.Annotation
}

func (c *updateAnnotationCommand) Execute(st history.State) error {
	return c.restore(st, c.after)
}

func (c *updateAnnotationCommand) Undo(st history.State) error {
	return c.restore(st, c.before)
}

func (c *updateAnnotationCommand) restore(st history.State, want *annot.Annotation) error {
	a, err := st.Annotations.ByID(want.ID)
	if err != nil {
		return err
	}
	*a = *want.Clone()
	return nil
}

func (c *updateAnnotationCommand) Description() string { return "Update annotation" }
