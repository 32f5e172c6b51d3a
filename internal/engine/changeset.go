package engine

import (
	"github.com/dshills/seqstorm/internal/engine/coord"
	"github.com/dshills/seqstorm/internal/engine/sequence"
	"github.com/dshills/seqstorm/internal/engine/splice"
)

// ChangeSet is the full set of entities a successful edit changed. The
// caller re-renders from it and mirrors it to the backend; the engine does
// no implicit observation.
type ChangeSet struct {
	// Revision of the sequence after the edit. Zero when the edit did
	// not touch the sequence (annotation-only operations).
	Revision sequence.RevisionID

	// Splices applied to the sequence, in application (high-to-low)
	// order. Empty for annotation-only operations.
	Splices []splice.Splice

	// Selection after the edit. Nil means the selection was cleared.
	Selection []coord.Range

	// Mutated lists ids of annotations whose spans were re-derived.
	Mutated []string

	// Degenerate lists ids of annotations whose spans collapsed to a
	// zero-length point. They remain in the annotation set; discarding
	// them is a caller decision.
	Degenerate []string

	// Created and Removed list ids for annotation lifecycle operations.
	Created []string
	Removed []string
}

// Delta returns the net sequence length change of the edit.
func (c ChangeSet) Delta() int {
	total := 0
	for _, sp := range c.Splices {
		total += sp.Delta()
	}
	return total
}
