// Package history provides command-based undo/redo for the editor engine.
package history

import (
	"errors"
	"time"

	"github.com/dshills/seqstorm/internal/engine/annot"
	"github.com/dshills/seqstorm/internal/engine/selection"
	"github.com/dshills/seqstorm/internal/engine/sequence"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// State is the mutable editor state commands act on.
type State struct {
	Seq         *sequence.Sequence
	Sel         *selection.Domain
	Annotations *annot.Set
}

// Command is an edit action that can be re-applied and reversed.
type Command interface {
	// Execute applies (or re-applies, for redo) the command.
	Execute(st State) error

	// Undo reverses the command.
	Undo(st State) error

	// Description returns a short human-readable label.
	Description() string
}

// undoEntry wraps a command with metadata.
type undoEntry struct {
	command   Command
	timestamp time.Time
}

// History manages the undo and redo stacks.
type History struct {
	undoStack []*undoEntry
	redoStack []*undoEntry

	maxEntries int
}

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// New creates a history manager keeping at most maxEntries undo entries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records an already-applied command and clears the redo stack.
func (h *History) Push(cmd Command) {
	h.undoStack = append(h.undoStack, &undoEntry{command: cmd, timestamp: time.Now()})
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverses the most recent command.
func (h *History) Undo(st State) error {
	if len(h.undoStack) == 0 {
		return ErrNothingToUndo
	}
	entry := h.undoStack[len(h.undoStack)-1]
	if err := entry.command.Undo(st); err != nil {
		return err
	}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, entry)
	return nil
}

// Redo re-applies the most recently undone command.
func (h *History) Redo(st State) error {
	if len(h.redoStack) == 0 {
		return ErrNothingToRedo
	}
	entry := h.redoStack[len(h.redoStack)-1]
	if err := entry.command.Execute(st); err != nil {
		return err
	}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, entry)
	return nil
}

// CanUndo returns true if the undo stack is non-empty.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if the redo stack is non-empty.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undoable commands.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redoable commands.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}
