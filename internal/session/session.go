// Package session orchestrates one open document: it owns the engine,
// publishes change events on the bus, mirrors committed operations to the
// backend, and exposes the selection token syntax the UI and scripts use.
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/seqstorm/internal/backend"
	"github.com/dshills/seqstorm/internal/engine"
	"github.com/dshills/seqstorm/internal/engine/annot"
	"github.com/dshills/seqstorm/internal/event"
	"github.com/dshills/seqstorm/internal/io/fasta"
)

// AnnotationTokenPrefix marks a selection token that names an annotation
// rather than literal span text.
const AnnotationTokenPrefix = "a:"

// Option configures a Session.
type Option func(*Session)

// WithBus attaches an event bus. Without one, events are not published.
func WithBus(bus *event.Bus) Option {
	return func(s *Session) { s.bus = bus }
}

// WithNotifier attaches a backend mirror channel.
func WithNotifier(n backend.Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithLogger attaches a logger.
func WithLogger(log *Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithEngineOptions forwards options to the engine.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(s *Session) { s.engineOpts = append(s.engineOpts, opts...) }
}

// Session is one open document.
type Session struct {
	name     string
	eng      *engine.Engine
	bus      *event.Bus
	notifier backend.Notifier
	log      *Logger

	engineOpts []engine.Option
}

// Open creates a session for the given sequence text.
func Open(ctx context.Context, name, text string, opts ...Option) (*Session, error) {
	s := &Session{
		name:     name,
		notifier: backend.NopNotifier{},
		log:      NullLogger,
	}
	for _, opt := range opts {
		opt(s)
	}

	engineOpts := append([]engine.Option{engine.WithSequence(text)}, s.engineOpts...)
	eng, err := engine.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	s.eng = eng

	s.log = s.log.WithDocument(name)
	s.log.Info("session opened, %d bases", eng.Len())
	s.publish(ctx, event.SessionOpened{Name: name, Length: eng.Len(), Circular: eng.Circular()})

	op := backend.NewOperation(backend.OpSessionOpen, s.name)
	op.Revision = uint64(eng.Revision())
	s.notifier.Notify(op)
	return s, nil
}

// OpenFile creates a session from a single-record FASTA file.
func OpenFile(ctx context.Context, path string, opts ...Option) (*Session, error) {
	rec, err := fasta.ReadOne(path)
	if err != nil {
		return nil, err
	}
	return Open(ctx, rec.Name, rec.Sequence, opts...)
}

// Name returns the document name.
func (s *Session) Name() string { return s.name }

// Engine exposes the underlying engine for read access.
func (s *Session) Engine() *engine.Engine { return s.eng }

// Close ends the session and shuts the mirror channel down.
func (s *Session) Close(ctx context.Context) error {
	s.publish(ctx, event.SessionClosed{Name: s.name})
	s.notifier.Notify(backend.NewOperation(backend.OpSessionClose, s.name))
	s.log.Info("session closed")
	return s.notifier.Close()
}

// ============================================================================
// Selection
// ============================================================================

// Select interprets a selection token: "a:<id>" selects the named
// annotation's span, "" clears the selection, anything else is parsed as
// span notation. A failed parse leaves the selection untouched.
func (s *Session) Select(ctx context.Context, token string) error {
	switch {
	case token == "":
		s.eng.ClearSelection()
	case strings.HasPrefix(token, AnnotationTokenPrefix):
		id := strings.TrimPrefix(token, AnnotationTokenPrefix)
		if err := s.eng.SelectAnnotation(id); err != nil {
			return fmt.Errorf("selecting annotation %q: %w", id, err)
		}
	default:
		if err := s.eng.Select(token); err != nil {
			return err
		}
	}
	s.publish(ctx, event.SelectionChanged{Ranges: s.eng.Selection()})
	return nil
}

// AddSelectionRange appends a disjoint range to the selection.
func (s *Session) AddSelectionRange(ctx context.Context, start, end int) error {
	if err := s.eng.AddSelectionRange(start, end); err != nil {
		return err
	}
	s.publish(ctx, event.SelectionChanged{Ranges: s.eng.Selection()})
	return nil
}

// ============================================================================
// Edits
// ============================================================================

// Insert inserts text at pos.
func (s *Session) Insert(ctx context.Context, pos int, text string) (engine.ChangeSet, error) {
	cs, err := s.eng.InsertText(pos, text)
	if err != nil {
		return cs, err
	}
	s.log.Debug("insert %d bases at %d", len(text), pos)
	s.afterEdit(ctx, cs, []string{text})
	return cs, nil
}

// DeleteSelection deletes every selected range.
func (s *Session) DeleteSelection(ctx context.Context) (engine.ChangeSet, error) {
	cs, err := s.eng.DeleteSelection()
	if err != nil {
		return cs, err
	}
	s.log.Debug("deleted %d bases", -cs.Delta())
	s.afterEdit(ctx, cs, make([]string, len(cs.Splices)))
	return cs, nil
}

// DeleteRange deletes [start, end).
func (s *Session) DeleteRange(ctx context.Context, start, end int) (engine.ChangeSet, error) {
	cs, err := s.eng.DeleteRange(start, end)
	if err != nil {
		return cs, err
	}
	s.afterEdit(ctx, cs, make([]string, len(cs.Splices)))
	return cs, nil
}

// Replace replaces the single selected range with text.
func (s *Session) Replace(ctx context.Context, text string) (engine.ChangeSet, error) {
	cs, err := s.eng.ReplaceSelection(text)
	if err != nil {
		return cs, err
	}
	s.afterEdit(ctx, cs, []string{text})
	return cs, nil
}

// Undo reverses the most recent edit.
func (s *Session) Undo(ctx context.Context) (engine.ChangeSet, error) {
	cs, err := s.eng.Undo()
	if err != nil {
		return cs, err
	}
	s.publish(ctx, event.HistoryApplied{Revision: cs.Revision})
	s.publish(ctx, event.SelectionChanged{Ranges: cs.Selection})
	return cs, nil
}

// Redo re-applies the most recently undone edit.
func (s *Session) Redo(ctx context.Context) (engine.ChangeSet, error) {
	cs, err := s.eng.Redo()
	if err != nil {
		return cs, err
	}
	s.publish(ctx, event.HistoryApplied{Redo: true, Revision: cs.Revision})
	s.publish(ctx, event.SelectionChanged{Ranges: cs.Selection})
	return cs, nil
}

// ============================================================================
// Annotations
// ============================================================================

// AddAnnotation creates an annotation and mirrors it.
func (s *Session) AddAnnotation(ctx context.Context, spec engine.AnnotationSpec) (*engine.Annotation, error) {
	a, _, err := s.eng.AddAnnotation(spec)
	if err != nil {
		return nil, err
	}
	s.log.Debug("annotation %s created at %s", a.ID, a.Span)
	s.publish(ctx, event.NewAnnotationCreated(a.ID, a.Span))
	s.notifier.Notify(s.annotationUpsert(a))
	return a, nil
}

// UpdateAnnotation replaces an annotation's fields and mirrors the change.
func (s *Session) UpdateAnnotation(ctx context.Context, id string, spec engine.AnnotationSpec) error {
	if _, err := s.eng.UpdateAnnotation(id, spec); err != nil {
		return err
	}
	a, err := s.eng.AnnotationByID(id)
	if err != nil {
		return err
	}
	s.publish(ctx, event.NewAnnotationMutated(id, a.Span, a.Span.IsDegenerate()))
	s.notifier.Notify(s.annotationUpsert(a))
	return nil
}

// RemoveAnnotation deletes an annotation and mirrors the removal.
func (s *Session) RemoveAnnotation(ctx context.Context, id string) error {
	if _, err := s.eng.RemoveAnnotation(id); err != nil {
		return err
	}
	s.publish(ctx, event.NewAnnotationRemoved(id))
	op := backend.NewOperation(backend.OpAnnotationDelete, s.name)
	op.Removed = []string{id}
	s.notifier.Notify(op)
	return nil
}

// MergeAnnotationRanges merges two adjacent ranges of an annotation span.
func (s *Session) MergeAnnotationRanges(ctx context.Context, id string, i int, dir annot.MergeDirection) (bool, error) {
	merged, err := s.eng.MergeAnnotationRanges(id, i, dir)
	if err != nil || !merged {
		return merged, err
	}
	a, err := s.eng.AnnotationByID(id)
	if err != nil {
		return true, err
	}
	s.publish(ctx, event.NewAnnotationMutated(id, a.Span, false))
	s.notifier.Notify(s.annotationUpsert(a))
	return true, nil
}

// SubtractAnnotation removes the annotation's span from the selection.
func (s *Session) SubtractAnnotation(ctx context.Context, id string) error {
	cs, err := s.eng.SubtractAnnotationFromSelection(id)
	if err != nil {
		return err
	}
	s.publish(ctx, event.SelectionChanged{Ranges: cs.Selection})
	return nil
}

// ============================================================================
// Persistence
// ============================================================================

// SaveFASTA writes the sequence to a FASTA file.
func (s *Session) SaveFASTA(path string) error {
	rec := fasta.Record{Name: s.name, Sequence: s.eng.Text()}
	if err := fasta.WriteFile(path, []fasta.Record{rec}, 0); err != nil {
		return err
	}
	s.log.Info("saved to %s", path)
	return nil
}

// ============================================================================
// Internals
// ============================================================================

// afterEdit publishes the ChangeSet and mirrors the edit. inserted holds
// the text each splice put in, parallel to cs.Splices.
func (s *Session) afterEdit(ctx context.Context, cs engine.ChangeSet, inserted []string) {
	s.publish(ctx, event.SequenceEdited{
		Revision: cs.Revision,
		Splices:  cs.Splices,
		Delta:    cs.Delta(),
	})
	s.publish(ctx, event.SelectionChanged{Ranges: cs.Selection})
	for _, id := range cs.Mutated {
		degenerate := false
		for _, d := range cs.Degenerate {
			if d == id {
				degenerate = true
				break
			}
		}
		if a, err := s.eng.AnnotationByID(id); err == nil {
			s.publish(ctx, event.NewAnnotationMutated(id, a.Span, degenerate))
		}
	}

	op := backend.NewOperation(backend.OpSequenceEdit, s.name)
	op.Revision = uint64(cs.Revision)
	for i, sp := range cs.Splices {
		rec := backend.SpliceRecord{Pos: sp.Pos, Removed: sp.Removed}
		if i < len(inserted) {
			rec.Inserted = inserted[i]
		}
		op.Splices = append(op.Splices, rec)
	}
	s.notifier.Notify(op)
}

func (s *Session) annotationUpsert(a *engine.Annotation) backend.Operation {
	op := backend.NewOperation(backend.OpAnnotationUpsert, s.name)
	op.Records = []backend.AnnotationRecord{{
		ID:         a.ID,
		Caption:    a.Caption,
		Type:       a.Type,
		Span:       a.Span.String(),
		Attributes: a.Attributes,
	}}
	return op
}

func (s *Session) publish(ctx context.Context, ev any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, ev); err != nil {
		s.log.Warn("event publish failed: %v", err)
	}
}
