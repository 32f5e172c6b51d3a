package event

import (
	"github.com/dshills/seqstorm/internal/engine/coord"
	"github.com/dshills/seqstorm/internal/engine/sequence"
	"github.com/dshills/seqstorm/internal/engine/splice"
)

// TopicProvider lets an event name its own topic. Every event type in
// this package implements it.
type TopicProvider interface {
	EventTopic() Topic
}

// SequenceEdited reports an applied edit.
type SequenceEdited struct {
	Revision sequence.RevisionID
	Splices  []splice.Splice
	Delta    int
}

// EventTopic implements TopicProvider.
func (SequenceEdited) EventTopic() Topic { return TopicSequenceEdited }

// SelectionChanged reports the post-change selection. Ranges is nil when
// the selection was cleared.
type SelectionChanged struct {
	Ranges []coord.Range
}

// EventTopic implements TopicProvider.
func (SelectionChanged) EventTopic() Topic { return TopicSelectionChanged }

// AnnotationChanged reports one annotation lifecycle transition. The same
// payload serves created, mutated, and removed topics.
type AnnotationChanged struct {
	ID         string
	Span       coord.Span
	Degenerate bool

	topic Topic
}

// NewAnnotationCreated builds a creation event.
func NewAnnotationCreated(id string, span coord.Span) AnnotationChanged {
	return AnnotationChanged{ID: id, Span: span, topic: TopicAnnotationCreated}
}

// NewAnnotationMutated builds a span-mutation event.
func NewAnnotationMutated(id string, span coord.Span, degenerate bool) AnnotationChanged {
	return AnnotationChanged{ID: id, Span: span, Degenerate: degenerate, topic: TopicAnnotationMutated}
}

// NewAnnotationRemoved builds a removal event.
func NewAnnotationRemoved(id string) AnnotationChanged {
	return AnnotationChanged{ID: id, topic: TopicAnnotationRemoved}
}

// EventTopic implements TopicProvider.
func (e AnnotationChanged) EventTopic() Topic { return e.topic }

// HistoryApplied reports an undo or redo restoring prior state.
type HistoryApplied struct {
	Redo     bool
	Revision sequence.RevisionID
}

// EventTopic implements TopicProvider.
func (e HistoryApplied) EventTopic() Topic {
	if e.Redo {
		return TopicHistoryRedo
	}
	return TopicHistoryUndo
}

// BackendAcked reports a backend acknowledgement for a mirrored operation.
type BackendAcked struct {
	OpID string
	OK   bool
	Err  string
}

// EventTopic implements TopicProvider.
func (BackendAcked) EventTopic() Topic { return TopicBackendAcked }

// SessionOpened reports a newly opened document session.
type SessionOpened struct {
	Name     string
	Length   int
	Circular bool
}

// EventTopic implements TopicProvider.
func (SessionOpened) EventTopic() Topic { return TopicSessionOpened }

// SessionClosed reports a closed document session.
type SessionClosed struct {
	Name string
}

// EventTopic implements TopicProvider.
func (SessionClosed) EventTopic() Topic { return TopicSessionClosed }
