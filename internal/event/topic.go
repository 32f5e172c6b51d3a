package event

import "strings"

// Topic is a hierarchical dot-separated event name or pattern.
type Topic string

// Topics published by the editor.
const (
	// TopicSequenceEdited fires after a splice is applied to the sequence.
	TopicSequenceEdited Topic = "sequence.edited"

	// TopicSelectionChanged fires when the selection domain changes.
	TopicSelectionChanged Topic = "selection.changed"

	// TopicAnnotationCreated, TopicAnnotationMutated, and
	// TopicAnnotationRemoved track annotation lifecycle.
	TopicAnnotationCreated Topic = "annotation.created"
	TopicAnnotationMutated Topic = "annotation.mutated"
	TopicAnnotationRemoved Topic = "annotation.removed"

	// TopicHistoryUndo and TopicHistoryRedo fire after undo/redo restores
	// a prior state.
	TopicHistoryUndo Topic = "history.undo"
	TopicHistoryRedo Topic = "history.redo"

	// TopicBackendAcked fires when the backend acknowledges a mirrored
	// operation.
	TopicBackendAcked Topic = "backend.acked"

	// TopicSessionOpened and TopicSessionClosed track document sessions.
	TopicSessionOpened Topic = "session.opened"
	TopicSessionClosed Topic = "session.closed"
)

// Segments splits the topic at dots.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), ".")
}

// IsPattern returns true if the topic contains wildcards.
func (t Topic) IsPattern() bool {
	return strings.Contains(string(t), "*")
}

// Matches reports whether the concrete topic t matches the given pattern.
// "*" matches exactly one segment; "**" matches zero or more segments and
// is only meaningful as the final pattern segment.
func (t Topic) Matches(pattern Topic) bool {
	if t == pattern {
		return true
	}
	return matchSegments(t.Segments(), pattern.Segments())
}

func matchSegments(topic, pattern []string) bool {
	for i, p := range pattern {
		if p == "**" {
			return true
		}
		if i >= len(topic) {
			return false
		}
		if p != "*" && p != topic[i] {
			return false
		}
	}
	return len(topic) == len(pattern)
}
