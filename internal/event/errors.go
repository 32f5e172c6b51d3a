package event

import "errors"

// Errors returned by bus operations.
var (
	// ErrNilHandler indicates Subscribe was called without a handler.
	ErrNilHandler = errors.New("handler is nil")

	// ErrInvalidTopic indicates an empty topic or pattern.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrInvalidEvent indicates an event whose topic cannot be determined.
	ErrInvalidEvent = errors.New("event has no topic")

	// ErrSubscriptionNotFound indicates an unknown or already-removed
	// subscription.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
