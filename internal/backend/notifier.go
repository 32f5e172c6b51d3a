// Package backend mirrors editor operations to a persistence service over
// a websocket. The channel is fire-and-forget: the editor never blocks on
// the backend, sends carry idempotent operation ids so redelivery after a
// reconnect is safe, and acknowledgements arrive asynchronously.
package backend

// AckFunc is called for every acknowledgement the server returns.
type AckFunc func(ack Ack)

// Notifier is the editor-facing side of the mirror channel.
type Notifier interface {
	// Notify queues an operation for delivery. It never blocks; when the
	// outbound queue is full the operation is dropped and counted.
	Notify(op Operation)

	// Close shuts the channel down and releases its resources.
	Close() error
}

// NopNotifier discards every operation. Used when no backend is
// configured.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(Operation) {}

// Close implements Notifier.
func (NopNotifier) Close() error { return nil }
