package event

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
)

// Handler processes a delivered event.
type Handler interface {
	Handle(ctx context.Context, ev any) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, ev any) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, ev any) error {
	return f(ctx, ev)
}

// FilterFunc is an optional per-subscription predicate. Events are only
// delivered when the filter returns true.
type FilterFunc func(ev any) bool

// Priority determines delivery order; lower values deliver first.
type Priority int

// Standard priorities.
const (
	PriorityHigh   Priority = -10
	PriorityNormal Priority = 0
	PriorityLow    Priority = 10
)

// Stats is a snapshot of bus counters.
type Stats struct {
	EventsPublished   uint64
	EventsDelivered   uint64
	HandlerErrors     uint64
	HandlerPanics     uint64
	ActiveSubscribers int
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*subscription)

// WithPriority sets the delivery priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(s *subscription) { s.priority = p }
}

// WithFilter sets a delivery predicate.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(s *subscription) { s.filter = f }
}

// WithOnce auto-cancels the subscription after its first delivery.
func WithOnce() SubscriptionOption {
	return func(s *subscription) { s.once = true }
}

// Subscription is a handle for cancelling a subscription.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() uint64

	// Pattern returns the subscribed topic pattern.
	Pattern() Topic

	// Cancel permanently stops delivery.
	Cancel()
}

type subscription struct {
	id       uint64
	pattern  Topic
	handler  Handler
	filter   FilterFunc
	priority Priority
	once     bool

	cancelled atomic.Bool
	bus       *Bus
}

func (s *subscription) ID() uint64     { return s.id }
func (s *subscription) Pattern() Topic { return s.pattern }

func (s *subscription) Cancel() {
	if s.cancelled.CompareAndSwap(false, true) {
		s.bus.remove(s.id)
	}
}

// Bus delivers published events to matching subscriptions, synchronously,
// in priority order. It is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscription
	nextID atomic.Uint64

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for every event whose topic matches
// pattern.
func (b *Bus) Subscribe(pattern Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if pattern == "" {
		return nil, ErrInvalidTopic
	}

	sub := &subscription{
		id:       b.nextID.Add(1),
		pattern:  pattern,
		handler:  handler,
		priority: PriorityNormal,
		bus:      b,
	}
	for _, opt := range opts {
		opt(sub)
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	sort.SliceStable(b.subs, func(i, j int) bool {
		return b.subs[i].priority < b.subs[j].priority
	})
	b.mu.Unlock()
	return sub, nil
}

// SubscribeFunc registers a function handler.
func (b *Bus) SubscribeFunc(pattern Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe cancels a subscription obtained from Subscribe.
func (b *Bus) Unsubscribe(sub Subscription) error {
	s, ok := sub.(*subscription)
	if !ok || s == nil {
		return ErrSubscriptionNotFound
	}
	if s.cancelled.Load() {
		return ErrSubscriptionNotFound
	}
	s.Cancel()
	return nil
}

// Publish delivers ev to every matching subscription and returns the
// first handler error, after all handlers have run. A panicking handler
// is recovered and counted; delivery continues.
func (b *Bus) Publish(ctx context.Context, ev any) error {
	tp, ok := ev.(TopicProvider)
	if !ok {
		return ErrInvalidEvent
	}
	topic := tp.EventTopic()
	if topic == "" || topic.IsPattern() {
		return ErrInvalidEvent
	}
	b.eventsPublished.Add(1)

	b.mu.RLock()
	matched := make([]*subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if topic.Matches(s.pattern) {
			matched = append(matched, s)
		}
	}
	b.mu.RUnlock()

	var firstErr error
	for _, s := range matched {
		if s.cancelled.Load() {
			continue
		}
		if s.filter != nil && !s.filter(ev) {
			continue
		}
		if err := b.deliver(ctx, s, ev); err != nil {
			b.handlerErrors.Add(1)
			if firstErr == nil {
				firstErr = err
			}
		} else {
			b.eventsDelivered.Add(1)
		}
		if s.once {
			s.Cancel()
		}
	}
	return firstErr
}

func (b *Bus) deliver(ctx context.Context, s *subscription, ev any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			err = nil
		}
	}()
	return s.handler.Handle(ctx, ev)
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	active := len(b.subs)
	b.mu.RUnlock()
	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		EventsDelivered:   b.eventsDelivered.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: active,
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}
