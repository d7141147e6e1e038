package events

import (
	"sync"
)

// Feed is a type-safe pub/sub fan-out point. Subscribers attach either a
// channel or a callback and receive every subsequent Publish. Channel
// delivery is non-blocking: a full channel misses that value rather than
// stalling the publisher.
type Feed[T any] struct {
	mu         sync.RWMutex
	subs       map[uint64]subscriber[T]
	nextID     uint64
	replayLast bool
	last       *T
}

// subscriber holds exactly one delivery target.
type subscriber[T any] struct {
	ch chan<- T
	fn func(T)
}

func (s subscriber[T]) deliver(value T) {
	if s.fn != nil {
		s.fn(value)
		return
	}
	select {
	case s.ch <- value:
	default:
		// Subscriber is not keeping up, drop this value for it.
	}
}

// NewFeed creates a Feed. With replayLast set, a new subscriber immediately
// receives the most recently published value, if any.
func NewFeed[T any](replayLast bool) *Feed[T] {
	return &Feed[T]{
		subs:       make(map[uint64]subscriber[T]),
		replayLast: replayLast,
	}
}

// Subscribe registers a channel to receive published values.
// The returned cancel function removes the subscription; calling it more
// than once is safe.
func (f *Feed[T]) Subscribe(ch chan<- T) func() {
	if ch == nil {
		panic("events: subscribe channel cannot be nil")
	}
	return f.add(subscriber[T]{ch: ch})
}

// SubscribeFunc registers a callback to be invoked with published values.
// Callbacks run on the publisher's goroutine, outside the Feed's lock.
func (f *Feed[T]) SubscribeFunc(fn func(T)) func() {
	if fn == nil {
		panic("events: subscribe callback cannot be nil")
	}
	return f.add(subscriber[T]{fn: fn})
}

func (f *Feed[T]) add(sub subscriber[T]) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = sub

	var replay *T
	if f.replayLast && f.last != nil {
		v := *f.last
		replay = &v
	}
	f.mu.Unlock()

	// Replay outside the lock so a synchronous callback cannot deadlock.
	if replay != nil {
		sub.deliver(*replay)
	}

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// Publish delivers value to every current subscriber.
func (f *Feed[T]) Publish(value T) {
	f.mu.Lock()
	if f.replayLast {
		v := value
		f.last = &v
	}
	targets := make([]subscriber[T], 0, len(f.subs))
	for _, sub := range f.subs {
		targets = append(targets, sub)
	}
	f.mu.Unlock()

	for _, sub := range targets {
		sub.deliver(value)
	}
}

// SubscriberCount returns the number of active subscriptions.
func (f *Feed[T]) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}
