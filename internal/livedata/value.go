// Package livedata provides observable values for view-model state.
//
// A Value pushes every Set to its observers and replays the latest value to
// new observers. An Event carries one-shot signals (toasts, navigation) that
// the consumer clears once acted upon.
package livedata

import "sync"

type observer[T any] struct {
	id int
	fn func(T)
}

// subscriber delivers to one Value observer. seen is the version last
// delivered so a replay racing a Set never lands after a newer value.
type subscriber[T any] struct {
	id   int
	fn   func(T)
	mu   sync.Mutex
	seen uint64
}

func (s *subscriber[T]) deliver(val T, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version <= s.seen {
		return
	}
	s.seen = version
	s.fn(val)
}

type Value[T any] struct {
	mu        sync.Mutex
	notifyMu  sync.Mutex
	value     T
	version   uint64
	nextID    int
	observers []*subscriber[T]
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial, version: 1}
}

func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// IsSet reports whether a value was ever assigned.
func (v *Value[T]) IsSet() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.version > 0
}

// Set stores val and notifies observers in registration order. Concurrent
// Sets are delivered one at a time.
func (v *Value[T]) Set(val T) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	v.value = val
	v.version++
	version := v.version
	observers := append([]*subscriber[T](nil), v.observers...)
	v.mu.Unlock()

	for _, o := range observers {
		o.deliver(val, version)
	}
}

// Observe registers fn and replays the current value if one is set. The
// returned func unregisters it. fn may register further observers but must
// not call Set on the same Value.
func (v *Value[T]) Observe(fn func(T)) (cancel func()) {
	v.mu.Lock()
	sub := &subscriber[T]{id: v.nextID, fn: fn}
	v.nextID++
	v.observers = append(v.observers, sub)
	current, version := v.value, v.version
	v.mu.Unlock()

	if version > 0 {
		sub.deliver(current, version)
	}
	return func() { v.remove(sub.id) }
}

func (v *Value[T]) remove(id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, o := range v.observers {
		if o.id == id {
			v.observers = append(v.observers[:i], v.observers[i+1:]...)
			return
		}
	}
}

func (v *Value[T]) Observers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.observers)
}
