package livedata

import "sync"

// Event is a one-shot signal. Emit notifies observers and leaves the value
// pending until Consume takes it. New observers are not replayed.
type Event[T any] struct {
	mu        sync.Mutex
	notifyMu  sync.Mutex
	pending   bool
	value     T
	nextID    int
	observers []observer[T]
}

func NewEvent[T any]() *Event[T] {
	return &Event[T]{}
}

func (e *Event[T]) Emit(val T) {
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()

	e.mu.Lock()
	e.value = val
	e.pending = true
	observers := append([]observer[T](nil), e.observers...)
	e.mu.Unlock()

	for _, o := range observers {
		o.fn(val)
	}
}

// Consume returns the pending value once and clears it.
func (e *Event[T]) Consume() (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var zero T
	if !e.pending {
		return zero, false
	}
	val := e.value
	e.value = zero
	e.pending = false
	return val, true
}

// Peek returns the pending value without clearing it.
func (e *Event[T]) Peek() (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value, e.pending
}

func (e *Event[T]) Observe(fn func(T)) (cancel func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.observers = append(e.observers, observer[T]{id: id, fn: fn})
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, o := range e.observers {
			if o.id == id {
				e.observers = append(e.observers[:i], e.observers[i+1:]...)
				return
			}
		}
	}
}
