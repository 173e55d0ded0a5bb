package stream

import "sync"

// Source is a single-slot broadcast cell: it holds the latest value and a
// list of subscribers notified in subscription order. New subscribers
// immediately receive the current value (replay-on-subscribe), then every
// subsequent change. There is no queue; a subscriber only ever sees the
// latest value, never a backlog of intermediates.
type Source[T any] struct {
	mu        sync.RWMutex
	value     T
	equals    func(a, b T) bool
	listeners map[int]func(T)
	order     []int
	nextID    int
}

// New creates a Source seeded with the provided value. Every Set publishes,
// regardless of whether the value changed.
func New[T any](initial T) *Source[T] {
	return &Source[T]{value: initial}
}

// NewWithEquality creates a Source that suppresses publication when the
// equality function reports the new value equal to the current one.
func NewWithEquality[T any](initial T, equals func(a, b T) bool) *Source[T] {
	return &Source[T]{value: initial, equals: equals}
}

// Value returns the current value.
func (s *Source[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores a new value and notifies subscribers in order. When an equality
// function is configured and reports no change, subscribers are not notified.
func (s *Source[T]) Set(value T) {
	s.mu.Lock()
	if s.equals != nil && s.equals(s.value, value) {
		s.mu.Unlock()
		return
	}
	s.value = value
	callbacks := s.snapshot()
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(value)
	}
}

// Subscribe registers a callback and returns its unsubscribe function. The
// callback is invoked synchronously with the current value before Subscribe
// returns, then once per subsequent change until unsubscribed. Unsubscribe is
// idempotent.
func (s *Source[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	if s.listeners == nil {
		s.listeners = make(map[int]func(T))
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	current := s.value
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i, candidate := range s.order {
			if candidate == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// HasSubscribers reports whether any callback is currently registered.
func (s *Source[T]) HasSubscribers() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners) > 0
}

func (s *Source[T]) snapshot() []func(T) {
	if len(s.order) == 0 {
		return nil
	}
	out := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		if fn, ok := s.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
