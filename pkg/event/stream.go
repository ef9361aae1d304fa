package event

import "sync"

// Subscription is a handle to an active observer. Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}

// Source is implemented by anything that can notify a value-less listener.
// Stream satisfies it, which lets callers subscribe without knowing the
// stream's element type.
type Source interface {
	Listen(fn func()) Subscription
}

// Stream is a synchronous multicast stream of T values. The zero value is ready
// to use.
type Stream[T any] struct {
	mu        sync.Mutex
	nextID    uint64
	observers []observer[T]
}

type observer[T any] struct {
	id uint64
	fn func(T)
}

// NewStream constructs an empty stream.
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{}
}

var _ Source = (*Stream[struct{}])(nil)

// Subscribe registers fn for every subsequent emission. A nil fn yields a
// no-op subscription.
func (s *Stream[T]) Subscribe(fn func(T)) Subscription {
	if s == nil || fn == nil {
		return noopSubscription{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observer[T]{id: id, fn: fn})
	return &subscription[T]{stream: s, id: id}
}

// Listen registers a listener that ignores the emitted value.
func (s *Stream[T]) Listen(fn func()) Subscription {
	if fn == nil {
		return noopSubscription{}
	}
	return s.Subscribe(func(T) { fn() })
}

// Emit delivers value to every observer registered at the time of the call.
// Observers added while emitting wait for the next emission; observers removed
// while emitting are skipped.
func (s *Stream[T]) Emit(value T) {
	if s == nil {
		return
	}

	s.mu.Lock()
	snapshot := append([]observer[T](nil), s.observers...)
	s.mu.Unlock()

	for _, obs := range snapshot {
		if !s.active(obs.id) {
			continue
		}
		obs.fn(value)
	}
}

// Len reports the number of active observers.
func (s *Stream[T]) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

func (s *Stream[T]) active(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obs := range s.observers {
		if obs.id == id {
			return true
		}
	}
	return false
}

func (s *Stream[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for idx, obs := range s.observers {
		if obs.id == id {
			s.observers = append(s.observers[:idx:idx], s.observers[idx+1:]...)
			return
		}
	}
}

type subscription[T any] struct {
	once   sync.Once
	stream *Stream[T]
	id     uint64
}

func (s *subscription[T]) Unsubscribe() {
	s.once.Do(func() {
		s.stream.remove(s.id)
	})
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}
