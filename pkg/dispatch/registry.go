package dispatch

import (
	"sync"

	"github.com/goliatone/go-formvalidate/pkg/event"
)

// Selector returns the event source an item should be observed through.
type Selector[T any] func(item T) event.Source

// Registry owns the subscriptions made on behalf of a consumer callback and
// the calls queued before the consumer became ready.
type Registry[T any] struct {
	callback func(T)

	mu            sync.Mutex
	ready         bool
	draining      bool
	pending       []func()
	subscriptions []event.Subscription
}

// New constructs a registry in the not-ready state. A nil callback is
// replaced by a no-op.
func New[T any](callback func(T)) *Registry[T] {
	if callback == nil {
		callback = func(T) {}
	}
	return &Registry[T]{callback: callback}
}

// Subscribe observes the source of every item. Each emission dispatches the
// callback with the item that owns the source. With invokeImmediately the
// callback is also dispatched once per item at subscription time. Items whose
// selector returns nil are skipped.
func (r *Registry[T]) Subscribe(items []T, selector Selector[T], invokeImmediately bool) {
	if len(items) == 0 || selector == nil {
		return
	}
	for _, item := range items {
		r.SubscribeOne(item, selector, invokeImmediately)
	}
}

// SubscribeOne is Subscribe for a single item.
func (r *Registry[T]) SubscribeOne(item T, selector Selector[T], invokeImmediately bool) {
	if selector == nil {
		return
	}
	source := selector(item)
	if source == nil {
		return
	}

	subscription := source.Listen(func() { r.dispatch(item) })

	r.mu.Lock()
	r.subscriptions = append(r.subscriptions, subscription)
	r.mu.Unlock()

	if invokeImmediately {
		r.dispatch(item)
	}
}

// MarkReady runs the queued calls in the order they were dispatched and
// switches the registry to direct invocation. Calls dispatched while the
// queue drains are appended to it and run before MarkReady returns. Calls
// after the registry is ready are no-ops. A call made while another
// MarkReady is still draining, including one made from a queued callback,
// returns at once without waiting for the drain; Ready reports false until
// the draining call completes.
func (r *Registry[T]) MarkReady() {
	r.mu.Lock()
	if r.ready || r.draining {
		r.mu.Unlock()
		return
	}
	r.draining = true
	r.mu.Unlock()

	for {
		r.mu.Lock()
		if len(r.pending) == 0 {
			r.pending = nil
			r.draining = false
			r.ready = true
			r.mu.Unlock()
			return
		}
		next := r.pending[0]
		r.pending = r.pending[1:]
		r.mu.Unlock()

		next()
	}
}

// UnsubscribeAll cancels every active subscription. The ready state and the
// queued calls are left untouched.
func (r *Registry[T]) UnsubscribeAll() {
	r.mu.Lock()
	subscriptions := r.subscriptions
	r.subscriptions = nil
	r.mu.Unlock()

	for _, subscription := range subscriptions {
		subscription.Unsubscribe()
	}
}

// Ready reports whether MarkReady has completed.
func (r *Registry[T]) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// Pending reports the number of queued calls.
func (r *Registry[T]) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Len reports the number of active subscriptions.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscriptions)
}

func (r *Registry[T]) dispatch(item T) {
	r.mu.Lock()
	if !r.ready {
		r.pending = append(r.pending, func() { r.callback(item) })
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	r.callback(item)
}
