// Package dispatch subscribes a callback to the event sources of a changing
// set of items and holds back invocations until the owner signals that it is
// ready.
//
// Before MarkReady, every emission queues a call. MarkReady drains the queue
// in order and from then on emissions invoke the callback directly:
//
//	registry := dispatch.New(func(c forms.Control) { refresh(c) })
//	registry.Subscribe(controls, func(c forms.Control) event.Source {
//		return c.StatusChanges()
//	}, true)
//	registry.MarkReady()
package dispatch
