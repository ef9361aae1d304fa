package event_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidate/pkg/event"
)

func TestStreamEmitsInSubscriptionOrder(t *testing.T) {
	stream := event.NewStream[int]()

	var got []string
	stream.Subscribe(func(v int) { got = append(got, "a") })
	stream.Subscribe(func(v int) { got = append(got, "b") })

	stream.Emit(1)
	stream.Emit(2)

	want := []string{"a", "b", "a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("emission order mismatch (-want +got):\n%s", diff)
	}
}

func TestStreamUnsubscribeStopsDelivery(t *testing.T) {
	stream := event.NewStream[string]()

	calls := 0
	sub := stream.Subscribe(func(string) { calls++ })
	if stream.Len() != 1 {
		t.Fatalf("expected 1 observer, got %d", stream.Len())
	}

	sub.Unsubscribe()
	sub.Unsubscribe()
	stream.Emit("ignored")

	if calls != 0 {
		t.Fatalf("expected no calls after unsubscribe, got %d", calls)
	}
	if stream.Len() != 0 {
		t.Fatalf("expected 0 observers, got %d", stream.Len())
	}
}

func TestStreamListenIgnoresValue(t *testing.T) {
	var stream event.Stream[struct{}]

	called := false
	var src event.Source = &stream
	src.Listen(func() { called = true })
	stream.Emit(struct{}{})

	if !called {
		t.Fatalf("expected listener to be invoked")
	}
}

func TestStreamSubscribeDuringEmitWaitsForNextEmission(t *testing.T) {
	stream := event.NewStream[int]()

	late := 0
	var once bool
	stream.Subscribe(func(int) {
		if once {
			return
		}
		once = true
		stream.Subscribe(func(int) { late++ })
	})

	stream.Emit(1)
	if late != 0 {
		t.Fatalf("late observer fired during the emission that registered it")
	}
	stream.Emit(2)
	if late != 1 {
		t.Fatalf("expected late observer to fire once, got %d", late)
	}
}

func TestStreamRemovedDuringEmitIsSkipped(t *testing.T) {
	stream := event.NewStream[int]()

	var second event.Subscription
	calls := 0
	stream.Subscribe(func(int) { second.Unsubscribe() })
	second = stream.Subscribe(func(int) { calls++ })

	stream.Emit(1)
	if calls != 0 {
		t.Fatalf("expected removed observer to be skipped, got %d calls", calls)
	}
}
