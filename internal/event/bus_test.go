package event

import (
	"sync"
	"testing"
	"time"

	"github.com/Iron-Ham/archiveflow/internal/steps"
)

var at = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus(nil)

	called := false
	id := bus.Subscribe(TypeStepChanged, func(e Event) {
		called = true
	})

	if id == "" {
		t.Error("Subscribe should return a non-empty ID")
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("Expected 1 subscription, got %d", bus.SubscriptionCount())
	}
	if called {
		t.Error("Handler should not be called until an event is published")
	}
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus(nil)

	var received Event
	bus.Subscribe(TypeStepChanged, func(e Event) {
		received = e
	})

	bus.Publish(NewStepChangedEvent(at, 3, "lock-decision", steps.StateActive))

	if received == nil {
		t.Fatal("Handler should have received the event")
	}
	sc, ok := received.(StepChangedEvent)
	if !ok {
		t.Fatalf("received %T, want StepChangedEvent", received)
	}
	if sc.Index != 3 || sc.StepID != "lock-decision" || sc.State != steps.StateActive {
		t.Errorf("unexpected payload: %+v", sc)
	}
	if !sc.Timestamp().Equal(at) {
		t.Errorf("Timestamp() = %v, want %v", sc.Timestamp(), at)
	}
}

func TestBus_PublishNoMatchingHandlers(t *testing.T) {
	bus := NewBus(nil)

	bus.Subscribe(TypeInfoShown, func(e Event) {
		t.Error("Handler should not be called for non-matching event type")
	})

	bus.Publish(NewProgressEvent(at, 50))
}

func TestBus_SubscribeAllPreservesOrder(t *testing.T) {
	bus := NewBus(nil)

	var got []string
	bus.SubscribeAll(func(e Event) {
		got = append(got, e.EventType())
	})

	bus.Publish(NewRunStartedEvent(at, "r1", "normal"))
	bus.Publish(NewBoardClearedEvent(at, 10))
	bus.Publish(NewRunFinishedEvent(at, "r1", "normal", "completed"))

	want := []string{TypeRunStarted, TypeBoardCleared, TypeRunFinished}
	if len(got) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBus_SpecificBeforeWildcard(t *testing.T) {
	bus := NewBus(nil)

	var order []string
	bus.SubscribeAll(func(e Event) { order = append(order, "wildcard") })
	bus.Subscribe(TypeInfoHidden, func(e Event) { order = append(order, "specific") })

	bus.Publish(NewInfoHiddenEvent(at))

	if len(order) != 2 || order[0] != "specific" || order[1] != "wildcard" {
		t.Errorf("order = %v, want [specific wildcard]", order)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil)

	calls := make(map[string]int)
	id1 := bus.Subscribe(TypeStepPulsed, func(e Event) { calls["h1"]++ })
	bus.Subscribe(TypeStepPulsed, func(e Event) { calls["h2"]++ })

	if !bus.Unsubscribe(id1) {
		t.Error("Unsubscribe should return true when subscription exists")
	}
	if bus.Unsubscribe(id1) {
		t.Error("Unsubscribe should return false the second time")
	}

	bus.Publish(NewStepPulsedEvent(at, 1))

	if calls["h1"] != 0 {
		t.Error("h1 should not be called after unsubscribing")
	}
	if calls["h2"] != 1 {
		t.Error("h2 should still be called")
	}
}

func TestBus_UnsubscribeAcrossTopics(t *testing.T) {
	bus := NewBus(nil)

	started := bus.Subscribe(TypeRunStarted, func(e Event) {})
	bus.Subscribe(TypeRunFinished, func(e Event) {})
	all := bus.SubscribeAll(func(e Event) {})

	if bus.SubscriptionCount() != 3 {
		t.Errorf("Expected 3 subscriptions, got %d", bus.SubscriptionCount())
	}
	if !bus.Unsubscribe(all) || !bus.Unsubscribe(started) {
		t.Fatal("Unsubscribe should find both ids")
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("Expected 1 subscription left, got %d", bus.SubscriptionCount())
	}
}

func TestBus_HandlerPanicRecovery(t *testing.T) {
	bus := NewBus(nil)

	calls := 0
	bus.Subscribe(TypeArrowAnimated, func(e Event) {
		calls++
		panic("handler panic")
	})
	bus.Subscribe(TypeArrowAnimated, func(e Event) {
		calls++
	})

	bus.Publish(NewArrowAnimatedEvent(at, 2))

	if calls != 2 {
		t.Errorf("Expected both handlers to be called despite panic, got %d calls", calls)
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(nil)

	var mu sync.Mutex
	calls := 0
	bus.Subscribe(TypeProgress, func(e Event) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Go(func() {
			bus.Publish(NewProgressEvent(at, float64(i)))
		})
	}
	wg.Wait()

	if calls != 100 {
		t.Errorf("Expected 100 calls, got %d", calls)
	}
}

func TestBus_ConcurrentSubscribeUnsubscribe(t *testing.T) {
	bus := NewBus(nil)

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			id := bus.Subscribe(TypeProgress, func(e Event) {})
			bus.Unsubscribe(id)
		})
	}
	wg.Wait()

	if bus.SubscriptionCount() != 0 {
		t.Errorf("Expected 0 subscriptions after concurrent add/remove, got %d", bus.SubscriptionCount())
	}
}
