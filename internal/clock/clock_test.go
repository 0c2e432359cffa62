package clock

import (
	"sync/atomic"
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFake_AdvanceFiresInDueOrder(t *testing.T) {
	c := NewFake(epoch)
	var order []string

	c.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })

	c.Advance(250 * time.Millisecond)
	if got := len(order); got != 2 {
		t.Fatalf("fired %d callbacks, want 2", got)
	}
	c.Advance(50 * time.Millisecond)

	want := []string{"a", "b", "c"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
	if !c.Now().Equal(epoch.Add(300 * time.Millisecond)) {
		t.Errorf("Now() = %v", c.Now())
	}
}

func TestFake_SameInstantKeepsSchedulingOrder(t *testing.T) {
	c := NewFake(epoch)
	var order []int
	for i := range 5 {
		c.AfterFunc(time.Second, func() { order = append(order, i) })
	}
	c.Advance(time.Second)
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want ascending", order)
		}
	}
}

func TestFake_ChainedCallbacks(t *testing.T) {
	c := NewFake(epoch)
	var at []time.Duration

	var step func()
	step = func() {
		at = append(at, c.Now().Sub(epoch))
		if len(at) < 3 {
			c.AfterFunc(time.Second, step)
		}
	}
	c.AfterFunc(time.Second, step)

	c.Advance(10 * time.Second)

	want := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}
	if len(at) != len(want) {
		t.Fatalf("fired %d times, want %d", len(at), len(want))
	}
	for i := range want {
		if at[i] != want[i] {
			t.Errorf("fire %d at %v, want %v", i, at[i], want[i])
		}
	}
}

func TestFake_Stop(t *testing.T) {
	c := NewFake(epoch)
	var fired atomic.Bool

	timer := c.AfterFunc(time.Second, func() { fired.Store(true) })
	if c.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", c.Pending())
	}
	if !timer.Stop() {
		t.Error("first Stop() should return true")
	}
	if timer.Stop() {
		t.Error("second Stop() should return false")
	}
	c.Advance(2 * time.Second)
	if fired.Load() {
		t.Error("stopped timer fired")
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}
}

func TestFake_StopAfterFire(t *testing.T) {
	c := NewFake(epoch)
	timer := c.AfterFunc(0, func() {})
	c.Advance(0)
	if timer.Stop() {
		t.Error("Stop() after firing should return false")
	}
}

func TestReal_AfterFunc(t *testing.T) {
	done := make(chan struct{})
	Real{}.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real timer did not fire")
	}
}
