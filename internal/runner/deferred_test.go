package runner

import (
	"reflect"
	"testing"
)

func TestDeferredQueueOrder(t *testing.T) {
	var q DeferredQueue
	var got []string
	q.Schedule(0.3, func() { got = append(got, "c") })
	q.Schedule(0.1, func() { got = append(got, "a") })
	q.Schedule(0.2, func() { got = append(got, "b1") })
	q.Schedule(0.2, func() { got = append(got, "b2") })

	if n := q.Drain(0.05); n != 0 {
		t.Fatalf("Drain before due ran %d callbacks", n)
	}
	if n := q.Drain(0.2); n != 3 {
		t.Fatalf("Drain(0.2) ran %d callbacks, want 3", n)
	}
	if q.Len() != 1 {
		t.Fatalf("Len = %d, want 1", q.Len())
	}
	q.Drain(1)

	want := []string{"a", "b1", "b2", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestDeferredQueueReset(t *testing.T) {
	var q DeferredQueue
	fired := false
	q.Schedule(0.1, func() { fired = true })
	q.Schedule(0.2, func() { fired = true })
	backing := q.calls[:cap(q.calls)]
	q.Reset()
	for i, c := range backing {
		if c.fn != nil {
			t.Errorf("slot %d still holds a callback after Reset", i)
		}
	}
	q.Drain(10)
	if fired || q.Len() != 0 {
		t.Error("callback survived Reset")
	}

	ran := false
	q.Schedule(0.1, func() { ran = true })
	if q.Drain(0.1) != 1 || !ran {
		t.Error("callback scheduled after Reset did not run")
	}
}

func TestContextAfterUsesGameTime(t *testing.T) {
	ctx := NewSimulationContext(1, 30)
	ctx.Time = 2
	fired := 0
	ctx.After(0.5, func() { fired++ })

	advance(ctx, 0.4)
	if fired != 0 {
		t.Fatal("callback fired early")
	}
	advance(ctx, 0.2)
	if fired != 1 {
		t.Fatalf("callback fired %d times, want 1", fired)
	}
	ctx.Teardown()
	if ctx.Pending() != 0 {
		t.Error("Teardown left callbacks pending")
	}
}
