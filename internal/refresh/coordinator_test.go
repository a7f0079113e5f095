package refresh

import (
	"context"
	"testing"
)

func TestBumpDeliversOneEventPerSubscriber(t *testing.T) {
	c := New(nil)

	var first, second []uint64
	c.Subscribe(func(_ context.Context, ev Event) { first = append(first, ev.Version) })
	c.Subscribe(func(_ context.Context, ev Event) { second = append(second, ev.Version) })

	const bumps = 5
	for i := 0; i < bumps; i++ {
		c.Bump(context.Background(), "created")
	}

	if len(first) != bumps || len(second) != bumps {
		t.Fatalf("expected %d events per subscriber, got %d and %d", bumps, len(first), len(second))
	}

	for i, v := range first {
		if v != uint64(i+1) {
			t.Fatalf("expected version %d, got %d", i+1, v)
		}
	}

	if c.Version() != bumps {
		t.Fatalf("expected version %d, got %d", bumps, c.Version())
	}
}

func TestSubscribeDoesNotReplayInitialValue(t *testing.T) {
	c := New(nil)
	calls := 0
	c.Subscribe(func(context.Context, Event) { calls++ })

	if calls != 0 {
		t.Fatalf("expected no delivery on subscribe, got %d", calls)
	}
	if c.Version() != 0 {
		t.Fatalf("expected initial version 0, got %d", c.Version())
	}
}

func TestUnsubscribe(t *testing.T) {
	c := New(nil)
	calls := 0
	unsubscribe := c.Subscribe(func(context.Context, Event) { calls++ })

	c.Bump(context.Background(), "deleted")
	unsubscribe()
	c.Bump(context.Background(), "deleted")

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestHandlerMayBumpWithoutDeadlock(t *testing.T) {
	c := New(nil)
	nested := false
	c.Subscribe(func(ctx context.Context, ev Event) {
		if ev.Version == 1 {
			c.Bump(ctx, "nested")
			nested = true
		}
	})

	c.Bump(context.Background(), "outer")

	if !nested || c.Version() != 2 {
		t.Fatalf("expected nested bump to reach version 2, got %d", c.Version())
	}
}

func TestTrackerObserve(t *testing.T) {
	var tr Tracker

	if tr.Observe(0) {
		t.Fatalf("initial value must not count as a change")
	}
	if !tr.Observe(1) {
		t.Fatalf("expected change for version 1")
	}
	if tr.Observe(1) {
		t.Fatalf("repeated version must not count as a change")
	}
	if !tr.Observe(7) {
		t.Fatalf("expected change for version 7")
	}
	if tr.Last() != 7 {
		t.Fatalf("expected last version 7, got %d", tr.Last())
	}
}
