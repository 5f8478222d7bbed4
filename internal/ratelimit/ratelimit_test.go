package ratelimit

import (
	"testing"
	"time"
)

// fakeClock lets tests move the limiter's notion of now.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(window time.Duration, max int) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	l := New(window, max)
	l.now = clock.now
	return l, clock
}

func TestCheckWindowBoundary(t *testing.T) {
	t.Parallel()

	l, clock := newTestLimiter(time.Minute, 3)

	for i := 1; i <= 3; i++ {
		res := l.Check("user")
		if !res.Allowed {
			t.Fatalf("request %d denied, want allowed", i)
		}
		if want := 3 - i; res.Remaining != want {
			t.Errorf("request %d: Remaining = %d, want %d", i, res.Remaining, want)
		}
	}

	if res := l.Check("user"); res.Allowed {
		t.Error("request past the maximum allowed, want denied")
	}

	clock.advance(time.Minute + time.Second)
	if res := l.Check("user"); !res.Allowed {
		t.Error("request after window expiry denied, want allowed")
	}
}

func TestCheckDenialsDoNotExtendWindow(t *testing.T) {
	t.Parallel()

	l, clock := newTestLimiter(time.Minute, 1)

	first := l.Check("user")
	if !first.Allowed {
		t.Fatal("first request denied, want allowed")
	}

	// A burst of denied requests must not push the reset time out.
	for i := 0; i < 10; i++ {
		if res := l.Check("user"); res.Allowed {
			t.Fatalf("burst request %d allowed, want denied", i)
		}
	}

	clock.advance(time.Minute + time.Second)
	if res := l.Check("user"); !res.Allowed {
		t.Error("request after original window denied, want allowed")
	}
}

func TestCheckKeysAreIndependent(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(time.Minute, 1)

	l.Check("alice")
	if res := l.Check("alice"); res.Allowed {
		t.Error("alice's second request allowed, want denied")
	}
	if res := l.Check("bob"); !res.Allowed {
		t.Error("bob's first request denied, want allowed")
	}
}

func TestSweep(t *testing.T) {
	t.Parallel()

	l, clock := newTestLimiter(time.Minute, 5)

	l.Check("alice")
	clock.advance(30 * time.Second)
	l.Check("bob")

	if got := l.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	// Alice's window has expired, Bob's has not.
	clock.advance(45 * time.Second)
	if removed := l.Sweep(); removed != 1 {
		t.Errorf("Sweep() removed %d entries, want 1", removed)
	}
	if got := l.Len(); got != 1 {
		t.Errorf("Len() after sweep = %d, want 1", got)
	}

	// Bob is still inside his window and keeps his count.
	for i := 0; i < 4; i++ {
		l.Check("bob")
	}
	if res := l.Check("bob"); res.Allowed {
		t.Error("bob's sixth request allowed, want denied")
	}
}
