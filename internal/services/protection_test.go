package services

import (
	"testing"
	"time"
)

// fakeClock lets tests advance time manually.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func newTestTracker(clock *fakeClock) *ProtectionTracker {
	tr := NewProtectionTracker(5, 30*time.Second)
	tr.now = clock.Now
	return tr
}

func TestTracker_ThresholdTriggersFreeze(t *testing.T) {
	clock := newFakeClock()
	tr := newTestTracker(clock)

	for i := 1; i <= 4; i++ {
		st := tr.RecordFailure("alice")
		if st.Frozen {
			t.Fatalf("unexpected freeze after %d failures", i)
		}
		if st.AttemptsLeft != 5-i {
			t.Fatalf("after %d failures expected %d attempts left, got %d", i, 5-i, st.AttemptsLeft)
		}
	}

	st := tr.RecordFailure("alice")
	if !st.Frozen {
		t.Fatalf("expected freeze on 5th failure")
	}
	if st.Remaining != 30*time.Second {
		t.Fatalf("expected 30s remaining, got %v", st.Remaining)
	}
}

func TestTracker_NoDoublePenaltyWhileFrozen(t *testing.T) {
	clock := newFakeClock()
	tr := newTestTracker(clock)

	for i := 0; i < 5; i++ {
		tr.RecordFailure("alice")
	}

	clock.Advance(10 * time.Second)
	st := tr.RecordFailure("alice")
	if !st.Frozen {
		t.Fatalf("expected still frozen")
	}
	if st.Remaining != 20*time.Second {
		t.Fatalf("expected 20s remaining, got %v", st.Remaining)
	}

	// the blocked attempt must not have extended the freeze
	clock.Advance(20 * time.Second)
	if got := tr.Status("alice"); got.Frozen {
		t.Fatalf("expected freeze to have expired, got %+v", got)
	}
}

func TestTracker_StatusClearsExpiredFreeze(t *testing.T) {
	clock := newFakeClock()
	tr := newTestTracker(clock)

	for i := 0; i < 5; i++ {
		tr.RecordFailure("alice")
	}
	if st := tr.Status("alice"); !st.Frozen {
		t.Fatalf("expected frozen")
	}

	clock.Advance(31 * time.Second)
	if st := tr.Status("alice"); st.Frozen {
		t.Fatalf("expected clear after expiry")
	}

	// a failure after expiry starts a fresh run at 1
	st := tr.RecordFailure("alice")
	if st.Frozen {
		t.Fatalf("unexpected freeze")
	}
	if st.AttemptsLeft != 4 {
		t.Fatalf("expected 4 attempts left after fresh failure, got %d", st.AttemptsLeft)
	}
}

func TestTracker_SuccessResetsCounter(t *testing.T) {
	clock := newFakeClock()
	tr := newTestTracker(clock)

	// 3 failures, then success, then 4 more failures: no freeze at 5 total
	for i := 0; i < 3; i++ {
		tr.RecordFailure("alice")
	}
	tr.RecordSuccess("alice")
	for i := 0; i < 4; i++ {
		if st := tr.RecordFailure("alice"); st.Frozen {
			t.Fatalf("unexpected freeze before a fresh run of 5 failures")
		}
	}

	// the 5th consecutive failure post-success does freeze
	if st := tr.RecordFailure("alice"); !st.Frozen {
		t.Fatalf("expected freeze after 5 consecutive failures")
	}
}

func TestTracker_UsernamesDoNotCrossContaminate(t *testing.T) {
	clock := newFakeClock()
	tr := newTestTracker(clock)

	for i := 0; i < 5; i++ {
		tr.RecordFailure("alice")
	}
	if st := tr.Status("alice"); !st.Frozen {
		t.Fatalf("expected alice frozen")
	}
	if st := tr.Status("bob"); st.Frozen {
		t.Fatalf("bob must not be affected by alice's failures")
	}
	if st := tr.RecordFailure("bob"); st.Frozen || st.AttemptsLeft != 4 {
		t.Fatalf("expected bob at 4 attempts left, got %+v", st)
	}
}
