// Package services contains the guardbox business logic: the account
// protection tracker, the authenticator, the emergency reset flow, and the
// role-gated session operations.
package services

import (
	"sync"
	"time"
)

// attemptState tracks failed logins for one username. FrozenUntil is zero
// when the account is not frozen.
type attemptState struct {
	Count       int
	FrozenUntil time.Time
}

// ProtectionStatus is the tracker's answer for one username.
type ProtectionStatus struct {
	Frozen bool
	// Remaining is the time left until the freeze lifts; zero when not
	// frozen.
	Remaining time.Duration
	// AttemptsLeft is how many more consecutive failures are allowed
	// before a freeze; zero when frozen.
	AttemptsLeft int
}

// ProtectionTracker is the per-username brute-force defense. It lives only
// for the process's lifetime and is deliberately not persisted: a restart
// clears all counters and freezes. Expiry is lazy; there are no timers.
type ProtectionTracker struct {
	mu        sync.Mutex
	attempts  map[string]*attemptState
	threshold int
	freezeFor time.Duration

	// now is a test seam for simulating the passage of time.
	now func() time.Time
}

// NewProtectionTracker creates a tracker that freezes an account for
// freezeFor after threshold consecutive failures.
func NewProtectionTracker(threshold int, freezeFor time.Duration) *ProtectionTracker {
	return &ProtectionTracker{
		attempts:  make(map[string]*attemptState),
		threshold: threshold,
		freezeFor: freezeFor,
		now:       time.Now,
	}
}

// RecordFailure registers a failed login for username and returns the
// resulting status. Reaching the threshold sets the freeze and resets the
// counter at that moment. A failure while already frozen is not counted
// again; the current frozen status is returned instead.
func (t *ProtectionTracker) RecordFailure(username string) ProtectionStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	state := t.attempts[username]
	if state == nil {
		state = &attemptState{}
		t.attempts[username] = state
	}

	if frozen, remaining := t.frozenLocked(state, now); frozen {
		return ProtectionStatus{Frozen: true, Remaining: remaining}
	}

	state.Count++
	if state.Count >= t.threshold {
		state.FrozenUntil = now.Add(t.freezeFor)
		state.Count = 0
		return ProtectionStatus{Frozen: true, Remaining: t.freezeFor}
	}

	return ProtectionStatus{AttemptsLeft: t.threshold - state.Count}
}

// RecordSuccess clears the failure counter and any freeze for username.
func (t *ProtectionTracker) RecordSuccess(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.attempts, username)
}

// Status reports whether username is currently frozen. An expired freeze
// is cleared as a side effect, so the next attempt is evaluated normally.
func (t *ProtectionTracker) Status(username string) ProtectionStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.attempts[username]
	if state == nil {
		return ProtectionStatus{AttemptsLeft: t.threshold}
	}

	if frozen, remaining := t.frozenLocked(state, t.now()); frozen {
		return ProtectionStatus{Frozen: true, Remaining: remaining}
	}

	return ProtectionStatus{AttemptsLeft: t.threshold - state.Count}
}

// frozenLocked checks the freeze for one state, clearing it lazily once
// expired. Caller must hold the lock.
func (t *ProtectionTracker) frozenLocked(state *attemptState, now time.Time) (bool, time.Duration) {
	if state.FrozenUntil.IsZero() {
		return false, 0
	}
	if now.Before(state.FrozenUntil) {
		return true, state.FrozenUntil.Sub(now)
	}

	// lazy expiry: the freeze has passed, start a fresh count
	state.FrozenUntil = time.Time{}
	state.Count = 0
	return false, 0
}
