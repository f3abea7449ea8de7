package lockout

import (
	"sync"
	"time"
)

// Policy is the failed attempt policy.
type Policy struct {
	MaxAttempts int           // failures before each lockout
	Duration    time.Duration // length of one lockout
}

// State is the persisted attempt bookkeeping.
type State struct {
	FailedAttempts int
	LockedUntil    time.Time
}

// Tracker counts failed attempts and decides when entry is locked out.
// Every MaxAttempts-th consecutive failure starts a new lockout; the count
// only resets on a successful check.
type Tracker struct {
	mu     sync.Mutex
	policy Policy
	state  State
	store  Store
	now    func() time.Time
}

// NewTracker loads the persisted state from store.
func NewTracker(policy Policy, store Store) (*Tracker, error) {
	if store == nil {
		store = NewMemoryStore()
	}
	state, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Tracker{
		policy: policy,
		state:  state,
		store:  store,
		now:    time.Now,
	}, nil
}

// SetPolicy replaces the policy; an active lockout keeps its deadline.
func (t *Tracker) SetPolicy(p Policy) {
	t.mu.Lock()
	t.policy = p
	t.mu.Unlock()
}

// RecordFailure counts one failed check. It reports whether this failure
// started a lockout and until when.
func (t *Tracker) RecordFailure() (bool, time.Time, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.FailedAttempts++
	locked := t.policy.MaxAttempts > 0 && t.state.FailedAttempts%t.policy.MaxAttempts == 0
	if locked {
		t.state.LockedUntil = t.now().Add(t.policy.Duration)
	}
	return locked, t.state.LockedUntil, t.store.Save(t.state)
}

// Reset clears the attempt count and any lockout.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = State{}
	return t.store.Save(t.state)
}

// Locked reports whether a lockout is active.
func (t *Tracker) Locked() bool {
	return t.Remaining() > 0
}

// Remaining returns the time left in the active lockout, zero if none.
func (t *Tracker) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.LockedUntil.IsZero() {
		return 0
	}
	left := t.state.LockedUntil.Sub(t.now())
	if left < 0 {
		return 0
	}
	return left
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// AttemptsBeforeLockout returns how many more failures start the next
// lockout.
func (t *Tracker) AttemptsBeforeLockout() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.policy.MaxAttempts <= 0 {
		return 0
	}
	return t.policy.MaxAttempts - t.state.FailedAttempts%t.policy.MaxAttempts
}
