package idle

import (
	"sync"
	"time"
)

// Timer fires onIdle once after timeout passes with no Touch. A zero
// timeout disables it.
type Timer struct {
	mu       sync.Mutex
	timeout  time.Duration
	timer    *time.Timer
	gen      uint64
	stopped  bool
	onIdle   func()
	dispatch func(func())
}

// NewTimer creates a stopped Timer. dispatch runs onIdle on the UI
// goroutine; nil runs it directly from the timer goroutine.
func NewTimer(timeout time.Duration, onIdle func(), dispatch func(func())) *Timer {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Timer{
		timeout:  timeout,
		onIdle:   onIdle,
		dispatch: dispatch,
		stopped:  true,
	}
}

// Start arms the timer.
func (t *Timer) Start() {
	t.mu.Lock()
	t.stopped = false
	t.armLocked()
	t.mu.Unlock()
}

// Touch restarts the countdown.
func (t *Timer) Touch() {
	t.mu.Lock()
	if !t.stopped {
		t.armLocked()
	}
	t.mu.Unlock()
}

// SetTimeout changes the timeout and restarts the countdown.
func (t *Timer) SetTimeout(timeout time.Duration) {
	t.mu.Lock()
	t.timeout = timeout
	if !t.stopped {
		t.armLocked()
	}
	t.mu.Unlock()
}

// Stop disarms the timer; a pending fire is dropped.
func (t *Timer) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}

func (t *Timer) armLocked() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if t.timeout <= 0 {
		return
	}
	gen := t.gen
	t.timer = time.AfterFunc(t.timeout, func() {
		t.mu.Lock()
		current := gen == t.gen && !t.stopped
		t.mu.Unlock()
		if !current {
			return
		}
		t.dispatch(t.onIdle)
	})
}
