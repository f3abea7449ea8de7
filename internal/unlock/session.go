package unlock

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2/lang"

	"pinpad/internal/constants"
	"pinpad/internal/credential"
	"pinpad/internal/jobs"
	"pinpad/internal/lockout"
	"pinpad/internal/pinentry"
)

// Checker compares an entry with the enrolled PIN.
type Checker interface {
	Check(entry []byte) (bool, error)
}

// EntryControl is the part of the entry controller a Session drives.
type EntryControl interface {
	SetEnabled(enabled bool)
	ClearEntry()
	ResetState()
}

// Callbacks are run on the UI goroutine. Any of them may be nil.
type Callbacks struct {
	OnUnlocked func()
	OnStatus   func(message string)
	OnBusy     func(busy bool)
}

// Session verifies submitted entries off the UI goroutine and applies the
// lockout policy to the results.
type Session struct {
	checker    Checker
	jobs       *jobs.Manager
	tracker    *lockout.Tracker
	entry      EntryControl
	callbacks  Callbacks
	dispatch   func(func())
	debugPrint func(format string, args ...interface{})
	tick       time.Duration

	mu            sync.Mutex
	countdownStop chan struct{}
	stopping      bool
}

// NewSession creates a Session. dispatch marshals results back onto the UI
// goroutine (fyne.Do); nil runs them where they arrive.
func NewSession(checker Checker, jm *jobs.Manager, tracker *lockout.Tracker, entry EntryControl, cb Callbacks, dispatch func(func()), debugPrint func(format string, args ...interface{})) *Session {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	if debugPrint == nil {
		debugPrint = func(string, ...interface{}) {}
	}
	return &Session{
		checker:    checker,
		jobs:       jm,
		tracker:    tracker,
		entry:      entry,
		callbacks:  cb,
		dispatch:   dispatch,
		debugPrint: debugPrint,
		tick:       constants.CountdownInterval,
	}
}

// Verify implements pinentry.Verifier. Entry is disabled until the result
// has been applied.
func (s *Session) Verify(entry []byte) pinentry.Outcome {
	defer zero(entry)

	if s.tracker.Locked() {
		s.debugPrint("Session: submit while locked out")
		s.entry.SetEnabled(false)
		s.entry.ClearEntry()
		s.startCountdown()
		return pinentry.OutcomeLockedOut
	}

	s.entry.SetEnabled(false)
	s.setBusy(true)

	check := func(ctx context.Context, e []byte) (bool, error) {
		return s.checker.Check(e)
	}
	job := s.jobs.EnqueueCheck(entry, check, func(res jobs.Result) {
		s.dispatch(func() { s.finish(res) })
	})
	s.debugPrint("Session: queued check job %d", job.ID)
	return pinentry.OutcomePending
}

// Start resumes a lockout persisted by a previous run. It reports whether
// entry starts locked.
func (s *Session) Start() bool {
	s.mu.Lock()
	s.stopping = false
	s.mu.Unlock()

	if !s.tracker.Locked() {
		return false
	}
	s.debugPrint("Session: resuming lockout (%v left)", s.tracker.Remaining())
	s.entry.SetEnabled(false)
	s.startCountdown()
	return true
}

// Stop cancels pending checks and the lockout countdown.
func (s *Session) Stop() {
	s.mu.Lock()
	s.stopping = true
	s.mu.Unlock()

	s.jobs.CancelAll()
	s.stopCountdown()
}

// SetPolicy applies a new lockout policy.
func (s *Session) SetPolicy(p lockout.Policy) {
	s.tracker.SetPolicy(p)
}

func (s *Session) finish(res jobs.Result) {
	s.setBusy(false)

	switch {
	case res.Canceled:
		s.debugPrint("Session: job %d canceled", res.JobID)
		s.mu.Lock()
		stopping := s.stopping
		s.mu.Unlock()
		if !stopping {
			s.entry.ResetState()
		}

	case res.Err != nil:
		s.debugPrint("Session: job %d failed: %v", res.JobID, res.Err)
		s.entry.ResetState()
		if errors.Is(res.Err, credential.ErrNotEnrolled) {
			s.status(lang.L("No PIN is set"))
		} else {
			s.status(lang.L("PIN check failed"))
		}

	case res.Accepted:
		s.debugPrint("Session: job %d accepted", res.JobID)
		if err := s.tracker.Reset(); err != nil {
			s.debugPrint("Session: lockout reset failed: %v", err)
		}
		s.entry.ClearEntry()
		s.status("")
		if s.callbacks.OnUnlocked != nil {
			s.callbacks.OnUnlocked()
		}

	default:
		locked, until, err := s.tracker.RecordFailure()
		if err != nil {
			s.debugPrint("Session: lockout save failed: %v", err)
		}
		s.debugPrint("Session: job %d rejected (locked=%t until=%v)", res.JobID, locked, until)
		if locked {
			s.entry.ClearEntry()
			s.startCountdown()
			return
		}
		s.entry.ResetState()
		s.status(lang.L("Wrong PIN"))
	}
}

func (s *Session) startCountdown() {
	s.mu.Lock()
	if s.countdownStop != nil {
		s.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	s.countdownStop = stop
	s.mu.Unlock()

	s.countdownTick()

	go func() {
		ticker := time.NewTicker(s.tick)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.dispatch(s.countdownTick)
			case <-stop:
				return
			}
		}
	}()
}

func (s *Session) stopCountdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countdownStop == nil {
		return false
	}
	close(s.countdownStop)
	s.countdownStop = nil
	return true
}

func (s *Session) countdownTick() {
	left := s.tracker.Remaining()
	if left <= 0 {
		if s.stopCountdown() {
			s.debugPrint("Session: lockout over")
			s.status("")
			s.entry.ResetState()
		}
		return
	}
	secs := int(math.Ceil(left.Seconds()))
	s.status(lang.L("Try again in {{.Seconds}} seconds", map[string]any{"Seconds": secs}))
}

func (s *Session) status(msg string) {
	if s.callbacks.OnStatus != nil {
		s.callbacks.OnStatus(msg)
	}
}

func (s *Session) setBusy(busy bool) {
	if s.callbacks.OnBusy != nil {
		s.callbacks.OnBusy(busy)
	}
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
