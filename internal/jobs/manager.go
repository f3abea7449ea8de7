package jobs

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// debug hook, set from main; should print only when -d enabled
var debugf func(format string, args ...interface{})

// SetDebug installs a debug logger used when -d flag is on.
func SetDebug(fn func(format string, args ...interface{})) { debugf = fn }

func dbg(format string, args ...interface{}) {
	if debugf != nil {
		debugf("jobs: "+format, args...)
	}
}

// Manager runs verification jobs one at a time on a background worker.
type Manager struct {
	mu          sync.Mutex
	cond        *sync.Cond
	queue       []*Job
	closed      bool
	nextID      int64
	subscribers []func()
	current     *Job
	history     []*Job
	historyMax  int
}

// NewManager constructs and starts a Manager keeping up to historyMax
// finished jobs.
func NewManager(historyMax int) *Manager {
	m := &Manager{historyMax: historyMax}
	m.cond = sync.NewCond(&m.mu)
	go m.worker()
	dbg("manager created; worker started")
	return m
}

// Subscribe registers a callback called on state changes.
func (m *Manager) Subscribe(cb func()) {
	m.mu.Lock()
	m.subscribers = append(m.subscribers, cb)
	n := len(m.subscribers)
	m.mu.Unlock()
	dbg("subscriber added (total=%d)", n)
}

func (m *Manager) notify() {
	// call without holding the lock to avoid re-entrancy
	m.mu.Lock()
	subs := append([]func(){}, m.subscribers...)
	m.mu.Unlock()
	for _, cb := range subs {
		cb()
	}
}

// EnqueueCheck queues a check of entry. The entry is copied; done is called
// exactly once from the worker goroutine (or from Cancel/Close for jobs that
// never started).
func (m *Manager) EnqueueCheck(entry []byte, check CheckFunc, done func(Result)) *Job {
	j := &Job{
		ID:          atomic.AddInt64(&m.nextID, 1),
		Type:        TypeCheck,
		entry:       append([]byte(nil), entry...),
		check:       check,
		done:        done,
		Status:      StatusPending,
		EntryLength: len(entry),
		EnqueuedAt:  time.Now(),
	}
	j.ctx, j.cancel = context.WithCancel(context.Background())

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		dbg("enqueue after close id=%d", j.ID)
		m.finishUnstarted(j)
		return j
	}
	m.queue = append(m.queue, j)
	m.mu.Unlock()
	dbg("enqueue id=%d type=%s len=%d", j.ID, string(j.Type), j.EntryLength)
	m.notify()
	m.cond.Signal()
	return j
}

// Cancel cancels a job by ID.
func (m *Manager) Cancel(id int64) bool {
	m.mu.Lock()
	// pending in queue
	for i, j := range m.queue {
		if j.ID == id {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			m.mu.Unlock()
			dbg("cancel pending id=%d", id)
			m.finishUnstarted(j)
			return true
		}
	}
	// currently running
	if m.current != nil && m.current.ID == id {
		m.current.Cancel()
		m.mu.Unlock()
		dbg("cancel running id=%d", id)
		return true
	}
	m.mu.Unlock()
	return false
}

// CancelAll cancels every pending and running job.
func (m *Manager) CancelAll() {
	m.mu.Lock()
	pending := m.queue
	m.queue = nil
	if m.current != nil {
		m.current.Cancel()
	}
	m.mu.Unlock()

	for _, j := range pending {
		m.finishUnstarted(j)
	}
}

// Close cancels everything and stops the worker.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	m.CancelAll()
	m.cond.Broadcast()
	dbg("manager closed")
}

// List returns snapshots of the running job, pending jobs, then history
// (newest first).
func (m *Manager) List() []JobSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]JobSnapshot, 0, len(m.queue)+1+len(m.history))
	if m.current != nil {
		out = append(out, m.current.Snapshot())
	}
	for _, j := range m.queue {
		out = append(out, j.Snapshot())
	}
	for i := len(m.history) - 1; i >= 0; i-- {
		out = append(out, m.history[i].Snapshot())
	}
	return out
}

func (m *Manager) worker() {
	for {
		m.mu.Lock()
		for len(m.queue) == 0 && !m.closed {
			m.cond.Wait()
		}
		if m.closed {
			m.mu.Unlock()
			return
		}
		// pop head
		j := m.queue[0]
		m.queue = m.queue[1:]
		m.current = j
		dbg("worker popped id=%d (remaining=%d)", j.ID, len(m.queue))
		m.mu.Unlock()

		j.mu.Lock()
		j.Status = StatusRunning
		j.StartedAt = time.Now()
		j.mu.Unlock()
		m.notify()

		res := m.runJob(j)

		m.mu.Lock()
		m.current = nil
		m.addHistoryLocked(j)
		m.mu.Unlock()
		m.notify()

		if j.done != nil {
			j.done(res)
		}
	}
}

// runJob processes one job and records its final status.
func (m *Manager) runJob(j *Job) Result {
	defer zero(j.entry)

	res := Result{JobID: j.ID}
	if canceled(j) {
		res.Canceled = true
	} else {
		res.Accepted, res.Err = runCheck(j)
		// a result that arrives after cancellation is dropped
		if canceled(j) {
			res = Result{JobID: j.ID, Canceled: true}
		}
	}

	j.mu.Lock()
	switch {
	case res.Canceled:
		j.Status = StatusCanceled
		dbg("job canceled id=%d", j.ID)
	case res.Err != nil:
		j.Status = StatusFailed
		j.Error = res.Err.Error()
		dbg("job failed id=%d err=%v", j.ID, res.Err)
	default:
		j.Status = StatusCompleted
		dbg("job completed id=%d", j.ID)
	}
	j.CompletedAt = time.Now()
	j.mu.Unlock()
	j.Cancel()
	return res
}

// finishUnstarted marks a job that never ran as canceled and reports it.
func (m *Manager) finishUnstarted(j *Job) {
	zero(j.entry)
	j.mu.Lock()
	j.Status = StatusCanceled
	j.CompletedAt = time.Now()
	j.mu.Unlock()
	j.Cancel()

	m.mu.Lock()
	m.addHistoryLocked(j)
	m.mu.Unlock()
	m.notify()

	if j.done != nil {
		j.done(Result{JobID: j.ID, Canceled: true})
	}
}

// addHistoryLocked appends a finished job to history and trims oldest; caller must hold m.mu
func (m *Manager) addHistoryLocked(j *Job) {
	m.history = append(m.history, j)
	if m.historyMax > 0 && len(m.history) > m.historyMax {
		drop := len(m.history) - m.historyMax
		m.history = append([]*Job{}, m.history[drop:]...)
	}
}

// runCheck keeps a panicking check from taking down the worker.
func runCheck(j *Job) (accepted bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			dbg("job panicked id=%d: %v", j.ID, r)
			accepted, err = false, fmt.Errorf("check panicked: %v", r)
		}
	}()
	return j.check(j.ctx, j.entry)
}

func canceled(j *Job) bool {
	select {
	case <-j.ctx.Done():
		return true
	default:
		return false
	}
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
