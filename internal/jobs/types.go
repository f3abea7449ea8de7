package jobs

import (
	"context"
	"sync"
	"time"
)

// Type represents job type.
type Type string

const (
	TypeCheck Type = "check"
)

// Status represents job status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// CheckFunc compares an entry with the stored credential.
type CheckFunc func(ctx context.Context, entry []byte) (bool, error)

// Result is delivered once per job, from the worker goroutine.
type Result struct {
	JobID    int64
	Accepted bool
	Canceled bool
	Err      error
}

// Job holds a single verification job.
type Job struct {
	// immutable fields
	ID    int64
	Type  Type
	entry []byte // private copy, zeroed once the job finishes
	check CheckFunc
	done  func(Result)

	// state
	mu          sync.RWMutex
	Status      Status
	EntryLength int
	Error       string
	EnqueuedAt  time.Time
	StartedAt   time.Time
	CompletedAt time.Time

	// cancellation
	ctx    context.Context
	cancel context.CancelFunc
}

// Snapshot returns a copy of important fields for UI and logs. It never
// carries entry material.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return JobSnapshot{
		ID:          j.ID,
		Type:        j.Type,
		Status:      j.Status,
		EntryLength: j.EntryLength,
		Error:       j.Error,
		EnqueuedAt:  j.EnqueuedAt,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
	}
}

// JobSnapshot is a read-only view of a job.
type JobSnapshot struct {
	ID          int64
	Type        Type
	Status      Status
	EntryLength int
	Error       string
	EnqueuedAt  time.Time
	StartedAt   time.Time
	CompletedAt time.Time
}

// Cancel cancels the job if it has not finished.
func (j *Job) Cancel() {
	if j.cancel != nil {
		j.cancel()
	}
}
