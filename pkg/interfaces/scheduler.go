package interfaces

import (
	"context"
	"errors"
	"time"
)

var ErrJobNotFound = errors.New("scheduler: job not found")

// Scheduler stores delayed jobs keyed by a unique string. The editor uses it
// for autosave ticks; one pending job exists per key.
type Scheduler interface {
	// Enqueue stores spec, replacing any pending job under the same key.
	Enqueue(ctx context.Context, spec JobSpec) (*Job, error)
	Cancel(ctx context.Context, id string) error
	CancelByKey(ctx context.Context, key string) error
	Get(ctx context.Context, id string) (*Job, error)
	GetByKey(ctx context.Context, key string) (*Job, error)
	// ListDue returns at most limit pending jobs with RunAt not after until,
	// earliest first.
	ListDue(ctx context.Context, until time.Time, limit int) ([]*Job, error)
	// MarkDone and MarkFailed return ErrJobNotFound for jobs replaced under
	// their key after they were listed.
	MarkDone(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, err error) error
}

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCanceled  JobStatus = "canceled"
	JobStatusFailed    JobStatus = "failed"
)

// JobSpec is what callers hand to Enqueue. Type selects the worker handler,
// for example methods.draft.autosave. MaxAttempts of zero uses the scheduler
// default.
type JobSpec struct {
	Key         string
	Type        string
	RunAt       time.Time
	Payload     map[string]any
	MaxAttempts int
}

// Job is a stored JobSpec plus the bookkeeping the scheduler owns.
type Job struct {
	JobSpec
	ID        string
	Attempt   int
	LastError string
	Status    JobStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
