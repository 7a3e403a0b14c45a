package scheduler

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/goliatone/go-methodlib/pkg/interfaces"
	"github.com/google/uuid"
)

const defaultMaxAttempts = 3

var ErrRunAtRequired = errors.New("scheduler: run_at is required")

// Option customizes the in-memory scheduler.
type Option func(*inMemoryScheduler)

// WithClock overrides the clock used for job timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *inMemoryScheduler) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the job id generator.
func WithIDGenerator(generator func() string) Option {
	return func(s *inMemoryScheduler) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithDefaultMaxAttempts sets the retry limit for specs that leave it unset.
func WithDefaultMaxAttempts(limit int) Option {
	return func(s *inMemoryScheduler) {
		if limit > 0 {
			s.maxAttempt = limit
		}
	}
}

// NewInMemory creates a process-local scheduler. Jobs sharing a key replace
// each other, so a recurring job keeps a single entry.
func NewInMemory(opts ...Option) interfaces.Scheduler {
	s := &inMemoryScheduler{
		now:        time.Now,
		id:         uuid.NewString,
		maxAttempt: defaultMaxAttempts,
		jobs:       make(map[string]*interfaces.Job),
		keys:       make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type inMemoryScheduler struct {
	mu         sync.Mutex
	now        func() time.Time
	id         func() string
	maxAttempt int
	jobs       map[string]*interfaces.Job
	keys       map[string]string
}

func (s *inMemoryScheduler) Enqueue(_ context.Context, spec interfaces.JobSpec) (*interfaces.Job, error) {
	if spec.RunAt.IsZero() {
		return nil, ErrRunAtRequired
	}
	spec.Payload = maps.Clone(spec.Payload)
	if spec.MaxAttempts == 0 {
		spec.MaxAttempts = s.maxAttempt
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if previous, ok := s.keys[spec.Key]; ok && spec.Key != "" {
		delete(s.jobs, previous)
	}
	now := s.now()
	job := &interfaces.Job{
		JobSpec:   spec,
		ID:        s.id(),
		Status:    interfaces.JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.jobs[job.ID] = job
	if job.Key != "" {
		s.keys[job.Key] = job.ID
	}
	return cloneJob(job), nil
}

// settle moves a job to a terminal or retry status. Terminal jobs release
// their key.
func (s *inMemoryScheduler) settle(job *interfaces.Job, status interfaces.JobStatus) {
	job.Status = status
	job.UpdatedAt = s.now()
	if status != interfaces.JobStatusPending && job.Key != "" && s.keys[job.Key] == job.ID {
		delete(s.keys, job.Key)
	}
}

func (s *inMemoryScheduler) byID(id string) (*interfaces.Job, error) {
	job, ok := s.jobs[id]
	if !ok {
		return nil, interfaces.ErrJobNotFound
	}
	return job, nil
}

func (s *inMemoryScheduler) byKey(key string) (*interfaces.Job, error) {
	id, ok := s.keys[key]
	if !ok || key == "" {
		return nil, interfaces.ErrJobNotFound
	}
	return s.byID(id)
}

func (s *inMemoryScheduler) Cancel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, err := s.byID(id)
	if err != nil {
		return err
	}
	s.settle(job, interfaces.JobStatusCanceled)
	return nil
}

func (s *inMemoryScheduler) CancelByKey(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	job, err := s.byKey(key)
	if err != nil {
		return err
	}
	s.settle(job, interfaces.JobStatusCanceled)
	return nil
}

func (s *inMemoryScheduler) Get(_ context.Context, id string) (*interfaces.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, err := s.byID(id)
	if err != nil {
		return nil, err
	}
	return cloneJob(job), nil
}

func (s *inMemoryScheduler) GetByKey(_ context.Context, key string) (*interfaces.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, err := s.byKey(key)
	if err != nil {
		return nil, err
	}
	return cloneJob(job), nil
}

// ListDue returns pending jobs due by until, earliest first.
func (s *inMemoryScheduler) ListDue(_ context.Context, until time.Time, limit int) ([]*interfaces.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := make([]*interfaces.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		if job.Status == interfaces.JobStatusPending && !job.RunAt.After(until) {
			due = append(due, cloneJob(job))
		}
	}
	slices.SortStableFunc(due, func(a, b *interfaces.Job) int {
		if c := a.RunAt.Compare(b.RunAt); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *inMemoryScheduler) MarkDone(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, err := s.byID(id)
	if err != nil {
		return err
	}
	s.settle(job, interfaces.JobStatusCompleted)
	return nil
}

// MarkFailed records the failure and keeps the job pending until its attempts
// are exhausted.
func (s *inMemoryScheduler) MarkFailed(_ context.Context, id string, failure error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, err := s.byID(id)
	if err != nil {
		return err
	}
	job.Attempt++
	job.LastError = ""
	if failure != nil {
		job.LastError = failure.Error()
	}
	status := interfaces.JobStatusPending
	if job.MaxAttempts > 0 && job.Attempt >= job.MaxAttempts {
		status = interfaces.JobStatusFailed
	}
	s.settle(job, status)
	return nil
}

func cloneJob(job *interfaces.Job) *interfaces.Job {
	clone := *job
	clone.Payload = maps.Clone(job.Payload)
	return &clone
}
