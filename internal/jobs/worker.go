package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

var (
	ErrSchedulerRequired = errors.New("jobs: scheduler is nil")
	ErrUnhandledJobType  = errors.New("jobs: no handler for job type")
)

// Handler runs one due job. A returned error marks the attempt failed.
type Handler func(ctx context.Context, job *interfaces.Job) error

// Worker drains due jobs from a scheduler and dispatches them by type.
type Worker struct {
	scheduler interfaces.Scheduler
	handlers  map[string]Handler
	audit     AuditRecorder
	logger    interfaces.Logger
	now       func() time.Time
	batchSize int
}

type Option func(*Worker)

// WithHandler registers the handler for a job type.
func WithHandler(jobType string, handler Handler) Option {
	return func(w *Worker) {
		if jobType != "" && handler != nil {
			w.handlers[jobType] = handler
		}
	}
}

func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(w *Worker) {
		w.audit = recorder
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(w *Worker) {
		if clock != nil {
			w.now = clock
		}
	}
}

func WithBatchSize(size int) Option {
	return func(w *Worker) {
		if size > 0 {
			w.batchSize = size
		}
	}
}

func NewWorker(scheduler interfaces.Scheduler, opts ...Option) *Worker {
	w := &Worker{
		scheduler: scheduler,
		handlers:  make(map[string]Handler),
		logger:    logging.NoOp(),
		now:       time.Now,
		batchSize: 50,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Process handles one batch of due jobs. Handler failures are recorded on the
// job and do not stop the batch.
func (w *Worker) Process(ctx context.Context) error {
	if w.scheduler == nil {
		return ErrSchedulerRequired
	}
	deadline := w.now()
	due, err := w.scheduler.ListDue(ctx, deadline, w.batchSize)
	if err != nil {
		return err
	}
	for _, job := range due {
		if job == nil {
			continue
		}
		err := w.handle(ctx, job)
		w.record(ctx, job, deadline, err)
		if err != nil {
			w.logger.Warn("jobs.job_failed", "job_id", job.ID, "job_type", job.Type, "error", err)
			_ = w.scheduler.MarkFailed(ctx, job.ID, err)
			continue
		}
		// recurring handlers may already have replaced the job under its key
		_ = w.scheduler.MarkDone(ctx, job.ID)
	}
	return nil
}

func (w *Worker) handle(ctx context.Context, job *interfaces.Job) error {
	handler, ok := w.handlers[job.Type]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnhandledJobType, job.Type)
	}
	ctx = logging.ContextWithFields(ctx, map[string]any{"job_id": job.ID, "job_key": job.Key})
	return handler(ctx, job)
}

func (w *Worker) record(ctx context.Context, job *interfaces.Job, at time.Time, err error) {
	if w.audit == nil {
		return
	}
	event := AuditEvent{
		JobID:      job.ID,
		JobType:    job.Type,
		Key:        job.Key,
		Attempt:    job.Attempt + 1,
		OccurredAt: at,
	}
	if err != nil {
		event.Error = err.Error()
	}
	_ = w.audit.Record(ctx, event)
}

// Run processes batches every interval until ctx is cancelled.
func (w *Worker) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("jobs: invalid poll interval %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.Process(ctx); err != nil {
				w.logger.Error("jobs.process_failed", "error", err)
			}
		}
	}
}
