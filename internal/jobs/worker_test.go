package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-methodlib/internal/jobs"
	"github.com/goliatone/go-methodlib/internal/scheduler"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

func TestWorkerDispatchesByType(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	queue := scheduler.NewInMemory(scheduler.WithClock(func() time.Time { return now }))
	audit := jobs.NewInMemoryAuditRecorder(0)

	var handled []string
	worker := jobs.NewWorker(queue,
		jobs.WithClock(func() time.Time { return now }),
		jobs.WithAuditRecorder(audit),
		jobs.WithHandler(scheduler.JobTypeDraftAutosave, func(_ context.Context, job *interfaces.Job) error {
			handled = append(handled, job.Payload["session_id"].(string))
			return nil
		}),
	)

	job, err := queue.Enqueue(ctx, interfaces.JobSpec{
		Key:     scheduler.DraftAutosaveJobKey("s1"),
		Type:    scheduler.JobTypeDraftAutosave,
		RunAt:   now.Add(-time.Second),
		Payload: map[string]any{"session_id": "s1"},
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	queue.Enqueue(ctx, interfaces.JobSpec{
		Key:   scheduler.DraftAutosaveJobKey("s2"),
		Type:  scheduler.JobTypeDraftAutosave,
		RunAt: now.Add(time.Minute),
	})

	if err := worker.Process(ctx); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(handled) != 1 || handled[0] != "s1" {
		t.Fatalf("expected only due job handled, got %v", handled)
	}
	stored, _ := queue.Get(ctx, job.ID)
	if stored.Status != interfaces.JobStatusCompleted {
		t.Fatalf("expected completed job, got %s", stored.Status)
	}
	events := audit.Events()
	if len(events) != 1 || events[0].Failed() || events[0].Attempt != 1 {
		t.Fatalf("unexpected audit events: %+v", events)
	}
}

func TestWorkerMarksFailures(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	queue := scheduler.NewInMemory(scheduler.WithClock(func() time.Time { return now }))
	audit := jobs.NewInMemoryAuditRecorder(0)

	worker := jobs.NewWorker(queue,
		jobs.WithClock(func() time.Time { return now }),
		jobs.WithAuditRecorder(audit),
		jobs.WithHandler("methods.fail", func(context.Context, *interfaces.Job) error {
			return errors.New("boom")
		}),
	)

	failing, _ := queue.Enqueue(ctx, interfaces.JobSpec{Type: "methods.fail", RunAt: now, MaxAttempts: 1})
	unknown, _ := queue.Enqueue(ctx, interfaces.JobSpec{Type: "methods.unknown", RunAt: now, MaxAttempts: 1})

	if err := worker.Process(ctx); err != nil {
		t.Fatalf("process: %v", err)
	}

	got, _ := queue.Get(ctx, failing.ID)
	if got.Status != interfaces.JobStatusFailed || got.LastError != "boom" {
		t.Fatalf("expected failed job, got %+v", got)
	}
	got, _ = queue.Get(ctx, unknown.ID)
	if got.Status != interfaces.JobStatusFailed {
		t.Fatalf("expected unknown job type to fail, got %+v", got)
	}
	if events := audit.Events(); len(events) != 2 || !events[0].Failed() {
		t.Fatalf("unexpected audit events: %+v", events)
	}
}

func TestWorkerRequiresScheduler(t *testing.T) {
	if err := jobs.NewWorker(nil).Process(context.Background()); !errors.Is(err, jobs.ErrSchedulerRequired) {
		t.Fatalf("expected scheduler error, got %v", err)
	}
}

func TestWorkerRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	worker := jobs.NewWorker(scheduler.NewNoOp())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx, time.Millisecond) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean stop, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	if err := worker.Run(context.Background(), 0); err == nil {
		t.Fatal("expected invalid interval error")
	}
}

func TestAuditRecorderLimit(t *testing.T) {
	audit := jobs.NewInMemoryAuditRecorder(2)
	for _, id := range []string{"a", "b", "c"} {
		audit.Record(context.Background(), jobs.AuditEvent{JobID: id})
	}
	events := audit.Events()
	if len(events) != 2 || events[0].JobID != "b" {
		t.Fatalf("unexpected events: %+v", events)
	}
}
