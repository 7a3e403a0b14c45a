package editor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-methodlib/internal/editor"
	"github.com/goliatone/go-methodlib/internal/scheduler"
	"github.com/goliatone/go-methodlib/method"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

type failingHook struct{ closed []string }

func (h *failingHook) SessionOpened(context.Context, *editor.Session) error {
	return errors.New("refused")
}

func (h *failingHook) SessionClosed(_ context.Context, id string) error {
	h.closed = append(h.closed, id)
	return nil
}

func TestRegistryOpenGetClose(t *testing.T) {
	ctx := context.Background()
	reg := editor.NewRegistry(newFixture().options())

	a, err := reg.Open(ctx, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	b, _ := reg.Open(ctx, "")
	if got, _ := reg.Get(a.ID()); got != a {
		t.Fatal("expected registry to return the opened session")
	}
	if sessions := reg.Sessions(); len(sessions) != 2 || sessions[0].ID() > sessions[1].ID() {
		t.Fatalf("unexpected sessions %v", sessions)
	}

	if err := reg.Discard(ctx, b.ID()); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if b.State() != editor.StateDiscarded {
		t.Fatalf("expected discarded session, got %s", b.State())
	}
	if err := reg.Close(ctx, a.ID()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := reg.Get(a.ID()); !errors.Is(err, editor.ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRegistryDropsSessionWhenHookFails(t *testing.T) {
	ctx := context.Background()
	reg := editor.NewRegistry(newFixture().options())
	hook := &failingHook{}
	reg.Use(hook)

	if _, err := reg.Open(ctx, ""); err == nil {
		t.Fatal("expected hook error")
	}
	if len(reg.Sessions()) != 0 || len(hook.closed) != 1 {
		t.Fatalf("expected session removed, sessions=%d closed=%v", len(reg.Sessions()), hook.closed)
	}
}

func TestAutosaverSchedulesAndReschedules(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	f := newFixture()
	jobs := scheduler.NewInMemory(scheduler.WithClock(clock))
	reg := editor.NewRegistry(f.options())
	saver := editor.NewAutosaver(reg, jobs, editor.WithAutosaveClock(clock), editor.WithAutosaveInterval(time.Minute))

	session, err := reg.Open(ctx, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := scheduler.DraftAutosaveJobKey(session.ID())
	job, err := jobs.GetByKey(ctx, key)
	if err != nil {
		t.Fatalf("expected tick scheduled: %v", err)
	}
	if !job.RunAt.Equal(now.Add(time.Minute)) || job.Type != scheduler.JobTypeDraftAutosave {
		t.Fatalf("unexpected job %+v", job)
	}

	session.UpdateField(editor.FieldName, "Retrospective")
	now = now.Add(time.Minute)
	if err := saver.Handle(ctx, job); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if snap, _ := f.drafts.Read(ctx); snap == nil || snap.Name != "Retrospective" {
		t.Fatalf("expected snapshot written, got %+v", snap)
	}
	next, _ := jobs.GetByKey(ctx, key)
	if next.ID == job.ID || !next.RunAt.Equal(now.Add(time.Minute)) {
		t.Fatalf("expected rescheduled tick, got %+v", next)
	}

	if err := reg.Close(ctx, session.ID()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got, _ := jobs.GetByKey(ctx, key); got != nil && got.Status == interfaces.JobStatusPending {
		t.Fatalf("expected tick cancelled, got %+v", got)
	}
	if err := saver.Handle(ctx, next); err != nil {
		t.Fatalf("expected stale tick to be dropped, got %v", err)
	}
	if err := saver.Handle(ctx, &interfaces.Job{ID: "x"}); err == nil {
		t.Fatal("expected missing session id error")
	}
}

func TestAutosaverParksCommittedSessionUntilEdited(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	f := newFixture()
	jobs := scheduler.NewInMemory(scheduler.WithClock(clock))
	reg := editor.NewRegistry(f.options())
	saver := editor.NewAutosaver(reg, jobs, editor.WithAutosaveClock(clock), editor.WithAutosaveInterval(time.Minute))

	session, err := reg.Open(ctx, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := scheduler.DraftAutosaveJobKey(session.ID())
	job, err := jobs.GetByKey(ctx, key)
	if err != nil {
		t.Fatalf("expected tick scheduled: %v", err)
	}

	fillValid(t, session)
	if res, err := session.Publish(ctx); err != nil || !res.OK() {
		t.Fatalf("publish: %+v %v", res, err)
	}
	now = now.Add(time.Minute)
	if err := saver.Handle(ctx, job); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if err := jobs.MarkDone(ctx, job.ID); err != nil {
		t.Fatalf("mark done: %v", err)
	}
	if got, _ := jobs.GetByKey(ctx, key); got != nil && got.Status == interfaces.JobStatusPending {
		t.Fatalf("expected no tick for a published session, got %+v", got)
	}
	if snap, _ := f.drafts.Read(ctx); snap != nil {
		t.Fatalf("expected committed session to leave the slot empty, got %+v", snap)
	}

	session.UpdateField(editor.FieldPhase, "Discover")
	rearmed, err := jobs.GetByKey(ctx, key)
	if err != nil || rearmed.Status != interfaces.JobStatusPending || rearmed.ID == job.ID {
		t.Fatalf("expected tick re-armed after edit, got %+v %v", rearmed, err)
	}
	if !rearmed.RunAt.Equal(now.Add(time.Minute)) {
		t.Fatalf("unexpected run time %s", rearmed.RunAt)
	}
}

func TestAutosaverIgnoresEditSessions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	stored := method.Empty()
	stored.ID = "m-1"
	stored.Name = "Stored"
	if _, err := f.svc.Save(ctx, stored); err != nil {
		t.Fatalf("seed: %v", err)
	}
	jobs := scheduler.NewInMemory()
	reg := editor.NewRegistry(f.options())
	editor.NewAutosaver(reg, jobs)

	session, err := reg.Open(ctx, "m-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got, _ := jobs.GetByKey(ctx, scheduler.DraftAutosaveJobKey(session.ID())); got != nil {
		t.Fatalf("expected no tick for an edit session, got %+v", got)
	}
}
