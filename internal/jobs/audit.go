package jobs

import (
	"context"
	"sync"
	"time"
)

// AuditEvent is one processed job attempt.
type AuditEvent struct {
	JobID      string
	JobType    string
	Key        string
	Attempt    int
	Error      string
	OccurredAt time.Time
}

// Failed reports whether the attempt returned an error.
func (e AuditEvent) Failed() bool {
	return e.Error != ""
}

// AuditRecorder persists job attempts.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent) error
	List(ctx context.Context) ([]AuditEvent, error)
}

// InMemoryAuditRecorder keeps attempts in memory, newest last.
type InMemoryAuditRecorder struct {
	mu     sync.Mutex
	events []AuditEvent
	limit  int
}

// NewInMemoryAuditRecorder keeps at most limit events; zero keeps all.
func NewInMemoryAuditRecorder(limit int) *InMemoryAuditRecorder {
	return &InMemoryAuditRecorder{limit: limit}
}

func (r *InMemoryAuditRecorder) Record(_ context.Context, event AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	if r.limit > 0 && len(r.events) > r.limit {
		r.events = append([]AuditEvent(nil), r.events[len(r.events)-r.limit:]...)
	}
	return nil
}

func (r *InMemoryAuditRecorder) List(context.Context) ([]AuditEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]AuditEvent(nil), r.events...), nil
}

// Events returns the recorded attempts.
func (r *InMemoryAuditRecorder) Events() []AuditEvent {
	events, _ := r.List(context.Background())
	return events
}
