package library

import (
	"context"
	"sync"

	"github.com/goliatone/go-methodlib/method"
)

// MemoryRepository keeps methods in insertion order. Used by tests and the
// memory storage provider.
type MemoryRepository struct {
	mu      sync.RWMutex
	methods map[string]method.Method
	order   []string
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{methods: make(map[string]method.Method)}
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*method.Method, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.methods[id]
	if !ok {
		return nil, &NotFoundError{Resource: "method", Key: id}
	}
	out := m.Clone()
	return &out, nil
}

func (r *MemoryRepository) Put(_ context.Context, m method.Method) (*method.Method, error) {
	if m.ID == "" {
		return nil, ErrMethodIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.methods[m.ID]; !exists {
		r.order = append(r.order, m.ID)
	}
	stored := m.Clone().Normalize()
	r.methods[m.ID] = stored
	out := stored.Clone()
	return &out, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]method.Method, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]method.Method, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.methods[id].Clone())
	}
	return out, nil
}
