package drafts

import (
	"context"
	"slices"
	"sync"

	"github.com/goliatone/go-methodlib/method"
)

// MemoryStore keeps the encoded snapshot in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	slot    string
	payload []byte
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{slot: resolveOptions(opts).slot}
}

// Slot returns the key the store writes under.
func (s *MemoryStore) Slot() string { return s.slot }

func (s *MemoryStore) Write(_ context.Context, draft method.Method) error {
	payload, err := Encode(draft)
	if err != nil {
		return err
	}
	s.WriteRaw(payload)
	return nil
}

// WriteRaw stores a payload without encoding it.
func (s *MemoryStore) WriteRaw(payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = slices.Clone(payload)
}

func (s *MemoryStore) Read(_ context.Context) (*method.Method, error) {
	s.mu.RLock()
	payload := s.payload
	s.mu.RUnlock()

	if payload == nil {
		return nil, nil
	}
	return Decode(payload)
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = nil
	return nil
}
