package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-methodlib/internal/validation"
	"github.com/goliatone/go-methodlib/method"
)

// DefaultSlot is the well-known key holding the in-progress creation draft.
const DefaultSlot = "method-draft"

var (
	// ErrSnapshotCorrupt is returned by Read when the stored payload cannot be
	// decoded into a method. The underlying schema or decode error is wrapped.
	ErrSnapshotCorrupt = errors.New("drafts: snapshot corrupt")
	ErrSlotRequired    = errors.New("drafts: slot required")
)

// Store persists at most one draft snapshot. Read returns nil, nil when the
// slot is empty.
type Store interface {
	Write(ctx context.Context, draft method.Method) error
	Read(ctx context.Context) (*method.Method, error)
	Clear(ctx context.Context) error
}

// Option configures a snapshot store.
type Option func(*options)

type options struct {
	slot  string
	clock func() time.Time
}

// WithSlot overrides the snapshot key.
func WithSlot(slot string) Option {
	return func(o *options) {
		if trimmed := strings.TrimSpace(slot); trimmed != "" {
			o.slot = trimmed
		}
	}
}

// WithClock overrides the timestamp source used for stored rows.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func resolveOptions(opts []Option) options {
	o := options{slot: DefaultSlot, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Encode serializes a draft snapshot.
func Encode(draft method.Method) ([]byte, error) {
	return json.Marshal(draft.Clone().Normalize())
}

// Decode validates and decodes a stored snapshot. Any failure wraps
// ErrSnapshotCorrupt.
func Decode(payload []byte) (*method.Method, error) {
	if err := validation.ValidateSnapshot(payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotCorrupt, err)
	}
	var draft method.Method
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotCorrupt, err)
	}
	draft = draft.Normalize()
	return &draft, nil
}
