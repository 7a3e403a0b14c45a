package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-methodlib/method"
)

// State is the lifecycle position of a session.
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateInvalid    State = "invalid"
	StateSaved      State = "saved"
	StatePublished  State = "published"
	StateDiscarded  State = "discarded"
)

// Mode records whether the session creates a new method or edits a stored one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Field names the scalar method fields UpdateField accepts.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldCode        Field = "code"
	FieldSector      Field = "sector"
	FieldCommunity   Field = "community"
	FieldPhase       Field = "phase"
)

// ParseField maps a wire name to a Field.
func ParseField(name string) (Field, error) {
	switch f := Field(strings.TrimSpace(name)); f {
	case FieldName, FieldDescription, FieldCode, FieldSector, FieldCommunity, FieldPhase:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// Slot is an asset position on the method.
type Slot string

const (
	SlotDownloads Slot = "downloads"
	SlotVideo     Slot = "video"
	SlotAudio     Slot = "audio"
)

// ParseSlot maps a wire name to a Slot.
func ParseSlot(name string) (Slot, error) {
	switch s := Slot(strings.TrimSpace(name)); s {
	case SlotDownloads, SlotVideo, SlotAudio:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSlot, name)
	}
}

// Kind returns the asset kind stored in the slot.
func (s Slot) Kind() method.AssetKind {
	switch s {
	case SlotVideo:
		return method.KindVideo
	case SlotAudio:
		return method.KindAudio
	default:
		return method.KindDocument
	}
}

var (
	ErrUnknownField  = errors.New("editor: unknown field")
	ErrUnknownSlot   = errors.New("editor: unknown asset slot")
	ErrStepNotFound  = errors.New("editor: step not found")
	ErrSessionClosed = errors.New("editor: session discarded")
	ErrStoreRequired = errors.New("editor: method store required")
)

// Store is the durable method store the editor commits to.
type Store interface {
	Get(ctx context.Context, id string) (*method.Method, error)
	Save(ctx context.Context, m method.Method) (*method.Method, error)
	Publish(ctx context.Context, m method.Method) (*method.Method, error)
}

// Navigator moves the user to another page after publishing.
type Navigator interface {
	GoTo(ctx context.Context, path string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, path string) error

func (f NavigatorFunc) GoTo(ctx context.Context, path string) error {
	return f(ctx, path)
}

// IDGenerator mints ids for methods, steps, experts and assets.
type IDGenerator func() string

// Result reports the outcome of Save or Publish. Errors is non-empty when
// validation failed and nothing was stored.
type Result struct {
	Errors []string       `json:"errors,omitempty"`
	Method *method.Method `json:"method,omitempty"`
	Path   string         `json:"path,omitempty"`
}

// OK reports whether the method was stored.
func (r Result) OK() bool {
	return len(r.Errors) == 0 && r.Method != nil
}
