package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-methodlib/internal/drafts"
	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/internal/validation"
	"github.com/goliatone/go-methodlib/method"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
	"github.com/google/uuid"
)

// Options configures a session. Store is required; the rest default.
type Options struct {
	// SessionID identifies the session in a Registry. Minted when empty.
	SessionID string
	// MethodID opens the session in edit mode for a stored method.
	MethodID string

	Store       Store
	Drafts      drafts.Store
	Navigator   Navigator
	IDGenerator IDGenerator
	Limits      Limits
	Rules       []validation.RuleOption
	Logger      interfaces.Logger
	Clock       func() time.Time
	// MethodPath builds the page path published methods navigate to.
	MethodPath func(id string) string
	// OnResume runs when a saved or published session is edited again.
	OnResume func(*Session)
}

// DefaultMethodPath returns /methods/{id}.
func DefaultMethodPath(id string) string {
	return "/methods/" + id
}

// Session owns one method draft and its lifecycle. All operations are
// serialized.
type Session struct {
	mu sync.Mutex

	id        string
	mode      Mode
	state     State
	draft     method.Method
	errors    []string
	updatedAt time.Time

	store      Store
	drafts     drafts.Store
	navigator  Navigator
	newID      IDGenerator
	limits     Limits
	rules      []validation.RuleOption
	logger     interfaces.Logger
	now        func() time.Time
	methodPath func(string) string
	onResume   func(*Session)
}

// Open starts a session. In create mode a stored snapshot is restored when
// present; a corrupt snapshot is logged and replaced by an empty draft. In
// edit mode the method is loaded from the store and any snapshot is ignored.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, ErrStoreRequired
	}
	s := &Session{
		id:         opts.SessionID,
		state:      StateEditing,
		store:      opts.Store,
		drafts:     opts.Drafts,
		navigator:  opts.Navigator,
		newID:      opts.IDGenerator,
		limits:     opts.Limits,
		rules:      opts.Rules,
		logger:     opts.Logger,
		now:        opts.Clock,
		methodPath: opts.MethodPath,
		onResume:   opts.OnResume,
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.drafts == nil {
		s.drafts = drafts.NewMemoryStore()
	}
	if s.limits == nil {
		s.limits = DefaultLimits()
	}
	if s.logger == nil {
		s.logger = logging.NoOp()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.methodPath == nil {
		s.methodPath = DefaultMethodPath
	}
	if s.id == "" {
		s.id = s.newID()
	}

	if methodID := strings.TrimSpace(opts.MethodID); methodID != "" {
		stored, err := s.store.Get(ctx, methodID)
		if err != nil {
			return nil, err
		}
		s.mode = ModeEdit
		s.draft = stored.Clone().Normalize()
	} else {
		s.mode = ModeCreate
		s.draft = s.restoreSnapshot(ctx)
	}
	s.logger = logging.WithSession(s.logger, s.id, s.draft.ID)
	s.updatedAt = s.now()
	return s, nil
}

func (s *Session) restoreSnapshot(ctx context.Context) method.Method {
	snapshot, err := s.drafts.Read(ctx)
	switch {
	case err != nil:
		if errors.Is(err, drafts.ErrSnapshotCorrupt) {
			s.logger.Warn("editor.snapshot_corrupt", "error", err)
		} else {
			s.logger.Error("editor.snapshot_read_failed", "error", err)
		}
		return method.Empty()
	case snapshot == nil:
		return method.Empty()
	default:
		s.logger.Info("editor.snapshot_restored", "name", snapshot.Name)
		restored := snapshot.Clone().Normalize()
		restored.Tags = method.UniqueStrings(restored.Tags)
		restored.Related = method.UniqueStrings(restored.Related)
		return restored
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Mode() Mode { return s.mode }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns a copy of the current draft.
func (s *Session) Draft() method.Method {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// Errors returns the messages of the last validation.
func (s *Session) Errors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.errors...)
}

// UpdatedAt returns the time of the last edit.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// edit runs fn under the lock when the session is still open. When fn reports
// a change, saved and published sessions return to editing.
func (s *Session) edit(fn func() bool) bool {
	s.mu.Lock()
	if s.state == StateDiscarded {
		s.mu.Unlock()
		return false
	}
	resumed := false
	if fn() {
		resumed = s.state == StateSaved || s.state == StatePublished
		s.state = StateEditing
		s.updatedAt = s.now()
	}
	s.mu.Unlock()

	if resumed && s.onResume != nil {
		s.onResume(s)
	}
	return true
}

// UpdateField replaces one scalar field. An empty code clears it.
func (s *Session) UpdateField(field Field, value string) error {
	if _, err := ParseField(string(field)); err != nil {
		return err
	}
	ok := s.edit(func() bool {
		switch field {
		case FieldName:
			s.draft.Name = value
		case FieldDescription:
			s.draft.Description = value
		case FieldCode:
			if value == "" {
				s.draft.Code = nil
			} else {
				code := value
				s.draft.Code = &code
			}
		case FieldSector:
			s.draft.Sector = value
		case FieldCommunity:
			s.draft.Community = value
		case FieldPhase:
			s.draft.Phase = value
		}
		return true
	})
	if !ok {
		return ErrSessionClosed
	}
	return nil
}

// AddStep appends an empty step and returns it.
func (s *Session) AddStep() method.Step {
	var step method.Step
	s.edit(func() bool {
		step = method.Step{ID: s.newID(), Resources: []method.Asset{}}
		s.draft.Approach = append(s.draft.Approach, step)
		return true
	})
	return step.Clone()
}

// UpdateStep applies a partial update. Unknown ids leave the draft unchanged.
func (s *Session) UpdateStep(id string, patch method.StepPatch) bool {
	found := false
	s.edit(func() bool {
		if i := s.draft.StepIndex(id); i >= 0 {
			s.draft.Approach[i] = s.draft.Approach[i].Apply(patch)
			found = true
		}
		return found
	})
	return found
}

// RemoveStep deletes the step with the given id, keeping the order of the rest.
func (s *Session) RemoveStep(id string) bool {
	found := false
	s.edit(func() bool {
		if i := s.draft.StepIndex(id); i >= 0 {
			s.draft.Approach = append(s.draft.Approach[:i:i], s.draft.Approach[i+1:]...)
			found = true
		}
		return found
	})
	return found
}

// AddExpert appends an empty expert and returns it.
func (s *Session) AddExpert() method.Expert {
	var expert method.Expert
	s.edit(func() bool {
		expert = method.Expert{ID: s.newID()}
		s.draft.Experts = append(s.draft.Experts, expert)
		return true
	})
	return expert
}

func (s *Session) UpdateExpert(id string, patch method.ExpertPatch) bool {
	found := false
	s.edit(func() bool {
		if i := s.draft.ExpertIndex(id); i >= 0 {
			s.draft.Experts[i] = s.draft.Experts[i].Apply(patch)
			found = true
		}
		return found
	})
	return found
}

func (s *Session) RemoveExpert(id string) bool {
	found := false
	s.edit(func() bool {
		if i := s.draft.ExpertIndex(id); i >= 0 {
			s.draft.Experts = append(s.draft.Experts[:i:i], s.draft.Experts[i+1:]...)
			found = true
		}
		return found
	})
	return found
}

func (s *Session) newAsset(slot Slot, file File) method.Asset {
	id := s.newID()
	ref := strings.TrimSpace(file.Ref)
	if ref == "" {
		ref = "blob:" + id
	}
	return method.Asset{ID: id, Name: file.Name, URL: ref, Kind: slot.Kind()}
}

// AttachAsset checks the file against the slot allow-list and attaches it.
// Downloads accumulate; video and audio replace the current asset.
func (s *Session) AttachAsset(slot Slot, file File) (*method.Asset, error) {
	if err := s.limits.check(slot, file); err != nil {
		s.logger.Info("editor.attachment_rejected", "slot", string(slot), "file", file.Name, "error", err)
		return nil, err
	}
	var asset method.Asset
	if !s.edit(func() bool {
		asset = s.newAsset(slot, file)
		s.place(slot, asset)
		return true
	}) {
		return nil, ErrSessionClosed
	}
	return &asset, nil
}

// AttachAssetFromURL attaches an external link without type or size checks.
// A blank url is ignored and returns nil.
func (s *Session) AttachAssetFromURL(slot Slot, url, label string) (*method.Asset, error) {
	if _, err := ParseSlot(string(slot)); err != nil {
		return nil, err
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, nil
	}
	if strings.TrimSpace(label) == "" {
		label = defaultURLLabel(slot)
	}
	var asset method.Asset
	if !s.edit(func() bool {
		asset = method.Asset{ID: s.newID(), Name: label, URL: url, Kind: slot.Kind()}
		s.place(slot, asset)
		return true
	}) {
		return nil, ErrSessionClosed
	}
	return &asset, nil
}

func (s *Session) place(slot Slot, asset method.Asset) {
	switch slot {
	case SlotVideo:
		s.draft.Video = &asset
	case SlotAudio:
		s.draft.Audio = &asset
	default:
		s.draft.Downloads = append(s.draft.Downloads, asset)
	}
}

// RemoveAsset removes a download by id. Video and audio are cleared whatever
// the id.
func (s *Session) RemoveAsset(slot Slot, id string) bool {
	removed := false
	s.edit(func() bool {
		switch slot {
		case SlotVideo:
			removed = s.draft.Video != nil
			s.draft.Video = nil
		case SlotAudio:
			removed = s.draft.Audio != nil
			s.draft.Audio = nil
		case SlotDownloads:
			s.draft.Downloads, removed = removeAsset(s.draft.Downloads, id)
		}
		return removed
	})
	return removed
}

// AttachStepResource attaches a document to a step using the downloads
// allow-list.
func (s *Session) AttachStepResource(stepID string, file File) (*method.Asset, error) {
	if err := s.limits.check(SlotDownloads, file); err != nil {
		return nil, err
	}
	var (
		asset method.Asset
		found bool
	)
	if !s.edit(func() bool {
		i := s.draft.StepIndex(stepID)
		if i < 0 {
			return false
		}
		found = true
		asset = s.newAsset(SlotDownloads, file)
		step := s.draft.Approach[i].Clone()
		step.Resources = append(step.Resources, asset)
		s.draft.Approach[i] = step
		return true
	}) {
		return nil, ErrSessionClosed
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrStepNotFound, stepID)
	}
	return &asset, nil
}

func (s *Session) RemoveStepResource(stepID, assetID string) bool {
	removed := false
	s.edit(func() bool {
		if i := s.draft.StepIndex(stepID); i >= 0 {
			step := s.draft.Approach[i].Clone()
			step.Resources, removed = removeAsset(step.Resources, assetID)
			s.draft.Approach[i] = step
		}
		return removed
	})
	return removed
}

func removeAsset(assets []method.Asset, id string) ([]method.Asset, bool) {
	for i, asset := range assets {
		if asset.ID == id {
			return append(assets[:i:i], assets[i+1:]...), true
		}
	}
	return assets, false
}

// SetTags replaces the tag set. Blank and duplicate values are dropped.
func (s *Session) SetTags(tags []string) {
	s.edit(func() bool {
		s.draft.Tags = method.UniqueStrings(tags)
		return true
	})
}

// AddTag appends one tag, typically the create entry of a suggestion list.
// It reports false when the tag is blank or already present.
func (s *Session) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	added := false
	s.edit(func() bool {
		if tag == "" {
			return false
		}
		before := len(s.draft.Tags)
		s.draft.Tags = method.AddUnique(s.draft.Tags, tag)
		added = len(s.draft.Tags) > before
		return added
	})
	return added
}

// SetRelated replaces the related method ids.
func (s *Session) SetRelated(ids []string) {
	s.edit(func() bool {
		s.draft.Related = method.UniqueStrings(ids)
		return true
	})
}

// Validate re-runs the rule set and replaces the stored error list.
func (s *Session) Validate() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = validation.Validate(s.draft, s.rules...)
	return append([]string(nil), s.errors...)
}

// Save validates and stores the draft.
func (s *Session) Save(ctx context.Context) (Result, error) {
	return s.commit(ctx, false)
}

// Publish validates, stores the draft as published and navigates to the
// method page.
func (s *Session) Publish(ctx context.Context) (Result, error) {
	return s.commit(ctx, true)
}

func (s *Session) commit(ctx context.Context, publish bool) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDiscarded {
		return Result{}, ErrSessionClosed
	}

	s.state = StateValidating
	s.errors = validation.Validate(s.draft, s.rules...)
	if len(s.errors) > 0 {
		s.state = StateInvalid
		s.logger.Debug("editor.validation_failed", "errors", len(s.errors))
		s.state = StateEditing
		return Result{Errors: append([]string(nil), s.errors...)}, nil
	}

	candidate := s.draft.Clone()
	if candidate.ID == "" {
		candidate.ID = s.newID()
	}

	var (
		stored *method.Method
		err    error
	)
	if publish {
		stored, err = s.store.Publish(ctx, candidate)
	} else {
		stored, err = s.store.Save(ctx, candidate)
	}
	if err != nil {
		s.state = StateEditing
		s.logger.Error("editor.commit_failed", "method_id", candidate.ID, "publish", publish, "error", err)
		return Result{}, fmt.Errorf("editor: store method: %w", err)
	}

	s.draft = stored.Clone().Normalize()
	if err := s.drafts.Clear(ctx); err != nil {
		s.logger.Warn("editor.snapshot_clear_failed", "error", err)
	}

	result := Result{Method: &method.Method{}}
	*result.Method = stored.Clone()

	if !publish {
		s.state = StateSaved
		s.logger.Info("editor.method_saved", "method_id", stored.ID)
		return result, nil
	}

	s.state = StatePublished
	result.Path = s.methodPath(stored.ID)
	s.logger.Info("editor.method_published", "method_id", stored.ID, "path", result.Path)
	if s.navigator != nil {
		if err := s.navigator.GoTo(ctx, result.Path); err != nil {
			return result, fmt.Errorf("editor: navigate to %s: %w", result.Path, err)
		}
	}
	return result, nil
}

// Autosave writes the draft to the snapshot store when a creation-mode
// session is editing and the draft has a non-blank name. Edit-mode sessions
// never write: the single slot belongs to the creation draft. It reports
// whether a snapshot was written.
func (s *Session) Autosave(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeCreate || s.state != StateEditing || strings.TrimSpace(s.draft.Name) == "" {
		return false, nil
	}
	if err := s.drafts.Write(ctx, s.draft); err != nil {
		s.logger.Error("editor.autosave_failed", "error", err)
		return false, err
	}
	s.logger.Debug("editor.autosaved")
	return true, nil
}

// Discard clears the snapshot and closes the session.
func (s *Session) Discard(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDiscarded {
		return nil
	}
	if err := s.drafts.Clear(ctx); err != nil {
		return fmt.Errorf("editor: clear snapshot: %w", err)
	}
	s.state = StateDiscarded
	s.logger.Info("editor.discarded")
	return nil
}
