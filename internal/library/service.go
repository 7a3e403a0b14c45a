package library

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/method"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

// Service is the durable method store used by the editor and listing pages.
type Service interface {
	Get(ctx context.Context, id string) (*method.Method, error)
	Save(ctx context.Context, m method.Method) (*method.Method, error)
	Publish(ctx context.Context, m method.Method) (*method.Method, error)
	List(ctx context.Context) ([]method.Summary, error)
	Resolve(ctx context.Context, ids []string) ([]method.Summary, error)
	BySector(ctx context.Context, sectorSlug string) (*Framework, error)
	Detail(ctx context.Context, id string) (*Detail, error)
	SuggestTags(ctx context.Context, query string) ([]TagSuggestion, error)
	SuggestRelated(ctx context.Context, query string, excludeID string) ([]method.Summary, error)
}

// sectorLister is implemented by repositories that can filter by sector
// without loading every method.
type sectorLister interface {
	ListBySector(ctx context.Context, sectorSlug string) ([]method.Method, error)
}

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMarkdown sets the renderer used for detail views.
func WithMarkdown(parser interfaces.MarkdownParser) ServiceOption {
	return func(s *service) {
		s.markdown = parser
	}
}

// WithKnownTags seeds the tag vocabulary offered by SuggestTags in addition to
// tags already used by stored methods.
func WithKnownTags(tags ...string) ServiceOption {
	return func(s *service) {
		s.knownTags = method.UniqueStrings(append(s.knownTags, tags...))
	}
}

type service struct {
	repo      Repository
	now       func() time.Time
	logger    interfaces.Logger
	markdown  interfaces.MarkdownParser
	knownTags []string
}

// NewService constructs the method store.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *service) Get(ctx context.Context, id string) (*method.Method, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMethodIDRequired
	}
	return s.repo.Get(ctx, id)
}

// Save stores the method. A method that was already published stays
// published; anything else is stored as a draft.
func (s *service) Save(ctx context.Context, m method.Method) (*method.Method, error) {
	return s.put(ctx, m, false)
}

// Publish stores the method and marks it publicly visible.
func (s *service) Publish(ctx context.Context, m method.Method) (*method.Method, error) {
	return s.put(ctx, m, true)
}

func (s *service) put(ctx context.Context, m method.Method, publish bool) (*method.Method, error) {
	m.ID = strings.TrimSpace(m.ID)
	if m.ID == "" {
		return nil, ErrMethodIDRequired
	}

	now := s.now().UTC()
	record := m.Clone().Normalize()
	record.Tags = method.UniqueStrings(record.Tags)
	record.Related = method.UniqueStrings(record.Related)
	record.CreatedAt = now
	record.Status = method.StatusDraft
	record.PublishedAt = nil

	existing, err := s.repo.Get(ctx, m.ID)
	switch {
	case err == nil:
		record.CreatedAt = existing.CreatedAt
		if existing.Published() {
			record.Status = method.StatusPublished
			record.PublishedAt = existing.PublishedAt
		}
	case !IsNotFound(err):
		return nil, err
	}

	if publish {
		record.Status = method.StatusPublished
		if record.PublishedAt == nil {
			record.PublishedAt = &now
		}
	}
	record.UpdatedAt = now

	stored, err := s.repo.Put(ctx, record)
	if err != nil {
		s.logger.Error("library.method_store_failed", "method_id", m.ID, "error", err)
		return nil, err
	}
	s.logger.Info("library.method_stored", "method_id", stored.ID, "status", string(stored.Status))
	return stored, nil
}

func (s *service) List(ctx context.Context) ([]method.Summary, error) {
	methods, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(methods), nil
}

// Resolve maps related ids to summaries in the given order. Ids with no stored
// method are skipped.
func (s *service) Resolve(ctx context.Context, ids []string) ([]method.Summary, error) {
	out := make([]method.Summary, 0, len(ids))
	for _, id := range method.UniqueStrings(ids) {
		m, err := s.repo.Get(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				s.logger.Debug("library.related_missing", "method_id", id)
				continue
			}
			return nil, err
		}
		out = append(out, m.Summarize())
	}
	return out, nil
}

func (s *service) listBySector(ctx context.Context, slug string) ([]method.Method, error) {
	if lister, ok := s.repo.(sectorLister); ok {
		return lister.ListBySector(ctx, slug)
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]method.Method, 0, len(all))
	for _, m := range all {
		if method.SectorSlug(m.Sector) == slug {
			out = append(out, m)
		}
	}
	return out, nil
}

func summarize(methods []method.Method) []method.Summary {
	out := make([]method.Summary, 0, len(methods))
	for _, m := range methods {
		out = append(out, m.Summarize())
	}
	return out
}
