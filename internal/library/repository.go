package library

import (
	"context"
	"encoding/json"
	"time"

	"github.com/goliatone/go-methodlib/method"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository persists complete methods keyed by their public id.
type Repository interface {
	Get(ctx context.Context, id string) (*method.Method, error)
	Put(ctx context.Context, m method.Method) (*method.Method, error)
	List(ctx context.Context) ([]method.Method, error)
}

// MethodRecord is the methods row. The full document is kept as JSON next to
// the columns listings and framework pages filter on.
type MethodRecord struct {
	bun.BaseModel `bun:"table:methods,alias:m"`

	ID          uuid.UUID  `bun:",pk,type:uuid"`
	MethodKey   string     `bun:"method_key,notnull,unique"`
	Name        string     `bun:"name,notnull"`
	Sector      string     `bun:"sector"`
	SectorSlug  string     `bun:"sector_slug"`
	Community   string     `bun:"community"`
	Phase       string     `bun:"phase"`
	Status      string     `bun:"status,notnull"`
	Document    string     `bun:"document,notnull"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
	PublishedAt *time.Time `bun:"published_at,nullzero"`
}

// NewMethodRecordRepository wires the go-repository-bun handlers for methods.
func NewMethodRecordRepository(db *bun.DB) repository.Repository[*MethodRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*MethodRecord]{
		NewRecord: func() *MethodRecord { return &MethodRecord{} },
		GetID: func(r *MethodRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *MethodRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "method_key"
		},
		GetIdentifierValue: func(r *MethodRecord) string {
			return r.MethodKey
		},
	})
}

func recordFromMethod(m method.Method) (*MethodRecord, error) {
	doc, err := json.Marshal(m.Clone().Normalize())
	if err != nil {
		return nil, err
	}
	return &MethodRecord{
		MethodKey:   m.ID,
		Name:        m.Name,
		Sector:      m.Sector,
		SectorSlug:  method.SectorSlug(m.Sector),
		Community:   m.Community,
		Phase:       m.Phase,
		Status:      string(m.Status),
		Document:    string(doc),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		PublishedAt: m.PublishedAt,
	}, nil
}

func methodFromRecord(r *MethodRecord) (*method.Method, error) {
	var m method.Method
	if err := json.Unmarshal([]byte(r.Document), &m); err != nil {
		return nil, err
	}
	m = m.Normalize()
	m.ID = r.MethodKey
	m.Status = method.Status(r.Status)
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
	m.PublishedAt = r.PublishedAt
	return &m, nil
}
