package drafts

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/goliatone/go-methodlib/method"
	"github.com/uptrace/bun"
)

var errBunDatabaseRequired = errors.New("drafts: bun store requires a database")

// SnapshotRecord is the draft_snapshots row.
type SnapshotRecord struct {
	bun.BaseModel `bun:"table:draft_snapshots,alias:ds"`

	Slot      string    `bun:",pk"`
	Payload   string    `bun:"payload,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// BunStore keeps the snapshot in a SQL table keyed by slot.
type BunStore struct {
	db    *bun.DB
	slot  string
	clock func() time.Time
}

var _ Store = (*BunStore)(nil)

// NewBunStore constructs a SQL-backed snapshot store.
func NewBunStore(db *bun.DB, opts ...Option) *BunStore {
	o := resolveOptions(opts)
	return &BunStore{db: db, slot: o.slot, clock: o.clock}
}

func (s *BunStore) Write(ctx context.Context, draft method.Method) error {
	if s.db == nil {
		return errBunDatabaseRequired
	}
	payload, err := Encode(draft)
	if err != nil {
		return err
	}

	now := s.clock().UTC()
	var existing SnapshotRecord
	err = s.db.NewSelect().Model(&existing).Where("slot = ?", s.slot).Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		record := SnapshotRecord{Slot: s.slot, Payload: string(payload), CreatedAt: now, UpdatedAt: now}
		_, err = s.db.NewInsert().Model(&record).Exec(ctx)
		return err
	case err != nil:
		return err
	}

	existing.Payload = string(payload)
	existing.UpdatedAt = now
	_, err = s.db.NewUpdate().
		Model(&existing).
		Column("payload", "updated_at").
		WherePK().
		Exec(ctx)
	return err
}

func (s *BunStore) Read(ctx context.Context) (*method.Method, error) {
	if s.db == nil {
		return nil, errBunDatabaseRequired
	}
	var record SnapshotRecord
	if err := s.db.NewSelect().Model(&record).Where("slot = ?", s.slot).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return Decode([]byte(record.Payload))
}

func (s *BunStore) Clear(ctx context.Context) error {
	if s.db == nil {
		return errBunDatabaseRequired
	}
	_, err := s.db.NewDelete().
		Model((*SnapshotRecord)(nil)).
		Where("slot = ?", s.slot).
		Exec(ctx)
	return err
}
