package library

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-methodlib/internal/identity"
	"github.com/goliatone/go-methodlib/method"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

// BunRepository stores methods through go-repository-bun.
type BunRepository struct {
	repo repository.Repository[*MethodRecord]
}

var _ Repository = (*BunRepository)(nil)

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache wraps the repository with go-repository-cache when
// both a cache service and key serializer are supplied.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewMethodRecordRepository(db)
	return &BunRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunRepository) Get(ctx context.Context, id string) (*method.Method, error) {
	record, err := r.repo.GetByIdentifier(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, "method", id)
	}
	return methodFromRecord(record)
}

func (r *BunRepository) Put(ctx context.Context, m method.Method) (*method.Method, error) {
	if m.ID == "" {
		return nil, ErrMethodIDRequired
	}
	record, err := recordFromMethod(m)
	if err != nil {
		return nil, fmt.Errorf("method repository error: encode: %w", err)
	}
	record.ID = identity.MethodRecordUUID(m.ID)

	_, err = r.repo.GetByID(ctx, record.ID.String())
	switch {
	case err == nil:
		_, err = r.repo.Update(ctx, record,
			repository.UpdateByID(record.ID.String()),
			repository.UpdateColumns(
				"name",
				"sector",
				"sector_slug",
				"community",
				"phase",
				"status",
				"document",
				"updated_at",
				"published_at",
			),
		)
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		_, err = r.repo.Create(ctx, record)
	}
	if err != nil {
		return nil, mapRepositoryError(err, "method", m.ID)
	}
	return r.Get(ctx, m.ID)
}

func (r *BunRepository) List(ctx context.Context) ([]method.Method, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("created_at ASC", "name ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "method", "")
	}
	out := make([]method.Method, 0, len(records))
	for _, record := range records {
		m, err := methodFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("method repository error: decode %s: %w", record.MethodKey, err)
		}
		out = append(out, *m)
	}
	return out, nil
}

// ListBySector narrows the listing to a sector slug in SQL.
func (r *BunRepository) ListBySector(ctx context.Context, sectorSlug string) ([]method.Method, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.sector_slug = ?", sectorSlug)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("created_at ASC", "name ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "method", sectorSlug)
	}
	out := make([]method.Method, 0, len(records))
	for _, record := range records {
		m, err := methodFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("method repository error: decode %s: %w", record.MethodKey, err)
		}
		out = append(out, *m)
	}
	return out, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
