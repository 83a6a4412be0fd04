package templates

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const defaultListPageSize = 100

// BunRecordStore implements RecordStore with bun, with optional read caching.
// Criteria closures are opaque to the cache key serializer, so only id-keyed
// reads and writes go through the cache wrapper; list queries always hit the
// database directly.
type BunRecordStore struct {
	repo   repository.Repository[*Template]
	lookup repository.Repository[*Template]
}

// NewBunRecordStore creates a record store without caching.
func NewBunRecordStore(db *bun.DB) *BunRecordStore {
	return NewBunRecordStoreWithCache(db, nil, nil)
}

// NewBunRecordStoreWithCache creates a record store with caching support.
func NewBunRecordStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRecordStore {
	base := NewTemplateRepository(db)
	repo := base
	if cacheService != nil && serializer != nil {
		repo = repositorycache.New(base, cacheService, serializer)
	}
	return &BunRecordStore{repo: repo, lookup: base}
}

func (r *BunRecordStore) Create(ctx context.Context, record *Template) (*Template, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("template repository error: %w", err)
	}
	return created, nil
}

func (r *BunRecordStore) Update(ctx context.Context, record *Template) (*Template, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"version",
			"main_entry",
			"body",
			"partials",
			"manifest",
			"description",
			"category",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, record.ID)
	}
	return updated, nil
}

func (r *BunRecordStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !record.OwnedBy(tenantID) {
		return &NotFoundByIDError{ID: id}
	}
	return r.repo.Delete(ctx, &Template{ID: id})
}

func (r *BunRecordStore) GetByID(ctx context.Context, id uuid.UUID) (*Template, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id)
	}
	return record, nil
}

func (r *BunRecordStore) GetByKey(ctx context.Context, tenantID *uuid.UUID, name string, version int) (*Template, error) {
	if tenantID != nil {
		records, err := r.listByKey(ctx, tenantID, name, version)
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			return records[0], nil
		}
	}

	records, err := r.listByKey(ctx, nil, name, version)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &NotFoundError{TenantID: tenantID, Name: name, Version: version}
	}
	return records[0], nil
}

func (r *BunRecordStore) listByKey(ctx context.Context, tenantID *uuid.UUID, name string, version int) ([]*Template, error) {
	records, _, err := r.lookup.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("?TableAlias.name = ?", name).
				Where("?TableAlias.version = ?", version)
			if tenantID != nil {
				return q.Where("?TableAlias.tenant_id = ?", *tenantID)
			}
			return q.Where("?TableAlias.tenant_id IS NULL")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, fmt.Errorf("template repository error: %w", err)
	}
	return records, nil
}

func (r *BunRecordStore) ListByName(ctx context.Context, tenantID uuid.UUID, name string) ([]*Template, error) {
	records, _, err := r.lookup.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.name = ?", name).
				Where("?TableAlias.tenant_id = ? OR ?TableAlias.tenant_id IS NULL", tenantID)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("template repository error: %w", err)
	}
	sortByScopeAndVersion(records, tenantID)
	return records, nil
}

func (r *BunRecordStore) List(ctx context.Context, tenantID uuid.UUID, opts ListOptions) ([]*Template, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListPageSize
	}

	records, _, err := r.lookup.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if opts.IncludePublic {
				q = q.Where("?TableAlias.tenant_id = ? OR ?TableAlias.tenant_id IS NULL", tenantID)
			} else {
				q = q.Where("?TableAlias.tenant_id = ?", tenantID)
			}
			if opts.Category != nil {
				q = q.Where("?TableAlias.category = ?", *opts.Category)
			}
			return q.Order("name ASC").Order("version DESC")
		}),
		repository.SelectPaginate(limit, opts.Offset),
	)
	if err != nil {
		return nil, fmt.Errorf("template repository error: %w", err)
	}
	return records, nil
}

func mapRepositoryError(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundByIDError{ID: id}
	}
	return fmt.Errorf("template repository error: %w", err)
}
