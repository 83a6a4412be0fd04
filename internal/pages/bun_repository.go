package pages

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunPageRepository implements PageRepository with bun, with optional read
// caching. Criteria closures are opaque to the cache key serializer, so only
// id-keyed reads and writes go through the cache wrapper; tenant-scoped
// lookups always hit the database directly.
type BunPageRepository struct {
	repo   repository.Repository[*Page]
	lookup repository.Repository[*Page]
}

// NewBunPageRepository creates a page repository without caching.
func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return NewBunPageRepositoryWithCache(db, nil, nil)
}

// NewBunPageRepositoryWithCache creates a page repository with caching support.
func NewBunPageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunPageRepository {
	base := NewPageRepository(db)
	repo := base
	if cacheService != nil && serializer != nil {
		repo = repositorycache.New(base, cacheService, serializer)
	}
	return &BunPageRepository{repo: repo, lookup: base}
}

func (r *BunPageRepository) Create(ctx context.Context, page *Page) (*Page, error) {
	created, err := r.repo.Create(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("page repository error: %w", err)
	}
	return created, nil
}

func (r *BunPageRepository) Update(ctx context.Context, page *Page) (*Page, error) {
	updated, err := r.repo.Update(ctx, page,
		repository.UpdateByID(page.ID.String()),
		repository.UpdateColumns(
			"slug",
			"title",
			"template_id",
			"template_version",
			"draft_composition",
			"is_published",
			"published_url",
			"published_etag",
			"preview_status",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, page.ID, page.TenantID)
	}
	return updated, nil
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	page, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id, uuid.Nil)
	}
	return page, nil
}

func (r *BunPageRepository) GetForTenant(ctx context.Context, id, tenantID uuid.UUID) (*Page, error) {
	records, _, err := r.lookup.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id = ?", id).
				Where("?TableAlias.tenant_id = ?", tenantID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, fmt.Errorf("page repository error: %w", err)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{ID: id, TenantID: tenantID}
	}
	return records[0], nil
}

func (r *BunPageRepository) SetPreviewStatus(ctx context.Context, id uuid.UUID, status PreviewStatus) error {
	_, err := r.repo.Update(ctx, &Page{ID: id, PreviewStatus: status, UpdatedAt: time.Now().UTC()},
		repository.UpdateByID(id.String()),
		repository.UpdateColumns("preview_status", "updated_at"),
	)
	if err != nil {
		return mapRepositoryError(err, id, uuid.Nil)
	}
	return nil
}

func mapRepositoryError(err error, id, tenantID uuid.UUID) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{ID: id, TenantID: tenantID}
	}
	return fmt.Errorf("page repository error: %w", err)
}
