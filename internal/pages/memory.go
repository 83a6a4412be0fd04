package pages

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/composition"
)

// MemoryPageRepository provides an in-memory PageRepository used by tests
// and hosts that run without a relational database.
type MemoryPageRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Page
}

// NewMemoryPageRepository constructs an empty memory-backed page repository.
func NewMemoryPageRepository() *MemoryPageRepository {
	return &MemoryPageRepository{byID: make(map[uuid.UUID]*Page)}
}

func (r *MemoryPageRepository) Create(_ context.Context, page *Page) (*Page, error) {
	if page == nil {
		return nil, nil
	}
	cloned := clonePage(page)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[cloned.ID] = cloned

	return clonePage(cloned), nil
}

func (r *MemoryPageRepository) Update(_ context.Context, page *Page) (*Page, error) {
	if page == nil {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[page.ID]; !ok {
		return nil, &NotFoundError{ID: page.ID, TenantID: page.TenantID}
	}

	cloned := clonePage(page)
	r.byID[cloned.ID] = cloned
	return clonePage(cloned), nil
}

func (r *MemoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return clonePage(page), nil
}

func (r *MemoryPageRepository) GetForTenant(_ context.Context, id, tenantID uuid.UUID) (*Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, ok := r.byID[id]
	if !ok || page.TenantID != tenantID {
		return nil, &NotFoundError{ID: id, TenantID: tenantID}
	}
	return clonePage(page), nil
}

func (r *MemoryPageRepository) SetPreviewStatus(_ context.Context, id uuid.UUID, status PreviewStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	page, ok := r.byID[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	page.PreviewStatus = status
	page.UpdatedAt = time.Now().UTC()
	return nil
}

func clonePage(page *Page) *Page {
	if page == nil {
		return nil
	}
	cloned := *page
	cloned.PublishedURL = cloneString(page.PublishedURL)
	cloned.PublishedETag = cloneString(page.PublishedETag)
	cloned.Draft = cloneComposition(page.Draft)
	return &cloned
}

func cloneComposition(comp composition.Composition) composition.Composition {
	cloned := composition.Composition{}
	if comp.Version != nil {
		version := *comp.Version
		cloned.Version = &version
	}
	if comp.Content != nil {
		cloned.Content = make([]composition.Block, len(comp.Content))
		for i, block := range comp.Content {
			cloned.Content[i] = composition.Block{
				Type:  block.Type,
				Props: cloneProps(block.Props),
			}
		}
	}
	cloned.Root = composition.Root{Props: cloneProps(comp.Root.Props)}
	return cloned
}

func cloneProps(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
