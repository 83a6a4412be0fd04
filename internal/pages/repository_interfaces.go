package pages

import (
	"context"

	"github.com/google/uuid"
)

// PageRepository is the persistence boundary for page rows. GetByID is
// unscoped and exists for the preview worker path; tenant-facing operations
// go through GetForTenant.
type PageRepository interface {
	Create(ctx context.Context, page *Page) (*Page, error)
	Update(ctx context.Context, page *Page) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetForTenant(ctx context.Context, id, tenantID uuid.UUID) (*Page, error)
	SetPreviewStatus(ctx context.Context, id uuid.UUID, status PreviewStatus) error
}
