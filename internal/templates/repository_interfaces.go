package templates

import (
	"context"

	"github.com/google/uuid"
)

// ListOptions filters the template listing for a tenant.
type ListOptions struct {
	IncludePublic bool
	Category      *string
	Limit         int
	Offset        int
}

// RecordStore is the read/write boundary over persisted template records.
// A nil tenant id addresses the public/global scope.
type RecordStore interface {
	Create(ctx context.Context, record *Template) (*Template, error)
	Update(ctx context.Context, record *Template) (*Template, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Template, error)
	GetByKey(ctx context.Context, tenantID *uuid.UUID, name string, version int) (*Template, error)
	ListByName(ctx context.Context, tenantID uuid.UUID, name string) ([]*Template, error)
	List(ctx context.Context, tenantID uuid.UUID, opts ListOptions) ([]*Template, error)
}
