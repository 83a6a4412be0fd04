package pages

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound                 = errors.New("pages: page not found")
	ErrTemplateNotFound         = errors.New("pages: template not found")
	ErrPreviewStatusInvalid     = errors.New("pages: preview status invalid")
	ErrPreviewTransitionInvalid = errors.New("pages: preview status transition invalid")
)

// NotFoundError reports a missing page row for a tenant-scoped lookup.
type NotFoundError struct {
	ID       uuid.UUID
	TenantID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pages: page %s not found for tenant %s", e.ID, e.TenantID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// TemplateNotFoundError reports a template-switch target that does not exist.
type TemplateNotFoundError struct {
	TemplateID uuid.UUID
	Version    int
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("pages: template %s v%d not found", e.TemplateID, e.Version)
}

func (e *TemplateNotFoundError) Unwrap() error { return ErrTemplateNotFound }
