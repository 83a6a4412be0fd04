package templates

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNameRequired    = errors.New("templates: name is required")
	ErrBodyRequired    = errors.New("templates: body is required")
	ErrVersionInvalid  = errors.New("templates: version must be positive")
	ErrTenantRequired  = errors.New("templates: tenant id is required")
	ErrManifestInvalid = errors.New("templates: manifest is invalid")
	ErrNotFound        = errors.New("templates: template not found")
	ErrTemplateExists  = errors.New("templates: template already exists")
)

// ConflictError reports an existing record for a (tenant, name, version) key
// that a create would duplicate.
type ConflictError struct {
	TenantID *uuid.UUID
	Name     string
	Version  int
}

func (e *ConflictError) Error() string {
	scope := "public"
	if e.TenantID != nil {
		scope = e.TenantID.String()
	}
	return fmt.Sprintf("templates: template %q v%d already exists (scope %s)", e.Name, e.Version, scope)
}

func (e *ConflictError) Unwrap() error { return ErrTemplateExists }

// NotFoundError reports a missing record for a (tenant, name, version) key.
type NotFoundError struct {
	TenantID *uuid.UUID
	Name     string
	Version  int
}

func (e *NotFoundError) Error() string {
	scope := "public"
	if e.TenantID != nil {
		scope = e.TenantID.String()
	}
	return fmt.Sprintf("templates: template %q v%d not found (scope %s)", e.Name, e.Version, scope)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFoundByIDError reports a missing record for an id lookup.
type NotFoundByIDError struct {
	ID uuid.UUID
}

func (e *NotFoundByIDError) Error() string {
	return fmt.Sprintf("templates: template %s not found", e.ID)
}

func (e *NotFoundByIDError) Unwrap() error { return ErrNotFound }

// SyntaxError surfaces a user-correctable template compilation failure from
// the admin trial render.
type SyntaxError struct {
	Name  string
	Cause error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("templates: template %q failed to compile: %v", e.Name, e.Cause)
}

func (e *SyntaxError) Unwrap() error { return e.Cause }
