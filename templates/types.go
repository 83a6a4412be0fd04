package templates

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Template is a persisted template record. A nil TenantID marks the record
// public, visible to every tenant as a fallback; (tenant_id, name, version)
// is unique within its scope.
type Template struct {
	bun.BaseModel `bun:"table:templates,alias:tpl"`

	ID          uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	TenantID    *uuid.UUID        `bun:"tenant_id,type:uuid" json:"tenant_id,omitempty"`
	Name        string            `bun:"name,notnull" json:"name"`
	Version     int               `bun:"version,notnull" json:"version"`
	MainEntry   string            `bun:"main_entry,notnull" json:"main_entry"`
	Body        string            `bun:"body,notnull" json:"body"`
	Partials    map[string]string `bun:"partials,type:jsonb" json:"partials,omitempty"`
	Manifest    map[string]any    `bun:"manifest,type:jsonb" json:"manifest,omitempty"`
	Description *string           `bun:"description" json:"description,omitempty"`
	Category    *string           `bun:"category" json:"category,omitempty"`
	CreatedAt   time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// IsPublic reports whether the record belongs to the shared global scope.
func (t *Template) IsPublic() bool {
	return t != nil && t.TenantID == nil
}

// OwnedBy reports whether the record belongs to the given tenant.
func (t *Template) OwnedBy(tenantID uuid.UUID) bool {
	return t != nil && t.TenantID != nil && *t.TenantID == tenantID
}
