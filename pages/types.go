package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitebuilder/composition"
)

// PreviewStatus tracks the lifecycle of a page's preview thumbnail.
type PreviewStatus string

const (
	PreviewStatusNone   PreviewStatus = "none"
	PreviewStatusQueued PreviewStatus = "queued"
	PreviewStatusReady  PreviewStatus = "ready"
	PreviewStatusFailed PreviewStatus = "failed"
)

// Valid reports whether the status is one of the known values.
func (s PreviewStatus) Valid() bool {
	switch s {
	case PreviewStatusNone, PreviewStatusQueued, PreviewStatusReady, PreviewStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo enforces the preview state machine: every draft save or
// template switch queues generation, and only the external worker moves a
// queued page to ready or failed.
func (s PreviewStatus) CanTransitionTo(next PreviewStatus) bool {
	switch next {
	case PreviewStatusQueued:
		return true
	case PreviewStatusReady, PreviewStatusFailed:
		return s == PreviewStatusQueued
	}
	return false
}

// Page is a persisted page row. The draft composition and the published
// snapshot are independent: publishing snapshots rendered output, it never
// aliases the live draft.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:pg"`

	ID              uuid.UUID               `bun:",pk,type:uuid" json:"id"`
	TenantID        uuid.UUID               `bun:"tenant_id,notnull,type:uuid" json:"tenant_id"`
	SiteID          uuid.UUID               `bun:"site_id,notnull,type:uuid" json:"site_id"`
	Slug            string                  `bun:"slug,notnull" json:"slug"`
	Title           string                  `bun:"title,notnull" json:"title"`
	TemplateID      uuid.UUID               `bun:"template_id,notnull,type:uuid" json:"template_id"`
	TemplateVersion int                     `bun:"template_version,notnull" json:"template_version"`
	Draft           composition.Composition `bun:"draft_composition,type:jsonb" json:"draft_composition"`
	IsPublished     bool                    `bun:"is_published,notnull,default:false" json:"is_published"`
	PublishedURL    *string                 `bun:"published_url" json:"published_url,omitempty"`
	PublishedETag   *string                 `bun:"published_etag" json:"published_etag,omitempty"`
	PreviewStatus   PreviewStatus           `bun:"preview_status,notnull,default:'none'" json:"preview_status"`
	CreatedAt       time.Time               `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time               `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// DraftPatch is a partial update applied by SaveDraft; nil fields are left
// untouched.
type DraftPatch struct {
	Title           *string
	Slug            *string
	TemplateID      *uuid.UUID
	TemplateVersion *int
	Composition     *composition.Composition
}

// Empty reports whether the patch carries no changes.
func (p DraftPatch) Empty() bool {
	return p.Title == nil && p.Slug == nil && p.TemplateID == nil &&
		p.TemplateVersion == nil && p.Composition == nil
}

// PreviewLink is a time-limited URL granting unauthenticated access to a
// page's draft preview.
type PreviewLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
