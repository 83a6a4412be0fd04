package pages

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewPageRepository creates a bun repository for page rows.
func NewPageRepository(db *bun.DB) repository.Repository[*Page] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Page]{
		NewRecord:          func() *Page { return &Page{} },
		GetID:              func(page *Page) uuid.UUID { return page.ID },
		SetID:              func(page *Page, id uuid.UUID) { page.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(page *Page) string { return page.Slug },
	})
}
