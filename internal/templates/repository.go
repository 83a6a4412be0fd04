package templates

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewTemplateRepository creates a bun repository for template records.
func NewTemplateRepository(db *bun.DB) repository.Repository[*Template] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Template]{
		NewRecord:          func() *Template { return &Template{} },
		GetID:              func(tpl *Template) uuid.UUID { return tpl.ID },
		SetID:              func(tpl *Template, id uuid.UUID) { tpl.ID = id },
		GetIdentifier:      func() string { return "name" },
		GetIdentifierValue: func(tpl *Template) string { return tpl.Name },
	})
}
