package sitebuilder

import (
	"github.com/goliatone/go-sitebuilder/internal/di"
	"github.com/goliatone/go-sitebuilder/internal/pages"
	"github.com/goliatone/go-sitebuilder/internal/templates"
)

// TemplateService exports the template admin service contract.
type TemplateService = templates.Service

// TemplateCreateInput exports the template creation payload.
type TemplateCreateInput = templates.CreateInput

// TemplateUpdateInput exports the template update payload.
type TemplateUpdateInput = templates.UpdateInput

// TemplateListOptions exports the template listing filters.
type TemplateListOptions = templates.ListOptions

// PageService exports the page render service contract.
type PageService = pages.Service

// PageCreateInput exports the page creation payload.
type PageCreateInput = pages.CreateInput

// Module represents the top level site builder runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a site builder module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Templates returns the configured template admin service.
func (m *Module) Templates() TemplateService {
	return m.container.TemplateService()
}

// Pages returns the configured page render service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}
