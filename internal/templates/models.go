package templates

import sbtemplates "github.com/goliatone/go-sitebuilder/templates"

type (
	Template          = sbtemplates.Template
	NotFoundError     = sbtemplates.NotFoundError
	NotFoundByIDError = sbtemplates.NotFoundByIDError
	ConflictError     = sbtemplates.ConflictError
	SyntaxError       = sbtemplates.SyntaxError
)

var (
	ErrNameRequired    = sbtemplates.ErrNameRequired
	ErrBodyRequired    = sbtemplates.ErrBodyRequired
	ErrVersionInvalid  = sbtemplates.ErrVersionInvalid
	ErrTenantRequired  = sbtemplates.ErrTenantRequired
	ErrManifestInvalid = sbtemplates.ErrManifestInvalid
	ErrNotFound        = sbtemplates.ErrNotFound
	ErrTemplateExists  = sbtemplates.ErrTemplateExists
)
