package pages

import sbpages "github.com/goliatone/go-sitebuilder/pages"

type (
	Page                  = sbpages.Page
	DraftPatch            = sbpages.DraftPatch
	PreviewLink           = sbpages.PreviewLink
	PreviewStatus         = sbpages.PreviewStatus
	NotFoundError         = sbpages.NotFoundError
	TemplateNotFoundError = sbpages.TemplateNotFoundError
)

const (
	PreviewStatusNone   = sbpages.PreviewStatusNone
	PreviewStatusQueued = sbpages.PreviewStatusQueued
	PreviewStatusReady  = sbpages.PreviewStatusReady
	PreviewStatusFailed = sbpages.PreviewStatusFailed
)

var (
	ErrNotFound                 = sbpages.ErrNotFound
	ErrTemplateNotFound         = sbpages.ErrTemplateNotFound
	ErrPreviewStatusInvalid     = sbpages.ErrPreviewStatusInvalid
	ErrPreviewTransitionInvalid = sbpages.ErrPreviewTransitionInvalid
)
