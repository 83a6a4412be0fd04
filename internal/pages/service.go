package pages

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/composition"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/preview"
	"github.com/goliatone/go-sitebuilder/internal/templates"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// previewLinkTTL is how long an issued preview link stays valid.
const previewLinkTTL = 30 * time.Minute

const robotsMetaTag = `<meta name="robots" content="noindex,nofollow">`

// previewBanner is the fixed marker injected into every rendered preview.
const previewBanner = `<div id="sb-preview-banner" style="position:fixed;top:0;left:0;right:0;z-index:9999;background:#111827;color:#f9fafb;text-align:center;padding:6px 0;font-family:sans-serif;font-size:14px;">Preview Mode</div>`

// TemplateResolver resolves a page's bound template to a compiled
// environment.
type TemplateResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*templates.Environment, error)
}

// CompositionTransformer converts a raw composition into a render context.
type CompositionTransformer interface {
	Transform(comp composition.Composition, defaults composition.Defaults, siteSlug string) (*composition.RenderContext, error)
}

// Service orchestrates draft saves, template switching, preview rendering,
// and preview-generation queuing.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Page, error)
	SaveDraft(ctx context.Context, pageID, tenantID uuid.UUID, patch DraftPatch) (*Page, error)
	SwitchTemplate(ctx context.Context, pageID, tenantID, templateID uuid.UUID, templateVersion int) (*Page, error)
	RenderPreview(ctx context.Context, pageID, tenantID uuid.UUID, siteSlug string) (string, error)
	GeneratePreviewLink(ctx context.Context, pageID, tenantID uuid.UUID, baseURL string) (*PreviewLink, error)
	ParsePreviewToken(token string) (preview.Claims, error)
	QueuePreviewGeneration(ctx context.Context, pageID uuid.UUID) error
	MarkPreviewResult(ctx context.Context, pageID uuid.UUID, status PreviewStatus) error
}

// CreateInput captures the fields required to create a page with an
// empty/default composition.
type CreateInput struct {
	TenantID        uuid.UUID
	SiteID          uuid.UUID
	Slug            string
	Title           string
	TemplateID      uuid.UUID
	TemplateVersion int
	Draft           *composition.Composition
}

// IDGenerator produces unique identifiers.
type IDGenerator func() uuid.UUID

// ServiceOption configures the page render service.
type ServiceOption func(*service)

// WithIDGenerator overrides the default ID generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo        PageRepository
	resolver    TemplateResolver
	transformer CompositionTransformer
	defaults    composition.Defaults
	id          IDGenerator
	now         func() time.Time
	logger      interfaces.Logger
}

// NewService constructs a page render service.
func NewService(repo PageRepository, resolver TemplateResolver, transformer CompositionTransformer, defaults composition.Defaults, opts ...ServiceOption) Service {
	if repo == nil {
		panic("pages: page repository required")
	}
	if resolver == nil {
		panic("pages: template resolver required")
	}
	if transformer == nil {
		panic("pages: composition transformer required")
	}
	s := &service{
		repo:        repo,
		resolver:    resolver,
		transformer: transformer,
		defaults:    defaults,
		id:          uuid.New,
		now:         time.Now,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Page, error) {
	draft := composition.Composition{
		Content: []composition.Block{},
		Root:    composition.Root{Props: map[string]any{}},
	}
	if input.Draft != nil {
		draft = *input.Draft
	}

	page := &Page{
		ID:              s.id(),
		TenantID:        input.TenantID,
		SiteID:          input.SiteID,
		Slug:            strings.TrimSpace(input.Slug),
		Title:           input.Title,
		TemplateID:      input.TemplateID,
		TemplateVersion: input.TemplateVersion,
		Draft:           draft,
		PreviewStatus:   PreviewStatusNone,
		CreatedAt:       s.now().UTC(),
		UpdatedAt:       s.now().UTC(),
	}
	return s.repo.Create(ctx, page)
}

// SaveDraft applies a partial update to the page row and re-queues preview
// generation. Only supplied patch fields are touched.
func (s *service) SaveDraft(ctx context.Context, pageID, tenantID uuid.UUID, patch DraftPatch) (*Page, error) {
	page, err := s.repo.GetForTenant(ctx, pageID, tenantID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		page.Title = *patch.Title
	}
	if patch.Slug != nil {
		page.Slug = strings.TrimSpace(*patch.Slug)
	}
	if patch.TemplateID != nil {
		page.TemplateID = *patch.TemplateID
	}
	if patch.TemplateVersion != nil {
		page.TemplateVersion = *patch.TemplateVersion
	}
	if patch.Composition != nil {
		page.Draft = *patch.Composition
	}
	page.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, page)
	if err != nil {
		return nil, err
	}

	if err := s.QueuePreviewGeneration(ctx, updated.ID); err != nil {
		return nil, err
	}
	updated.PreviewStatus = PreviewStatusQueued

	s.logger.Debug("draft saved", "page_id", updated.ID.String(), "tenant_id", tenantID.String())
	return updated, nil
}

// SwitchTemplate rebinds the page's template reference after verifying the
// target template exists.
func (s *service) SwitchTemplate(ctx context.Context, pageID, tenantID, templateID uuid.UUID, templateVersion int) (*Page, error) {
	page, err := s.repo.GetForTenant(ctx, pageID, tenantID)
	if err != nil {
		return nil, err
	}

	if _, err := s.resolver.GetByID(ctx, templateID); err != nil {
		var notFound *templates.NotFoundByIDError
		if errors.As(err, &notFound) {
			return nil, &TemplateNotFoundError{TemplateID: templateID, Version: templateVersion}
		}
		return nil, err
	}

	page.TemplateID = templateID
	page.TemplateVersion = templateVersion
	page.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, page)
	if err != nil {
		return nil, err
	}

	if err := s.QueuePreviewGeneration(ctx, updated.ID); err != nil {
		return nil, err
	}
	updated.PreviewStatus = PreviewStatusQueued

	s.logger.Info("template switched",
		"page_id", updated.ID.String(),
		"template_id", templateID.String(),
		"template_version", templateVersion,
	)
	return updated, nil
}

// RenderPreview renders the page's current draft through its bound template
// and decorates the HTML with preview-mode markers.
func (s *service) RenderPreview(ctx context.Context, pageID, tenantID uuid.UUID, siteSlug string) (string, error) {
	page, err := s.repo.GetForTenant(ctx, pageID, tenantID)
	if err != nil {
		return "", err
	}

	env, err := s.resolver.GetByID(ctx, page.TemplateID)
	if err != nil {
		return "", err
	}

	draft := page.Draft
	if draft.Root.Props == nil {
		draft.Root = composition.Root{Props: map[string]any{}}
	}
	if title, ok := draft.Root.Props["title"]; !ok || title == "" {
		if page.Title != "" {
			draft.Root.Props["title"] = page.Title
		}
	}

	renderCtx, err := s.transformer.Transform(draft, s.defaults, siteSlug)
	if err != nil {
		return "", err
	}

	html, err := env.Render(renderCtx)
	if err != nil {
		return "", err
	}
	return decoratePreview(html), nil
}

// GeneratePreviewLink issues a time-limited unauthenticated preview URL.
func (s *service) GeneratePreviewLink(ctx context.Context, pageID, tenantID uuid.UUID, baseURL string) (*PreviewLink, error) {
	if _, err := s.repo.GetForTenant(ctx, pageID, tenantID); err != nil {
		return nil, err
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = strings.TrimRight(s.defaults.BaseURL, "/")
	}

	expiresAt := s.now().UTC().Add(previewLinkTTL)
	token := preview.Encode(tenantID, pageID, expiresAt)

	return &PreviewLink{
		URL:       baseURL + "/preview/" + token,
		ExpiresAt: expiresAt,
	}, nil
}

// ParsePreviewToken decodes a preview token and validates its expiry.
func (s *service) ParsePreviewToken(token string) (preview.Claims, error) {
	return preview.Decode(token, s.now().UTC())
}

// QueuePreviewGeneration marks the page as awaiting thumbnail generation.
// The actual rendering is performed by an external worker that later moves
// the status to ready or failed.
func (s *service) QueuePreviewGeneration(ctx context.Context, pageID uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, pageID); err != nil {
		return err
	}
	return s.repo.SetPreviewStatus(ctx, pageID, PreviewStatusQueued)
}

// MarkPreviewResult is the narrow write surface the preview worker uses to
// record its outcome. Only queued pages may move to ready or failed.
func (s *service) MarkPreviewResult(ctx context.Context, pageID uuid.UUID, status PreviewStatus) error {
	if !status.Valid() {
		return ErrPreviewStatusInvalid
	}

	page, err := s.repo.GetByID(ctx, pageID)
	if err != nil {
		return err
	}
	if !page.PreviewStatus.CanTransitionTo(status) {
		return ErrPreviewTransitionInvalid
	}
	return s.repo.SetPreviewStatus(ctx, pageID, status)
}

var headClosePattern = regexp.MustCompile(`(?i)</head>`)

func decoratePreview(html string) string {
	markers := robotsMetaTag + "\n" + previewBanner + "\n"
	// Match on the original string; case folds like ToLower can change
	// byte offsets and would splice the markers mid-tag.
	loc := headClosePattern.FindStringIndex(html)
	if loc == nil {
		return html + markers
	}
	return html[:loc[0]] + markers + html[loc[0]:]
}
