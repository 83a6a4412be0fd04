package templates

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	manifestvalidation "github.com/goliatone/go-sitebuilder/internal/validation"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Service exposes template administration for tenant-authored templates.
type Service interface {
	List(ctx context.Context, tenantID uuid.UUID, opts ListOptions) ([]*Template, error)
	GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*Template, error)
	Create(ctx context.Context, input CreateInput) (*Template, error)
	Update(ctx context.Context, input UpdateInput) (*Template, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// Invalidator is the cache surface the admin service notifies after writes.
type Invalidator interface {
	Invalidate(tenantID *uuid.UUID, name string, version int)
	InvalidateTenant(tenantID *uuid.UUID)
}

// CreateInput captures the fields required to register a template record.
// A nil TenantID creates a public template.
type CreateInput struct {
	TenantID    *uuid.UUID
	Name        string
	Version     int
	MainEntry   string
	Body        string
	Partials    map[string]string
	Manifest    map[string]any
	Description *string
	Category    *string
}

// Validate enforces structural input rules before any compile work runs.
// Rules run per field so sentinel errors surface unwrapped to errors.Is.
func (i CreateInput) Validate() error {
	if err := validation.Validate(i.Name, validation.By(requireString(ErrNameRequired)), validation.Length(1, 128)); err != nil {
		return err
	}
	if err := validation.Validate(i.Body, validation.By(requireString(ErrBodyRequired))); err != nil {
		return err
	}
	return validation.Validate(i.Version, validation.By(requirePositive(ErrVersionInvalid)))
}

// UpdateInput replaces a template's body, partials, manifest, and metadata in
// place. Version is caller-supplied and kept as-is; updates never
// auto-increment it.
type UpdateInput struct {
	TenantID    uuid.UUID
	ID          uuid.UUID
	Version     int
	MainEntry   string
	Body        string
	Partials    map[string]string
	Manifest    map[string]any
	Description *string
	Category    *string
}

// Validate enforces structural input rules for updates.
func (i UpdateInput) Validate() error {
	if err := validation.Validate(i.TenantID, validation.By(requireTenant)); err != nil {
		return err
	}
	if err := validation.Validate(i.Body, validation.By(requireString(ErrBodyRequired))); err != nil {
		return err
	}
	return validation.Validate(i.Version, validation.By(requirePositive(ErrVersionInvalid)))
}

// requireString rejects empty or blank values with the given sentinel.
// Plain By rules run for empty values, unlike ozzo's skip-on-empty built-ins.
func requireString(sentinel error) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return sentinel
		}
		return nil
	}
}

func requirePositive(sentinel error) validation.RuleFunc {
	return func(value any) error {
		n, _ := value.(int)
		if n < 1 {
			return sentinel
		}
		return nil
	}
}

func requireTenant(value any) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return ErrTenantRequired
	}
	return nil
}

// IDGenerator produces unique identifiers.
type IDGenerator func() uuid.UUID

// ServiceOption configures the admin service.
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

// WithLogger attaches a logger to the admin service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	store  RecordStore
	cache  Invalidator
	id     IDGenerator
	now    func() time.Time
	logger interfaces.Logger
}

// NewService constructs a template admin service. The invalidator may be nil
// when no cache is wired.
func NewService(store RecordStore, cache Invalidator, opts ...ServiceOption) Service {
	if store == nil {
		panic("templates: record store required")
	}
	s := &service{
		store:  store,
		cache:  cache,
		id:     uuid.New,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, opts ListOptions) ([]*Template, error) {
	return s.store.List(ctx, tenantID, opts)
}

// GetByName resolves the single best template for a name: any tenant-owned
// version outranks any public version, and only among equally-scoped
// candidates does higher version win.
func (s *service) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &NotFoundError{TenantID: &tenantID, Name: name}
	}

	candidates, err := s.store.ListByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, &NotFoundError{TenantID: &tenantID, Name: name}
	}
	sortByScopeAndVersion(candidates, tenantID)
	return candidates[0], nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Template, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := manifestvalidation.ValidateManifest(input.Manifest); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if err := s.ensureVacant(ctx, input.TenantID, name, input.Version); err != nil {
		return nil, err
	}

	record := &Template{
		ID:          s.id(),
		TenantID:    cloneTenantID(input.TenantID),
		Name:        name,
		Version:     input.Version,
		MainEntry:   strings.TrimSpace(input.MainEntry),
		Body:        input.Body,
		Partials:    input.Partials,
		Manifest:    input.Manifest,
		Description: input.Description,
		Category:    input.Category,
		CreatedAt:   s.now().UTC(),
		UpdatedAt:   s.now().UTC(),
	}

	// Trial render in a throwaway environment; parse failures are
	// user-correctable, not fatal.
	if _, err := Compile(record); err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.invalidate(created.TenantID, created.Name, created.Version)
	s.logger.Info("template created",
		"template_id", created.ID.String(),
		"name", created.Name,
		"version", created.Version,
	)
	return created, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*Template, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := manifestvalidation.ValidateManifest(input.Manifest); err != nil {
		return nil, err
	}

	record, err := s.store.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if !record.OwnedBy(input.TenantID) {
		return nil, &NotFoundByIDError{ID: input.ID}
	}

	previousName, previousVersion := record.Name, record.Version

	record.Version = input.Version
	if entry := strings.TrimSpace(input.MainEntry); entry != "" {
		record.MainEntry = entry
	}
	record.Body = input.Body
	record.Partials = input.Partials
	record.Manifest = input.Manifest
	record.Description = input.Description
	record.Category = input.Category
	record.UpdatedAt = s.now().UTC()

	if _, err := Compile(record); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, record)
	if err != nil {
		return nil, err
	}

	s.invalidate(updated.TenantID, previousName, previousVersion)
	s.invalidate(updated.TenantID, updated.Name, updated.Version)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !record.OwnedBy(tenantID) {
		return &NotFoundByIDError{ID: id}
	}

	if err := s.store.Delete(ctx, tenantID, id); err != nil {
		return err
	}

	s.invalidate(record.TenantID, record.Name, record.Version)
	return nil
}

// ensureVacant enforces (tenant_id, name, version) uniqueness within its
// scope before a create; a public record never conflicts with a tenant one.
func (s *service) ensureVacant(ctx context.Context, tenantID *uuid.UUID, name string, version int) error {
	scope := uuid.Nil
	if tenantID != nil {
		scope = *tenantID
	}
	existing, err := s.store.ListByName(ctx, scope, name)
	if err != nil {
		return err
	}
	for _, record := range existing {
		if record.Version != version {
			continue
		}
		if sameScope(record.TenantID, tenantID) {
			return &ConflictError{TenantID: cloneTenantID(tenantID), Name: name, Version: version}
		}
	}
	return nil
}

func sameScope(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *service) invalidate(tenantID *uuid.UUID, name string, version int) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(tenantID, name, version)
}

func cloneTenantID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	copied := *id
	return &copied
}
