package di_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/di"
	"github.com/goliatone/go-sitebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-sitebuilder/internal/templates"
)

func TestNewContainerMemoryDefaults(t *testing.T) {
	c, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}

	if c.TemplateService() == nil {
		t.Fatal("expected template service to be wired")
	}
	if c.PageService() == nil {
		t.Fatal("expected page service to be wired")
	}
	if c.TemplateCache() == nil {
		t.Fatal("expected template cache to be wired")
	}
	if c.LoggerProvider() == nil {
		t.Fatal("expected logger provider to be wired")
	}
}

func TestNewContainerInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = "redis"

	_, err := di.NewContainer(cfg)
	if !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("NewContainer() error = %v, want ErrStorageDriverUnknown", err)
	}
}

func TestContainerServicesShareStore(t *testing.T) {
	c, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}
	ctx := context.Background()
	tenantID := uuid.New()

	created, err := c.TemplateService().Create(ctx, templates.CreateInput{
		TenantID: &tenantID,
		Name:     "landing",
		Version:  1,
		Body:     `<html><head></head><body>{{.PageTitle}}</body></html>`,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	env, err := c.TemplateCache().GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if env.TemplateID() != created.ID {
		t.Fatalf("TemplateID = %s, want %s", env.TemplateID(), created.ID)
	}
}

func TestContainerServiceOverrides(t *testing.T) {
	store := templates.NewMemoryRecordStore()
	c, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithTemplateStore(store))
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}

	if c.TemplateStore() != templates.RecordStore(store) {
		t.Fatal("expected container to keep the provided template store")
	}
}
