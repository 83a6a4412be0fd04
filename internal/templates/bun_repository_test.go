package templates_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-sitebuilder/internal/templates"
	"github.com/goliatone/go-sitebuilder/pkg/testsupport"
)

func newBunStore(t *testing.T) *templates.BunRecordStore {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	if _, err := bunDB.NewCreateTable().Model((*templates.Template)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		t.Fatalf("create table: %v", err)
	}

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}

	return templates.NewBunRecordStoreWithCache(bunDB, cacheSvc, repocache.NewDefaultKeySerializer())
}

func TestBunRecordStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newBunStore(t)
	tenantID := uuid.New()

	record, err := store.Create(ctx, &templates.Template{
		ID:       uuid.New(),
		TenantID: &tenantID,
		Name:     "landing",
		Version:  1,
		Body:     "<html></html>",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "landing" || got.Version != 1 {
		t.Fatalf("GetByID() = %q v%d", got.Name, got.Version)
	}

	got.Body = "<html><body>updated</body></html>"
	updated, err := store.Update(ctx, got)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Body != got.Body {
		t.Fatalf("Update() body = %q", updated.Body)
	}
}

func TestBunRecordStoreKeyFallback(t *testing.T) {
	ctx := context.Background()
	store := newBunStore(t)
	tenantID := uuid.New()

	if _, err := store.Create(ctx, &templates.Template{
		ID:      uuid.New(),
		Name:    "shared",
		Version: 1,
		Body:    "public body",
	}); err != nil {
		t.Fatalf("create public: %v", err)
	}

	// No tenant row yet: the public record backs the lookup.
	got, err := store.GetByKey(ctx, &tenantID, "shared", 1)
	if err != nil {
		t.Fatalf("GetByKey() error = %v", err)
	}
	if got.TenantID != nil {
		t.Fatal("expected public record from fallback")
	}

	if _, err := store.Create(ctx, &templates.Template{
		ID:       uuid.New(),
		TenantID: &tenantID,
		Name:     "shared",
		Version:  1,
		Body:     "tenant body",
	}); err != nil {
		t.Fatalf("create tenant: %v", err)
	}

	got, err = store.GetByKey(ctx, &tenantID, "shared", 1)
	if err != nil {
		t.Fatalf("GetByKey() error = %v", err)
	}
	if got.TenantID == nil || *got.TenantID != tenantID {
		t.Fatal("expected tenant-owned record to win over public")
	}
}

func TestBunRecordStoreDeleteScoping(t *testing.T) {
	ctx := context.Background()
	store := newBunStore(t)
	tenantID := uuid.New()

	record, err := store.Create(ctx, &templates.Template{
		ID:       uuid.New(),
		TenantID: &tenantID,
		Name:     "landing",
		Version:  1,
		Body:     "<html></html>",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.Delete(ctx, uuid.New(), record.ID); !errors.Is(err, templates.ErrNotFound) {
		t.Fatalf("Delete() cross-tenant error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, tenantID, record.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}
