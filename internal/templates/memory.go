package templates

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRecordStore provides an in-memory RecordStore used by tests and
// hosts that run without a relational database.
type MemoryRecordStore struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Template
}

// NewMemoryRecordStore constructs an empty memory-backed record store.
func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{byID: make(map[uuid.UUID]*Template)}
}

func (s *MemoryRecordStore) Create(_ context.Context, record *Template) (*Template, error) {
	if record == nil {
		return nil, nil
	}
	cloned := cloneTemplate(record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[cloned.ID] = cloned

	return cloneTemplate(cloned), nil
}

func (s *MemoryRecordStore) Update(_ context.Context, record *Template) (*Template, error) {
	if record == nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[record.ID]; !ok {
		return nil, &NotFoundByIDError{ID: record.ID}
	}

	cloned := cloneTemplate(record)
	s.byID[cloned.ID] = cloned
	return cloneTemplate(cloned), nil
}

func (s *MemoryRecordStore) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byID[id]
	if !ok || !record.OwnedBy(tenantID) {
		return &NotFoundByIDError{ID: id}
	}
	delete(s.byID, id)
	return nil
}

func (s *MemoryRecordStore) GetByID(_ context.Context, id uuid.UUID) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.byID[id]
	if !ok {
		return nil, &NotFoundByIDError{ID: id}
	}
	return cloneTemplate(record), nil
}

func (s *MemoryRecordStore) GetByKey(_ context.Context, tenantID *uuid.UUID, name string, version int) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var public *Template
	for _, record := range s.byID {
		if record.Name != name || record.Version != version {
			continue
		}
		if tenantID != nil && record.OwnedBy(*tenantID) {
			return cloneTemplate(record), nil
		}
		if record.IsPublic() {
			public = record
			if tenantID == nil {
				break
			}
		}
	}
	if public != nil {
		return cloneTemplate(public), nil
	}
	return nil, &NotFoundError{TenantID: tenantID, Name: name, Version: version}
}

func (s *MemoryRecordStore) ListByName(_ context.Context, tenantID uuid.UUID, name string) ([]*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Template
	for _, record := range s.byID {
		if record.Name != name {
			continue
		}
		if record.OwnedBy(tenantID) || record.IsPublic() {
			out = append(out, cloneTemplate(record))
		}
	}
	sortByScopeAndVersion(out, tenantID)
	return out, nil
}

func (s *MemoryRecordStore) List(_ context.Context, tenantID uuid.UUID, opts ListOptions) ([]*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Template
	for _, record := range s.byID {
		if !record.OwnedBy(tenantID) && !(opts.IncludePublic && record.IsPublic()) {
			continue
		}
		if opts.Category != nil {
			if record.Category == nil || !strings.EqualFold(*record.Category, *opts.Category) {
				continue
			}
		}
		out = append(out, cloneTemplate(record))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Version > out[j].Version
	})

	return paginate(out, opts.Limit, opts.Offset), nil
}

func sortByScopeAndVersion(records []*Template, tenantID uuid.UUID) {
	sort.SliceStable(records, func(i, j int) bool {
		iOwned := records[i].OwnedBy(tenantID)
		jOwned := records[j].OwnedBy(tenantID)
		if iOwned != jOwned {
			return iOwned
		}
		return records[i].Version > records[j].Version
	})
}

func paginate(records []*Template, limit, offset int) []*Template {
	if offset > 0 {
		if offset >= len(records) {
			return nil
		}
		records = records[offset:]
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}

func cloneTemplate(record *Template) *Template {
	if record == nil {
		return nil
	}
	cloned := *record
	if record.TenantID != nil {
		tenant := *record.TenantID
		cloned.TenantID = &tenant
	}
	if record.Partials != nil {
		cloned.Partials = make(map[string]string, len(record.Partials))
		for k, v := range record.Partials {
			cloned.Partials[k] = v
		}
	}
	if record.Manifest != nil {
		cloned.Manifest = make(map[string]any, len(record.Manifest))
		for k, v := range record.Manifest {
			cloned.Manifest[k] = v
		}
	}
	cloned.Description = cloneString(record.Description)
	cloned.Category = cloneString(record.Category)
	return &cloned
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
