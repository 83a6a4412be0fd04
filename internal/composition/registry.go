package composition

import (
	"strings"
	"sync"
)

// Validator normalizes one block's prop map: it fills defaults for absent
// required props and applies kind-specific sanitation. Returning an error
// fails the whole transform.
type Validator func(props map[string]any) (map[string]any, error)

// Registry maps block type tags to their validators. The built-in set is
// closed, but the mapping stays extensible so hosts can register additional
// kinds; unknown tags pass through the transformer unmodified.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

// NewRegistry constructs an empty validator registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Validator)}
}

// DefaultRegistry returns a registry pre-loaded with the built-in block kinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(BlockTypeHero, validateHero)
	r.Register(BlockTypeText, validateText)
	r.Register(BlockTypeCard, validateCard)
	r.Register(BlockTypeImage, validateImage)
	r.Register(BlockTypeButton, validateButton)
	r.Register(BlockTypeSection, validateSection)
	r.Register(BlockTypeGrid, validateGrid)
	return r
}

// Register binds a validator to a block type tag.
func (r *Registry) Register(blockType string, v Validator) {
	blockType = strings.TrimSpace(blockType)
	if blockType == "" || v == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[blockType] = v
}

// Lookup returns the validator for a block type tag.
func (r *Registry) Lookup(blockType string) (Validator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.validators[blockType]
	return v, ok
}

// Types lists the registered block type tags.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.validators))
	for t := range r.validators {
		out = append(out, t)
	}
	return out
}
