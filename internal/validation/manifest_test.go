package validation

import (
	"errors"
	"testing"
)

func TestValidateManifestEmpty(t *testing.T) {
	if err := ValidateManifest(nil); err != nil {
		t.Fatalf("empty manifest should pass: %v", err)
	}
	if err := ValidateManifest(map[string]any{}); err != nil {
		t.Fatalf("empty manifest should pass: %v", err)
	}
}

func TestValidateManifestValid(t *testing.T) {
	manifest := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
		},
	}
	if err := ValidateManifest(manifest); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}
}

func TestValidateManifestInvalid(t *testing.T) {
	manifest := map[string]any{
		"type": 42,
	}
	err := ValidateManifest(manifest)
	if !errors.Is(err, ErrManifestInvalid) {
		t.Fatalf("expected ErrManifestInvalid, got %v", err)
	}
}

func TestValidateManifestPayload(t *testing.T) {
	manifest := map[string]any{
		"type":     "object",
		"required": []any{"title"},
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
		},
	}

	if err := ValidateManifestPayload(manifest, map[string]any{"title": "Hello"}); err != nil {
		t.Fatalf("conforming payload rejected: %v", err)
	}
	if err := ValidateManifestPayload(manifest, map[string]any{}); err == nil {
		t.Fatalf("expected payload missing required field to fail")
	}
}
