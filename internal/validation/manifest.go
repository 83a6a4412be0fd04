package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrManifestInvalid = errors.New("validation: manifest is not a valid JSON schema")

// ValidateManifest ensures a template manifest compiles as a JSON schema.
// An empty manifest is allowed; templates without prop hints skip validation.
func ValidateManifest(manifest map[string]any) error {
	if len(manifest) == 0 {
		return nil
	}
	if _, err := compileManifest(manifest); err != nil {
		return fmt.Errorf("%w: %v", ErrManifestInvalid, err)
	}
	return nil
}

// ValidateManifestPayload validates block props against a template manifest.
func ValidateManifestPayload(manifest map[string]any, payload map[string]any) error {
	if len(manifest) == 0 {
		return nil
	}
	compiled, err := compileManifest(manifest)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrManifestInvalid, err)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if err := compiled.Validate(payload); err != nil {
		return err
	}
	return nil
}

func compileManifest(manifest map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(manifest)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("manifest.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("manifest.json")
}
