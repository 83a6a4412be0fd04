package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// Environment is a compiled, reusable rendering environment: the main body
// plus every named partial parsed into one template set. Helper funcs are
// registered per instance so different templates cannot interfere with each
// other's helpers.
type Environment struct {
	set        *template.Template
	entry      string
	templateID uuid.UUID
}

// Compile parses a template record into a reusable environment. Parse
// failures surface as SyntaxError so admin callers can treat them as
// user-correctable.
func Compile(record *Template) (*Environment, error) {
	if record == nil {
		return nil, fmt.Errorf("templates: nil record")
	}

	entry := strings.TrimSpace(record.MainEntry)
	if entry == "" {
		entry = record.Name
	}

	set := template.New(entry).Funcs(helperFuncs())
	if _, err := set.Parse(record.Body); err != nil {
		return nil, &SyntaxError{Name: record.Name, Cause: err}
	}
	for name, body := range record.Partials {
		if _, err := set.New(name).Parse(body); err != nil {
			return nil, &SyntaxError{Name: name, Cause: err}
		}
	}

	return &Environment{
		set:        set,
		entry:      entry,
		templateID: record.ID,
	}, nil
}

// Render executes the environment's main entry against data.
func (e *Environment) Render(data any) (string, error) {
	var buf bytes.Buffer
	if err := e.set.ExecuteTemplate(&buf, e.entry, data); err != nil {
		return "", fmt.Errorf("templates: render %q: %w", e.entry, err)
	}
	return buf.String(), nil
}

// TemplateID returns the id of the record this environment was compiled from.
func (e *Environment) TemplateID() uuid.UUID {
	return e.templateID
}

// Entry returns the main entry name.
func (e *Environment) Entry() string {
	return e.entry
}

func helperFuncs() template.FuncMap {
	return template.FuncMap{
		"truncatechars": truncateChars,
		"slugify":       slugify,
	}
}

func truncateChars(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func slugify(s string) string {
	normalized, err := slug.Normalize(s)
	if err != nil {
		return s
	}
	return normalized
}
