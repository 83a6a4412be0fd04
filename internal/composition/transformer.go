package composition

import (
	"strings"
	"time"
	"unicode"

	"github.com/goliatone/go-sitebuilder/composition"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Transformer converts a raw block-list composition into a validated,
// defaulted render context, extracting SEO metadata along the way.
type Transformer struct {
	registry *Registry
	logger   interfaces.Logger
	now      func() time.Time
}

// TransformerOption configures a Transformer.
type TransformerOption func(*Transformer)

// WithRegistry overrides the default validator registry.
func WithRegistry(r *Registry) TransformerOption {
	return func(t *Transformer) {
		if r != nil {
			t.registry = r
		}
	}
}

// WithLogger attaches a logger used for unknown-block warnings.
func WithLogger(logger interfaces.Logger) TransformerOption {
	return func(t *Transformer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) TransformerOption {
	return func(t *Transformer) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTransformer constructs a transformer with the built-in block validators.
func NewTransformer(opts ...TransformerOption) *Transformer {
	t := &Transformer{
		registry: DefaultRegistry(),
		logger:   logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform validates every block, fills defaults, and assembles the render
// context. Unknown block types pass through unmodified with a warning;
// validator failures abort the transform.
func (t *Transformer) Transform(comp composition.Composition, defaults composition.Defaults, siteSlug string) (*composition.RenderContext, error) {
	normalized := make([]composition.NormalizedBlock, 0, len(comp.Content))
	for _, block := range comp.Content {
		validator, ok := t.registry.Lookup(block.Type)
		if !ok {
			t.logger.Warn("unknown block type, passing through", "type", block.Type)
			normalized = append(normalized, composition.NormalizedBlock{
				Type:  block.Type,
				Props: cloneProps(block.Props),
			})
			continue
		}

		props, err := validator(block.Props)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, composition.NormalizedBlock{
			Type:  block.Type,
			Props: props,
		})
	}

	ctx := &composition.RenderContext{
		Content:     normalized,
		PageTitle:   pageTitle(comp.Root, defaults),
		SiteName:    siteName(siteSlug, defaults),
		CurrentYear: t.now().Year(),
		Meta:        extractMeta(normalized, comp.Root, defaults, siteSlug),
	}
	return ctx, nil
}

func pageTitle(root composition.Root, defaults composition.Defaults) string {
	if title, ok := stringProp(root.Props, "title"); ok && strings.TrimSpace(title) != "" {
		return title
	}
	return defaults.DefaultTitle
}

func siteName(siteSlug string, defaults composition.Defaults) string {
	siteSlug = strings.TrimSpace(siteSlug)
	if siteSlug == "" {
		return defaults.SiteName
	}
	return titleCase(strings.ReplaceAll(siteSlug, "-", " "))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
