package composition

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sitebuilder/composition"
)

// Built-in block type tags.
const (
	BlockTypeHero    = "HeroBlock"
	BlockTypeText    = "TextBlock"
	BlockTypeCard    = "CardBlock"
	BlockTypeImage   = "ImageBlock"
	BlockTypeButton  = "ButtonBlock"
	BlockTypeSection = "SectionBlock"
	BlockTypeGrid    = "GridBlock"
)

const heroFallbackBackground = "/images/hero-default.jpg"

var (
	scriptOpenPattern   = regexp.MustCompile(`(?i)<\s*script`)
	scriptClosePattern  = regexp.MustCompile(`(?i)<\s*/\s*script`)
	unsafeSchemePattern = regexp.MustCompile(`(?i)(javascript|data)\s*:`)
)

func validateHero(props map[string]any) (map[string]any, error) {
	out := cloneProps(props)
	fillString(out, "title", "Welcome")
	fillString(out, "subtitle", "Your story starts here")
	fillString(out, "buttonText", "Learn More")
	fillString(out, "buttonHref", "#")
	if bg, ok := stringProp(out, "backgroundImage"); ok && !safeImageURL(bg) {
		out["backgroundImage"] = heroFallbackBackground
	}
	return out, nil
}

func validateText(props map[string]any) (map[string]any, error) {
	out := cloneProps(props)
	fillString(out, "children", "")
	fillString(out, "align", "left")
	if content, ok := stringProp(out, "children"); ok {
		out["children"] = sanitizeText(content)
	}
	return out, nil
}

func validateCard(props map[string]any) (map[string]any, error) {
	out := cloneProps(props)
	fillString(out, "title", "Card Title")
	fillString(out, "description", "")
	fillString(out, "link", "#")
	if img, ok := stringProp(out, "image"); ok && !safeImageURL(img) {
		delete(out, "image")
	}
	return out, nil
}

func validateImage(props map[string]any) (map[string]any, error) {
	out := cloneProps(props)
	src, _ := stringProp(out, "src")
	if err := validateImageSource(src); err != nil {
		return nil, &composition.InvalidImageURLError{URL: src}
	}
	fillString(out, "alt", "")
	return out, nil
}

func validateButton(props map[string]any) (map[string]any, error) {
	out := cloneProps(props)
	fillString(out, "text", "Click Here")
	fillString(out, "href", "#")
	if href, ok := stringProp(out, "href"); ok {
		out["href"] = unsafeSchemePattern.ReplaceAllString(href, "")
	}
	return out, nil
}

func validateSection(props map[string]any) (map[string]any, error) {
	out := cloneProps(props)
	fillString(out, "title", "")
	fillString(out, "background", "")
	return out, nil
}

func validateGrid(props map[string]any) (map[string]any, error) {
	out := cloneProps(props)
	if _, ok := out["columns"]; !ok {
		out["columns"] = 3
	}
	fillString(out, "gap", "md")
	return out, nil
}

// validateImageSource accepts absolute http(s) URLs and root-relative paths.
func validateImageSource(src string) error {
	return validation.Validate(src,
		validation.Required,
		validation.By(func(value any) error {
			s, _ := value.(string)
			if safeImageURL(s) {
				return nil
			}
			return fmt.Errorf("unsupported url form %q", s)
		}),
	)
}

func safeImageURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return true
	}
	return strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//")
}

// sanitizeText neutralizes script tags and strips javascript:/data: URI
// schemes from authored text content.
func sanitizeText(content string) string {
	content = scriptClosePattern.ReplaceAllString(content, "&lt;/script")
	content = scriptOpenPattern.ReplaceAllString(content, "&lt;script")
	return unsafeSchemePattern.ReplaceAllString(content, "")
}

func cloneProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}

func fillString(props map[string]any, key, fallback string) {
	if _, ok := props[key]; ok {
		return
	}
	props[key] = fallback
}

func stringProp(props map[string]any, key string) (string, bool) {
	v, ok := props[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
