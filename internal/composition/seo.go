package composition

import (
	"strings"

	"github.com/goliatone/go-sitebuilder/composition"
)

const metaDescriptionLimit = 160

// extractMeta walks the validated blocks in order with first-match-wins
// precedence: a Hero subtitle outranks Text content for the description,
// and the first Image src becomes the og:image.
func extractMeta(blocks []composition.NormalizedBlock, root composition.Root, defaults composition.Defaults, siteSlug string) composition.Meta {
	meta := composition.Meta{
		Description:  defaults.DefaultDescription,
		CanonicalURL: canonicalURL(defaults.BaseURL, siteSlug),
	}

	if keywords, ok := stringProp(root.Props, "keywords"); ok {
		meta.Keywords = keywords
	}

	if desc, ok := heroDescription(blocks); ok {
		meta.Description = desc
	} else if desc, ok := textDescription(blocks); ok {
		meta.Description = desc
	}

	for _, block := range blocks {
		if block.Type != BlockTypeImage {
			continue
		}
		if src, ok := stringProp(block.Props, "src"); ok && src != "" {
			meta.OGImage = src
			break
		}
	}

	return meta
}

func heroDescription(blocks []composition.NormalizedBlock) (string, bool) {
	for _, block := range blocks {
		if block.Type != BlockTypeHero {
			continue
		}
		if subtitle, ok := stringProp(block.Props, "subtitle"); ok && strings.TrimSpace(subtitle) != "" {
			return subtitle, true
		}
	}
	return "", false
}

func textDescription(blocks []composition.NormalizedBlock) (string, bool) {
	for _, block := range blocks {
		if block.Type != BlockTypeText {
			continue
		}
		if content, ok := stringProp(block.Props, "children"); ok && strings.TrimSpace(content) != "" {
			return truncateDescription(content), true
		}
	}
	return "", false
}

func truncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= metaDescriptionLimit {
		return s
	}
	return string(runes[:metaDescriptionLimit]) + "..."
}

func canonicalURL(baseURL, siteSlug string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return ""
	}
	siteSlug = strings.TrimSpace(siteSlug)
	if siteSlug == "" {
		return baseURL
	}
	return baseURL + "/" + siteSlug
}
