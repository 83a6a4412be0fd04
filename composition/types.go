package composition

// Composition is the tenant-authored content of a single page: an ordered
// list of typed blocks plus root-level properties.
type Composition struct {
	Version *int    `json:"version,omitempty"`
	Content []Block `json:"content"`
	Root    Root    `json:"root"`
}

// Block is one typed unit of composition content with a free-form prop map.
type Block struct {
	Type  string         `json:"type"`
	Props map[string]any `json:"props"`
}

// Root carries page-level properties such as the title.
type Root struct {
	Props map[string]any `json:"props"`
}

// NormalizedBlock is a block after validation, defaulting, and sanitation.
type NormalizedBlock struct {
	Type  string         `json:"type"`
	Props map[string]any `json:"props"`
}

// Meta aggregates the SEO metadata extracted from a composition.
type Meta struct {
	Description  string `json:"description"`
	Keywords     string `json:"keywords"`
	OGImage      string `json:"og_image"`
	CanonicalURL string `json:"canonical_url"`
}

// RenderContext is the validated, defaulted, metadata-enriched structure fed
// to a compiled template to produce HTML.
type RenderContext struct {
	Content     []NormalizedBlock `json:"content"`
	PageTitle   string            `json:"page_title"`
	SiteName    string            `json:"site_name"`
	CurrentYear int               `json:"current_year"`
	Meta        Meta              `json:"meta"`
}

// Defaults supplies the fallback values used when a composition does not
// provide its own title, site name, or description.
type Defaults struct {
	SiteName           string
	DefaultTitle       string
	DefaultDescription string
	BaseURL            string
}
