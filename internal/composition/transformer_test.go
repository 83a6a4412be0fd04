package composition

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-sitebuilder/composition"
)

func testDefaults() composition.Defaults {
	return composition.Defaults{
		SiteName:           "Default Site",
		DefaultTitle:       "Untitled Page",
		DefaultDescription: "A page built with the site builder",
		BaseURL:            "https://sites.example.com",
	}
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestTransformHeroDefaultFill(t *testing.T) {
	tr := NewTransformer(WithNow(fixedNow))

	comp := composition.Composition{
		Content: []composition.Block{{Type: BlockTypeHero, Props: map[string]any{}}},
	}

	ctx, err := tr.Transform(comp, testDefaults(), "")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if len(ctx.Content) != 1 {
		t.Fatalf("expected 1 block, got %d", len(ctx.Content))
	}

	props := ctx.Content[0].Props
	expected := map[string]string{
		"title":      "Welcome",
		"subtitle":   "Your story starts here",
		"buttonText": "Learn More",
		"buttonHref": "#",
	}
	for key, want := range expected {
		if got := props[key]; got != want {
			t.Fatalf("prop %q: expected %q, got %v", key, want, got)
		}
	}
}

func TestTransformHeroBackgroundSanitized(t *testing.T) {
	tr := NewTransformer(WithNow(fixedNow))

	comp := composition.Composition{
		Content: []composition.Block{{
			Type:  BlockTypeHero,
			Props: map[string]any{"backgroundImage": "javascript:alert(1)"},
		}},
	}

	ctx, err := tr.Transform(comp, testDefaults(), "")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if got := ctx.Content[0].Props["backgroundImage"]; got != heroFallbackBackground {
		t.Fatalf("expected fallback background, got %v", got)
	}
}

func TestTransformImageURLValidation(t *testing.T) {
	tr := NewTransformer(WithNow(fixedNow))

	comp := composition.Composition{
		Content: []composition.Block{{
			Type:  BlockTypeImage,
			Props: map[string]any{"src": "ftp://x"},
		}},
	}

	_, err := tr.Transform(comp, testDefaults(), "")
	if err == nil {
		t.Fatalf("expected transform to fail")
	}
	var invalid *composition.InvalidImageURLError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidImageURLError, got %v", err)
	}
	if invalid.URL != "ftp://x" {
		t.Fatalf("unexpected url %q", invalid.URL)
	}
}

func TestTransformImageURLAccepted(t *testing.T) {
	tr := NewTransformer(WithNow(fixedNow))

	for _, src := range []string{"https://cdn.example.com/a.png", "http://cdn.example.com/a.png", "/images/a.png"} {
		comp := composition.Composition{
			Content: []composition.Block{{Type: BlockTypeImage, Props: map[string]any{"src": src}}},
		}
		if _, err := tr.Transform(comp, testDefaults(), ""); err != nil {
			t.Fatalf("src %q: %v", src, err)
		}
	}
}

func TestTransformTextSanitization(t *testing.T) {
	tr := NewTransformer(WithNow(fixedNow))

	comp := composition.Composition{
		Content: []composition.Block{{
			Type:  BlockTypeText,
			Props: map[string]any{"children": `<script>alert(1)</script> visit javascript:evil`},
		}},
	}

	ctx, err := tr.Transform(comp, testDefaults(), "")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	content := ctx.Content[0].Props["children"].(string)
	if strings.Contains(content, "<script") {
		t.Fatalf("script tag not escaped: %q", content)
	}
	if strings.Contains(content, "javascript:") {
		t.Fatalf("javascript scheme not stripped: %q", content)
	}
}

func TestTransformUnknownBlockPassthrough(t *testing.T) {
	tr := NewTransformer(WithNow(fixedNow))

	comp := composition.Composition{
		Content: []composition.Block{{
			Type:  "CustomEmbed",
			Props: map[string]any{"url": "https://example.com/widget"},
		}},
	}

	ctx, err := tr.Transform(comp, testDefaults(), "")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if ctx.Content[0].Type != "CustomEmbed" {
		t.Fatalf("unexpected type %q", ctx.Content[0].Type)
	}
	if got := ctx.Content[0].Props["url"]; got != "https://example.com/widget" {
		t.Fatalf("props should pass through unmodified, got %v", got)
	}
}

func TestTransformTitleAndSiteName(t *testing.T) {
	tr := NewTransformer(WithNow(fixedNow))

	comp := composition.Composition{
		Root: composition.Root{Props: map[string]any{"title": "My Page"}},
	}

	ctx, err := tr.Transform(comp, testDefaults(), "acme-coffee-shop")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if ctx.PageTitle != "My Page" {
		t.Fatalf("unexpected title %q", ctx.PageTitle)
	}
	if ctx.SiteName != "Acme Coffee Shop" {
		t.Fatalf("unexpected site name %q", ctx.SiteName)
	}
	if ctx.CurrentYear != 2024 {
		t.Fatalf("unexpected year %d", ctx.CurrentYear)
	}

	ctx, err = tr.Transform(composition.Composition{}, testDefaults(), "")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if ctx.PageTitle != "Untitled Page" {
		t.Fatalf("expected default title, got %q", ctx.PageTitle)
	}
	if ctx.SiteName != "Default Site" {
		t.Fatalf("expected default site name, got %q", ctx.SiteName)
	}
}

func TestMetaHeroSubtitleWins(t *testing.T) {
	tr := NewTransformer(WithNow(fixedNow))

	comp := composition.Composition{
		Content: []composition.Block{
			{Type: BlockTypeText, Props: map[string]any{"children": "a long text body that would otherwise become the description"}},
			{Type: BlockTypeHero, Props: map[string]any{"subtitle": "S"}},
		},
	}

	ctx, err := tr.Transform(comp, testDefaults(), "")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if ctx.Meta.Description != "S" {
		t.Fatalf("expected hero subtitle to win, got %q", ctx.Meta.Description)
	}
}

func TestMetaTextTruncation(t *testing.T) {
	tr := NewTransformer(WithNow(fixedNow))

	long := strings.Repeat("x", 161)
	comp := composition.Composition{
		Content: []composition.Block{{Type: BlockTypeText, Props: map[string]any{"children": long}}},
	}

	ctx, err := tr.Transform(comp, testDefaults(), "")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	want := strings.Repeat("x", 160) + "..."
	if ctx.Meta.Description != want {
		t.Fatalf("unexpected description %q", ctx.Meta.Description)
	}
}

func TestMetaImageAndFallbacks(t *testing.T) {
	tr := NewTransformer(WithNow(fixedNow))

	comp := composition.Composition{
		Content: []composition.Block{
			{Type: BlockTypeImage, Props: map[string]any{"src": "https://cdn.example.com/first.png"}},
			{Type: BlockTypeImage, Props: map[string]any{"src": "https://cdn.example.com/second.png"}},
		},
		Root: composition.Root{Props: map[string]any{"keywords": "coffee, beans"}},
	}

	ctx, err := tr.Transform(comp, testDefaults(), "acme")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if ctx.Meta.OGImage != "https://cdn.example.com/first.png" {
		t.Fatalf("expected first image src, got %q", ctx.Meta.OGImage)
	}
	if ctx.Meta.Keywords != "coffee, beans" {
		t.Fatalf("unexpected keywords %q", ctx.Meta.Keywords)
	}
	if ctx.Meta.CanonicalURL != "https://sites.example.com/acme" {
		t.Fatalf("unexpected canonical url %q", ctx.Meta.CanonicalURL)
	}

	ctx, err = tr.Transform(composition.Composition{}, testDefaults(), "")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if ctx.Meta.Description != "A page built with the site builder" {
		t.Fatalf("expected default description, got %q", ctx.Meta.Description)
	}
}
