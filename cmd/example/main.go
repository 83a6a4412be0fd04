package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder"
	"github.com/goliatone/go-sitebuilder/composition"
	"github.com/goliatone/go-sitebuilder/internal/pages"
)

const landingTemplate = `<html>
<head>
  <title>{{.PageTitle}}</title>
  <meta name="description" content="{{.Meta.Description}}">
</head>
<body>
{{range .Content}}{{if eq .Type "HeroBlock"}}  <section class="hero" style="background-image:url('{{index .Props "backgroundImage"}}')">
    <h1>{{index .Props "title"}}</h1>
    <p>{{index .Props "subtitle"}}</p>
    <a href="{{index .Props "buttonHref"}}">{{index .Props "buttonText"}}</a>
  </section>
{{else if eq .Type "TextBlock"}}  <div class="text" style="text-align:{{index .Props "align"}}">{{index .Props "children"}}</div>
{{end}}{{end}}  <footer>&copy; {{.CurrentYear}} {{.SiteName}}</footer>
</body>
</html>`

func main() {
	ctx := context.Background()

	cfg := sitebuilder.DefaultConfig()
	cfg.Render.SiteName = "Acme Sites"
	cfg.Render.BaseURL = "https://sites.acme.example.com"

	module, err := sitebuilder.New(cfg)
	if err != nil {
		log.Fatalf("initialise site builder: %v", err)
	}

	templateSvc := module.Templates()
	pageSvc := module.Pages()

	tenantID := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	siteID := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")

	tpl, err := templateSvc.Create(ctx, sitebuilder.TemplateCreateInput{
		TenantID: &tenantID,
		Name:     "landing",
		Version:  1,
		Body:     landingTemplate,
	})
	if err != nil {
		log.Fatalf("create template: %v", err)
	}
	fmt.Printf("template %q v%d -> %s\n", tpl.Name, tpl.Version, tpl.ID)

	page, err := pageSvc.Create(ctx, pages.CreateInput{
		TenantID:        tenantID,
		SiteID:          siteID,
		Slug:            "home",
		Title:           "My Page",
		TemplateID:      tpl.ID,
		TemplateVersion: tpl.Version,
	})
	if err != nil {
		log.Fatalf("create page: %v", err)
	}
	fmt.Printf("page %q -> %s\n", page.Slug, page.ID)

	draft := composition.Composition{
		Content: []composition.Block{
			{Type: "HeroBlock", Props: map[string]any{}},
			{Type: "TextBlock", Props: map[string]any{
				"children": "Welcome to our brand new site.",
			}},
		},
		Root: composition.Root{Props: map[string]any{"title": "My Page"}},
	}
	if _, err := pageSvc.SaveDraft(ctx, page.ID, tenantID, pages.DraftPatch{Composition: &draft}); err != nil {
		log.Fatalf("save draft: %v", err)
	}

	html, err := pageSvc.RenderPreview(ctx, page.ID, tenantID, "my-travel-blog")
	if err != nil {
		log.Fatalf("render preview: %v", err)
	}
	fmt.Println("--- preview ---")
	fmt.Println(html)

	link, err := pageSvc.GeneratePreviewLink(ctx, page.ID, tenantID, "")
	if err != nil {
		log.Fatalf("generate preview link: %v", err)
	}
	fmt.Printf("preview link (expires %s): %s\n", link.ExpiresAt.Format("15:04:05"), link.URL)

	token := link.URL[strings.LastIndex(link.URL, "/")+1:]
	claims, err := pageSvc.ParsePreviewToken(token)
	if err != nil {
		log.Fatalf("parse preview token: %v", err)
	}
	fmt.Printf("token claims: tenant=%s page=%s\n", claims.TenantID, claims.PageID)
}
