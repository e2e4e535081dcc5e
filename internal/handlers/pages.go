// Package handlers holds the view models shared by the page templates.
package handlers

import (
	"html/template"

	"github.com/wynterCG/website/internal/nav"
	"github.com/wynterCG/website/internal/seo"
)

// PageData is the view model for the base layout.
type PageData struct {
	Title     string
	Lang      string
	Languages []string
	SEO       SEOData
	Analytics Analytics

	Path      string
	BasePath  string
	Nav       []nav.RenderedItem
	FooterNav []nav.RenderedItem
	CSRFToken string
	// ScrollLocked renders the body locked behind an open modal.
	ScrollLocked bool

	// Site is the artist profile; Home the page body.
	Site any
	Home any
}

// SEOData carries head metadata and JSON-LD blocks.
type SEOData struct {
	seo.Meta
	Robots string
	JSONLD []template.JS
}

// NewSEOData wraps meta and marshals every non-nil schema payload.
func NewSEOData(meta seo.Meta, schemas ...map[string]any) SEOData {
	out := SEOData{Meta: meta}
	for _, s := range schemas {
		if s == nil {
			continue
		}
		if raw := seo.JSON(s); raw != "" {
			out.JSONLD = append(out.JSONLD, template.JS(raw))
		}
	}
	return out
}
