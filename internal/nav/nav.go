// Package nav describes the in-page anchors of the single page.
package nav

import "strings"

// Anchor ids rendered on the page sections.
const (
	AnchorTop     = "top"
	AnchorWork    = "work"
	AnchorAbout   = "about"
	AnchorBlog    = "blog"
	AnchorContact = "contact"
)

// Item represents a navigation entry pointing at a section anchor.
type Item struct {
	Anchor   string
	LabelKey string // i18n key, e.g. "nav.work"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	Anchor   string
	LabelKey string
	Active   bool
}

// Main is the header navigation.
var Main = []Item{
	{Anchor: AnchorWork, LabelKey: "nav.work"},
	{Anchor: AnchorAbout, LabelKey: "nav.about"},
	{Anchor: AnchorContact, LabelKey: "nav.contact"},
}

// Footer repeats the header entries and adds the blog teaser.
var Footer = []Item{
	{Anchor: AnchorWork, LabelKey: "nav.work"},
	{Anchor: AnchorAbout, LabelKey: "nav.about"},
	{Anchor: AnchorBlog, LabelKey: "nav.blog"},
	{Anchor: AnchorContact, LabelKey: "nav.contact"},
}

// Build renders items as hrefs relative to basePath. current marks the section
// named by the URL fragment the visitor arrived with, if any.
func Build(items []Item, basePath, current string) []RenderedItem {
	current = strings.TrimPrefix(strings.TrimSpace(current), "#")
	out := make([]RenderedItem, 0, len(items))
	for _, it := range items {
		out = append(out, RenderedItem{
			Href:     Href(basePath, it.Anchor),
			Anchor:   it.Anchor,
			LabelKey: it.LabelKey,
			Active:   current != "" && current == it.Anchor,
		})
	}
	return out
}

// Href links to an anchor on the home page. On the home page itself the bare
// fragment keeps the browser from reloading.
func Href(basePath, anchor string) string {
	if basePath == "" || basePath == "/" {
		return "#" + anchor
	}
	return strings.TrimRight(basePath, "/") + "/#" + anchor
}
