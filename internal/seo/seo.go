// Package seo builds head metadata and schema.org payloads for the page.
package seo

import "strings"

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	Locale      string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Twitter     Twitter
}

// HomeMeta builds the head tags for the single page. origin may be empty, in
// which case canonical and og:url are omitted.
func HomeMeta(title, description, origin, basePath, image, lang string) Meta {
	canonical := ""
	if origin != "" {
		canonical = strings.TrimRight(origin, "/") + "/" + strings.TrimLeft(basePath, "/")
	}
	image = absolute(origin, image)
	card := "summary"
	if image != "" {
		card = "summary_large_image"
	}
	return Meta{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Image:       image,
			Type:        "website",
			URL:         canonical,
			Locale:      ogLocale(lang),
		},
		Twitter: Twitter{Card: card, Image: image},
	}
}

func absolute(origin, src string) string {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	if origin == "" || !strings.HasPrefix(src, "/") {
		return ""
	}
	return strings.TrimRight(origin, "/") + src
}

func ogLocale(lang string) string {
	switch lang {
	case "pt":
		return "pt_PT"
	default:
		return "en_US"
	}
}
