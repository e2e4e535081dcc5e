package main

import (
	"github.com/wynterCG/website/internal/lightbox"
)

// GalleryView is the view model for the lightbox fragment. A closed gallery
// renders an empty mount point.
type GalleryView struct {
	Lang      string
	CSRFToken string
	Open      bool
	Title     string
	Slug      string
	Slide     lightbox.Slide
	Thumbs    []lightbox.Thumb
	HasNav    bool
	CloseID   string
	// FullPage marks a render inside the whole page rather than a swap.
	FullPage bool
}

func buildGalleryView(lb *lightbox.Session, origin, lang, csrf string) GalleryView {
	view := GalleryView{Lang: lang, CSRFToken: csrf, CloseID: lightbox.CloseControlID}
	slide, ok := lb.Slide(origin)
	if !ok {
		return view
	}
	p := lb.Project()
	view.Open = true
	view.Title = p.Title
	view.Slug = p.Slug
	view.Slide = slide
	view.HasNav = lb.HasNavigation()
	if view.HasNav {
		view.Thumbs = lb.Thumbs()
	}
	return view
}

// focusID keeps only characters valid in an element id the page generated.
func focusID(raw string) string {
	if len(raw) > 64 {
		return ""
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return ""
		}
	}
	return raw
}
