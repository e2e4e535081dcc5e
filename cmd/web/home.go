package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wynterCG/website/internal/catalog"
	"github.com/wynterCG/website/internal/contact"
	"github.com/wynterCG/website/internal/content"
	"github.com/wynterCG/website/internal/grid"
	handlersPkg "github.com/wynterCG/website/internal/handlers"
	"github.com/wynterCG/website/internal/lightbox"
	mw "github.com/wynterCG/website/internal/middleware"
	"github.com/wynterCG/website/internal/nav"
	"github.com/wynterCG/website/internal/observability"
	"github.com/wynterCG/website/internal/seo"
	"github.com/wynterCG/website/internal/youtube"
)

// HomeView is the body of the single page.
type HomeView struct {
	Site    catalog.Site
	Skills  []string
	About   *content.Page
	Grid    GridView
	Gallery GalleryView
	Contact ContactView
}

// HomeHandler renders the landing page. Every full page load starts from the
// initial grid and a closed lightbox; only a `gallery` link reopens it.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	s := mw.GetSession(r)
	cat := catalogStore.Current()

	lb := galleryFromQuery(r, cat)
	next := lb.Snapshot()
	flash := s.Contact
	if s.Grid != grid.New() || s.Lightbox != next || flash != (mw.ContactState{}) {
		s.Grid = grid.New()
		s.Lightbox = next
		s.Contact = mw.ContactState{}
		s.MarkDirty()
	}

	contactView := buildContactView(formFromFlash(flash.Status, flash.Reference), mw.Lang(r), s.CSRFToken, cat.Site.Email)
	renderHome(w, r, &contactView)
}

// galleryFromQuery opens the lightbox named by `?gallery=<slug>&i=<n>`, the
// target plain form posts redirect to. Anything invalid yields a closed gallery.
func galleryFromQuery(r *http.Request, cat *catalog.Catalog) *lightbox.Session {
	q := r.URL.Query()
	slug := strings.TrimSpace(q.Get("gallery"))
	if slug == "" {
		return lightbox.Restore(lightbox.Snapshot{}, nil)
	}
	i, err := strconv.Atoi(q.Get("i"))
	if err != nil {
		i = 0
	}
	return lightbox.Restore(lightbox.Snapshot{Open: true, Slug: slug, Index: i, ReturnFocus: "card-" + slug}, cat.Project)
}

// galleryLink is the page URL that shows lb, used as the redirect target of
// plain gallery form posts.
func galleryLink(lb *lightbox.Session) string {
	target := strings.TrimRight(basePath, "/") + "/"
	if !lb.IsOpen() {
		return target + "#work"
	}
	q := url.Values{}
	q.Set("gallery", lb.Project().Slug)
	q.Set("i", strconv.Itoa(lb.Index()))
	return target + "?" + q.Encode() + "#lightbox-root"
}

// renderHome renders the full page from the session state. contactView is
// the contact form to show, e.g. with validation errors after a plain form post.
func renderHome(w http.ResponseWriter, r *http.Request, contactView *ContactView) {
	lang := mw.Lang(r)
	s := mw.GetSession(r)
	cat := catalogStore.Current()
	origin := originFor(r)

	lb := lightbox.Restore(s.Lightbox, cat.Project)
	if !lb.IsOpen() && s.Lightbox.Open {
		// the project disappeared in a reload
		s.Lightbox = lightbox.Snapshot{}
		s.MarkDirty()
	}

	view := HomeView{
		Site:    cat.Site,
		Skills:  marquee(cat.Site.Skills),
		Grid:    buildGridView(cat, s.Grid, origin, lang, s.CSRFToken),
		Gallery: buildGalleryView(lb, origin, lang, s.CSRFToken),
	}
	// no HX-Trigger reaches a full page, so the open effect is rendered
	view.Gallery.FullPage = true
	if contactView != nil {
		view.Contact = *contactView
	} else {
		view.Contact = buildContactView(contact.New(), lang, s.CSRFToken, cat.Site.Email)
	}

	page, err := contentClient.Get(r.Context(), "about", "about", lang)
	switch {
	case err == nil:
		view.About = &page
	case errors.Is(err, content.ErrNotFound):
	default:
		observability.FromContext(r.Context()).Warn("about content unavailable", zap.Error(err))
	}

	title := cat.Site.Name
	if cat.Site.Role != "" {
		title += " | " + cat.Site.Role
	}
	desc := i18nOrDefault(lang, "home.description", cat.Site.Headline)
	if view.About != nil && view.About.Summary != "" {
		desc = view.About.Summary
	}

	vm := handlersPkg.PageData{
		Title:        title,
		Lang:         lang,
		Languages:    i18nBundle.Supported(),
		Path:         r.URL.Path,
		BasePath:     basePath,
		Nav:          nav.Build(nav.Main, basePath, ""),
		FooterNav:    nav.Build(nav.Footer, basePath, ""),
		CSRFToken:    s.CSRFToken,
		ScrollLocked: view.Gallery.Open,
		Analytics:    analytics,
		Site:         cat.Site,
		Home:         view,
	}
	meta := seo.HomeMeta(title, desc, siteOrigin, basePath, shareImage(cat), lang)
	vm.SEO = handlersPkg.NewSEOData(meta,
		seo.Person(cat.Site.Name, cat.Site.Role, meta.Canonical, sameAs(cat.Site.Socials)),
		seo.WorkList(cat.Site.Name, works(cat)),
	)

	renderPage(w, r, vm)
}

// marquee repeats the skills so the scrolling strip loops seamlessly.
func marquee(skills []string) []string {
	out := make([]string, 0, 2*len(skills))
	out = append(out, skills...)
	return append(out, skills...)
}

func sameAs(socials []catalog.Social) []string {
	var out []string
	for _, s := range socials {
		if s.URL != "" {
			out = append(out, s.URL)
		}
	}
	return out
}

func works(cat *catalog.Catalog) []seo.Work {
	out := make([]seo.Work, 0, len(cat.Projects))
	for _, p := range cat.Projects {
		out = append(out, seo.Work{Name: p.Title, URL: p.Link, Image: p.FirstImage(), Keywords: p.Tags})
	}
	return out
}

// shareImage prefers the hero poster, then the first project still or YouTube thumbnail.
func shareImage(cat *catalog.Catalog) string {
	if cat.Site.HeroPoster != "" {
		return cat.Site.HeroPoster
	}
	for _, p := range cat.Projects {
		if img := p.FirstImage(); img != "" {
			return img
		}
		if cover, ok := p.Cover(); ok {
			if thumb, ok := youtube.ThumbnailURL(cover.Source(), youtube.QualityMaxRes); ok {
				return thumb
			}
		}
	}
	return ""
}
