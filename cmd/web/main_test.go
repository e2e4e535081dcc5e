package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wynterCG/website/internal/blog"
	"github.com/wynterCG/website/internal/catalog"
	"github.com/wynterCG/website/internal/contact"
	"github.com/wynterCG/website/internal/content"
	"github.com/wynterCG/website/internal/grid"
	"github.com/wynterCG/website/internal/i18n"
	"github.com/wynterCG/website/internal/lightbox"
	mw "github.com/wynterCG/website/internal/middleware"
	"github.com/wynterCG/website/internal/observability"
)

type fakeRelay struct {
	mu   sync.Mutex
	subs []contact.Submission
	err  error
}

func (f *fakeRelay) Send(_ context.Context, sub contact.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, sub)
	return f.err
}

func (f *fakeRelay) sent() []contact.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]contact.Submission(nil), f.subs...)
}

// newTestRouter builds a router similar to main(), optionally adding extra routes.
func newTestRouter(t *testing.T, add func(r chi.Router)) http.Handler {
	t.Helper()
	// ensure templates reparse each request and set correct paths
	devMode = true
	templatesDir = "../../templates"
	publicDir = "../../public"
	siteOrigin = "https://example.test"
	basePath = "/"
	logger = zaptest.NewLogger(t)
	if _, err := parseTemplates(); err != nil {
		t.Fatalf("parseTemplates failed: %v", err)
	}

	var err error
	i18nBundle, err = i18n.Load("../../locales", "en", []string{"en", "pt"})
	require.NoError(t, err)
	catalogStore, err = catalog.Open("../../data", logger)
	require.NoError(t, err)
	contentClient = content.NewClient("../../content")
	contentClient.SetCacheDuration(0)
	blogClient = blog.NewClient("")
	contactRelay = &fakeRelay{}
	mw.SetSessionOptions(strings.Repeat("k", 32), false, "SITE_TEST")

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(observability.RequestLogger(logger))
	r.Use(observability.Recoverer)
	r.Get("/healthz", HealthzHandler)
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache("../../public/assets")))
	r.Group(func(r chi.Router) {
		r.Use(mw.HTMX)
		r.Use(mw.Session)
		r.Use(mw.Locale(i18nBundle))
		r.Use(mw.CSRF)
		mountRoutes(r)
		if add != nil {
			add(r)
		}
	})
	return r
}

// visitor replays cookies between requests like a browser would.
type visitor struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]string
}

func newVisitor(t *testing.T, h http.Handler) *visitor {
	v := &visitor{t: t, h: h, cookies: map[string]string{}}
	rec := v.get("/", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, v.cookies["csrf_token"])
	return v
}

func (v *visitor) do(req *http.Request, htmx bool) *httptest.ResponseRecorder {
	v.t.Helper()
	parts := make([]string, 0, len(v.cookies))
	for name, val := range v.cookies {
		parts = append(parts, name+"="+val)
	}
	if len(parts) > 0 {
		req.Header.Set("Cookie", strings.Join(parts, "; "))
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	v.h.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		v.cookies[c.Name] = c.Value
	}
	return rec
}

func (v *visitor) get(path string, htmx bool) *httptest.ResponseRecorder {
	return v.do(httptest.NewRequest(http.MethodGet, path, nil), htmx)
}

func (v *visitor) post(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token := v.cookies["csrf_token"]; token != "" {
		req.Header.Set("X-CSRF-Token", token)
	}
	return v.do(req, htmx)
}

// location returns the redirect target without its fragment, as a browser requests it.
func location(rec *httptest.ResponseRecorder) string {
	loc, _, _ := strings.Cut(rec.Header().Get("Location"), "#")
	return loc
}

func parseDoc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	return doc
}

func triggerPayload(t *testing.T, rec *httptest.ResponseRecorder, event string, dst any) {
	t.Helper()
	raw := rec.Header().Get("HX-Trigger")
	require.NotEmpty(t, raw, "missing HX-Trigger")
	var events map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &events))
	payload, ok := events[event]
	require.True(t, ok, "event %q not in %s", event, raw)
	require.NoError(t, json.Unmarshal(payload, dst))
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

func TestHomeRendersCatalog(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc := parseDoc(t, rec)
	assert.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
	assert.Contains(t, doc.Find("h1.hero-title").Text(), "Designer")

	cards := doc.Find("#work-grid [data-card]")
	require.Equal(t, 3, cards.Length())
	first := doc.Find("#card-hard-surface-breakdown-card")
	assert.True(t, first.HasClass("is-active"), "first card autoplays before any interaction")
	assert.Equal(t, "youtube", first.AttrOr("data-kind", ""))
	src := first.Find("iframe[data-card-iframe]").AttrOr("src", "")
	assert.Contains(t, src, "youtube.com/embed/ZfSN77J8tL4")
	assert.Contains(t, src, "origin=https%3A%2F%2Fexample.test")

	second := doc.Find("#card-realtime-turntable-card")
	assert.False(t, second.HasClass("is-active"))
	_, autoplay := second.Find("video[data-card-video]").Attr("autoplay")
	assert.False(t, autoplay)

	assert.Equal(t, 0, doc.Find("[data-lightbox]").Length(), "gallery starts closed")
	assert.Contains(t, doc.Find("#about .prose").Text(), "hard-surface")
	assert.Equal(t, 3, doc.Find(".header-nav a").Length())

	var hasPerson bool
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(s.Text(), `"Person"`) {
			hasPerson = true
		}
	})
	assert.True(t, hasPerson)
}

func TestHomeHonoursLanguageParam(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?hl=pt", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pt", rec.Header().Get("Content-Language"))
	doc := parseDoc(t, rec)
	assert.Equal(t, "pt", doc.Find("html").AttrOr("lang", ""))
	assert.Contains(t, doc.Find("#about .prose").Text(), "Daniel")
}

func TestWorkHoverEmitsCommands(t *testing.T) {
	srv := newTestRouter(t, nil)
	v := newVisitor(t, srv)

	rec := v.post("/work/hover", url.Values{"card": {"1"}}, true)
	require.Equal(t, http.StatusNoContent, rec.Code)
	var ev gridEvent
	triggerPayload(t, rec, "grid:commands", &ev)
	want := gridEvent{Active: 1, Commands: []grid.Command{
		{Card: 0, Action: grid.ActionUnmount},
		{Card: 1, Action: grid.ActionPlay},
	}}
	if diff := cmp.Diff(want, ev); diff != "" {
		t.Fatalf("hover commands mismatch (-want +got):\n%s", diff)
	}

	rec = v.post("/work/leave", nil, true)
	require.Equal(t, http.StatusNoContent, rec.Code)
	ev = gridEvent{}
	triggerPayload(t, rec, "grid:commands", &ev)
	want = gridEvent{Active: -1, Commands: []grid.Command{
		{Card: 0, Action: grid.ActionUnmount},
		{Card: 1, Action: grid.ActionPause},
	}}
	if diff := cmp.Diff(want, ev); diff != "" {
		t.Fatalf("leave commands mismatch (-want +got):\n%s", diff)
	}

	// the free autoplay is not granted again after interaction
	rec = v.get("/work", true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	assert.Equal(t, 0, doc.Find(".card.is-active").Length())
}

func TestWorkHoverRejectsUnknownCard(t *testing.T) {
	srv := newTestRouter(t, nil)
	v := newVisitor(t, srv)
	for _, card := range []string{"9", "-1", "x"} {
		rec := v.post("/work/touch", url.Values{"card": {card}}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "card %s", card)
		assert.Contains(t, rec.Header().Get("HX-Trigger"), "site:error")
	}
}

func TestWorkHoverWithoutHTMXRedirects(t *testing.T) {
	srv := newTestRouter(t, nil)
	v := newVisitor(t, srv)
	rec := v.post("/work/hover", url.Values{"card": {"2"}}, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#work", rec.Header().Get("Location"))
}

func TestPostWithoutCSRFIsRejected(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/work/hover", strings.NewReader("card=0"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGalleryFlow(t *testing.T) {
	srv := newTestRouter(t, nil)
	v := newVisitor(t, srv)

	rec := v.post("/gallery/open", url.Values{"project": {"realtime-turntable"}, "focus": {"card-realtime-turntable"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var eff lightbox.Effect
	triggerPayload(t, rec, "lightbox:effect", &eff)
	assert.Equal(t, lightbox.Effect{LockScroll: true, Focus: lightbox.CloseControlID}, eff)

	doc := parseDoc(t, rec)
	require.Equal(t, 1, doc.Find("[data-lightbox]").Length())
	assert.Equal(t, "#lightbox-root:queue all", doc.Find("[data-lightbox]").AttrOr("hx-sync", ""))
	closeBtn := doc.Find("#" + lightbox.CloseControlID)
	assert.Equal(t, 1, closeBtn.Length())
	_, autofocus := closeBtn.Attr("autofocus")
	assert.False(t, autofocus, "swapped fragments take focus from the effect")
	assert.Equal(t, 1, doc.Find("video.slide-video").Length())
	thumbs := doc.Find(".lightbox-thumbs .thumb")
	assert.Equal(t, 3, thumbs.Length())
	assert.Equal(t, "Go to video 1", thumbs.Eq(0).AttrOr("aria-label", ""))
	assert.Equal(t, "Go to image 2", thumbs.Eq(1).AttrOr("aria-label", ""))

	rec = v.post("/gallery/next", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("HX-Trigger"))
	doc = parseDoc(t, rec)
	assert.Equal(t, 1, doc.Find("img.slide-image").Length())
	assert.Equal(t, "true", doc.Find(".thumb.is-active").AttrOr("aria-current", ""))

	// prev from the first item wraps to the last
	rec = v.post("/gallery/select", url.Values{"index": {"0"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = v.post("/gallery/prev", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc = parseDoc(t, rec)
	assert.Contains(t, doc.Find(".slide-image").AttrOr("src", ""), "dan-inverno-unknown")

	rec = v.post("/gallery/close", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	eff = lightbox.Effect{}
	triggerPayload(t, rec, "lightbox:effect", &eff)
	assert.Equal(t, lightbox.Effect{UnlockScroll: true, Focus: "card-realtime-turntable"}, eff)
	assert.Empty(t, strings.TrimSpace(rec.Body.String()))

	// closing again is a no-op without effects
	rec = v.post("/gallery/close", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("HX-Trigger"))
}

func TestGalleryOpenErrors(t *testing.T) {
	srv := newTestRouter(t, nil)
	v := newVisitor(t, srv)

	rec := v.post("/gallery/open", url.Values{"project": {"missing"}}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = v.post("/gallery/open", url.Values{"project": {"image-study"}, "start": {"5"}}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = v.post("/gallery/select", url.Values{"index": {"nope"}}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGalleryWorksWithoutJavaScript(t *testing.T) {
	srv := newTestRouter(t, nil)
	v := newVisitor(t, srv)

	form := url.Values{"project": {"image-study"}, "start": {"1"}, mw.CSRFFormField: {v.cookies["csrf_token"]}}
	req := httptest.NewRequest(http.MethodPost, "/gallery/open", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := v.do(req, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?gallery=image-study&i=1#lightbox-root", rec.Header().Get("Location"))

	rec = v.get(location(rec), false)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	require.Equal(t, 1, doc.Find("#lightbox-root [data-lightbox]").Length())
	assert.Contains(t, doc.Find(".slide-image").AttrOr("src", ""), "screenshot-2025-08-11")
	assert.True(t, doc.Find("body").HasClass("is-locked"), "page scroll is locked behind the gallery")
	_, autofocus := doc.Find("#" + lightbox.CloseControlID).Attr("autofocus")
	assert.True(t, autofocus, "the close control takes focus on a full page")

	// next wraps within the two images
	rec = v.post("/gallery/next", nil, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?gallery=image-study&i=0", location(rec))
	doc = parseDoc(t, v.get(location(rec), false))
	assert.Contains(t, doc.Find(".slide-image").AttrOr("src", ""), "render00-final")

	rec = v.post("/gallery/close", nil, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#work", rec.Header().Get("Location"))
	doc = parseDoc(t, v.get(location(rec), false))
	assert.Equal(t, 0, doc.Find("[data-lightbox]").Length())
	assert.False(t, doc.Find("body").HasClass("is-locked"))
}

func TestGalleryLinkIgnoresInvalidTargets(t *testing.T) {
	srv := newTestRouter(t, nil)
	v := newVisitor(t, srv)
	for _, path := range []string{"/?gallery=missing", "/?gallery=image-study&i=9", "/?gallery=image-study&i=-1"} {
		doc := parseDoc(t, v.get(path, false))
		assert.Equal(t, 0, doc.Find("[data-lightbox]").Length(), path)
	}
}

func TestGalleryThumbLabelsFollowLanguage(t *testing.T) {
	srv := newTestRouter(t, nil)
	v := newVisitor(t, srv)
	require.Equal(t, http.StatusOK, v.get("/?hl=pt", false).Code)

	rec := v.post("/gallery/open", url.Values{"project": {"realtime-turntable"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	thumbs := parseDoc(t, rec).Find(".lightbox-thumbs .thumb")
	require.Equal(t, 3, thumbs.Length())
	assert.Equal(t, "Ir para o vídeo 1", thumbs.Eq(0).AttrOr("aria-label", ""))
	assert.Equal(t, "Ir para a imagem 3", thumbs.Eq(2).AttrOr("aria-label", ""))
}

func TestReloadStartsFromInitialState(t *testing.T) {
	srv := newTestRouter(t, nil)
	v := newVisitor(t, srv)

	activeCards := func(doc *goquery.Document) []string {
		var out []string
		doc.Find("#work-grid [data-card].is-active").Each(func(_ int, s *goquery.Selection) {
			out = append(out, s.AttrOr("data-card", ""))
		})
		return out
	}

	require.Equal(t, http.StatusNoContent, v.post("/work/hover", url.Values{"card": {"1"}}, true).Code)
	require.Equal(t, http.StatusNoContent, v.post("/work/leave", nil, true).Code)
	doc := parseDoc(t, v.get("/", false))
	assert.Equal(t, []string{"0"}, activeCards(doc), "first card autoplays again after a reload")

	// touch devices never send leave
	require.Equal(t, http.StatusNoContent, v.post("/work/touch", url.Values{"card": {"2"}}, true).Code)
	doc = parseDoc(t, v.get("/", false))
	assert.Equal(t, []string{"0"}, activeCards(doc))

	// the first hover after a reload starts from the free autoplay
	rec := v.post("/work/hover", url.Values{"card": {"1"}}, true)
	var ev gridEvent
	triggerPayload(t, rec, "grid:commands", &ev)
	assert.Equal(t, 1, ev.Active)

	require.Equal(t, http.StatusOK, v.post("/gallery/open", url.Values{"project": {"image-study"}}, true).Code)
	doc = parseDoc(t, v.get("/", false))
	assert.Equal(t, 0, doc.Find("[data-lightbox]").Length(), "an open gallery does not survive a reload")
	assert.False(t, doc.Find("body").HasClass("is-locked"))

	rec = v.post("/gallery/next", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, strings.TrimSpace(rec.Body.String()), "the reloaded page owns a closed gallery")
}

func TestSessionCookieEndsWithTheBrowserSession(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "SITE_TEST" {
			found = true
			assert.True(t, c.Expires.IsZero())
			assert.Zero(t, c.MaxAge)
		}
	}
	assert.True(t, found)
}

func TestContactSubmit(t *testing.T) {
	srv := newTestRouter(t, nil)
	relay := contactRelay.(*fakeRelay)
	v := newVisitor(t, srv)

	rec := v.post("/contact", url.Values{
		"name":    {"  Ada  "},
		"email":   {"ada@example.com"},
		"company": {"Studio"},
		"message": {"Hello there"},
	}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	assert.Equal(t, 1, doc.Find("#contact-status .status-success").Length())
	assert.Empty(t, doc.Find(`input[name="name"]`).AttrOr("value", ""), "fields are cleared after success")

	subs := relay.sent()
	require.Len(t, subs, 1)
	assert.Equal(t, "Ada", subs[0].Fields.Name)
	assert.Equal(t, "New inquiry from portfolio", subs[0].Subject)
	assert.NotEmpty(t, subs[0].Reference)

	// typing again dismisses it
	rec = v.post("/contact/edit", url.Values{"field": {"message"}, "message": {"H"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc = parseDoc(t, rec)
	assert.Equal(t, 0, doc.Find(".status-success").Length())

	// nothing is kept across a reload
	doc = parseDoc(t, v.get("/", false))
	assert.Equal(t, 0, doc.Find("#contact-status .status-success").Length())
}

func TestContactSubmitWithoutJavaScript(t *testing.T) {
	srv := newTestRouter(t, nil)
	relay := contactRelay.(*fakeRelay)
	v := newVisitor(t, srv)

	rec := v.post("/contact", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}}, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#contact", rec.Header().Get("Location"))
	require.Len(t, relay.sent(), 1)

	// the landing page shows the confirmation once
	doc := parseDoc(t, v.get(location(rec), false))
	assert.Equal(t, 1, doc.Find("#contact-status .status-success").Length())
	doc = parseDoc(t, v.get("/", false))
	assert.Equal(t, 0, doc.Find("#contact-status .status-success").Length())
}

func TestContactHoneypotSkipsRelay(t *testing.T) {
	srv := newTestRouter(t, nil)
	relay := contactRelay.(*fakeRelay)
	v := newVisitor(t, srv)

	rec := v.post("/contact", url.Values{"_gotcha": {"bot"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, parseDoc(t, rec).Find(".status-success").Length())
	assert.Empty(t, relay.sent())
}

func TestContactValidationKeepsFields(t *testing.T) {
	srv := newTestRouter(t, nil)
	relay := contactRelay.(*fakeRelay)
	v := newVisitor(t, srv)

	rec := v.post("/contact", url.Values{"name": {"Ada"}, "email": {"not-an-email"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	assert.Equal(t, "Ada", doc.Find(`input[name="name"]`).AttrOr("value", ""))
	assert.Equal(t, "true", doc.Find(`input[name="email"]`).AttrOr("aria-invalid", ""))
	assert.Equal(t, "true", doc.Find(`textarea[name="message"]`).AttrOr("aria-invalid", ""))
	assert.Equal(t, 1, doc.Find(".status-error").Length())
	assert.Empty(t, relay.sent())
}

func TestContactRelayFailure(t *testing.T) {
	srv := newTestRouter(t, nil)
	contactRelay = &fakeRelay{err: &contact.RelayError{StatusCode: http.StatusUnprocessableEntity, Messages: []string{"bad"}}}
	v := newVisitor(t, srv)

	rec := v.post("/contact", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	assert.Equal(t, 1, doc.Find(".status-error").Length())
	assert.Equal(t, "Hi", doc.Find(`textarea[name="message"]`).Text(), "fields are kept for a retry")

	contactRelay = &fakeRelay{err: errors.New("dial tcp: timeout")}
	rec = v.post("/contact", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, parseDoc(t, rec).Find(".status-error").Length())
}

func TestBlogTeaserFallback(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blog/teaser", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	assert.Equal(t, "fallback", doc.Find(".blog-grid").AttrOr("data-source", ""))
	assert.Equal(t, len(blog.Fallback()), doc.Find("article.post").Length())
}

func TestBlogTeaserFromFeed(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/feed+json")
		_, _ = io.WriteString(w, `{"items":[
			{"id":"a","url":"/blog/a/","title":"Older","date_published":"2025-01-01T00:00:00Z"},
			{"id":"b","url":"/blog/b/","title":"Newer","date_published":"2025-06-01T00:00:00Z","tags":["blender"]}
		]}`)
	}))
	defer feed.Close()

	srv := newTestRouter(t, nil)
	blogClient = blog.NewClient(feed.URL, blog.WithCacheTTL(time.Minute))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blog/teaser", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseDoc(t, rec)
	assert.Equal(t, "feed", doc.Find(".blog-grid").AttrOr("data-source", ""))
	var titles []string
	doc.Find(".post-title a").Each(func(_ int, s *goquery.Selection) { titles = append(titles, s.Text()) })
	assert.Equal(t, []string{"Newer", "Older"}, titles)
	assert.Equal(t, "Blender", doc.Find(".tag").First().Text())
}

func TestAssetsServed(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/js/portfolio.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	assert.Contains(t, rec.Body.String(), "grid:commands")
	assert.Contains(t, rec.Body.String(), `e.key !== "Tab"`, "the lightbox keeps Tab inside the dialog")
}

func TestCheckCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	require.NoError(t, check(cmd, "../../data"))
	assert.Equal(t, "ok: Daniel Inverno, 3 project(s)\n", out.String())

	err := check(cmd, "../../internal/catalog/testdata/invalid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problem")
	assert.NotEmpty(t, errOut.String())
}
