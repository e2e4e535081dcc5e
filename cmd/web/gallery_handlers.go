package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/wynterCG/website/internal/lightbox"
	"github.com/wynterCG/website/internal/media"
	mw "github.com/wynterCG/website/internal/middleware"
)

// currentGallery restores the visitor's lightbox against the live catalog.
func currentGallery(r *http.Request) *lightbox.Session {
	return lightbox.Restore(mw.GetSession(r).Lightbox, catalogStore.Current().Project)
}

// GalleryFrag renders the lightbox in its current state.
func GalleryFrag(w http.ResponseWriter, r *http.Request) {
	respondGallery(w, r, currentGallery(r), nil)
}

// GalleryOpenHandler opens a project's gallery at the requested item.
func GalleryOpenHandler(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.FormValue("project"))
	project, ok := catalogStore.Current().Project(slug)
	if !ok {
		renderError(w, r, http.StatusNotFound, "project not found", nil)
		return
	}
	start := 0
	if raw := strings.TrimSpace(r.FormValue("start")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			renderError(w, r, http.StatusBadRequest, "invalid start index", err)
			return
		}
		start = n
	}
	focus := focusID(r.FormValue("focus"))
	if focus == "" {
		focus = "card-" + project.Slug
	}

	lb := currentGallery(r)
	effect, err := lb.Open(project, start, focus)
	switch {
	case errors.Is(err, lightbox.ErrIndexOutOfRange):
		renderError(w, r, http.StatusBadRequest, "invalid start index", err)
		return
	case errors.Is(err, media.ErrNoMedia):
		renderError(w, r, http.StatusNotFound, "project has no media", err)
		return
	case err != nil:
		renderError(w, r, http.StatusInternalServerError, "open gallery", err)
		return
	}
	respondGallery(w, r, lb, &effect)
}

// GalleryNextHandler advances the open gallery; a closed gallery is left alone.
func GalleryNextHandler(w http.ResponseWriter, r *http.Request) {
	lb := currentGallery(r)
	_ = lb.Next()
	respondGallery(w, r, lb, nil)
}

// GalleryPrevHandler steps the open gallery back.
func GalleryPrevHandler(w http.ResponseWriter, r *http.Request) {
	lb := currentGallery(r)
	_ = lb.Prev()
	respondGallery(w, r, lb, nil)
}

// GallerySelectHandler jumps to a thumbnail.
func GallerySelectHandler(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(strings.TrimSpace(r.FormValue("index")))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid index", err)
		return
	}
	lb := currentGallery(r)
	if err := lb.Select(n); errors.Is(err, lightbox.ErrIndexOutOfRange) {
		renderError(w, r, http.StatusBadRequest, "invalid index", err)
		return
	}
	respondGallery(w, r, lb, nil)
}

// GalleryCloseHandler closes the gallery and hands focus back.
func GalleryCloseHandler(w http.ResponseWriter, r *http.Request) {
	lb := currentGallery(r)
	wasOpen := lb.IsOpen()
	effect := lb.Close()
	if !wasOpen {
		respondGallery(w, r, lb, nil)
		return
	}
	respondGallery(w, r, lb, &effect)
}

// respondGallery stores the session, emits the effect and renders the fragment.
func respondGallery(w http.ResponseWriter, r *http.Request, lb *lightbox.Session, effect *lightbox.Effect) {
	s := mw.GetSession(r)
	if snap := lb.Snapshot(); snap != s.Lightbox {
		s.Lightbox = snap
		s.MarkDirty()
	}
	if !wantsFragment(r) {
		http.Redirect(w, r, galleryLink(lb), http.StatusSeeOther)
		return
	}
	if effect != nil {
		if err := mw.Trigger(w, map[string]any{"lightbox:effect": effect}); err != nil {
			renderError(w, r, http.StatusInternalServerError, "encode effect", err)
			return
		}
	}
	renderTemplate(w, r, "frag_lightbox", buildGalleryView(lb, originFor(r), mw.Lang(r), s.CSRFToken))
}
