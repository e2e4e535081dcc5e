package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wynterCG/website/internal/blog"
	mw "github.com/wynterCG/website/internal/middleware"
	"github.com/wynterCG/website/internal/observability"
)

// BlogView is the view model for the teaser fragment.
type BlogView struct {
	Lang     string
	Posts    []blog.Post
	Fallback bool
}

// BlogTeaserFrag renders the latest posts, or the built-in samples when the
// feed is unavailable.
func BlogTeaserFrag(w http.ResponseWriter, r *http.Request) {
	posts, src, err := blogClient.Latest(r.Context())
	if err != nil {
		// the visitor navigated away; nothing to render
		observability.FromContext(r.Context()).Debug("blog teaser discarded", zap.Error(err))
		return
	}
	view := BlogView{Lang: mw.Lang(r), Posts: posts, Fallback: src == blog.SourceFallback}
	renderTemplate(w, r, "frag_blog_teaser", view)
}
