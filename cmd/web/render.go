package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wynterCG/website/internal/format"
	"github.com/wynterCG/website/internal/media"
	mw "github.com/wynterCG/website/internal/middleware"
	"github.com/wynterCG/website/internal/observability"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"now": time.Now,
		"t": func(lang, key string) string {
			if i18nBundle == nil {
				return key
			}
			return i18nBundle.T(lang, key)
		},
		"tf": func(lang, key string, args ...any) string {
			if i18nBundle == nil {
				return fmt.Sprintf(key, args...)
			}
			return i18nBundle.Tf(lang, key, args...)
		},
		"fmtDate":  format.FmtDate,
		"isoDate":  format.ISODate,
		"year":     format.Year,
		"tagLabel": format.TagLabel,
		"add":      func(a, b int) int { return a + b },
		// aspect parses a "W / H" ratio; anything else yields the 16 / 9 default.
		"aspect": func(ratio string) template.CSS {
			r, err := media.ParseRatio(ratio)
			if err != nil || r.IsZero() {
				r = media.DefaultRatio
			}
			return template.CSS(fmt.Sprintf("aspect-ratio: %d / %d", r.W, r.H))
		},
		"dict": func(kv ...any) (map[string]any, error) {
			if len(kv)%2 != 0 {
				return nil, fmt.Errorf("dict: odd argument count")
			}
			m := make(map[string]any, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				k, ok := kv[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
				}
				m[k] = kv[i+1]
			}
			return m, nil
		},
	}
}

func parseTemplates() (*template.Template, error) {
	// ParseGlob doesn't support **, so walk the tree.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(templateFuncs()).ParseFiles(files...)
}

func templates() (*template.Template, error) {
	if devMode {
		return parseTemplates()
	}
	if tmplCache == nil {
		return nil, fmt.Errorf("template not initialized")
	}
	return tmplCache, nil
}

// renderPage executes the base layout. In dev mode, templates are reparsed on each request.
func renderPage(w http.ResponseWriter, r *http.Request, data any) {
	renderTemplate(w, r, "base", data)
}

// renderTemplate executes a named template into a buffer so a failure never
// leaves a half-written response.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	renderTemplateStatus(w, r, name, data, http.StatusOK)
}

func renderTemplateStatus(w http.ResponseWriter, r *http.Request, name string, data any, status int) {
	t, err := templates()
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "template parse error", err)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		renderError(w, r, http.StatusInternalServerError, "template exec error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError logs err and answers with msg. htmx requests get an error
// fragment the page script shows as a toast.
func renderError(w http.ResponseWriter, r *http.Request, code int, msg string, err error) {
	log := observability.FromContext(r.Context())
	if code >= http.StatusInternalServerError {
		log.Error(msg, zap.Error(err))
	} else if err != nil {
		log.Debug(msg, zap.Error(err))
	}
	if mw.IsHTMX(r.Context()) {
		_ = mw.Trigger(w, map[string]any{"site:error": map[string]any{"status": code, "message": msg}})
		// htmx does not swap 4xx/5xx; the trigger carries the message
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(msg))
		return
	}
	http.Error(w, msg, code)
}

// i18nOrDefault returns the translation for key, or def when the key is missing.
func i18nOrDefault(lang, key, def string) string {
	if i18nBundle == nil {
		return def
	}
	if v := i18nBundle.T(lang, key); v != "" && v != key {
		return v
	}
	return def
}

// originFor returns the configured site origin or derives it from the request.
func originFor(r *http.Request) string {
	if siteOrigin != "" {
		return siteOrigin
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	host := r.Host
	if host == "" {
		return ""
	}
	return scheme + "://" + host
}

// wantsFragment reports whether the response should be a fragment. Plain form
// posts and boosted navigation fall back to a redirect to the home page.
func wantsFragment(r *http.Request) bool {
	return mw.IsHTMX(r.Context()) && !mw.HTMXFromContext(r.Context()).Boosted
}

// redirectHome sends non-htmx visitors back to the page section they acted on.
func redirectHome(w http.ResponseWriter, r *http.Request, anchor string) {
	target := strings.TrimRight(basePath, "/") + "/"
	if anchor != "" {
		target += "#" + anchor
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
