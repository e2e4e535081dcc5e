// Package content renders localized markdown sections such as the About copy.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// ErrNotFound is returned when no markdown file exists for the section in any language.
var ErrNotFound = errors.New("content: not found")

const (
	defaultDir      = "content"
	defaultLang     = "en"
	defaultCacheTTL = 5 * time.Minute
)

// Page is one rendered markdown section.
type Page struct {
	Kind      string
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Body      string
	HTML      template.HTML
	UpdatedAt time.Time
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	Lang      string `yaml:"lang"`
	UpdatedAt string `yaml:"updated_at"`
}

// Client reads markdown from dir/{kind}/{lang}/{slug}.md.
type Client struct {
	dir    string
	md     goldmark.Markdown
	policy *bluemonday.Policy
	ttl    time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// NewClient constructs a Client rooted at dir.
func NewClient(dir string) *Client {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultDir
	}
	return &Client{
		dir: dir,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: newHTMLPolicy(),
		ttl:    defaultCacheTTL,
		cache:  map[string]cacheEntry{},
	}
}

// SetCacheDuration overrides the cache lifetime; zero or less disables caching.
func (c *Client) SetCacheDuration(d time.Duration) {
	c.mu.Lock()
	c.ttl = d
	c.cache = map[string]cacheEntry{}
	c.mu.Unlock()
}

// Get returns the section in lang, falling back to English.
func (c *Client) Get(ctx context.Context, kind, slug, lang string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	kind = sanitizeSegment(kind)
	slug = sanitizeSegment(slug)
	if kind == "" || slug == "" {
		return Page{}, ErrNotFound
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = defaultLang
	}

	key := kind + "|" + lang + "|" + slug
	if page, ok := c.cached(key); ok {
		return page, nil
	}

	priority := []string{lang}
	if lang != defaultLang {
		priority = append(priority, defaultLang)
	}
	for _, candidate := range priority {
		page, err := c.read(kind, slug, candidate)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return Page{}, err
		}
		c.store(key, page)
		return page, nil
	}
	return Page{}, ErrNotFound
}

func (c *Client) read(kind, slug, lang string) (Page, error) {
	file := filepath.Join(c.dir, kind, lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, fmt.Errorf("content: read %s: %w", file, err)
	}

	var front frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &front)
	if err != nil {
		return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
	}

	var buf bytes.Buffer
	if err := c.md.Convert(body, &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", file, err)
	}

	page := Page{
		Kind:      kind,
		Slug:      slug,
		Lang:      firstNonEmpty(front.Lang, lang),
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		Body:      string(body),
		HTML:      template.HTML(c.policy.SanitizeBytes(buf.Bytes())),
		UpdatedAt: parseDate(front.UpdatedAt),
	}
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

func newHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.AllowAttrs("id").OnElements("h2", "h3", "h4")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

func (c *Client) cached(key string) (Page, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[key]
	if !ok || time.Now().After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (c *Client) store(key string, page Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ttl <= 0 {
		return
	}
	c.cache[key] = cacheEntry{page: page, expires: time.Now().Add(c.ttl)}
}

func sanitizeSegment(s string) string {
	s = strings.Trim(strings.ToLower(strings.TrimSpace(s)), "/")
	if s == "" || strings.Contains(s, "..") || strings.ContainsAny(s, `/\`) {
		return ""
	}
	return s
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
