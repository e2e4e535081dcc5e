package blog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const summaryLimit = 220

var stripPolicy = bluemonday.StrictPolicy()

type feedDocument struct {
	Items []feedItem `json:"items"`
}

type feedItem struct {
	ID            string   `json:"id"`
	URL           string   `json:"url"`
	ExternalURL   string   `json:"external_url"`
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	ContentText   string   `json:"content_text"`
	ContentHTML   string   `json:"content_html"`
	Image         string   `json:"image"`
	BannerImage   string   `json:"banner_image"`
	DatePublished string   `json:"date_published"`
	DateModified  string   `json:"date_modified"`
	Tags          []string `json:"tags"`
}

// Decode reads a JSON feed document and normalises its entries. Entries
// without a title are skipped. The result is not sorted.
func Decode(r io.Reader, basePath string) ([]Post, error) {
	var doc feedDocument
	if err := json.NewDecoder(io.LimitReader(r, 4<<20)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFeed, err)
	}
	posts := make([]Post, 0, len(doc.Items))
	for _, it := range doc.Items {
		p, ok := normalize(it, basePath)
		if !ok {
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func normalize(it feedItem, basePath string) (Post, bool) {
	title := strings.TrimSpace(it.Title)
	if title == "" {
		return Post{}, false
	}
	link := firstNonEmpty(it.URL, it.ExternalURL)
	p := Post{
		ID:        firstNonEmpty(it.ID, link),
		Title:     title,
		Summary:   summarize(it),
		URL:       ResolveURL(basePath, link),
		Image:     ResolveURL(basePath, firstNonEmpty(it.Image, it.BannerImage, firstImage(it.ContentHTML))),
		Tags:      cleanTags(it.Tags),
		Published: parseTime(it.DatePublished),
		Modified:  parseTime(it.DateModified),
	}
	return p, true
}

func summarize(it feedItem) string {
	if s := strings.TrimSpace(it.Summary); s != "" {
		return truncate(s)
	}
	if s := strings.TrimSpace(it.ContentText); s != "" {
		return truncate(collapse(s))
	}
	if it.ContentHTML == "" {
		return ""
	}
	text := html.UnescapeString(stripPolicy.Sanitize(it.ContentHTML))
	return truncate(collapse(text))
}

// firstImage returns the src of the first <img> in an HTML fragment.
func firstImage(fragment string) string {
	if !strings.Contains(fragment, "<img") {
		return ""
	}
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.Img {
				continue
			}
			for _, a := range tok.Attr {
				if a.Key == "src" && strings.TrimSpace(a.Val) != "" {
					return strings.TrimSpace(a.Val)
				}
			}
		}
	}
}

// ResolveURL resolves a site-relative link against basePath. Absolute
// http(s) links pass through unchanged; other schemes are dropped.
func ResolveURL(basePath, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "//") {
		return raw
	}
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return raw
		default:
			return ""
		}
	}
	base := strings.TrimRight(strings.TrimSpace(basePath), "/")
	rel := strings.TrimPrefix(raw, "./")
	rel = strings.TrimLeft(rel, "/")
	return base + "/" + rel
}

// Top sorts posts newest first and returns at most n. Posts without any
// timestamp sort last; ties keep feed order.
func Top(posts []Post, n int) []Post {
	sorted := clonePosts(posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date().After(sorted[j].Date())
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func parseTime(val string) time.Time {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}
	}
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, val); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}

func cleanTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= summaryLimit {
		return s
	}
	r := []rune(s)
	cut := strings.TrimRight(string(r[:summaryLimit]), " ,.;:")
	return cut + "…"
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
