package media

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrNoMedia is returned for projects without any media entries.
var ErrNoMedia = errors.New("media: project has no media")

// Project is one portfolio entry shown as a grid card.
type Project struct {
	Slug   string
	Title  string
	Tags   []string
	Blurb  string
	Link   string
	Poster string
	Media  []Item
}

// Cover returns the first media entry, shown in the collapsed grid card.
func (p Project) Cover() (Item, bool) {
	if len(p.Media) == 0 {
		return nil, false
	}
	return p.Media[0], true
}

// FirstImage returns the source of the first still image in the media list.
func (p Project) FirstImage() string {
	for _, m := range p.Media {
		if img, ok := m.(Image); ok && strings.TrimSpace(img.Src) != "" {
			return img.Src
		}
	}
	return ""
}

// PosterFor resolves the poster for a video entry: the entry's own poster,
// then the project poster, then the first image in the media list.
func (p Project) PosterFor(v Video) string {
	if s := strings.TrimSpace(v.Poster); s != "" {
		return s
	}
	if s := strings.TrimSpace(p.Poster); s != "" {
		return s
	}
	return p.FirstImage()
}

// Validate checks structural invariants. Malformed media URLs are not an error.
func (p Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("media: project %q: missing title", p.Slug)
	}
	if len(p.Media) == 0 {
		return fmt.Errorf("%w: %q", ErrNoMedia, p.Title)
	}
	return nil
}

// Slugify derives a URL-safe slug from a title.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
