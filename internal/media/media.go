// Package media models the heterogeneous media attached to portfolio projects.
//
// A project's media list mixes still images, native video files and YouTube
// videos. Each entry is one of the concrete types Image, Video or YouTube behind
// the sealed Item interface; code that must handle every kind goes through
// Visit with a Visitor, so adding a kind breaks every visitor at compile time.
package media

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Kind enumerates the supported media kinds.
type Kind int

const (
	KindImage Kind = iota + 1
	KindVideo
	KindYouTube
)

// ErrUnknownKind is returned when a media descriptor names an unsupported type.
var ErrUnknownKind = errors.New("media: unknown kind")

// String returns the wire name of the kind as used in catalog files.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	case KindYouTube:
		return "youtube"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a catalog "type" value onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image":
		return KindImage, nil
	case "video":
		return KindVideo, nil
	case "youtube":
		return KindYouTube, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Item is a single media entry. The interface is sealed: only this package
// provides implementations.
type Item interface {
	Kind() Kind
	Source() string
	sealed()
}

// Image is a still image displayed at its natural aspect ratio.
type Image struct {
	Src string
}

// Video is a native video file.
type Video struct {
	Src    string
	Poster string
	// Loop is nil when the catalog did not say; videos loop by default.
	Loop *bool
}

// YouTube is a video hosted on YouTube, referenced by any youtube.com or youtu.be URL.
type YouTube struct {
	Src   string
	Ratio Ratio
}

func (Image) Kind() Kind   { return KindImage }
func (Video) Kind() Kind   { return KindVideo }
func (YouTube) Kind() Kind { return KindYouTube }

func (m Image) Source() string   { return m.Src }
func (m Video) Source() string   { return m.Src }
func (m YouTube) Source() string { return m.Src }

func (Image) sealed()   {}
func (Video) sealed()   {}
func (YouTube) sealed() {}

// Loops reports whether the video should loop.
func (m Video) Loops() bool {
	if m.Loop == nil {
		return true
	}
	return *m.Loop
}

// AspectRatio returns the declared ratio, or 16 / 9 when none was declared.
func (m YouTube) AspectRatio() Ratio {
	if m.Ratio.IsZero() {
		return DefaultRatio
	}
	return m.Ratio
}

// Visitor handles every media kind. Implementations must cover all kinds.
type Visitor[T any] interface {
	Image(Image) T
	Video(Video) T
	YouTube(YouTube) T
}

// Visit dispatches item to the matching visitor method.
func Visit[T any](item Item, v Visitor[T]) T {
	switch m := item.(type) {
	case Image:
		return v.Image(m)
	case Video:
		return v.Video(m)
	case YouTube:
		return v.YouTube(m)
	default:
		// unreachable while Item stays sealed
		panic(fmt.Sprintf("media: unhandled item %T", item))
	}
}

// ValidURL reports whether s is a syntactically valid absolute or site-relative URL.
// Invalid sources are kept in the model; consumers degrade instead of failing.
func ValidURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return strings.HasPrefix(s, "/")
	}
	return u.Host != ""
}
