package lightbox

import (
	"github.com/wynterCG/website/internal/media"
	"github.com/wynterCG/website/internal/youtube"
)

// Slide is the render contract for the item on display.
type Slide struct {
	Kind  string
	Src   string
	Alt   string
	Index int
	Total int

	// video
	Poster      string
	Loop        bool
	FallbackURL string

	// youtube
	EmbedURL    string
	Ratio       string
	Placeholder bool
}

// Thumb is one entry of the thumbnail strip. LabelKey is the i18n key of its
// accessible name, formatted with the 1-based Number.
type Thumb struct {
	Index       int
	Number      int
	Kind        string
	Image       string
	LabelKey    string
	Active      bool
	Playable    bool
	Placeholder bool
}

const (
	thumbLabelImage   = "gallery.thumb.image"
	thumbLabelVideo   = "gallery.thumb.video"
	thumbLabelYouTube = "gallery.thumb.youtube"
)

// Slide describes the current item. origin is the site origin handed to the
// YouTube player.
func (s *Session) Slide(origin string) (Slide, bool) {
	item, ok := s.Current()
	if !ok {
		return Slide{}, false
	}
	sl := media.Visit[Slide](item, slideBuilder{project: s.project, origin: origin})
	sl.Index = s.index
	sl.Total = len(s.project.Media)
	sl.Alt = s.project.Title
	return sl, true
}

type slideBuilder struct {
	project *media.Project
	origin  string
}

func (b slideBuilder) Image(m media.Image) Slide {
	return Slide{Kind: media.KindImage.String(), Src: m.Src}
}

func (b slideBuilder) Video(m media.Video) Slide {
	return Slide{
		Kind:        media.KindVideo.String(),
		Src:         m.Src,
		Poster:      b.project.PosterFor(m),
		Loop:        m.Loops(),
		FallbackURL: m.Src,
	}
}

func (b slideBuilder) YouTube(m media.YouTube) Slide {
	sl := Slide{Kind: media.KindYouTube.String(), Src: m.Src, Ratio: m.AspectRatio().String(), FallbackURL: m.Src}
	embed, ok := youtube.ModalEmbedURL(m.Src, b.origin)
	if !ok {
		sl.Placeholder = true
		return sl
	}
	sl.EmbedURL = embed
	return sl
}

// Thumbs lists the thumbnail strip, marking the current item active.
func (s *Session) Thumbs() []Thumb {
	if !s.IsOpen() {
		return nil
	}
	out := make([]Thumb, len(s.project.Media))
	for i, m := range s.project.Media {
		th := media.Visit[Thumb](m, thumbBuilder{project: s.project})
		th.Index = i
		th.Number = i + 1
		th.Active = i == s.index
		out[i] = th
	}
	return out
}

type thumbBuilder struct {
	project *media.Project
}

func (b thumbBuilder) Image(m media.Image) Thumb {
	return Thumb{Kind: media.KindImage.String(), Image: m.Src, LabelKey: thumbLabelImage}
}

func (b thumbBuilder) Video(m media.Video) Thumb {
	poster := b.project.PosterFor(m)
	return Thumb{Kind: media.KindVideo.String(), Image: poster, LabelKey: thumbLabelVideo, Playable: true, Placeholder: poster == ""}
}

func (b thumbBuilder) YouTube(m media.YouTube) Thumb {
	th := Thumb{Kind: media.KindYouTube.String(), LabelKey: thumbLabelYouTube, Playable: true}
	if img, ok := youtube.ThumbnailURL(m.Src, youtube.QualityHigh); ok {
		th.Image = img
	} else {
		th.Placeholder = true
	}
	return th
}
