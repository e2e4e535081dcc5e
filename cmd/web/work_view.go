package main

import (
	"github.com/wynterCG/website/internal/catalog"
	"github.com/wynterCG/website/internal/grid"
	"github.com/wynterCG/website/internal/media"
	"github.com/wynterCG/website/internal/youtube"
)

// GridView is the view model for the project grid fragment.
type GridView struct {
	Lang      string
	CSRFToken string
	Cards     []CardView
}

// CardView is one project card. Exactly one cover block is filled, by Kind.
type CardView struct {
	Index  int
	ID     string
	Slug   string
	Title  string
	Blurb  string
	Link   string
	Tags   []string
	Span   string
	Kind   string
	Active bool

	// image
	Image string

	// video
	VideoSrc string
	Poster   string
	Loop     bool

	// youtube; EmbedURL is only set while the card is active
	EmbedURL   string
	PreviewURL string
	Thumb      string
	Ratio      string

	// Placeholder replaces a cover whose source cannot be used.
	Placeholder bool
}

// spanFor repeats a 7/5/5/7 column rhythm on wide screens.
func spanFor(i int) string {
	switch i % 4 {
	case 0, 3:
		return "lg:col-span-7"
	default:
		return "lg:col-span-5"
	}
}

func buildGridView(cat *catalog.Catalog, state grid.State, origin, lang, csrf string) GridView {
	view := GridView{Lang: lang, CSRFToken: csrf}
	if cat == nil {
		return view
	}
	state = state.Clamp(len(cat.Projects))
	view.Cards = make([]CardView, 0, len(cat.Projects))
	for i := range cat.Projects {
		p := &cat.Projects[i]
		card := CardView{
			Index:  i,
			ID:     "card-" + p.Slug,
			Slug:   p.Slug,
			Title:  p.Title,
			Blurb:  p.Blurb,
			Link:   p.Link,
			Tags:   p.Tags,
			Span:   spanFor(i),
			Active: state.IsActive(i),
		}
		if item, ok := p.Cover(); ok {
			cover := media.Visit[CardView](item, coverBuilder{origin: origin})
			card.Kind = cover.Kind
			card.Image = cover.Image
			card.VideoSrc, card.Poster, card.Loop = cover.VideoSrc, cover.Poster, cover.Loop
			card.PreviewURL, card.Thumb, card.Ratio, card.Placeholder = cover.PreviewURL, cover.Thumb, cover.Ratio, cover.Placeholder
		}
		if card.Active && card.PreviewURL != "" {
			card.EmbedURL = card.PreviewURL
		}
		view.Cards = append(view.Cards, card)
	}
	return view
}

type coverBuilder struct {
	origin string
}

func (b coverBuilder) Image(m media.Image) CardView {
	if !media.ValidURL(m.Src) {
		return CardView{Kind: media.KindImage.String(), Placeholder: true}
	}
	return CardView{Kind: media.KindImage.String(), Image: m.Src}
}

func (b coverBuilder) Video(m media.Video) CardView {
	if !media.ValidURL(m.Src) {
		return CardView{Kind: media.KindVideo.String(), Placeholder: true}
	}
	// the grid preview only uses the entry's own poster; the lightbox walks the full chain
	return CardView{Kind: media.KindVideo.String(), VideoSrc: m.Src, Poster: m.Poster, Loop: m.Loops()}
}

func (b coverBuilder) YouTube(m media.YouTube) CardView {
	card := CardView{Kind: media.KindYouTube.String(), Ratio: m.AspectRatio().String()}
	thumb, okThumb := youtube.ThumbnailURL(m.Src, youtube.QualityHigh)
	embed, okEmbed := youtube.GridEmbedURL(m.Src, b.origin)
	if !okThumb || !okEmbed {
		card.Placeholder = true
		return card
	}
	card.Thumb = thumb
	card.PreviewURL = embed
	return card
}
