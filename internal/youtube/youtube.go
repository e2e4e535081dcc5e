// Package youtube resolves YouTube video ids from the many URL shapes YouTube
// has used and derives thumbnail and embed URLs from them.
//
// Every function reports ok=false instead of failing when no id can be
// resolved; callers render a placeholder in that case.
package youtube

import (
	"net/url"
	"strings"
)

// Quality selects the thumbnail resolution.
type Quality int

const (
	QualityHigh Quality = iota
	QualityMaxRes
)

const (
	thumbBase = "https://i.ytimg.com/vi/"
	embedBase = "https://www.youtube.com/embed/"
)

// ExtractID returns the video id for raw. Resolution order: youtu.be path,
// the "v" query parameter, the segment after "embed" or "shorts", and finally
// the last path segment.
func ExtractID(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	parts := segments(u.Path)

	if strings.EqualFold(u.Hostname(), "youtu.be") {
		if len(parts) == 0 {
			return "", false
		}
		return checkID(parts[0])
	}
	if v := u.Query().Get("v"); v != "" {
		return checkID(v)
	}
	for i, p := range parts {
		if p == "embed" || p == "shorts" {
			if i+1 < len(parts) {
				return checkID(parts[i+1])
			}
			return "", false
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return checkID(parts[len(parts)-1])
}

// ThumbnailURL returns the i.ytimg.com still for the video.
func ThumbnailURL(raw string, q Quality) (string, bool) {
	id, ok := ExtractID(raw)
	if !ok {
		return "", false
	}
	name := "hqdefault.jpg"
	if q == QualityMaxRes {
		name = "maxresdefault.jpg"
	}
	return thumbBase + id + "/" + name, true
}

// GridEmbedURL is the silent looping preview used while a grid card is active:
// autoplay, muted, looped through the single-item playlist trick, no controls.
func GridEmbedURL(raw, origin string) (string, bool) {
	id, ok := ExtractID(raw)
	if !ok {
		return "", false
	}
	return embedBase + id + "?autoplay=1&mute=1&loop=1&playlist=" + id + "&controls=0&rel=0" + originParam(origin), true
}

// ModalEmbedURL is the lightbox player: autoplay muted with controls visible.
func ModalEmbedURL(raw, origin string) (string, bool) {
	id, ok := ExtractID(raw)
	if !ok {
		return "", false
	}
	return embedBase + id + "?autoplay=1&mute=1&controls=1&rel=0" + originParam(origin), true
}

// origin lets the player API accept scripted control from the page.
func originParam(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ""
	}
	return "&origin=" + url.QueryEscape(origin)
}

func segments(p string) []string {
	raw := strings.Split(p, "/")
	out := raw[:0]
	for _, s := range raw {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func checkID(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return "", false
		}
	}
	return id, true
}
