// Package lightbox implements the modal gallery state machine.
//
// A Session is either closed or open on one project at one media index.
// Transitions return an Effect describing the focus and scroll changes the
// page must apply; the session itself never touches the page.
package lightbox

import (
	"errors"
	"fmt"

	"github.com/wynterCG/website/internal/media"
)

// CloseControlID is the element that receives focus when the gallery opens.
const CloseControlID = "lightbox-close"

var (
	// ErrClosed is returned by navigation on a closed session.
	ErrClosed = errors.New("lightbox: closed")
	// ErrIndexOutOfRange is returned for indexes outside the media list.
	ErrIndexOutOfRange = errors.New("lightbox: index out of range")
)

// Effect lists the page side effects of a transition.
type Effect struct {
	LockScroll   bool   `json:"lockScroll,omitempty"`
	UnlockScroll bool   `json:"unlockScroll,omitempty"`
	Focus        string `json:"focus,omitempty"`
}

// Session is the lightbox state. The zero value is closed.
type Session struct {
	open        bool
	project     *media.Project
	index       int
	returnFocus string
}

// Open shows project starting at start. returnFocus is the id of the element
// focused before opening; it regains focus on Close. The index always resets
// to start, whatever a previous session left behind.
func (s *Session) Open(project *media.Project, start int, returnFocus string) (Effect, error) {
	if project == nil || len(project.Media) == 0 {
		return Effect{}, media.ErrNoMedia
	}
	if start < 0 || start >= len(project.Media) {
		return Effect{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, start, len(project.Media))
	}
	s.open = true
	s.project = project
	s.index = start
	s.returnFocus = returnFocus
	return Effect{LockScroll: true, Focus: CloseControlID}, nil
}

// Close hides the gallery from any state and hands focus back.
func (s *Session) Close() Effect {
	eff := Effect{UnlockScroll: true, Focus: s.returnFocus}
	*s = Session{}
	return eff
}

// Next advances one item, wrapping past the end.
func (s *Session) Next() error {
	if !s.IsOpen() {
		return ErrClosed
	}
	s.index = (s.index + 1) % len(s.project.Media)
	return nil
}

// Prev steps back one item, wrapping before the start.
func (s *Session) Prev() error {
	if !s.IsOpen() {
		return ErrClosed
	}
	n := len(s.project.Media)
	s.index = (s.index - 1 + n) % n
	return nil
}

// Select jumps to item n, e.g. from a thumbnail click.
func (s *Session) Select(n int) error {
	if !s.IsOpen() {
		return ErrClosed
	}
	if n < 0 || n >= len(s.project.Media) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, n, len(s.project.Media))
	}
	s.index = n
	return nil
}

// IsOpen reports whether the gallery is shown.
func (s *Session) IsOpen() bool {
	return s != nil && s.open && s.project != nil && len(s.project.Media) > 0
}

// Index returns the current media index.
func (s *Session) Index() int { return s.index }

// Project returns the project on display, or nil when closed.
func (s *Session) Project() *media.Project {
	if !s.IsOpen() {
		return nil
	}
	return s.project
}

// Current returns the media item on display.
func (s *Session) Current() (media.Item, bool) {
	if !s.IsOpen() {
		return nil, false
	}
	return s.project.Media[s.index], true
}

// HasNavigation reports whether arrows and the thumbnail strip are shown.
func (s *Session) HasNavigation() bool {
	return s.IsOpen() && len(s.project.Media) > 1
}

// Snapshot is the serialisable form of a session, keyed by project slug.
type Snapshot struct {
	Open        bool   `json:"o,omitempty"`
	Slug        string `json:"p,omitempty"`
	Index       int    `json:"i,omitempty"`
	ReturnFocus string `json:"f,omitempty"`
}

// Snapshot captures the session for storage.
func (s *Session) Snapshot() Snapshot {
	if !s.IsOpen() {
		return Snapshot{}
	}
	return Snapshot{Open: true, Slug: s.project.Slug, Index: s.index, ReturnFocus: s.returnFocus}
}

// Restore rebuilds a session. Unknown projects or indexes that no longer fit
// the media list restore as closed.
func Restore(snap Snapshot, lookup func(slug string) (*media.Project, bool)) *Session {
	s := &Session{}
	if !snap.Open || lookup == nil {
		return s
	}
	p, ok := lookup(snap.Slug)
	if !ok || p == nil || snap.Index < 0 || snap.Index >= len(p.Media) {
		return s
	}
	s.open = true
	s.project = p
	s.index = snap.Index
	s.returnFocus = snap.ReturnFocus
	return s
}
