// Package grid holds the hover/autoplay state of the project grid.
//
// Exactly one card auto-plays at a time: the hovered card if any, otherwise
// card 0 until the visitor first hovers or touches a card, otherwise none.
// The active card is always derived from State, never stored.
package grid

// State is the grid interaction state owned by the page controller. The zero
// value is the initial state: nothing hovered, no interaction yet.
type State struct {
	Hovering   bool `json:"hv,omitempty"`
	Hovered    int  `json:"h,omitempty"`
	Interacted bool `json:"i,omitempty"`
}

// New returns the initial state.
func New() State { return State{} }

// Enter records a pointer-enter or touch-start on card i.
func (s State) Enter(i int) State {
	if i < 0 {
		return s
	}
	s.Hovering = true
	s.Hovered = i
	s.Interacted = true
	return s
}

// Leave records the pointer leaving the hovered card.
func (s State) Leave() State {
	s.Hovering = false
	s.Hovered = 0
	return s
}

// Active returns the auto-playing card, if any. The free autoplay on card 0
// is never granted again once the visitor has interacted.
func (s State) Active() (int, bool) {
	if s.Hovering {
		return s.Hovered, true
	}
	if !s.Interacted {
		return 0, true
	}
	return 0, false
}

// IsActive reports whether card i is auto-playing.
func (s State) IsActive(i int) bool {
	a, ok := s.Active()
	return ok && a == i
}

// Clamp drops a hovered index that no longer points at a card, e.g. after the
// catalog was reloaded with fewer projects.
func (s State) Clamp(cards int) State {
	if s.Hovering && (s.Hovered < 0 || s.Hovered >= cards) {
		return s.Leave()
	}
	return s
}
