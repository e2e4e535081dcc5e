package grid

import "github.com/wynterCG/website/internal/media"

// Action is a playback command for a card's cover media.
type Action string

const (
	// ActionPlay and ActionPause drive native video elements.
	ActionPlay  Action = "play"
	ActionPause Action = "pause"
	// ActionMount and ActionUnmount add or remove a YouTube preview iframe;
	// the embed cannot be paused and resumed reliably, so it is reloaded instead.
	ActionMount   Action = "mount"
	ActionUnmount Action = "unmount"
)

// Command targets the cover media of one card.
type Command struct {
	Card   int    `json:"card"`
	Action Action `json:"action"`
}

// Commands derives the playback command for every card from the active card.
// It is applied uniformly after every state change so no element keeps a
// stale play state. covers lists the kind of each card's cover media.
func Commands(s State, covers []media.Kind) []Command {
	out := make([]Command, 0, len(covers))
	for i, k := range covers {
		active := s.IsActive(i)
		switch k {
		case media.KindVideo:
			if active {
				out = append(out, Command{Card: i, Action: ActionPlay})
			} else {
				out = append(out, Command{Card: i, Action: ActionPause})
			}
		case media.KindYouTube:
			if active {
				out = append(out, Command{Card: i, Action: ActionMount})
			} else {
				out = append(out, Command{Card: i, Action: ActionUnmount})
			}
		case media.KindImage:
			// stills have nothing to drive
		}
	}
	return out
}
