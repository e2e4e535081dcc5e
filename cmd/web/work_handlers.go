package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/wynterCG/website/internal/grid"
	mw "github.com/wynterCG/website/internal/middleware"
)

// gridEvent is the HX-Trigger payload the page script applies to every card.
type gridEvent struct {
	Active   int            `json:"active"`
	Commands []grid.Command `json:"commands"`
}

// WorkGridFrag renders the project grid for the visitor's current state.
func WorkGridFrag(w http.ResponseWriter, r *http.Request) {
	s := mw.GetSession(r)
	view := buildGridView(catalogStore.Current(), s.Grid, originFor(r), mw.Lang(r), s.CSRFToken)
	renderTemplate(w, r, "frag_work_grid", view)
}

// WorkHoverHandler records pointer-enter and touch-start on a card.
func WorkHoverHandler(w http.ResponseWriter, r *http.Request) {
	cat := catalogStore.Current()
	card, err := strconv.Atoi(strings.TrimSpace(r.FormValue("card")))
	if err != nil || card < 0 || card >= len(cat.Projects) {
		renderError(w, r, http.StatusBadRequest, "invalid card", err)
		return
	}
	s := mw.GetSession(r)
	next := s.Grid.Enter(card)
	if next != s.Grid {
		s.Grid = next
		s.MarkDirty()
	}
	respondGrid(w, r, s.Grid)
}

// WorkLeaveHandler records the pointer leaving the hovered card.
func WorkLeaveHandler(w http.ResponseWriter, r *http.Request) {
	s := mw.GetSession(r)
	next := s.Grid.Leave()
	if next != s.Grid {
		s.Grid = next
		s.MarkDirty()
	}
	respondGrid(w, r, s.Grid)
}

// respondGrid answers with the playback commands only. Swapping the grid
// under the pointer would re-fire mouseenter.
func respondGrid(w http.ResponseWriter, r *http.Request, state grid.State) {
	if !wantsFragment(r) {
		redirectHome(w, r, "work")
		return
	}
	cat := catalogStore.Current()
	state = state.Clamp(len(cat.Projects))
	ev := gridEvent{Active: -1, Commands: grid.Commands(state, cat.Covers())}
	if i, ok := state.Active(); ok && i < len(cat.Projects) {
		ev.Active = i
	}
	if err := mw.Trigger(w, map[string]any{"grid:commands": ev}); err != nil {
		renderError(w, r, http.StatusInternalServerError, "encode commands", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
