package gui

import "github.com/giwty/quarkpad/db"

type HomeMessageKind int

const (
	HomeSelectGame HomeMessageKind = iota
	HomeLaunchGame
	HomeEditGame
	HomeRemoveGame
	HomeToAddGame
)

type HomeMessage struct {
	Kind  HomeMessageKind
	Index int
}

// HomeState is the library page. It holds a copy of the game list and the
// entry whose detail overlay is open, if any.
type HomeState struct {
	games    []db.Game
	selected *int
}

func LoadHome(games []db.Game) *HomeState {
	h := &HomeState{}
	h.SetGames(games)
	return h
}

// SetGames refreshes the list after the controller changed the library
func (h *HomeState) SetGames(games []db.Game) {
	h.games = append([]db.Game{}, games...)
	if h.selected != nil && *h.selected >= len(h.games) {
		h.selected = nil
	}
}

func (h *HomeState) Selected() (int, bool) {
	if h.selected == nil {
		return 0, false
	}
	return *h.selected, true
}

func (h *HomeState) inRange(i int) bool {
	return i >= 0 && i < len(h.games)
}

// Update never touches the library, it only reports what the controller
// should do. Indices outside the list are ignored.
func (h *HomeState) Update(msg HomeMessage) Action {
	switch msg.Kind {
	case HomeToAddGame:
		return Action{Kind: ActionToAddGame}
	}

	if !h.inRange(msg.Index) {
		return noAction
	}

	switch msg.Kind {
	case HomeSelectGame:
		if h.selected != nil && *h.selected == msg.Index {
			h.selected = nil
		} else {
			i := msg.Index
			h.selected = &i
		}
		return noAction
	case HomeLaunchGame:
		return Action{Kind: ActionLaunchGame, Index: msg.Index}
	case HomeEditGame:
		return Action{Kind: ActionEditGame, Index: msg.Index}
	case HomeRemoveGame:
		h.resolveRemoval(msg.Index)
		return Action{Kind: ActionRemoveGame, Index: msg.Index}
	}
	return noAction
}

// keep the overlay on the same entry once the list shifts down
func (h *HomeState) resolveRemoval(removed int) {
	if h.selected == nil {
		return
	}
	switch {
	case *h.selected == removed:
		h.selected = nil
	case *h.selected > removed:
		i := *h.selected - 1
		h.selected = &i
	}
}
