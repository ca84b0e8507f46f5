package gui

import "github.com/giwty/quarkpad/db"

// Page is the view currently shown. Exactly one page is active at a time.
type Page int

const (
	// PageHome lists the library
	PageHome Page = iota
	// PageAddGame is the add or edit form for a single game
	PageAddGame
	// PageSettings edits the runtime paths
	PageSettings
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "Home"
	case PageAddGame:
		return "AddGame"
	case PageSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionLaunchGame
	ActionEditGame
	ActionRemoveGame
	ActionToAddGame
	ActionNew
	ActionEdit
	ActionSave
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "None"
	case ActionLaunchGame:
		return "LaunchGame"
	case ActionEditGame:
		return "EditGame"
	case ActionRemoveGame:
		return "RemoveGame"
	case ActionToAddGame:
		return "ToAddGame"
	case ActionNew:
		return "New"
	case ActionEdit:
		return "Edit"
	case ActionSave:
		return "Save"
	default:
		return "Unknown"
	}
}

// Action is what a page asks the controller to do after an update.
// Index is set for the game actions, Game for New and Edit, Settings for Save.
type Action struct {
	Kind     ActionKind
	Index    int
	Game     db.Game
	Settings db.Settings
}

var noAction = Action{Kind: ActionNone}
