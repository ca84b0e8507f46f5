package gui

import (
	"github.com/giwty/quarkpad/db"
	"github.com/giwty/quarkpad/process"
	"github.com/spf13/afero"
)

type GameFormMessageKind int

const (
	GameNameChanged GameFormMessageKind = iota
	GameCoverPathChanged
	GameExePathChanged
	GameWinePrefixChanged
	GamePickCoverPath
	GamePickExePath
	GamePickWinePrefix
	GameSave
)

type GameFormMessage struct {
	Kind  GameFormMessageKind
	Value string
}

// Last validation result per field, empty when the field passed
type GameFormErrors struct {
	Name       string
	CoverPath  string
	ExePath    string
	WinePrefix string
}

func (e GameFormErrors) Any() bool {
	return e.Name != "" || e.CoverPath != "" || e.ExePath != "" || e.WinePrefix != ""
}

// GameFormState backs the add/edit page. A nil editIndex means a new entry.
type GameFormState struct {
	fs     afero.Fs
	picker Picker

	editIndex  *int
	fields     db.Game
	errors     GameFormErrors
	showErrors bool
}

func NewGameForm(fs afero.Fs, picker Picker) *GameFormState {
	if picker == nil {
		picker = NoPicker{}
	}
	return &GameFormState{fs: fs, picker: picker}
}

// LoadGameForm starts an edit session for the entry at index
func LoadGameForm(fs afero.Fs, picker Picker, game db.Game, index int) *GameFormState {
	f := NewGameForm(fs, picker)
	f.fields = game
	f.editIndex = &index
	return f
}

func (f *GameFormState) EditIndex() (int, bool) {
	if f.editIndex == nil {
		return 0, false
	}
	return *f.editIndex, true
}

// Game is the entry built from the current field values
func (f *GameFormState) Game() db.Game {
	return f.fields
}

func (f *GameFormState) Errors() GameFormErrors {
	return f.errors
}

func (f *GameFormState) ShowErrors() bool {
	return f.showErrors
}

func (f *GameFormState) Update(msg GameFormMessage) Action {
	switch msg.Kind {
	case GameNameChanged:
		f.fields.Name = msg.Value
	case GameCoverPathChanged:
		f.fields.CoverPath = msg.Value
	case GameExePathChanged:
		f.fields.ExePath = msg.Value
	case GameWinePrefixChanged:
		f.fields.WinePrefix = msg.Value
	case GamePickCoverPath:
		if path, ok := f.picker.PickFile(); ok {
			f.fields.CoverPath = path
		}
	case GamePickExePath:
		if path, ok := f.picker.PickFile(); ok {
			f.fields.ExePath = path
		}
	case GamePickWinePrefix:
		if path, ok := f.picker.PickFolder(); ok {
			f.fields.WinePrefix = path
		}
	case GameSave:
		return f.save()
	}
	return noAction
}

func (f *GameFormState) validate() bool {
	f.errors = GameFormErrors{
		Name:       process.ValidateGameName(f.fields.Name),
		CoverPath:  process.ValidateFilePath(f.fs, f.fields.CoverPath),
		ExePath:    process.ValidateFilePath(f.fs, f.fields.ExePath),
		WinePrefix: process.ValidateDirPath(f.fs, f.fields.WinePrefix),
	}
	return !f.errors.Any()
}

func (f *GameFormState) save() Action {
	f.showErrors = true
	if !f.validate() {
		return noAction
	}
	if f.editIndex == nil {
		return Action{Kind: ActionNew, Game: f.fields}
	}
	return Action{Kind: ActionEdit, Index: *f.editIndex, Game: f.fields}
}
