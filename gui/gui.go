package gui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/giwty/quarkpad/db"
	"github.com/giwty/quarkpad/process"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	GUI_MESSAGE_BACK          = "back"
	GUI_MESSAGE_OPEN_SETTINGS = "openSettings"
	GUI_MESSAGE_VERIFY        = "verify"

	// home page, payload is the game index
	GUI_MESSAGE_SELECT_GAME = "selectGame"
	GUI_MESSAGE_LAUNCH_GAME = "launchGame"
	GUI_MESSAGE_EDIT_GAME   = "editGame"
	GUI_MESSAGE_REMOVE_GAME = "removeGame"
	GUI_MESSAGE_ADD_GAME    = "addGame"

	// game form, payload is the field value
	GUI_MESSAGE_SET_NAME        = "setName"
	GUI_MESSAGE_SET_COVER_PATH  = "setCoverPath"
	GUI_MESSAGE_SET_EXE_PATH    = "setExePath"
	GUI_MESSAGE_SET_WINEPREFIX  = "setWinePrefix"
	GUI_MESSAGE_PICK_COVER_PATH = "pickCoverPath"
	GUI_MESSAGE_PICK_EXE_PATH   = "pickExePath"
	GUI_MESSAGE_PICK_WINEPREFIX = "pickWinePrefix"
	GUI_MESSAGE_SAVE_GAME       = "saveGame"

	// settings page
	GUI_MESSAGE_SET_PROTON_PATH  = "setProtonPath"
	GUI_MESSAGE_SET_UMU_PATH     = "setUmuPath"
	GUI_MESSAGE_PICK_PROTON_PATH = "pickProtonPath"
	GUI_MESSAGE_PICK_UMU_PATH    = "pickUmuPath"
	GUI_MESSAGE_DETECT_PROTON    = "detectProton"
	GUI_MESSAGE_SAVE_SETTINGS    = "saveSettings"
)

var (
	ErrPageInactive   = errors.New("message is not for the current page")
	ErrUnknownMessage = errors.New("unknown message")
)

var gameFormMessages = map[string]GameFormMessageKind{
	GUI_MESSAGE_SET_NAME:        GameNameChanged,
	GUI_MESSAGE_SET_COVER_PATH:  GameCoverPathChanged,
	GUI_MESSAGE_SET_EXE_PATH:    GameExePathChanged,
	GUI_MESSAGE_SET_WINEPREFIX:  GameWinePrefixChanged,
	GUI_MESSAGE_PICK_COVER_PATH: GamePickCoverPath,
	GUI_MESSAGE_PICK_EXE_PATH:   GamePickExePath,
	GUI_MESSAGE_PICK_WINEPREFIX: GamePickWinePrefix,
	GUI_MESSAGE_SAVE_GAME:       GameSave,
}

var settingsFormMessages = map[string]SettingsFormMessageKind{
	GUI_MESSAGE_SET_PROTON_PATH:  SettingsProtonPathChanged,
	GUI_MESSAGE_SET_UMU_PATH:     SettingsUmuPathChanged,
	GUI_MESSAGE_PICK_PROTON_PATH: SettingsPickProtonPath,
	GUI_MESSAGE_PICK_UMU_PATH:    SettingsPickUmuPath,
	GUI_MESSAGE_DETECT_PROTON:    SettingsDetectProton,
	GUI_MESSAGE_SAVE_SETTINGS:    SettingsSave,
}

var homeMessages = map[string]HomeMessageKind{
	GUI_MESSAGE_SELECT_GAME: HomeSelectGame,
	GUI_MESSAGE_LAUNCH_GAME: HomeLaunchGame,
	GUI_MESSAGE_EDIT_GAME:   HomeEditGame,
	GUI_MESSAGE_REMOVE_GAME: HomeRemoveGame,
	GUI_MESSAGE_ADD_GAME:    HomeToAddGame,
}

// GUI message
type Message struct {
	Name    string `json:"name"`
	Payload string `json:"payload"`
}

// Everything the controller talks to outside of its own state
type Services struct {
	Store    *db.LibraryStore
	Launcher *process.Launcher
	History  *db.LaunchHistory // optional
	Fs       afero.Fs
	Picker   Picker
	// Folders searched for Proton installs
	ProtonRoots []string
	// Receives verify progress, optional
	Progress process.ProgressUpdater
}

// GUI owns the library and the page states and applies the actions pages return
type GUI struct {
	logger   *zap.SugaredLogger
	state    sync.Mutex
	services Services

	library      db.LibraryData
	page         Page
	home         *HomeState
	gameForm     *GameFormState
	settingsForm *SettingsFormState
	issues       []process.LibraryIssue
	lastLaunch   *process.Handle

	// the last save failed, memory is ahead of the file
	dirty bool
}

// Constructor for GUI
func NewGUI(l *zap.SugaredLogger, library db.LibraryData, services Services) *GUI {
	if services.Picker == nil {
		services.Picker = NoPicker{}
	}
	if services.Fs == nil {
		services.Fs = afero.NewOsFs()
	}
	return &GUI{
		logger:   l,
		services: services,
		library:  library,
		page:     PageHome,
		home:     LoadHome(library.Games),
	}
}

// Clean up
func (g *GUI) Defer() {
	if err := g.Flush(); err != nil {
		g.logger.Errorf("library changes were not saved: %v", err)
	}
}

// Flush retries a save that failed earlier
func (g *GUI) Flush() error {
	g.state.Lock()
	defer g.state.Unlock()

	if !g.dirty {
		return nil
	}
	return g.persist()
}

// Handle communication with the front end. Validation problems stay in the
// page state, persistence and launch failures are returned.
func (g *GUI) HandleMessage(msg Message) error {
	// Lock the mutex and unlock on return
	g.state.Lock()
	defer g.state.Unlock()

	g.logger.Debugf("Received message [%v] on page %v", msg, g.page)

	var err error
	switch {
	case msg.Name == GUI_MESSAGE_BACK:
		g.toHome()

	case msg.Name == GUI_MESSAGE_OPEN_SETTINGS:
		if g.page != PageHome {
			return g.inactive(msg)
		}
		g.settingsForm = LoadSettingsForm(g.services.Fs, g.services.Picker, g.library.Settings, g.services.ProtonRoots)
		g.page = PageSettings

	case msg.Name == GUI_MESSAGE_VERIFY:
		g.issues = process.ScanForIssues(g.services.Fs, g.library, g)

	case isHomeMessage(msg.Name):
		if g.page != PageHome {
			return g.inactive(msg)
		}
		err = g.handleHome(msg)

	case isGameFormMessage(msg.Name):
		if g.page != PageAddGame {
			return g.inactive(msg)
		}
		action := g.gameForm.Update(GameFormMessage{Kind: gameFormMessages[msg.Name], Value: msg.Payload})
		err = g.apply(action)

	case isSettingsFormMessage(msg.Name):
		if g.page != PageSettings {
			return g.inactive(msg)
		}
		action := g.settingsForm.Update(SettingsFormMessage{Kind: settingsFormMessages[msg.Name], Value: msg.Payload})
		err = g.apply(action)

	default:
		err = fmt.Errorf("%w: %s", ErrUnknownMessage, msg.Name)
	}

	if err != nil {
		g.logger.Error(err)
	}
	return err
}

func isHomeMessage(name string) bool {
	_, ok := homeMessages[name]
	return ok
}

func isGameFormMessage(name string) bool {
	_, ok := gameFormMessages[name]
	return ok
}

func isSettingsFormMessage(name string) bool {
	_, ok := settingsFormMessages[name]
	return ok
}

func (g *GUI) inactive(msg Message) error {
	return fmt.Errorf("%w: %s on %v", ErrPageInactive, msg.Name, g.page)
}

func (g *GUI) handleHome(msg Message) error {
	homeMsg := HomeMessage{Kind: homeMessages[msg.Name]}
	if homeMsg.Kind != HomeToAddGame {
		index, err := strconv.Atoi(strings.TrimSpace(msg.Payload))
		if err != nil {
			return fmt.Errorf("invalid game index %q: %w", msg.Payload, err)
		}
		homeMsg.Index = index
	}
	return g.apply(g.home.Update(homeMsg))
}

// apply carries out what a page asked for
func (g *GUI) apply(action Action) error {
	switch action.Kind {
	case ActionNone:
		return nil

	case ActionToAddGame:
		g.gameForm = NewGameForm(g.services.Fs, g.services.Picker)
		g.page = PageAddGame
		return nil

	case ActionEditGame:
		game, err := g.library.Game(action.Index)
		if err != nil {
			return err
		}
		g.gameForm = LoadGameForm(g.services.Fs, g.services.Picker, game, action.Index)
		g.page = PageAddGame
		return nil

	case ActionLaunchGame:
		return g.launch(action.Index)

	case ActionRemoveGame:
		removed, err := g.library.RemoveGame(action.Index)
		if err != nil {
			return err
		}
		g.logger.Infof("removed %s from the library", removed.Name)
		g.home.SetGames(g.library.Games)
		return g.persist()

	case ActionNew:
		index := g.library.AddGame(action.Game)
		g.logger.Infof("added %s at #%d", action.Game.Name, index)
		err := g.persist()
		g.toHome()
		return err

	case ActionEdit:
		if err := g.library.ReplaceGame(action.Index, action.Game); err != nil {
			return err
		}
		err := g.persist()
		g.toHome()
		return err

	case ActionSave:
		g.library.Settings = action.Settings
		err := g.persist()
		g.toHome()
		return err
	}

	return fmt.Errorf("unhandled action %v", action.Kind)
}

func (g *GUI) toHome() {
	g.gameForm = nil
	g.settingsForm = nil
	g.home.SetGames(g.library.Games)
	g.page = PageHome
}

// persist writes the whole library. A failed write keeps the in-memory
// change and leaves the controller dirty until a later write succeeds.
func (g *GUI) persist() error {
	if err := g.services.Store.Save(g.library); err != nil {
		g.dirty = true
		return fmt.Errorf("failed to save library: %w", err)
	}
	g.dirty = false
	return nil
}

func (g *GUI) launch(index int) error {
	game, err := g.library.Game(index)
	if err != nil {
		return err
	}

	handle, err := g.services.Launcher.Launch(game, g.library.Settings)
	if err != nil {
		return fmt.Errorf("failed to launch %s: %w", game.Name, err)
	}
	g.lastLaunch = handle

	if g.services.History != nil {
		if _, err := g.services.History.RecordLaunch(game); err != nil {
			g.logger.Warnf("failed to record launch of %s: %v", game.Name, err)
		}
	}
	return nil
}

// Update progress on operations
// Implements process.ProgressUpdater interface
func (g *GUI) UpdateProgress(curr int, total int, message string) {
	g.logger.Debugf("%v (%v/%v)", message, curr, total)
	if g.services.Progress != nil {
		g.services.Progress.UpdateProgress(curr, total, message)
	}
}

func (g *GUI) Page() Page {
	g.state.Lock()
	defer g.state.Unlock()
	return g.page
}

// Library returns a copy of the in-memory library
func (g *GUI) Library() db.LibraryData {
	g.state.Lock()
	defer g.state.Unlock()
	return g.library.Clone()
}

func (g *GUI) Dirty() bool {
	g.state.Lock()
	defer g.state.Unlock()
	return g.dirty
}

// Issues found by the last verify message
func (g *GUI) IssuesView() []Issue {
	g.state.Lock()
	defer g.state.Unlock()
	return issuesView(g.issues)
}

func (g *GUI) LastLaunch() *process.Handle {
	g.state.Lock()
	defer g.state.Unlock()
	return g.lastLaunch
}

// HomeView adds launch history to the library page
func (g *GUI) HomeView() HomeView {
	g.state.Lock()
	defer g.state.Unlock()

	view := g.home.View()
	if g.services.History == nil {
		return view
	}
	for i := range view.Games {
		record, found, err := g.services.History.Get(g.library.Games[i])
		if err != nil {
			g.logger.Debugf("no history for %s: %v", view.Games[i].Name, err)
			continue
		}
		if found {
			view.Games[i].LaunchCount = record.Count
			view.Games[i].LastLaunched = record.LastLaunched
		}
	}
	return view
}

// FormView describes the open form, false on the home page
func (g *GUI) FormView() (FormView, bool) {
	g.state.Lock()
	defer g.state.Unlock()

	switch g.page {
	case PageAddGame:
		return g.gameForm.View(), true
	case PageSettings:
		return g.settingsForm.View(), true
	}
	return FormView{}, false
}
