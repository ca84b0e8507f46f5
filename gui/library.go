package gui

import (
	"time"

	"github.com/giwty/quarkpad/process"
)

// Library page
type HomeView struct {
	Games    []GameCard `json:"games"`
	Selected int        `json:"selected"` // -1 when no overlay is open
}

// Library entry
type GameCard struct {
	Id           int       `json:"id"`
	Name         string    `json:"name"`
	Cover        string    `json:"cover"`
	Path         string    `json:"path"`
	WinePrefix   string    `json:"wineprefix"`
	Selected     bool      `json:"selected"`
	LaunchCount  int       `json:"launch_count"`
	LastLaunched time.Time `json:"last_launched"`
}

// Form input with its error, the error is only filled once the user tried to save
type FieldView struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
	Error string `json:"error"`
	IsDir bool   `json:"is_dir"`
}

type FormView struct {
	Title  string      `json:"title"`
	Fields []FieldView `json:"fields"`
}

// Key-value pair for an issue, Path is the offending value
type Issue struct {
	Id    int    `json:"id"` // -1 for the settings record
	Key   string `json:"key"`
	Path  string `json:"path"`
	Value string `json:"value"`
}

func issuesView(issues []process.LibraryIssue) []Issue {
	result := make([]Issue, 0, len(issues))
	for _, i := range issues {
		result = append(result, Issue{Id: i.Index, Key: i.Name + "." + i.Field, Path: i.Value, Value: i.Reason})
	}
	return result
}

func (h *HomeState) View() HomeView {
	view := HomeView{Games: make([]GameCard, 0, len(h.games)), Selected: -1}
	selected, hasSelection := h.Selected()
	if hasSelection {
		view.Selected = selected
	}
	for i, game := range h.games {
		view.Games = append(view.Games, GameCard{
			Id:         i,
			Name:       game.Name,
			Cover:      game.CoverPath,
			Path:       game.ExePath,
			WinePrefix: game.WinePrefix,
			Selected:   hasSelection && selected == i,
		})
	}
	return view
}

func shownError(show bool, err string) string {
	if !show {
		return ""
	}
	return err
}

func (f *GameFormState) View() FormView {
	title := "Add Game"
	if _, ok := f.EditIndex(); ok {
		title = "Edit Game"
	}
	return FormView{
		Title: title,
		Fields: []FieldView{
			{Key: "name", Label: "Name", Value: f.fields.Name, Error: shownError(f.showErrors, f.errors.Name)},
			{Key: "cover_path", Label: "Cover", Value: f.fields.CoverPath, Error: shownError(f.showErrors, f.errors.CoverPath)},
			{Key: "exe_path", Label: "Executable", Value: f.fields.ExePath, Error: shownError(f.showErrors, f.errors.ExePath)},
			{Key: "wineprefix", Label: "Wineprefix", Value: f.fields.WinePrefix, Error: shownError(f.showErrors, f.errors.WinePrefix), IsDir: true},
		},
	}
}

func (f *SettingsFormState) View() FormView {
	return FormView{
		Title: "Settings",
		Fields: []FieldView{
			{Key: "proton_path", Label: "Proton", Value: f.fields.ProtonPath, Error: shownError(f.showErrors, f.errors.ProtonPath), IsDir: true},
			{Key: "umu_path", Label: "umu", Value: f.fields.UmuPath, Error: shownError(f.showErrors, f.errors.UmuPath), IsDir: true},
		},
	}
}
