package db

import (
	"errors"
	"fmt"
	"slices"
)

var ErrIndexOutOfRange = errors.New("game index out of range")

// One library entry. Paths are kept as the raw strings the user entered.
type Game struct {
	Name       string `toml:"name"`
	CoverPath  string `toml:"cover_path"`
	ExePath    string `toml:"exe_path"`
	WinePrefix string `toml:"wineprefix"`
}

// The single, process wide settings record
type Settings struct {
	ProtonPath string `toml:"proton_path"`
	UmuPath    string `toml:"umu_path"`
}

// LibraryData is the persisted aggregate. Game order is display order and
// index addressing order, duplicate names are allowed.
type LibraryData struct {
	Games    []Game   `toml:"games"`
	Settings Settings `toml:"settings"`
}

func DefaultLibraryData() LibraryData {
	return LibraryData{Games: []Game{}}
}

func (l LibraryData) Len() int {
	return len(l.Games)
}

func (l *LibraryData) checkIndex(i int) error {
	if i < 0 || i >= len(l.Games) {
		return fmt.Errorf("%w: %d (library has %d games)", ErrIndexOutOfRange, i, len(l.Games))
	}
	return nil
}

func (l *LibraryData) Game(i int) (Game, error) {
	if err := l.checkIndex(i); err != nil {
		return Game{}, err
	}
	return l.Games[i], nil
}

// AddGame appends and returns the index of the new entry
func (l *LibraryData) AddGame(game Game) int {
	l.Games = append(l.Games, game)
	return len(l.Games) - 1
}

func (l *LibraryData) ReplaceGame(i int, game Game) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	l.Games[i] = game
	return nil
}

// RemoveGame deletes entry i, later entries shift down by one
func (l *LibraryData) RemoveGame(i int) (Game, error) {
	if err := l.checkIndex(i); err != nil {
		return Game{}, err
	}
	removed := l.Games[i]
	l.Games = slices.Delete(l.Games, i, i+1)
	return removed, nil
}

func (l LibraryData) Clone() LibraryData {
	games := make([]Game, len(l.Games))
	copy(games, l.Games)
	return LibraryData{Games: games, Settings: l.Settings}
}
