package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeGames() LibraryData {
	data := DefaultLibraryData()
	data.AddGame(Game{Name: "Portal", ExePath: "/games/portal/portal.exe"})
	data.AddGame(Game{Name: "Half-Life", ExePath: "/games/hl/hl.exe"})
	data.AddGame(Game{Name: "Ricochet", ExePath: "/games/ricochet/ricochet.exe"})
	return data
}

func TestAddGameAppends(t *testing.T) {
	data := DefaultLibraryData()

	assert.Equal(t, 0, data.AddGame(Game{Name: "Portal"}))
	assert.Equal(t, 1, data.AddGame(Game{Name: "Portal"}), "duplicate names are allowed")
	assert.Equal(t, 2, data.Len())
}

func TestRemoveGameShiftsLaterEntries(t *testing.T) {
	data := threeGames()

	removed, err := data.RemoveGame(1)

	require.NoError(t, err)
	assert.Equal(t, "Half-Life", removed.Name)
	require.Equal(t, 2, data.Len())
	assert.Equal(t, "Portal", data.Games[0].Name)
	assert.Equal(t, "Ricochet", data.Games[1].Name)
}

func TestIndexChecks(t *testing.T) {
	data := threeGames()

	_, err := data.Game(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = data.RemoveGame(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	err = data.ReplaceGame(5, Game{})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, 3, data.Len())
}

func TestReplaceGameInPlace(t *testing.T) {
	data := threeGames()

	require.NoError(t, data.ReplaceGame(2, Game{Name: "Ricochet HD"}))

	game, err := data.Game(2)
	require.NoError(t, err)
	assert.Equal(t, "Ricochet HD", game.Name)
	assert.Equal(t, 3, data.Len())
}

func TestCloneIsIndependent(t *testing.T) {
	data := threeGames()
	data.Settings.ProtonPath = "/rt/proton"

	clone := data.Clone()
	clone.Games[0].Name = "changed"
	_, err := clone.RemoveGame(1)
	require.NoError(t, err)

	assert.Equal(t, "Portal", data.Games[0].Name)
	assert.Equal(t, 3, data.Len())
	assert.Equal(t, "/rt/proton", clone.Settings.ProtonPath)
}
