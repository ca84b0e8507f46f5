package db

import (
	"strings"
	"testing"

	"github.com/giwty/quarkpad/settings"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"
)

const testFolder = "/home/user/.local/share/quarkpad"

func newTestStore(t *testing.T) (*LibraryStore, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	return NewLibraryStore(fsys, testFolder, zap.NewNop().Sugar()), fsys
}

func TestLoadMissingFile(t *testing.T) {
	store, fsys := newTestStore(t)

	data, err := store.Load()

	require.NoError(t, err)
	assert.Empty(t, data.Games)
	assert.NotNil(t, data.Games)
	assert.Equal(t, Settings{}, data.Settings)

	exists, err := afero.DirExists(fsys, testFolder)
	require.NoError(t, err)
	assert.True(t, exists, "data folder is created on load")
}

func TestLoadEmptyFile(t *testing.T) {
	store, fsys := newTestStore(t)
	require.NoError(t, afero.WriteFile(fsys, store.Path(), []byte("  \n\n"), 0o600))

	data, err := store.Load()

	require.NoError(t, err)
	assert.Empty(t, data.Games)
}

func TestLoadPartialFile(t *testing.T) {
	store, fsys := newTestStore(t)

	t.Run("settings only", func(t *testing.T) {
		doc := "[settings]\nproton_path = \"/rt/proton\"\n"
		require.NoError(t, afero.WriteFile(fsys, store.Path(), []byte(doc), 0o600))

		data, err := store.Load()

		require.NoError(t, err)
		assert.NotNil(t, data.Games)
		assert.Empty(t, data.Games)
		assert.Equal(t, "/rt/proton", data.Settings.ProtonPath)
		assert.Equal(t, "", data.Settings.UmuPath)
	})

	t.Run("games only", func(t *testing.T) {
		doc := "[[games]]\nname = \"Portal\"\nexe_path = \"C:\\\\Games\\\\portal.exe\"\n"
		require.NoError(t, afero.WriteFile(fsys, store.Path(), []byte(doc), 0o600))

		data, err := store.Load()

		require.NoError(t, err)
		require.Len(t, data.Games, 1)
		assert.Equal(t, `C:\Games\portal.exe`, data.Games[0].ExePath)
		assert.Equal(t, Settings{}, data.Settings)
	})
}

func TestLoadCorruptFile(t *testing.T) {
	store, fsys := newTestStore(t)
	require.NoError(t, afero.WriteFile(fsys, store.Path(), []byte("[[games]\nname = "), 0o600))

	_, err := store.Load()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptLibrary)
}

func TestSaveWritesTOML(t *testing.T) {
	store, fsys := newTestStore(t)
	data := DefaultLibraryData()
	data.AddGame(Game{
		Name:       "Portal",
		CoverPath:  "/covers/portal.png",
		ExePath:    "/games/portal/portal.exe",
		WinePrefix: "/prefixes/portal",
	})
	data.Settings = Settings{ProtonPath: "/rt/proton", UmuPath: "/rt/umu"}

	require.NoError(t, store.Save(data))

	buf, err := afero.ReadFile(fsys, store.Path())
	require.NoError(t, err)
	doc := string(buf)
	assert.Contains(t, doc, "[[games]]")
	assert.Regexp(t, `wineprefix = ['"]/prefixes/portal['"]`, doc)
	assert.Contains(t, doc, "[settings]")
	assert.Regexp(t, `umu_path = ['"]/rt/umu['"]`, doc)

	entries, err := afero.ReadDir(fsys, testFolder)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasSuffix(entry.Name(), ".tmp"), "temp file %s left behind", entry.Name())
	}
	assert.Equal(t, settings.LIBRARY_FILENAME, entries[0].Name())
}

func TestSaveReadOnlyFs(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())
	store := NewLibraryStore(fsys, testFolder, zap.NewNop().Sugar())

	err := store.Save(DefaultLibraryData())

	assert.Error(t, err)
}

func TestSaveRejectsInvalidUTF8(t *testing.T) {
	store, fsys := newTestStore(t)
	good := DefaultLibraryData()
	good.AddGame(Game{Name: "Portal", ExePath: "/games/portal/portal.exe"})
	require.NoError(t, store.Save(good))
	before, err := afero.ReadFile(fsys, store.Path())
	require.NoError(t, err)

	bad := good.Clone()
	bad.AddGame(Game{Name: "Cafe", ExePath: "/games/caf\xe9/x.exe"})
	err = store.Save(bad)
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	badSettings := good.Clone()
	badSettings.Settings.UmuPath = "/rt/\xff"
	assert.ErrorIs(t, store.Save(badSettings), ErrInvalidEncoding)

	after, err := afero.ReadFile(fsys, store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, good, loaded)

	tmps, err := afero.Glob(fsys, testFolder+"/*.tmp")
	require.NoError(t, err)
	assert.Empty(t, tmps)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	pathGen := rapid.StringMatching(`[a-zA-Z0-9 _\-./\\:'"]{0,40}`)
	gameGen := rapid.Custom(func(t *rapid.T) Game {
		return Game{
			Name:       pathGen.Draw(t, "name"),
			CoverPath:  pathGen.Draw(t, "cover"),
			ExePath:    pathGen.Draw(t, "exe"),
			WinePrefix: pathGen.Draw(t, "prefix"),
		}
	})

	rapid.Check(t, func(rt *rapid.T) {
		store := NewLibraryStore(afero.NewMemMapFs(), testFolder, zap.NewNop().Sugar())
		data := LibraryData{
			Games: rapid.SliceOf(gameGen).Draw(rt, "games"),
			Settings: Settings{
				ProtonPath: pathGen.Draw(rt, "proton"),
				UmuPath:    pathGen.Draw(rt, "umu"),
			},
		}
		if data.Games == nil {
			data.Games = []Game{}
		}

		if err := store.Save(data); err != nil {
			rt.Fatalf("save: %v", err)
		}
		loaded, err := store.Load()
		if err != nil {
			rt.Fatalf("load: %v", err)
		}

		assert.Equal(rt, data, loaded)
	})
}
