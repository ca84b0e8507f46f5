package main

import (
	"bytes"
	"testing"

	"github.com/giwty/quarkpad/db"
	"github.com/giwty/quarkpad/gui"
	"github.com/giwty/quarkpad/process"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type nopSpawner struct{}

func (nopSpawner) Spawn(cmd process.Command) (*process.Handle, error) {
	return &process.Handle{Pid: 7}, nil
}

func newTestConsole(t *testing.T) (*Console, *bytes.Buffer, *db.LibraryStore) {
	t.Helper()
	l := zap.NewNop().Sugar()
	fs := afero.NewMemMapFs()
	for _, dir := range []string{"/games/portal", "/prefixes/portal", "/rt/proton", "/rt/umu", "/compat/GE-Proton9-20"} {
		require.NoError(t, fs.MkdirAll(dir, 0o755))
	}
	require.NoError(t, afero.WriteFile(fs, "/games/portal/portal.exe", []byte("MZ"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/games/portal/cover.png", []byte("png"), 0o644))

	out := &bytes.Buffer{}
	store := db.NewLibraryStore(fs, "/data", l)
	console := CreateConsole(fs, []string{"/compat"}, out, l)
	g := gui.NewGUI(l, db.DefaultLibraryData(), gui.Services{
		Store:       store,
		Launcher:    process.NewLauncher(nopSpawner{}, nil, l),
		Fs:          fs,
		ProtonRoots: []string{"/compat"},
		Progress:    console,
	})
	console.Attach(g)
	return console, out, store
}

func addPortal(t *testing.T, c *Console) {
	t.Helper()
	require.NoError(t, c.Start([]string{"add",
		"-name", "Portal",
		"-cover", "/games/portal/cover.png",
		"-exe", "/games/portal/portal.exe",
		"-prefix", "/prefixes/portal",
	}))
}

func TestConsoleAddAndList(t *testing.T) {
	c, out, store := newTestConsole(t)

	addPortal(t, c)
	assert.Contains(t, out.String(), "added Portal")

	out.Reset()
	require.NoError(t, c.Start([]string{"list"}))
	assert.Contains(t, out.String(), "Portal")
	assert.Contains(t, out.String(), "/games/portal/portal.exe")

	saved, err := store.Load()
	require.NoError(t, err)
	require.Len(t, saved.Games, 1)
	assert.Equal(t, "/prefixes/portal", saved.Games[0].WinePrefix)
}

func TestConsoleAddInvalid(t *testing.T) {
	c, out, _ := newTestConsole(t)

	err := c.Start([]string{"add", "-name", "Portal", "-exe", "/games/portal/missing.exe"})

	assert.ErrorIs(t, err, errFormInvalid)
	assert.Contains(t, out.String(), process.MSG_FILE_NOT_FOUND)
	assert.Contains(t, out.String(), process.MSG_PATH_REQUIRED)
	assert.Equal(t, gui.PageHome, c.gui.Page())
	assert.Equal(t, 0, c.gui.Library().Len())
}

func TestConsoleEditRemoveLaunch(t *testing.T) {
	c, out, _ := newTestConsole(t)
	addPortal(t, c)

	require.NoError(t, c.Start([]string{"edit", "-index", "0", "-name", "Portal 2"}))
	assert.Equal(t, "Portal 2", c.gui.Library().Games[0].Name)
	assert.Equal(t, "/games/portal/portal.exe", c.gui.Library().Games[0].ExePath)

	out.Reset()
	require.NoError(t, c.Start([]string{"launch", "-index", "0"}))
	assert.Contains(t, out.String(), "pid 7")

	assert.Error(t, c.Start([]string{"remove", "-index", "3"}))
	require.NoError(t, c.Start([]string{"remove", "-index", "0"}))
	assert.Equal(t, 0, c.gui.Library().Len())
}

func TestConsoleSettings(t *testing.T) {
	c, out, _ := newTestConsole(t)

	require.NoError(t, c.Start([]string{"settings", "-detect", "-umu", "/rt/umu"}))
	assert.Equal(t, db.Settings{ProtonPath: "/compat/GE-Proton9-20", UmuPath: "/rt/umu"}, c.gui.Library().Settings)

	out.Reset()
	require.NoError(t, c.Start([]string{"settings"}))
	assert.Contains(t, out.String(), "/compat/GE-Proton9-20")
}

func TestConsoleVerifyAndProtons(t *testing.T) {
	c, out, _ := newTestConsole(t)
	addPortal(t, c)

	require.NoError(t, c.Start([]string{"verify"}))
	assert.Contains(t, out.String(), "settings.proton_path")
	assert.Contains(t, out.String(), "settings.umu_path")

	out.Reset()
	require.NoError(t, c.Start([]string{"protons"}))
	assert.Contains(t, out.String(), "GE-Proton9-20")
}

func TestConsoleUnknownCommand(t *testing.T) {
	c, out, _ := newTestConsole(t)

	assert.Error(t, c.Start([]string{"organize"}))
	assert.Contains(t, out.String(), "usage: quarkpad")
}
