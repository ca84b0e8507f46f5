package process

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/giwty/quarkpad/db"
	"github.com/giwty/quarkpad/settings"
	"go.uber.org/zap"
)

const (
	UMU_RUN_BINARY = "umu-run"

	// Native Direct3D, d3dcompiler, d3dx, dxgi and nvapi libraries, winemenubuilder disabled
	WINE_DLL_OVERRIDES = "d3d10core,d3d11,d3d12,d3d12core,d3d8,d3d9," +
		"d3dcompiler_33,d3dcompiler_34,d3dcompiler_35,d3dcompiler_36," +
		"d3dcompiler_37,d3dcompiler_38,d3dcompiler_39,d3dcompiler_40," +
		"d3dcompiler_41,d3dcompiler_42,d3dcompiler_43,d3dcompiler_46," +
		"d3dcompiler_47,d3dx10,d3dx10_33,d3dx10_34,d3dx10_35,d3dx10_36," +
		"d3dx10_37,d3dx10_38,d3dx10_39,d3dx10_40,d3dx10_41,d3dx10_42," +
		"d3dx10_43,d3dx11_42,d3dx11_43,d3dx9_24,d3dx9_25,d3dx9_26," +
		"d3dx9_27,d3dx9_28,d3dx9_29,d3dx9_30,d3dx9_31,d3dx9_32," +
		"d3dx9_33,d3dx9_34,d3dx9_35,d3dx9_36,d3dx9_37,d3dx9_38," +
		"d3dx9_39,d3dx9_40,d3dx9_41,d3dx9_42,d3dx9_43," +
		"dxgi,nvapi,nvapi64,nvofapi64=n;winemenubuilder="
)

var ErrInvalidExePath = errors.New("invalid executable path")

// The runtime binary could not be started
type SpawnFailedError struct {
	Binary string
	Err    error
}

func (e *SpawnFailedError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Binary, e.Err)
}

func (e *SpawnFailedError) Unwrap() error {
	return e.Err
}

type EnvVar struct {
	Key   string
	Value string
}

// Command is everything needed to start a game, built without touching the OS
type Command struct {
	Path string
	Args []string
	Dir  string
	Env  []EnvVar
}

// KEY=value pairs in order
func (c Command) Environ() []string {
	env := make([]string, 0, len(c.Env))
	for _, v := range c.Env {
		env = append(env, v.Key+"="+v.Value)
	}
	return env
}

// Lookup returns the last value set for key
func (c Command) Lookup(key string) (string, bool) {
	for i := len(c.Env) - 1; i >= 0; i-- {
		if c.Env[i].Key == key {
			return c.Env[i].Value, true
		}
	}
	return "", false
}

type Handle struct {
	Pid int
}

// Spawner starts a process and returns as soon as the OS accepted it
type Spawner interface {
	Spawn(cmd Command) (*Handle, error)
}

// ExecSpawner starts commands with os/exec. The child inherits the parent
// environment with the command environment on top, and is never waited on.
type ExecSpawner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (s *ExecSpawner) Spawn(c Command) (*Handle, error) {
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Environ()...)
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	handle := &Handle{Pid: cmd.Process.Pid}
	_ = cmd.Process.Release()
	return handle, nil
}

// splitExePath returns the containing folder and bare file name of an executable path
func splitExePath(exePath string) (string, string, error) {
	trimmed := strings.TrimSpace(exePath)
	if trimmed == "" {
		return "", "", fmt.Errorf("%w: empty path", ErrInvalidExePath)
	}
	if strings.HasSuffix(trimmed, "/") || strings.HasSuffix(trimmed, string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: %q names a directory", ErrInvalidExePath, exePath)
	}

	name := filepath.Base(trimmed)
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", "", fmt.Errorf("%w: %q has no file name", ErrInvalidExePath, exePath)
	}

	return filepath.Dir(trimmed), name, nil
}

// contract variables, in the order they are set on the child
func contractEnv(game db.Game, s db.Settings, winePath string) []EnvVar {
	return []EnvVar{
		{"WINEPREFIX", game.WinePrefix},
		{"PROTONPATH", s.ProtonPath},
		{"GAME_NAME", game.Name},
		{"WINEDEBUG", "-all"},
		{"DXVK_LOG_LEVEL", "debug"},
		{"PROTON_LOG", "1"},
		{"UMU_LOG", "debug"},
		{"WINEARCH", "win64"},
		{"WINE", winePath},
		{"WINEESYNC", "0"},
		{"WINEFSYNC", "1"},
		{"WINE_FULLSCREEN_FSR", "1"},
		{"DXVK_NVAPIHACK", "0"},
		{"DXVK_ENABLE_NVAPI", "1"},
		{"WINEDLLOVERRIDES", WINE_DLL_OVERRIDES},
		{"WINE_LARGE_ADDRESS_AWARE", "1"},
		{"STORE", "none"},
		{"GAMEID", "umu-default"},
		{"PROTON_VERB", "run"},
	}
}

// BuildCommand turns a game and the settings into the umu-run invocation.
// Runtime binaries are not checked here, a missing one fails at spawn time.
func BuildCommand(game db.Game, s db.Settings) (Command, error) {
	dir, name, err := splitExePath(game.ExePath)
	if err != nil {
		return Command{}, err
	}

	winePath := filepath.Join(s.ProtonPath, "files", "bin", "wine")
	umuRunPath := filepath.Join(s.UmuPath, UMU_RUN_BINARY)

	return Command{
		Path: umuRunPath,
		Args: []string{name},
		Dir:  dir,
		Env:  contractEnv(game, s, winePath),
	}, nil
}

// Launcher starts games through umu-run
type Launcher struct {
	spawner   Spawner
	overrides *settings.LaunchEnv
	logger    *zap.SugaredLogger
}

func NewLauncher(spawner Spawner, overrides *settings.LaunchEnv, l *zap.SugaredLogger) *Launcher {
	if overrides == nil {
		overrides = settings.NewLaunchEnv()
	}
	return &Launcher{spawner: spawner, overrides: overrides, logger: l}
}

// Command builds the invocation with the user overrides appended. Overrides
// can add variables but never replace the ones the runtime depends on.
func (l *Launcher) Command(game db.Game, s db.Settings) (Command, error) {
	cmd, err := BuildCommand(game, s)
	if err != nil {
		return Command{}, err
	}

	for _, key := range l.overrides.Keys() {
		if _, ok := cmd.Lookup(key); ok {
			l.logger.Warnf("ignoring %s from %s, the launcher sets it", key, settings.LAUNCH_ENV_FILENAME)
			continue
		}
		cmd.Env = append(cmd.Env, EnvVar{Key: key, Value: l.overrides.Get(key)})
	}

	return cmd, nil
}

func (l *Launcher) Launch(game db.Game, s db.Settings) (*Handle, error) {
	cmd, err := l.Command(game, s)
	if err != nil {
		return nil, err
	}

	l.logger.Debugf("starting %s %v in %s", cmd.Path, cmd.Args, cmd.Dir)
	handle, err := l.spawner.Spawn(cmd)
	if err != nil {
		return nil, &SpawnFailedError{Binary: cmd.Path, Err: err}
	}

	l.logger.Infof("launched %s (pid %d)", game.Name, handle.Pid)
	return handle, nil
}
