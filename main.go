package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/giwty/quarkpad/db"
	"github.com/giwty/quarkpad/gui"
	"github.com/giwty/quarkpad/logger"
	"github.com/giwty/quarkpad/process"
	"github.com/giwty/quarkpad/settings"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
)

var (
	dataFolder = flag.String("data", "", "data folder (default $"+settings.DATA_DIR_ENV+" or the XDG data folder)")
	debug      = flag.Bool("debug", false, "verbose logging")
	pick       = flag.Bool("dialogs", true, "allow native file dialogs for -pick")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		fmt.Fprintln(flag.CommandLine.Output(), "\nglobal options:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		if !errors.Is(err, errFormInvalid) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	appSettings, err := settings.NewAppSettings(*dataFolder, *debug)
	if err != nil {
		return err
	}

	l := logger.GetSugar(appSettings.DataFolder, appSettings.Debug)
	defer logger.Defer()
	l.Infof("[%s %s] data folder %s", settings.APP_NAME, settings.APP_VERSION, appSettings.DataFolder)

	fs := afero.NewOsFs()

	store := db.NewLibraryStore(fs, appSettings.DataFolder, l)
	library, err := store.Load()
	if err != nil {
		// a corrupt library is never replaced with an empty one
		l.Errorf("failed to load library: %v", err)
		return err
	}

	pdb, err := db.NewPersistentDB(appSettings.DataFolder, l)
	if err != nil {
		l.Errorf("failed to open launch history: %v", err)
		return err
	}
	defer pdb.Close()

	overrides, err := settings.LoadLaunchEnv(fs, appSettings.DataFolder)
	if err != nil {
		l.Warnf("ignoring %s: %v", appSettings.LaunchEnvPath(), err)
		overrides = settings.NewLaunchEnv()
	}

	var picker gui.Picker = gui.NoPicker{}
	if *pick {
		picker = gui.DialogPicker{}
	}

	protonRoots := settings.DefaultCompatToolRoots()
	console := CreateConsole(fs, protonRoots, os.Stdout, l)

	g := gui.NewGUI(l, library, gui.Services{
		Store:       store,
		Launcher:    process.NewLauncher(&process.ExecSpawner{Stdout: os.Stdout, Stderr: os.Stderr}, overrides, l),
		History:     db.NewLaunchHistory(pdb, clockwork.NewRealClock()),
		Fs:          fs,
		Picker:      picker,
		ProtonRoots: protonRoots,
		Progress:    console,
	})
	defer g.Defer()

	console.Attach(g)
	return console.Start(args)
}
