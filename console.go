package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/giwty/quarkpad/gui"
	"github.com/giwty/quarkpad/settings"
	"github.com/jedib0t/go-pretty/table"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var errFormInvalid = errors.New("form has errors")

const usage = `usage: quarkpad [-data folder] [-debug] <command> [options]

commands:
  list       show the library
  add        add a game
  edit       change a game
  remove     remove a game
  launch     start a game
  settings   show or change the runtime paths
  verify     check every entry still points at existing files
  protons    list Proton installs found on this machine
`

type Console struct {
	gui         *gui.GUI
	fs          afero.Fs
	protonRoots []string
	out         io.Writer
	sugarLogger *zap.SugaredLogger
	progressBar *progressbar.ProgressBar
}

// The console is the GUI's progress receiver, so it is created first and
// attached to the GUI afterwards.
func CreateConsole(fs afero.Fs, protonRoots []string, out io.Writer, sugarLogger *zap.SugaredLogger) *Console {
	return &Console{fs: fs, protonRoots: protonRoots, out: out, sugarLogger: sugarLogger}
}

func (c *Console) Attach(g *gui.GUI) {
	c.gui = g
}

func (c *Console) Start(args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	command, rest := args[0], args[1:]
	c.sugarLogger.Debugf("console command %s %v", command, rest)
	switch command {
	case "list":
		return c.list()
	case "add":
		return c.add(rest)
	case "edit":
		return c.edit(rest)
	case "remove":
		return c.indexCommand("remove", gui.GUI_MESSAGE_REMOVE_GAME, rest)
	case "launch":
		if err := c.indexCommand("launch", gui.GUI_MESSAGE_LAUNCH_GAME, rest); err != nil {
			return err
		}
		if handle := c.gui.LastLaunch(); handle != nil {
			fmt.Fprintf(c.out, "started (pid %d)\n", handle.Pid)
		}
		return nil
	case "settings":
		return c.settings(rest)
	case "verify":
		return c.verify()
	case "protons":
		return c.protons()
	case "help", "-h", "-help":
		fmt.Fprint(c.out, usage)
		return nil
	}

	fmt.Fprint(c.out, usage)
	return fmt.Errorf("unknown command %q", command)
}

func (c *Console) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	t.SetStyle(table.StyleColoredBright)
	return t
}

func (c *Console) send(name string, payload string) error {
	return c.gui.HandleMessage(gui.Message{Name: name, Payload: payload})
}

func (c *Console) list() error {
	view := c.gui.HomeView()
	if len(view.Games) == 0 {
		fmt.Fprint(c.out, "\nThe library is empty, use 'add' to add a game\n\n")
		return nil
	}

	t := c.newTable()
	t.AppendHeader(table.Row{"#", "Name", "Executable", "Wineprefix", "Launches", "Last launched"})
	for _, g := range view.Games {
		lastLaunched := ""
		if !g.LastLaunched.IsZero() {
			lastLaunched = g.LastLaunched.Local().Format("2006-01-02 15:04")
		}
		t.AppendRow([]interface{}{g.Id, g.Name, g.Path, g.WinePrefix, g.LaunchCount, lastLaunched})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", len(view.Games)})
	t.Render()
	return nil
}

type gameFlags struct {
	name, cover, exe, prefix *string
	pick                     *bool
}

func newGameFlagSet(command string) (*flag.FlagSet, gameFlags) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	return fs, gameFlags{
		name:   fs.String("name", "", "game name"),
		cover:  fs.String("cover", "", "path to the cover image"),
		exe:    fs.String("exe", "", "path to the windows executable"),
		prefix: fs.String("prefix", "", "path to the wineprefix folder"),
		pick:   fs.Bool("pick", false, "open a file dialog for every path not given"),
	}
}

// fills the open game form from the flags that were set
func (c *Console) fillGameForm(fs *flag.FlagSet, f gameFlags) error {
	messages := map[string][2]string{
		"name":   {gui.GUI_MESSAGE_SET_NAME, *f.name},
		"cover":  {gui.GUI_MESSAGE_SET_COVER_PATH, *f.cover},
		"exe":    {gui.GUI_MESSAGE_SET_EXE_PATH, *f.exe},
		"prefix": {gui.GUI_MESSAGE_SET_WINEPREFIX, *f.prefix},
	}
	picks := map[string]string{
		"cover":  gui.GUI_MESSAGE_PICK_COVER_PATH,
		"exe":    gui.GUI_MESSAGE_PICK_EXE_PATH,
		"prefix": gui.GUI_MESSAGE_PICK_WINEPREFIX,
	}

	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	for _, key := range []string{"name", "cover", "exe", "prefix"} {
		var err error
		switch {
		case set[key]:
			err = c.send(messages[key][0], messages[key][1])
		case *f.pick && picks[key] != "":
			err = c.send(picks[key], "")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// saves the open form, printing the field errors when it stays open
func (c *Console) saveForm(message string) error {
	if err := c.send(message, ""); err != nil {
		return err
	}
	form, open := c.gui.FormView()
	if !open {
		return nil
	}

	t := c.newTable()
	t.AppendHeader(table.Row{"Field", "Value", "Error"})
	for _, field := range form.Fields {
		if field.Error != "" {
			t.AppendRow([]interface{}{field.Label, field.Value, field.Error})
		}
	}
	t.Render()

	_ = c.send(gui.GUI_MESSAGE_BACK, "")
	return errFormInvalid
}

func (c *Console) add(args []string) error {
	fs, f := newGameFlagSet("add")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := c.send(gui.GUI_MESSAGE_ADD_GAME, ""); err != nil {
		return err
	}
	if err := c.fillGameForm(fs, f); err != nil {
		return err
	}
	if err := c.saveForm(gui.GUI_MESSAGE_SAVE_GAME); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "added %s\n", *f.name)
	return nil
}

func (c *Console) edit(args []string) error {
	fs, f := newGameFlagSet("edit")
	index := fs.Int("index", -1, "library index of the game, see 'list'")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *index < 0 || *index >= c.gui.Library().Len() {
		return fmt.Errorf("no game at index %d", *index)
	}

	if err := c.send(gui.GUI_MESSAGE_EDIT_GAME, strconv.Itoa(*index)); err != nil {
		return err
	}
	if err := c.fillGameForm(fs, f); err != nil {
		return err
	}
	if err := c.saveForm(gui.GUI_MESSAGE_SAVE_GAME); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "updated #%d\n", *index)
	return nil
}

func (c *Console) indexCommand(command string, message string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	index := fs.Int("index", -1, "library index of the game, see 'list'")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *index < 0 || *index >= c.gui.Library().Len() {
		return fmt.Errorf("no game at index %d", *index)
	}
	return c.send(message, strconv.Itoa(*index))
}

func (c *Console) settings(args []string) error {
	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	proton := fs.String("proton", "", "path to the Proton folder")
	umu := fs.String("umu", "", "folder containing umu-run")
	detect := fs.Bool("detect", false, "use the newest Proton install found when no proton path is set")
	pick := fs.Bool("pick", false, "open a folder dialog for every path not given")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NFlag() == 0 {
		current := c.gui.Library().Settings
		t := c.newTable()
		t.AppendHeader(table.Row{"Setting", "Value"})
		t.AppendRow([]interface{}{"proton_path", current.ProtonPath})
		t.AppendRow([]interface{}{"umu_path", current.UmuPath})
		t.Render()
		return nil
	}

	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if err := c.send(gui.GUI_MESSAGE_OPEN_SETTINGS, ""); err != nil {
		return err
	}

	var steps [][2]string
	switch {
	case set["proton"]:
		steps = append(steps, [2]string{gui.GUI_MESSAGE_SET_PROTON_PATH, *proton})
	case *detect:
		steps = append(steps, [2]string{gui.GUI_MESSAGE_DETECT_PROTON, ""})
	case *pick:
		steps = append(steps, [2]string{gui.GUI_MESSAGE_PICK_PROTON_PATH, ""})
	}
	switch {
	case set["umu"]:
		steps = append(steps, [2]string{gui.GUI_MESSAGE_SET_UMU_PATH, *umu})
	case *pick:
		steps = append(steps, [2]string{gui.GUI_MESSAGE_PICK_UMU_PATH, ""})
	}
	for _, step := range steps {
		if err := c.send(step[0], step[1]); err != nil {
			return err
		}
	}

	if err := c.saveForm(gui.GUI_MESSAGE_SAVE_SETTINGS); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "settings saved")
	return nil
}

func (c *Console) verify() error {
	c.progressBar = progressbar.NewOptions(1, progressbar.OptionSetWriter(c.out))
	if err := c.send(gui.GUI_MESSAGE_VERIFY, ""); err != nil {
		return err
	}
	_ = c.progressBar.Finish()

	issues := c.gui.IssuesView()
	if len(issues) == 0 {
		fmt.Fprint(c.out, "\nAll entries look good!\n\n")
		return nil
	}

	fmt.Fprint(c.out, "\nFound issues:\n\n")
	t := c.newTable()
	t.AppendHeader(table.Row{"#", "Entry", "Value", "Problem"})
	for _, i := range issues {
		index := strconv.Itoa(i.Id)
		if i.Id < 0 {
			index = "-"
		}
		t.AppendRow([]interface{}{index, i.Key, i.Path, i.Value})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(issues)})
	t.Render()
	return nil
}

func (c *Console) protons() error {
	installs := settings.DiscoverProtonInstalls(c.fs, c.protonRoots)
	if len(installs) == 0 {
		fmt.Fprintf(c.out, "\nNo Proton installs found in %v\n\n", c.protonRoots)
		return nil
	}

	t := c.newTable()
	t.AppendHeader(table.Row{"#", "Name", "Version", "Path"})
	for i, install := range installs {
		t.AppendRow([]interface{}{i, install.Name, install.Version, install.Path})
	}
	t.Render()
	return nil
}

// Implements process.ProgressUpdater, fed through the GUI
func (c *Console) UpdateProgress(curr int, total int, message string) {
	if c.progressBar == nil {
		return
	}
	c.progressBar.ChangeMax(total)
	c.progressBar.Describe(message)
	_ = c.progressBar.Set(curr)
}
