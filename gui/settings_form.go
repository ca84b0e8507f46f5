package gui

import (
	"github.com/giwty/quarkpad/db"
	"github.com/giwty/quarkpad/process"
	"github.com/giwty/quarkpad/settings"
	"github.com/spf13/afero"
)

type SettingsFormMessageKind int

const (
	SettingsProtonPathChanged SettingsFormMessageKind = iota
	SettingsUmuPathChanged
	SettingsPickProtonPath
	SettingsPickUmuPath
	SettingsDetectProton
	SettingsSave
)

type SettingsFormMessage struct {
	Kind  SettingsFormMessageKind
	Value string
}

type SettingsFormErrors struct {
	ProtonPath string
	UmuPath    string
}

func (e SettingsFormErrors) Any() bool {
	return e.ProtonPath != "" || e.UmuPath != ""
}

// SettingsFormState backs the settings page
type SettingsFormState struct {
	fs          afero.Fs
	picker      Picker
	protonRoots []string

	fields     db.Settings
	errors     SettingsFormErrors
	showErrors bool
}

// LoadSettingsForm seeds the form from the current settings. protonRoots are
// the folders searched by DetectProton.
func LoadSettingsForm(fs afero.Fs, picker Picker, current db.Settings, protonRoots []string) *SettingsFormState {
	if picker == nil {
		picker = NoPicker{}
	}
	return &SettingsFormState{fs: fs, picker: picker, protonRoots: protonRoots, fields: current}
}

func (f *SettingsFormState) Settings() db.Settings {
	return f.fields
}

func (f *SettingsFormState) Errors() SettingsFormErrors {
	return f.errors
}

func (f *SettingsFormState) ShowErrors() bool {
	return f.showErrors
}

func (f *SettingsFormState) Update(msg SettingsFormMessage) Action {
	switch msg.Kind {
	case SettingsProtonPathChanged:
		f.fields.ProtonPath = msg.Value
	case SettingsUmuPathChanged:
		f.fields.UmuPath = msg.Value
	case SettingsPickProtonPath:
		if path, ok := f.picker.PickFolder(); ok {
			f.fields.ProtonPath = path
		}
	case SettingsPickUmuPath:
		if path, ok := f.picker.PickFolder(); ok {
			f.fields.UmuPath = path
		}
	case SettingsDetectProton:
		f.detectProton()
	case SettingsSave:
		return f.save()
	}
	return noAction
}

// fills an empty proton path with the newest install found
func (f *SettingsFormState) detectProton() {
	if f.fields.ProtonPath != "" {
		return
	}
	installs := settings.DiscoverProtonInstalls(f.fs, f.protonRoots)
	if len(installs) > 0 {
		f.fields.ProtonPath = installs[0].Path
	}
}

func (f *SettingsFormState) save() Action {
	f.showErrors = true
	f.errors = SettingsFormErrors{
		ProtonPath: process.ValidateDirPath(f.fs, f.fields.ProtonPath),
		UmuPath:    process.ValidateDirPath(f.fs, f.fields.UmuPath),
	}
	if f.errors.Any() {
		return noAction
	}
	return Action{Kind: ActionSave, Settings: f.fields}
}
