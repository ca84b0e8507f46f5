package gui

import (
	"errors"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"
)

// Picker asks the user for a path. The bool is false when nothing was chosen.
type Picker interface {
	PickFile() (string, bool)
	PickFolder() (string, bool)
}

// DialogPicker opens the native file and folder dialogs. Calls block until
// the dialog is closed.
type DialogPicker struct {
	FileTitle   string
	FolderTitle string
}

func (p DialogPicker) PickFile() (string, bool) {
	title := p.FileTitle
	if title == "" {
		title = "Select File"
	}
	path, err := dialog.File().Title(title).Load()
	return pickResult(path, err)
}

func (p DialogPicker) PickFolder() (string, bool) {
	title := p.FolderTitle
	if title == "" {
		title = "Select Folder"
	}
	path, err := dialog.Directory().Title(title).Browse()
	return pickResult(path, err)
}

func pickResult(path string, err error) (string, bool) {
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			zap.S().Warnf("file dialog failed: %v", err)
		}
		return "", false
	}
	return path, path != ""
}

// NoPicker never selects anything, for sessions without a display
type NoPicker struct{}

func (NoPicker) PickFile() (string, bool)   { return "", false }
func (NoPicker) PickFolder() (string, bool) { return "", false }
