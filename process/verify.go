package process

import (
	"fmt"

	"github.com/giwty/quarkpad/db"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Progess updater interface
type ProgressUpdater interface {
	UpdateProgress(curr int, total int, message string)
}

// One problem found with a library entry or the settings record
type LibraryIssue struct {
	Index  int // -1 for the settings record
	Name   string
	Field  string
	Value  string
	Reason string
}

// ScanForIssues runs the same checks the forms run on save over the whole
// library, so entries broken after they were added (moved prefix, deleted
// executable) can be reported.
func ScanForIssues(fs afero.Fs, library db.LibraryData, progress ProgressUpdater) []LibraryIssue {
	var result []LibraryIssue
	total := library.Len() + 1

	check := func(index int, name, field, value, reason string) {
		if reason != "" {
			result = append(result, LibraryIssue{Index: index, Name: name, Field: field, Value: value, Reason: reason})
		}
	}

	for i, game := range library.Games {
		if progress != nil {
			progress.UpdateProgress(i, total, "checking "+game.Name)
		}
		check(i, game.Name, "name", game.Name, ValidateGameName(game.Name))
		check(i, game.Name, "cover_path", game.CoverPath, ValidateFilePath(fs, game.CoverPath))
		check(i, game.Name, "exe_path", game.ExePath, ValidateFilePath(fs, game.ExePath))
		check(i, game.Name, "wineprefix", game.WinePrefix, ValidateDirPath(fs, game.WinePrefix))
	}

	if progress != nil {
		progress.UpdateProgress(total-1, total, "checking settings")
	}
	s := library.Settings
	check(-1, "settings", "proton_path", s.ProtonPath, ValidateDirPath(fs, s.ProtonPath))
	check(-1, "settings", "umu_path", s.UmuPath, ValidateDirPath(fs, s.UmuPath))

	if progress != nil {
		progress.UpdateProgress(total, total, "Complete")
	}

	if len(result) != 0 {
		zap.S().Infof("found %d library issues", len(result))
	}
	return result
}

func (i LibraryIssue) String() string {
	if i.Index < 0 {
		return fmt.Sprintf("settings.%s %q: %s", i.Field, i.Value, i.Reason)
	}
	return fmt.Sprintf("#%d %s.%s %q: %s", i.Index, i.Name, i.Field, i.Value, i.Reason)
}
