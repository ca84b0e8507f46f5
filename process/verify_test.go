package process

import (
	"testing"

	"github.com/giwty/quarkpad/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressRecorder struct {
	updates []int
	total   int
}

func (p *progressRecorder) UpdateProgress(curr int, total int, message string) {
	p.updates = append(p.updates, curr)
	p.total = total
}

func TestScanForIssues(t *testing.T) {
	fs := newTestFs(t)
	require.NoError(t, fs.MkdirAll("/rt/proton", 0o755))

	library := db.DefaultLibraryData()
	library.AddGame(db.Game{
		Name:       "Portal",
		CoverPath:  "/covers/portal.png",
		ExePath:    "/games/portal/portal.exe",
		WinePrefix: "/prefixes/portal",
	})
	library.AddGame(db.Game{
		Name:       "Broken",
		CoverPath:  "/covers/portal.png",
		ExePath:    "/games/broken/broken.exe",
		WinePrefix: "/prefixes/portal",
	})
	library.Settings = db.Settings{ProtonPath: "/rt/proton", UmuPath: ""}

	progress := &progressRecorder{}
	issues := ScanForIssues(fs, library, progress)

	require.Len(t, issues, 2)
	assert.Equal(t, LibraryIssue{
		Index:  1,
		Name:   "Broken",
		Field:  "exe_path",
		Value:  "/games/broken/broken.exe",
		Reason: MSG_FILE_NOT_FOUND,
	}, issues[0])
	assert.Equal(t, -1, issues[1].Index)
	assert.Equal(t, "umu_path", issues[1].Field)
	assert.Equal(t, MSG_PATH_REQUIRED, issues[1].Reason)

	assert.Equal(t, 3, progress.total)
	assert.Equal(t, []int{0, 1, 2, 3}, progress.updates)
}

func TestScanForIssuesCleanLibrary(t *testing.T) {
	fs := newTestFs(t)
	require.NoError(t, fs.MkdirAll("/rt/proton", 0o755))
	require.NoError(t, fs.MkdirAll("/rt/umu", 0o755))

	library := db.DefaultLibraryData()
	library.Settings = db.Settings{ProtonPath: "/rt/proton", UmuPath: "/rt/umu"}

	assert.Empty(t, ScanForIssues(fs, library, nil))
}

func TestLibraryIssueString(t *testing.T) {
	issue := LibraryIssue{Index: 0, Name: "Portal", Field: "wineprefix", Value: "/p", Reason: MSG_DIR_NOT_FOUND}
	assert.Equal(t, `#0 Portal.wineprefix "/p": Directory does not exist`, issue.String())

	issue = LibraryIssue{Index: -1, Name: "settings", Field: "proton_path", Value: "", Reason: MSG_PATH_REQUIRED}
	assert.Equal(t, `settings.proton_path "": Path is required`, issue.String())
}
