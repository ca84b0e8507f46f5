package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/giwty/quarkpad/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSugarWritesToDataFolder(t *testing.T) {
	dir := t.TempDir()

	sugar := GetSugar(dir, true)
	sugar.Debugf("launching %s", "portal.exe")
	Defer()

	buf, err := os.ReadFile(filepath.Join(dir, settings.LOG_FILENAME))
	require.NoError(t, err)
	assert.Contains(t, string(buf), "launching portal.exe")

	// the first folder sticks for the life of the process
	other := t.TempDir()
	GetSugar(other, false).Info("second call")
	Defer()
	assert.NoFileExists(t, filepath.Join(other, settings.LOG_FILENAME))
}
