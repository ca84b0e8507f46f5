package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// GetDataFolder resolves the per-user data folder. An explicit folder wins,
// then the QUARKPAD_DATA_DIR environment variable, then $XDG_DATA_HOME/quarkpad.
func GetDataFolder(explicit string) (string, error) {
	if folder := strings.TrimSpace(explicit); folder != "" {
		return filepath.Abs(folder)
	}

	if folder := strings.TrimSpace(os.Getenv(DATA_DIR_ENV)); folder != "" {
		return filepath.Abs(folder)
	}

	if xdg.DataHome == "" {
		return "", errors.New("unable to resolve the user data folder")
	}

	return filepath.Join(xdg.DataHome, APP_NAME), nil
}
