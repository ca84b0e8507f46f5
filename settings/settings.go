package settings

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	APP_NAME            = "quarkpad"
	APP_VERSION         = "0.3.0"
	DATA_DIR_ENV        = "QUARKPAD_DATA_DIR"
	LIBRARY_FILENAME    = "data.toml"
	HISTORY_DB_FILENAME = "quarkpad.db"
	LOG_FILENAME        = "quarkpad.log"
	LAUNCH_ENV_FILENAME = "launch_env.properties"
)

// Setting of the application (not persisted, the library file holds the user settings record)
type AppSettings struct {
	DataFolder string
	Debug      bool
}

// Constructor for settings
func NewAppSettings(dataFolder string, debug bool) (*AppSettings, error) {
	folder, err := GetDataFolder(dataFolder)
	if err != nil {
		return nil, err
	}

	// Create a folder if it does not exist
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data folder %s: %w", folder, err)
	}

	return &AppSettings{DataFolder: folder, Debug: debug}, nil
}

func (a *AppSettings) LaunchEnvPath() string {
	return filepath.Join(a.DataFolder, LAUNCH_ENV_FILENAME)
}
