package process

import (
	"strings"

	"github.com/spf13/afero"
)

// Messages shown next to a form field. An empty string means the value is valid.
const (
	MSG_NAME_REQUIRED  = "Game name is required"
	MSG_PATH_REQUIRED  = "Path is required"
	MSG_FILE_NOT_FOUND = "File does not exist"
	MSG_DIR_NOT_FOUND  = "Directory does not exist"
)

func ValidateGameName(name string) string {
	if strings.TrimSpace(name) == "" {
		return MSG_NAME_REQUIRED
	}
	return ""
}

// ValidateFilePath requires an existing regular file
func ValidateFilePath(fs afero.Fs, path string) string {
	if strings.TrimSpace(path) == "" {
		return MSG_PATH_REQUIRED
	}
	info, err := fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return MSG_FILE_NOT_FOUND
	}
	return ""
}

// ValidateDirPath requires an existing directory
func ValidateDirPath(fs afero.Fs, path string) string {
	if strings.TrimSpace(path) == "" {
		return MSG_PATH_REQUIRED
	}
	isDir, err := afero.IsDir(fs, path)
	if err != nil || !isDir {
		return MSG_DIR_NOT_FOUND
	}
	return ""
}
