package db

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"unicode/utf8"

	"github.com/giwty/quarkpad/settings"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// A non empty library file that cannot be parsed. There is no safe default
// for a corrupted library, so callers treat this as fatal.
var ErrCorruptLibrary = errors.New("library file is corrupted")

// A value TOML cannot hold. Writing it would produce a file Load rejects.
var ErrInvalidEncoding = errors.New("value is not valid UTF-8")

// LibraryStore loads and saves LibraryData as a TOML document in the data folder
type LibraryStore struct {
	fs     afero.Fs
	folder string
	logger *zap.SugaredLogger
}

func NewLibraryStore(fsys afero.Fs, dataFolder string, l *zap.SugaredLogger) *LibraryStore {
	return &LibraryStore{fs: fsys, folder: dataFolder, logger: l}
}

func (s *LibraryStore) Path() string {
	return filepath.Join(s.folder, settings.LIBRARY_FILENAME)
}

func (s *LibraryStore) ensureFolder() error {
	if err := s.fs.MkdirAll(s.folder, 0o755); err != nil {
		return fmt.Errorf("failed to create data folder %s: %w", s.folder, err)
	}
	return nil
}

// Load reads the library. A missing or empty file is a new install and yields
// an empty library with default settings.
func (s *LibraryStore) Load() (LibraryData, error) {
	if err := s.ensureFolder(); err != nil {
		return LibraryData{}, err
	}

	buf, err := afero.ReadFile(s.fs, s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Infof("no library file at %s, starting with an empty library", s.Path())
		return DefaultLibraryData(), nil
	} else if err != nil {
		return LibraryData{}, fmt.Errorf("failed to read library file: %w", err)
	}

	if len(bytes.TrimSpace(buf)) == 0 {
		s.logger.Infof("library file %s is empty, starting with an empty library", s.Path())
		return DefaultLibraryData(), nil
	}

	// Start with defaults, fields absent from the file keep them
	data := DefaultLibraryData()
	if err := toml.Unmarshal(buf, &data); err != nil {
		return LibraryData{}, fmt.Errorf("%w: %s: %w", ErrCorruptLibrary, s.Path(), err)
	}
	if data.Games == nil {
		data.Games = []Game{}
	}

	s.logger.Debugf("loaded %d games from %s", len(data.Games), s.Path())
	return data, nil
}

// Save rewrites the whole document, via a temp file renamed over the old one
func (s *LibraryStore) Save(data LibraryData) error {
	if data.Games == nil {
		data.Games = []Game{}
	}

	if err := checkEncoding(data); err != nil {
		return err
	}

	buf, err := toml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode library: %w", err)
	}

	if err := s.ensureFolder(); err != nil {
		return err
	}

	tmp, err := afero.TempFile(s.fs, s.folder, settings.LIBRARY_FILENAME+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp library file: %w", err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(buf)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write library file: %w", err)
	}

	if err := s.fs.Rename(tmpName, s.Path()); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace library file: %w", err)
	}

	s.logger.Debugf("saved %d games to %s", len(data.Games), s.Path())
	return nil
}

func checkEncoding(data LibraryData) error {
	check := func(owner, field, value string) error {
		if !utf8.ValidString(value) {
			return fmt.Errorf("%w: %s %s %q", ErrInvalidEncoding, owner, field, value)
		}
		return nil
	}

	for i, g := range data.Games {
		owner := fmt.Sprintf("game #%d", i)
		for _, err := range []error{
			check(owner, "name", g.Name),
			check(owner, "cover_path", g.CoverPath),
			check(owner, "exe_path", g.ExePath),
			check(owner, "wineprefix", g.WinePrefix),
		} {
			if err != nil {
				return err
			}
		}
	}

	if err := check("settings", "proton_path", data.Settings.ProtonPath); err != nil {
		return err
	}
	return check("settings", "umu_path", data.Settings.UmuPath)
}
