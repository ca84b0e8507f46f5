package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/magiconair/properties"
	"github.com/spf13/afero"
)

// Extra environment variables passed to launched games, read from
// launch_env.properties in the data folder.
type LaunchEnv struct {
	keys   []string
	values map[string]string
}

func NewLaunchEnv() *LaunchEnv {
	return &LaunchEnv{values: map[string]string{}}
}

func (e *LaunchEnv) Set(key, value string) {
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

func (e *LaunchEnv) Get(key string) string {
	return e.values[key]
}

// Keys in file order
func (e *LaunchEnv) Keys() []string {
	return e.keys
}

func (e *LaunchEnv) Len() int {
	return len(e.keys)
}

// LoadLaunchEnv reads the overrides file. A missing file yields an empty set.
func LoadLaunchEnv(fsys afero.Fs, dataFolder string) (*LaunchEnv, error) {
	env := NewLaunchEnv()

	path := filepath.Join(dataFolder, LAUNCH_ENV_FILENAME)
	buf, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return env, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	p, err := properties.Load(buf, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for _, key := range p.Keys() {
		value, _ := p.Get(key)
		env.Set(key, value)
	}

	return env, nil
}
