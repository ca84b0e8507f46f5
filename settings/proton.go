package settings

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/mcuadros/go-version"
	"github.com/spf13/afero"
)

var protonVersionRegex = regexp.MustCompile(`\d+(?:[.\-]\d+)*`)

// A compatibility runtime found on disk
type ProtonInstall struct {
	Name    string
	Path    string
	Version string
}

// Folders Steam and umu use for custom compatibility tools
func DefaultCompatToolRoots() []string {
	return []string{
		filepath.Join(xdg.Home, ".steam", "steam", "compatibilitytools.d"),
		filepath.Join(xdg.Home, ".steam", "root", "compatibilitytools.d"),
		filepath.Join(xdg.DataHome, "Steam", "compatibilitytools.d"),
	}
}

// Extract a comparable version from an install folder name,
// "GE-Proton9-20" -> "9.20", "Proton 9.0-3" -> "9.0.3", "Proton Experimental" -> "".
func ParseProtonVersion(name string) string {
	match := protonVersionRegex.FindString(name)
	return strings.ReplaceAll(match, "-", ".")
}

// DiscoverProtonInstalls lists the runtime folders under the given roots,
// newest version first. Folders without a version number sort last, by name.
func DiscoverProtonInstalls(fsys afero.Fs, roots []string) []ProtonInstall {
	var installs []ProtonInstall
	seen := map[string]struct{}{}

	for _, root := range roots {
		entries, err := afero.ReadDir(fsys, root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			// ~/.steam/root usually links to ~/.steam/steam
			if _, ok := seen[entry.Name()]; ok {
				continue
			}
			seen[entry.Name()] = struct{}{}
			installs = append(installs, ProtonInstall{
				Name:    entry.Name(),
				Path:    filepath.Join(root, entry.Name()),
				Version: ParseProtonVersion(entry.Name()),
			})
		}
	}

	sort.SliceStable(installs, func(i, j int) bool {
		a, b := installs[i], installs[j]
		if a.Version == "" || b.Version == "" {
			if a.Version != b.Version {
				return a.Version != ""
			}
			return a.Name < b.Name
		}
		if cmp := version.CompareSimple(a.Version, b.Version); cmp != 0 {
			return cmp > 0
		}
		return a.Name < b.Name
	})

	return installs
}
