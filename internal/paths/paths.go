// Package paths resolves user directories and canonical path forms.
package paths

import (
	"os"
	"path/filepath"

	"fexplorer/internal/errors"
)

// Dirs holds the base directories the core operates against.
// Both are parameters so tests can point them at temp dirs; empty
// fields fall back to the platform user-config/user-cache conventions.
type Dirs struct {
	ConfigDir string
	CacheDir  string
}

// Resolve fills empty fields from the host platform conventions.
func (d Dirs) Resolve() (Dirs, error) {
	out := d
	if out.ConfigDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Dirs{}, errors.New(errors.ConfigError, "could not determine config directory", err)
		}
		out.ConfigDir = dir
	}
	if out.CacheDir == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return Dirs{}, errors.New(errors.ConfigError, "could not determine cache directory", err)
		}
		out.CacheDir = dir
	}
	return out, nil
}

// PxConfigFile returns the px config file path under the config dir.
func (d Dirs) PxConfigFile() string {
	return filepath.Join(d.ConfigDir, "px", "config.toml")
}

// ExplorerConfigFile returns the fexplorer config file path under the config dir.
func (d Dirs) ExplorerConfigFile() string {
	return filepath.Join(d.ConfigDir, "fexplorer", "config.toml")
}

// IndexCacheFile returns the persistent project index path under the cache dir.
func (d Dirs) IndexCacheFile() string {
	return filepath.Join(d.CacheDir, "px", "projects.json")
}

// Canonicalize converts a path to its canonical absolute form:
// absolute, symlinks resolved, cleaned. Index keys use this form so a
// repository reachable through two symlinked paths keys once.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// A path that does not exist yet keeps its absolute form.
		if os.IsNotExist(err) {
			return filepath.Clean(abs), nil
		}
		return "", err
	}
	return resolved, nil
}
