// Package config loads the TOML configuration for both binaries.
// px reads <config-dir>/px/config.toml; fexplorer reads
// <config-dir>/fexplorer/config.toml. Config files are read once at
// startup and only written by an explicit init.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"fexplorer/internal/errors"
	"fexplorer/internal/index"
	"fexplorer/internal/paths"
)

// PxConfig configures the project switcher.
type PxConfig struct {
	// ScanDirs are the roots scanned for git repositories.
	ScanDirs []string `toml:"scan_dirs" mapstructure:"scan_dirs"`
	// ScanDepth bounds repository discovery under each root.
	ScanDepth int `toml:"scan_depth" mapstructure:"scan_depth"`
	// DefaultEditor is opaque to the core; the front-end hands it to
	// whatever launches the editor.
	DefaultEditor string `toml:"default_editor" mapstructure:"default_editor"`
	// ObsidianVault is opaque to the core.
	ObsidianVault string `toml:"obsidian_vault,omitempty" mapstructure:"obsidian_vault"`
}

// DefaultPxConfig returns the configuration used when no file exists.
func DefaultPxConfig() *PxConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &PxConfig{
		ScanDirs: []string{
			filepath.Join(home, "Developer"),
			filepath.Join(home, "projects"),
			filepath.Join(home, "code"),
		},
		ScanDepth:     index.DefaultSyncDepth,
		DefaultEditor: "code",
	}
}

// LoadPx reads the px config. A missing file yields defaults; a
// malformed file is fatal.
func LoadPx(dirs paths.Dirs) (*PxConfig, error) {
	file := dirs.PxConfigFile()

	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("toml")
	v.SetDefault("scan_depth", index.DefaultSyncDepth)
	v.SetDefault("default_editor", "code")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return DefaultPxConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultPxConfig(), nil
		}
		return nil, errors.New(errors.ConfigError, "parsing px config: "+file, err)
	}

	var cfg PxConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New(errors.ConfigError, "decoding px config: "+file, err)
	}
	if cfg.ScanDepth <= 0 {
		cfg.ScanDepth = index.DefaultSyncDepth
	}
	return &cfg, nil
}

// InitPx writes the default px config. Refuses to clobber an existing
// file.
func InitPx(dirs paths.Dirs) (string, error) {
	file := dirs.PxConfigFile()
	if _, err := os.Stat(file); err == nil {
		return "", errors.Newf(errors.ConfigError, "config already exists at %s", file)
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return "", errors.New(errors.IoError, "creating config directory", err)
	}

	data, err := gotoml.Marshal(DefaultPxConfig())
	if err != nil {
		return "", errors.New(errors.InternalError, "serializing default config", err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return "", errors.New(errors.IoError, "writing config: "+file, err)
	}
	return file, nil
}

// Profile is a saved fexplorer query. Args stay opaque dictionaries;
// the command layer interprets them.
type Profile struct {
	Description string                 `toml:"description,omitempty"`
	Command     string                 `toml:"command"`
	Args        map[string]interface{} `toml:"args"`
}

// ExplorerConfig configures fexplorer.
type ExplorerConfig struct {
	Preferences Preferences        `toml:"preferences"`
	Profiles    map[string]Profile `toml:"profiles"`
}

// Preferences holds the [preferences] table of the fexplorer config.
// LoadExplorer parses it; the walking commands do not read it and use
// their own flag defaults.
type Preferences struct {
	DefaultFormat    string `toml:"default_format"`
	Threads          int    `toml:"threads"`
	RespectGitignore bool   `toml:"respect_gitignore"`
}

// DefaultExplorerConfig returns the configuration used when no file
// exists.
func DefaultExplorerConfig() *ExplorerConfig {
	return &ExplorerConfig{
		Preferences: Preferences{
			DefaultFormat:    "pretty",
			Threads:          0, // walker default
			RespectGitignore: true,
		},
		Profiles: map[string]Profile{},
	}
}

// LoadExplorer reads the fexplorer config. A missing file yields
// defaults; a malformed file is fatal.
func LoadExplorer(dirs paths.Dirs) (*ExplorerConfig, error) {
	file := dirs.ExplorerConfigFile()

	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return DefaultExplorerConfig(), nil
	}
	if err != nil {
		return nil, errors.New(errors.IoError, "reading fexplorer config: "+file, err)
	}

	cfg := DefaultExplorerConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.ConfigError, "parsing fexplorer config: "+file, err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	return cfg, nil
}

// Profile returns a saved profile by name.
func (c *ExplorerConfig) Profile(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, errors.Newf(errors.NotFound, "no such profile %q", name)
	}
	return p, nil
}

// ProfileNames returns the saved profile names, unsorted.
func (c *ExplorerConfig) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	return names
}
