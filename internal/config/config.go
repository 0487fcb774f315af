// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"dca-cli/internal/issue"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "dca"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// Sort orders accepted by the "sort" key (and the listing flags).
const (
	SortUnsorted = "unsorted"
	SortName     = "name"
	SortSize     = "size"
)

// Config holds every user-tunable setting of dca.
type Config struct {
	// Verbose enables per-entry debug logging, same as --verbose.
	Verbose bool `mapstructure:"verbose" toml:"verbose"`

	// OutputDir is the default destination directory for extraction
	// when --output is not given. Empty means the current directory.
	OutputDir string `mapstructure:"output_dir" toml:"output_dir"`

	// Sort is the default ordering of archive listings:
	// "unsorted", "name" or "size".
	Sort string `mapstructure:"sort" toml:"sort"`
}

// DefaultConfig returns the compiled-in defaults used when no config
// file exists.
func DefaultConfig() *Config {
	return &Config{
		Verbose:   false,
		OutputDir: "",
		Sort:      SortUnsorted,
	}
}

// ConfigDir returns the dca configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// FilePath returns the full path of the config file, whether or not it
// exists.
func FilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// Load reads the configuration. Precedence, highest first: DCA_*
// environment variables, the config file, compiled-in defaults. A
// missing file falls back to defaults silently; an unreadable or
// malformed file is an error.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("sort", defaults.Sort)

	v.SetEnvPrefix("DCA")
	v.AutomaticEnv()

	path, err := FilePath()
	if err != nil {
		return nil, err
	}
	if fileExists(path) {
		v.SetConfigFile(path)
		v.SetConfigType(ConfigFileExt)
		if err := v.ReadInConfig(); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid TOML syntax").
				WithSuggestion("Run 'dca config init' to recreate a default file").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validateSort(cfg.Sort); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion(`Use one of "unsorted", "name" or "size" for the sort key`).
			Wrap(err).
			BuildError()
	}
	return &cfg, nil
}

// Save writes cfg to the config file as TOML, creating the config
// directory if needed.
func Save(cfg *Config) error {
	path, err := FilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func validateSort(sort string) error {
	switch sort {
	case SortUnsorted, SortName, SortSize:
		return nil
	default:
		return fmt.Errorf("unknown sort order %q", sort)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
