package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".sotdarc"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .sotdarc configuration file.
type File struct {
	// Aliases maps a ranking table name to alias-to-canonical entity name
	// pairs. Aliases are matched case-insensitively during parsing, so a
	// report that writes "GEM" and one that writes "gem" both resolve to
	// the same canonical entity.
	Aliases map[string]map[string]string `yaml:"aliases,omitempty"`

	// DisabledChecks lists validation check names to skip.
	DisabledChecks []string `yaml:"disabledChecks,omitempty"`

	// ArchiveDir overrides the archive directory.
	// CLI flags take precedence over this value.
	ArchiveDir string `yaml:"archiveDir,omitempty"`
}

// TableAliases returns the alias map for one ranking table, or nil when
// the table has no configured aliases.
func (f *File) TableAliases(table string) map[string]string {
	if f == nil {
		return nil
	}
	return f.Aliases[table]
}

// LoadConfigFile loads aliases and check toggles from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Aliases == nil {
		cf.Aliases = make(map[string]map[string]string)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .sotdarc in the current directory
// 3. Look for .sotdarc in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
