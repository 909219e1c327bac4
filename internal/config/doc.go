// Package config holds runtime configuration for sotdarc: CLI-driven
// options, the optional .sotdarc YAML file with entity aliases and check
// toggles, and XDG directory resolution for the archive.
package config
