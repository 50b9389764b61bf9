// Package config provides the configuration loader for tajima.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/tajima/internal/core/domain"
	"go.trai.ch/tajima/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load searches upward from cwd for a tajima.yaml and returns the resulting
// settings. A missing file is not an error: defaults apply. Unknown values
// are clamped back to defaults rather than rejected, so a stale config never
// blocks opening a pattern.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	configPath, found := findConfiguration(cwd)
	if !found {
		return settings, nil
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // Path found by upward search from cwd
	if err != nil {
		return settings, zerr.With(domain.Wrap(domain.ErrConfigReadFailed, err), "path", configPath)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return settings, zerr.With(domain.Wrap(domain.ErrConfigParseFailed, err), "path", configPath)
	}

	if file.Decode.Workers > 0 {
		settings.Workers = file.Decode.Workers
	}
	if file.Decode.SequentialThreshold > 0 {
		settings.SequentialThreshold = file.Decode.SequentialThreshold
	}
	if file.Cache.Capacity > 0 {
		settings.CacheCapacity = file.Cache.Capacity
	}
	if file.Cache.ContentDigest != nil {
		settings.ContentDigest = *file.Cache.ContentDigest
	}

	return settings, nil
}

// findConfiguration walks up from cwd looking for a config file.
func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", false
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}
