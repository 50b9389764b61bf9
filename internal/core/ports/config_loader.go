package ports

import "go.trai.ch/tajima/internal/core/domain"

// ConfigLoader defines the interface for loading decode settings.
type ConfigLoader interface {
	// Load searches upward from cwd for a tajima.yaml and returns the
	// resulting settings. Defaults are returned when no file is found.
	Load(cwd string) (domain.Settings, error)
}
