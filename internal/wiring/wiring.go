// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tajima/internal/adapters/cache"
	_ "go.trai.ch/tajima/internal/adapters/config"
	_ "go.trai.ch/tajima/internal/adapters/fs"
	_ "go.trai.ch/tajima/internal/adapters/logger"
	_ "go.trai.ch/tajima/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/tajima/internal/app"
	_ "go.trai.ch/tajima/internal/engine/parallel"
)
