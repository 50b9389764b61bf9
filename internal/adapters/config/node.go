package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/tajima/internal/adapters/logger"
	"go.trai.ch/tajima/internal/core/domain"
	"go.trai.ch/tajima/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the config loader Graft node.
	NodeID graft.ID = "adapter.config"

	// SettingsNodeID is the unique identifier for the resolved settings
	// Graft node. Settings are loaded once per process from the working
	// directory.
	SettingsNodeID graft.ID = "adapter.settings"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[domain.Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (domain.Settings, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return domain.Settings{}, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				cwd = "."
			}
			return loader.Load(cwd)
		},
	})
}
