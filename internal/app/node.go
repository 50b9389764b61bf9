package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tajima/internal/adapters/cache"
	"go.trai.ch/tajima/internal/adapters/fs"
	"go.trai.ch/tajima/internal/adapters/logger"
	"go.trai.ch/tajima/internal/adapters/watcher"
	"go.trai.ch/tajima/internal/core/ports"
	"go.trai.ch/tajima/internal/engine/parallel"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.NodeID,
			cache.NodeID,
			parallel.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	source, err := graft.Dep[ports.PatternSource](ctx)
	if err != nil {
		return nil, err
	}
	patternCache, err := graft.Dep[ports.PatternCache](ctx)
	if err != nil {
		return nil, err
	}
	decoder, err := graft.Dep[ports.StitchDecoder](ctx)
	if err != nil {
		return nil, err
	}
	watch, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(source, patternCache, decoder, watch, log), nil
}
