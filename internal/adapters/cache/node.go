package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tajima/internal/adapters/config"
	"go.trai.ch/tajima/internal/core/domain"
	"go.trai.ch/tajima/internal/core/ports"
)

// NodeID is the unique identifier for the pattern cache Graft node.
const NodeID graft.ID = "adapter.pattern_cache"

func init() {
	graft.Register(graft.Node[ports.PatternCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.PatternCache, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings.CacheCapacity), nil
		},
	})
}
