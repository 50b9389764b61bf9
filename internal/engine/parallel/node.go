package parallel

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tajima/internal/adapters/config"
	"go.trai.ch/tajima/internal/core/domain"
	"go.trai.ch/tajima/internal/core/ports"
)

// NodeID is the unique identifier for the stitch decoder Graft node.
const NodeID graft.ID = "engine.decoder"

func init() {
	graft.Register(graft.Node[ports.StitchDecoder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.StitchDecoder, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings), nil
		},
	})
}
