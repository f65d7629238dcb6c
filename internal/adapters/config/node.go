package config

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/kilnhq/kiln/internal/core/ports"
)

// NodeID is the Graft node for the config loader.
const NodeID graft.ID = "adapter.config.loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			return NewLoader(), nil
		},
	})
}
