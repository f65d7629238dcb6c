package session

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/kilnhq/kiln/internal/core/ports"
)

// NodeID is the Graft node for the environment composer.
const NodeID graft.ID = "adapter.session.composer"

func init() {
	graft.Register(graft.Node[ports.EnvironmentComposer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.EnvironmentComposer, error) {
			return NewComposer(), nil
		},
	})
}
