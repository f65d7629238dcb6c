package toolchain

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/kilnhq/kiln/internal/core/ports"
)

// NodeID is the Graft node for the toolchain provider.
const NodeID graft.ID = "adapter.toolchain.provider"

func init() {
	graft.Register(graft.Node[ports.ToolchainProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ToolchainProvider, error) {
			return NewProvider(), nil
		},
	})
}
