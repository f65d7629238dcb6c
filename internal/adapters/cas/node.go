package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/kilnhq/kiln/internal/core/ports"
)

// NodeID is the Graft node for the artifact store.
const NodeID graft.ID = "adapter.artifact_store"

func init() {
	graft.Register(graft.Node[ports.ArtifactStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ArtifactStore, error) {
			store, err := NewStore()
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
