package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/kilnhq/kiln/internal/core/ports"
)

const (
	// WalkerNodeID is the Graft node for the concrete walker.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// SnapshotterNodeID is the Graft node for the source snapshotter.
	SnapshotterNodeID graft.ID = "adapter.fs.snapshotter"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Snapshotter]{
		ID:        SnapshotterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.Snapshotter, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewSnapshotter(walker), nil
		},
	})
}
