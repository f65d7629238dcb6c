package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/kilnhq/kiln/internal/adapters/logger"
	"github.com/kilnhq/kiln/internal/core/ports"
)

// NodeID is the Graft node for the compiler runner.
const NodeID graft.ID = "adapter.shell.runner"

func init() {
	graft.Register(graft.Node[ports.Compiler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Compiler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log), nil
		},
	})
}
