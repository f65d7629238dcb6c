package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/kilnhq/kiln/internal/adapters/cas"
	"github.com/kilnhq/kiln/internal/adapters/fs"
	"github.com/kilnhq/kiln/internal/adapters/logger"
	"github.com/kilnhq/kiln/internal/adapters/session"
	"github.com/kilnhq/kiln/internal/adapters/shell"
	"github.com/kilnhq/kiln/internal/adapters/telemetry/progrock"
	"github.com/kilnhq/kiln/internal/adapters/toolkit"
	"github.com/kilnhq/kiln/internal/core/ports"
)

// NodeID is the Graft node for the build pipeline.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.SnapshotterNodeID,
			shell.NodeID,
			cas.NodeID,
			toolkit.RepositoryNodeID,
			toolkit.ComposerNodeID,
			session.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			snapshotter, err := graft.Dep[ports.Snapshotter](ctx)
			if err != nil {
				return nil, err
			}

			compiler, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ArtifactStore](ctx)
			if err != nil {
				return nil, err
			}

			repository, err := graft.Dep[ports.PackageRepository](ctx)
			if err != nil {
				return nil, err
			}

			composer, err := graft.Dep[ports.ToolkitComposer](ctx)
			if err != nil {
				return nil, err
			}

			sess, err := graft.Dep[ports.EnvironmentComposer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(snapshotter, compiler, store, repository, composer, sess, log, telemetry), nil
		},
	})
}
