package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/kilnhq/kiln/internal/adapters/config"
	"github.com/kilnhq/kiln/internal/adapters/logger"
	"github.com/kilnhq/kiln/internal/adapters/telemetry/progrock"
	"github.com/kilnhq/kiln/internal/adapters/toolchain"
	"github.com/kilnhq/kiln/internal/core/ports"
	"github.com/kilnhq/kiln/internal/engine/pipeline"
)

const (
	// AppNodeID is the Graft node for the main App.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the Graft node for the App components.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			toolchain.NodeID,
			pipeline.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			toolchains, err := graft.Dep[ports.ToolchainProvider](ctx)
			if err != nil {
				return nil, err
			}

			pipe, err := graft.Dep[*pipeline.Pipeline](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, toolchains, pipe, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
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

			return &Components{
				App:       application,
				Logger:    log,
				telemetry: telemetry,
			}, nil
		},
	})
}
