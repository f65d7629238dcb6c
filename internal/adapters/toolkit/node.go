package toolkit

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/kilnhq/kiln/internal/core/ports"
)

const (
	// ComposerNodeID is the Graft node for the bundle composer.
	ComposerNodeID graft.ID = "adapter.toolkit.composer"
	// RepositoryNodeID is the Graft node for the package repository.
	RepositoryNodeID graft.ID = "adapter.toolkit.repository"
)

func init() {
	graft.Register(graft.Node[ports.ToolkitComposer]{
		ID:        ComposerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ToolkitComposer, error) {
			return NewComposer(), nil
		},
	})

	graft.Register(graft.Node[ports.PackageRepository]{
		ID:        RepositoryNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.PackageRepository, error) {
			return NewRepository(), nil
		},
	})
}
