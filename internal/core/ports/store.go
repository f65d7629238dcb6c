package ports

import (
	"context"

	"github.com/kilnhq/kiln/internal/core/domain"
)

// ArtifactStore is the persistent dependency artifact cache.
//
// Entries are immutable once published. Publication is atomic: a reader can
// never observe a partially written entry under a final key. Competing
// writers for the same key race harmlessly to an identical result.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Get returns the published entry for key, or nil, nil on a miss.
	Get(key string) (*domain.ArtifactSet, error)

	// Put publishes a new entry. populate is called with a private staging
	// directory to fill with the artifact payload; the entry only becomes
	// visible after populate returns nil and the staging directory is
	// renamed into place. If another writer published key first, their entry
	// is returned and this writer's work is discarded.
	Put(ctx context.Context, manifest domain.Manifest, populate func(dir string) error) (*domain.ArtifactSet, error)
}
