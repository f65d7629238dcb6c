package ports

import "github.com/kilnhq/kiln/internal/core/domain"

// Snapshotter produces a filtered, deterministic copy of a source tree.
//
// Two snapshots of an unchanged tree are byte-identical, and excluded files
// (VCS metadata, build outputs, editor artifacts) never influence the
// result. Downstream cache keys rely on this determinism.
//
//go:generate go run go.uber.org/mock/mockgen -source=snapshotter.go -destination=mocks/mock_snapshotter.go -package=mocks
type Snapshotter interface {
	// Snapshot copies the filtered tree rooted at root into dest and returns
	// the resulting source tree with its content fingerprint.
	Snapshot(root, dest string, excludes []string) (*domain.SourceTree, error)
}
