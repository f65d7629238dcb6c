package ports

import (
	"context"

	"github.com/kilnhq/kiln/internal/core/domain"
)

// PackageRepository supplies native package trees by name and version. It is
// an external collaborator; kiln never builds native packages itself.
//
//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks
type PackageRepository interface {
	// Fetch returns the package tree for ref on the given platform from the
	// repository rooted at root, or domain.ErrPackageNotFound.
	Fetch(ctx context.Context, root string, ref domain.PackageRef, platform domain.Platform) (domain.NativePackage, error)
}
