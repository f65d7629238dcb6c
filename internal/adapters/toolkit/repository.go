package toolkit

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kilnhq/kiln/internal/core/domain"
	"github.com/kilnhq/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PackageRepository = (*Repository)(nil)

// Repository serves native package trees out of a directory laid out as
// <root>/<name>/<version>/<platform>/. The trees are supplied by an external
// packaging process; kiln only reads them.
type Repository struct{}

// NewRepository creates a new Repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Fetch returns the package tree for ref on the given platform.
func (r *Repository) Fetch(_ context.Context, root string, ref domain.PackageRef, platform domain.Platform) (domain.NativePackage, error) {
	dir := filepath.Join(root, ref.Name, ref.Version, platform.String())

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		wrapped := zerr.Wrap(domain.ErrPackageNotFound, ref.Spec()+" for "+platform.String())
		return domain.NativePackage{}, zerr.With(wrapped, "path", dir)
	}

	return domain.NativePackage{
		Name:    ref.Name,
		Version: ref.Version,
		Root:    dir,
	}, nil
}
