package ports

import (
	"context"

	"github.com/kilnhq/kiln/internal/core/domain"
)

// ToolkitComposer merges an ordered list of native packages into one
// coherent filesystem view.
//
// Later packages shadow earlier ones on colliding relative paths; the input
// order is the caller's tie-break decision. Package-manager metadata
// directories are stripped from the merged view. Inputs are never mutated.
//
//go:generate go run go.uber.org/mock/mockgen -source=composer.go -destination=mocks/mock_composer.go -package=mocks
type ToolkitComposer interface {
	// Compose builds the merged view at dest. Composing the same ordered
	// list twice yields identical merged contents.
	Compose(ctx context.Context, packages []domain.NativePackage, dest string, metadataDirs []string) (*domain.Toolkit, error)
}
