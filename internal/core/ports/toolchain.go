// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/kilnhq/kiln/internal/core/domain"
)

// ToolchainProvider resolves the pinned toolchain bundle for a platform.
//
// Resolution is deterministic for a given pinned version. The provider may
// fetch the bundle into a local store as a side effect; that fetch is
// idempotent and safe under concurrent invocations sharing the store.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ToolchainProvider interface {
	// Resolve returns the pinned toolchain bundle for the platform, or
	// domain.ErrToolchainUnavailable if no bundle matches.
	Resolve(ctx context.Context, pin domain.ToolchainPin, platform domain.Platform) (*domain.Toolchain, error)
}
