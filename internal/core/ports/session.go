package ports

import "github.com/kilnhq/kiln/internal/core/domain"

// EnvironmentComposer derives the environment variable bindings for an
// interactive development session from a composed toolkit and a toolchain.
//
//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=mocks/mock_session.go -package=mocks
type EnvironmentComposer interface {
	// Compose returns the session bindings. Pre-existing search-path entries
	// in base are preserved, not replaced. Returns domain.ErrInvalidBundle
	// if the toolkit root does not exist.
	Compose(toolkit *domain.Toolkit, toolchain *domain.Toolchain, names domain.EnvNames, base []string) (domain.DevEnvironment, error)
}
