package ports

import "github.com/kilnhq/kiln/internal/core/domain"

// ConfigLoader loads the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads and validates the configuration file at path.
	Load(path string) (*domain.Project, error)

	// LoadLock reads the dependency lock manifest at path. The raw bytes are
	// preserved for cache key derivation.
	LoadLock(path string) (domain.LockManifest, error)
}
