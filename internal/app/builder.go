package app

import (
	"github.com/kilnhq/kiln/internal/core/ports"
)

// Components contains the initialized application components. It is what
// the CLI layer receives from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger

	telemetry ports.Telemetry
}

// Close flushes the telemetry session.
func (c *Components) Close() error {
	if c.telemetry == nil {
		return nil
	}
	return c.telemetry.Close()
}
