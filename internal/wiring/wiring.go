// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/kilnhq/kiln/internal/adapters/cas"
	_ "github.com/kilnhq/kiln/internal/adapters/config"
	_ "github.com/kilnhq/kiln/internal/adapters/fs"
	_ "github.com/kilnhq/kiln/internal/adapters/logger"
	_ "github.com/kilnhq/kiln/internal/adapters/session"
	_ "github.com/kilnhq/kiln/internal/adapters/shell"
	_ "github.com/kilnhq/kiln/internal/adapters/telemetry/progrock"
	_ "github.com/kilnhq/kiln/internal/adapters/toolchain"
	_ "github.com/kilnhq/kiln/internal/adapters/toolkit"
	// Register app and engine nodes.
	_ "github.com/kilnhq/kiln/internal/app"
	_ "github.com/kilnhq/kiln/internal/engine/pipeline"
)
