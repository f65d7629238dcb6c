// Package main is the entry point for the kiln build tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/kilnhq/kiln/cmd/kiln/commands"
	"github.com/kilnhq/kiln/internal/app"
	"github.com/kilnhq/kiln/internal/core/domain"
	_ "github.com/kilnhq/kiln/internal/wiring"
)

// Exit codes, one per build failure class, so callers can tell a broken
// dependency from broken project source without parsing output.
const (
	exitOK                   = 0
	exitFailure              = 1
	exitToolchainUnavailable = 2
	exitDependencyCompile    = 3
	exitProjectCompile       = 4
	exitInvalidBundle        = 5
	exitCacheMismatch        = 6
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// The logger is not available if initialization failed.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return exitFailure
	}
	defer components.Close() //nolint:errcheck // telemetry flush

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrToolchainUnavailable):
		return exitToolchainUnavailable
	case errors.Is(err, domain.ErrDependencyCompileFailed):
		return exitDependencyCompile
	case errors.Is(err, domain.ErrProjectCompileFailed):
		return exitProjectCompile
	case errors.Is(err, domain.ErrInvalidBundle):
		return exitInvalidBundle
	case errors.Is(err, domain.ErrCacheMismatch):
		return exitCacheMismatch
	default:
		return exitFailure
	}
}
