// Package app implements the application layer for kiln.
package app

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/kilnhq/kiln/internal/core/domain"
	"github.com/kilnhq/kiln/internal/core/ports"
	"github.com/kilnhq/kiln/internal/engine/pipeline"
)

// Invocation carries the per-run options from the CLI.
type Invocation struct {
	// ConfigPath locates the project configuration file.
	ConfigPath string
	// Platform overrides the host platform when non-empty, in "os-arch"
	// form.
	Platform string
}

// App wires the loaded project configuration into the build pipeline.
type App struct {
	configLoader ports.ConfigLoader
	toolchains   ports.ToolchainProvider
	pipeline     *pipeline.Pipeline
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	toolchains ports.ToolchainProvider,
	pipe *pipeline.Pipeline,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		toolchains:   toolchains,
		pipeline:     pipe,
		logger:       logger,
	}
}

// Deps compiles the locked dependencies into the artifact cache.
func (a *App) Deps(ctx context.Context, inv Invocation) error {
	_, cfg, err := a.load(ctx, inv)
	if err != nil {
		return err
	}
	_, err = a.pipeline.BuildDeps(ctx, cfg)
	return err
}

// Build compiles the project against its cached dependency artifacts,
// building them first if needed.
func (a *App) Build(ctx context.Context, inv Invocation) error {
	_, cfg, err := a.load(ctx, inv)
	if err != nil {
		return err
	}

	deps, err := a.pipeline.BuildDeps(ctx, cfg)
	if err != nil {
		return err
	}

	artifact, err := a.pipeline.BuildPackage(ctx, cfg, deps)
	if err != nil {
		return err
	}
	a.logger.Info("build output in " + artifact.Dir)
	return nil
}

// Toolkit composes the declared native packages into a toolkit bundle and
// returns it.
func (a *App) Toolkit(ctx context.Context, inv Invocation) (*domain.Toolkit, error) {
	project, platform, err := a.loadProject(inv)
	if err != nil {
		return nil, err
	}
	return a.pipeline.ComposeToolkit(ctx, project.Toolkit, platform)
}

// Env composes the toolkit and derives the development session environment
// on top of the current process environment.
func (a *App) Env(ctx context.Context, inv Invocation) (domain.DevEnvironment, error) {
	project, platform, err := a.loadProject(inv)
	if err != nil {
		return nil, err
	}

	toolchain, err := a.toolchains.Resolve(ctx, project.Toolchain, platform)
	if err != nil {
		return nil, err
	}

	return a.pipeline.ComposeEnvironment(ctx, project.Toolkit, toolchain, project.Env, platform, os.Environ())
}

// loadProject reads the configuration and resolves the invocation platform.
// Relative paths in the configuration are anchored at the config file's
// directory, not the working directory.
func (a *App) loadProject(inv Invocation) (*domain.Project, domain.Platform, error) {
	project, err := a.configLoader.Load(inv.ConfigPath)
	if err != nil {
		return nil, domain.Platform{}, zerr.Wrap(err, "failed to load configuration")
	}

	base := filepath.Dir(inv.ConfigPath)
	project.SourceRoot = anchor(base, project.SourceRoot)
	project.LockPath = anchor(base, project.LockPath)
	if project.Toolkit.Repository != "" {
		project.Toolkit.Repository = anchor(base, project.Toolkit.Repository)
	}
	for descriptor, src := range project.Toolchain.Platforms {
		project.Toolchain.Platforms[descriptor] = anchor(base, src)
	}

	platform, err := resolvePlatform(inv.Platform)
	if err != nil {
		return nil, domain.Platform{}, err
	}
	return project, platform, nil
}

// load resolves everything a build phase needs into one BuildConfig. The
// dependency cache and the package builder both derive the cache key from
// this shared config.
func (a *App) load(ctx context.Context, inv Invocation) (*domain.Project, *domain.BuildConfig, error) {
	project, platform, err := a.loadProject(inv)
	if err != nil {
		return nil, nil, err
	}

	toolchain, err := a.toolchains.Resolve(ctx, project.Toolchain, platform)
	if err != nil {
		return nil, nil, err
	}

	lock, err := a.configLoader.LoadLock(project.LockPath)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load lock manifest")
	}

	cfg := &domain.BuildConfig{
		SourceRoot:  project.SourceRoot,
		Excludes:    project.Excludes,
		Lock:        lock,
		Toolchain:   toolchain,
		Platform:    platform,
		ExtraInputs: project.ExtraInputsFor(platform),
	}
	return project, cfg, nil
}

func resolvePlatform(override string) (domain.Platform, error) {
	if override == "" {
		return domain.HostPlatform(), nil
	}
	return domain.ParsePlatform(override)
}

func anchor(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
