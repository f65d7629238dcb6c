package domain

import "go.trai.ch/zerr"

var (
	// ErrToolchainUnavailable is returned when no toolchain bundle matches the
	// requested platform.
	ErrToolchainUnavailable = zerr.New("toolchain unavailable for platform")

	// ErrDependencyCompileFailed is returned when a dependency fails to
	// compile. It carries the failing dependency identity and the toolchain
	// diagnostic; never the project's own compile errors.
	ErrDependencyCompileFailed = zerr.New("dependency compilation failed")

	// ErrProjectCompileFailed is returned when the project source fails to
	// compile. The compiler diagnostics are attached verbatim.
	ErrProjectCompileFailed = zerr.New("project compilation failed")

	// ErrCacheMismatch indicates a dependency artifact set was paired with a
	// build config it was not derived from. This is a defect in the calling
	// code and aborts the invocation.
	ErrCacheMismatch = zerr.New("artifact cache entry does not match build config")

	// ErrInvalidBundle is returned when a toolkit bundle root does not exist.
	ErrInvalidBundle = zerr.New("invalid toolkit bundle")

	// ErrPackageNotFound is returned when the package repository has no tree
	// for a requested name/version/platform.
	ErrPackageNotFound = zerr.New("native package not found")

	// ErrInvalidConfig is returned when the configuration file is missing
	// required fields.
	ErrInvalidConfig = zerr.New("invalid configuration")
)
