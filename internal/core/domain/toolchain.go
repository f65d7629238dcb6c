package domain

import "path/filepath"

// Tool names an entry point inside a toolchain bundle.
type Tool string

const (
	// ToolCompile is the compiler entry point.
	ToolCompile Tool = "compile"
	// ToolLink is the linker entry point.
	ToolLink Tool = "link"
	// ToolFormat is the source formatter entry point.
	ToolFormat Tool = "format"
	// ToolLint is the lint tool entry point.
	ToolLint Tool = "lint"
)

// Toolchain is a pinned, resolved compiler toolchain bundle. It is owned by
// the provider that resolved it and referenced read-only by everything
// downstream.
type Toolchain struct {
	Name     string
	Version  string
	Platform Platform

	// Root is the local directory the bundle was materialized into.
	Root string

	// Tools maps entry points to absolute paths under Root.
	Tools map[Tool]string
}

// ID returns the toolchain identity used in cache keys and manifests.
func (t *Toolchain) ID() string {
	return t.Name + "-" + t.Version
}

// BinDir returns the bundle's executable directory.
func (t *Toolchain) BinDir() string {
	return filepath.Join(t.Root, "bin")
}
