// Package paths resolves the local directories kiln persists state in.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "kiln"

const (
	// DirPerm is the permission mode for created directories.
	DirPerm os.FileMode = 0o750
	// FilePerm is the permission mode for created files.
	FilePerm os.FileMode = 0o640
)

// CacheRoot returns the root of the local cache store.
//
//	Linux:   $XDG_CACHE_HOME/kiln or ~/.cache/kiln
//	macOS:   ~/Library/Caches/kiln
//
// KILN_CACHE_DIR overrides the default wholesale.
func CacheRoot() string {
	if dir := os.Getenv("KILN_CACHE_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(xdg.CacheHome, appName)
}

// DepsDir returns the dependency artifact store directory.
func DepsDir() string {
	return filepath.Join(CacheRoot(), "deps")
}

// ToolchainsDir returns the toolchain bundle store directory.
func ToolchainsDir() string {
	return filepath.Join(CacheRoot(), "toolchains")
}

// ToolkitsDir returns the composed toolkit bundle directory.
func ToolkitsDir() string {
	return filepath.Join(CacheRoot(), "toolkits")
}

// OutDir returns the project build output directory.
func OutDir() string {
	return filepath.Join(CacheRoot(), "out")
}

// SnapshotsDir returns the source snapshot staging directory.
func SnapshotsDir() string {
	return filepath.Join(CacheRoot(), "snapshots")
}
