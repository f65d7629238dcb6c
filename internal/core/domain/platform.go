package domain

import (
	"runtime"
	"strings"

	"go.trai.ch/zerr"
)

// Platform identifies the host architecture and operating system a build
// targets. It is supplied at invocation time and selects both the toolchain
// bundle and the native package variants.
type Platform struct {
	OS   string
	Arch string
}

// HostPlatform returns the platform of the running process.
func HostPlatform() Platform {
	return Platform{OS: runtime.GOOS, Arch: archName(runtime.GOARCH)}
}

// ParsePlatform parses a descriptor in "os-arch" form (e.g. "linux-x86_64").
func ParsePlatform(descriptor string) (Platform, error) {
	osName, arch, ok := strings.Cut(descriptor, "-")
	if !ok || osName == "" || arch == "" {
		err := zerr.New("invalid platform descriptor")
		return Platform{}, zerr.With(err, "descriptor", descriptor)
	}
	return Platform{OS: osName, Arch: arch}, nil
}

// String renders the canonical "os-arch" descriptor.
func (p Platform) String() string {
	return p.OS + "-" + p.Arch
}

// IsZero reports whether the platform is unset.
func (p Platform) IsZero() bool {
	return p.OS == "" && p.Arch == ""
}

// archName maps Go architecture names to the descriptor names used by
// toolchain and package distributions.
func archName(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	default:
		return goarch
	}
}
