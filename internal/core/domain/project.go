package domain

// ToolchainPin names the pinned toolchain and where each platform's bundle
// comes from. The map key is the canonical platform descriptor.
type ToolchainPin struct {
	Name      string
	Version   string
	Platforms map[string]string
}

// SourceFor returns the bundle source directory for a platform, or false if
// the pin has no bundle for it.
func (p ToolchainPin) SourceFor(platform Platform) (string, bool) {
	src, ok := p.Platforms[platform.String()]
	return src, ok
}

// Project is the parsed project configuration: what to build, with which
// pinned toolchain, and which native packages make up the toolkit.
type Project struct {
	SourceRoot string
	Excludes   []string
	LockPath   string
	Toolchain  ToolchainPin

	// ExtraInputs maps platform descriptors to additional inputs that only
	// apply on that platform.
	ExtraInputs map[string][]string

	Toolkit ToolkitSpec
	Env     EnvNames
}

// ExtraInputsFor returns the platform-conditional inputs for platform.
func (p *Project) ExtraInputsFor(platform Platform) []string {
	return p.ExtraInputs[platform.String()]
}
