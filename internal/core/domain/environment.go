package domain

// EnvNames is the configuration surface for the variable names the
// environment composer emits. Zero values fall back to the defaults.
type EnvNames struct {
	Root string
	Src  string
}

const (
	defaultRootVar = "TOOLKIT_ROOT"
	defaultSrcVar  = "TOOLKIT_SRC"
)

// RootVar returns the toolkit root variable name.
func (n EnvNames) RootVar() string {
	if n.Root == "" {
		return defaultRootVar
	}
	return n.Root
}

// SrcVar returns the toolkit source-directory variable name.
func (n EnvNames) SrcVar() string {
	if n.Src == "" {
		return defaultSrcVar
	}
	return n.Src
}

// DevEnvironment is the set of environment variable bindings for an
// interactive session, in sorted "KEY=VALUE" form. It is ephemeral and never
// persisted.
type DevEnvironment []string
