package config

// kilnfile is the on-disk structure of the kiln.yaml configuration file.
type kilnfile struct {
	Version   string              `yaml:"version"`
	Source    sourceDTO           `yaml:"source"`
	Lockfile  string              `yaml:"lockfile"`
	Toolchain toolchainDTO        `yaml:"toolchain"`
	Extra     map[string][]string `yaml:"extraInputs"`
	Toolkit   toolkitDTO          `yaml:"toolkit"`
	Env       envDTO              `yaml:"env"`
}

type sourceDTO struct {
	Root    string   `yaml:"root"`
	Exclude []string `yaml:"exclude"`
}

type toolchainDTO struct {
	Name      string            `yaml:"name"`
	Version   string            `yaml:"version"`
	Platforms map[string]string `yaml:"platforms"`
}

type toolkitDTO struct {
	Repository   string       `yaml:"repository"`
	Packages     []packageDTO `yaml:"packages"`
	MetadataDirs []string     `yaml:"metadataDirs"`
}

type packageDTO struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type envDTO struct {
	RootVar string `yaml:"rootVar"`
	SrcVar  string `yaml:"srcVar"`
}
