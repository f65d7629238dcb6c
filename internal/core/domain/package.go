package domain

// PackageRef names a native package by name and version, as listed in the
// toolkit configuration. Order in that list is the caller's tie-break for
// path collisions during composition.
type PackageRef struct {
	Name    string
	Version string
}

// Spec renders the reference as "name@version".
func (r PackageRef) Spec() string {
	return r.Name + "@" + r.Version
}

// NativePackage is a self-contained directory tree for one native
// library/runtime component, as supplied by the package repository. The tree
// is never mutated; composition links out of it.
type NativePackage struct {
	Name    string
	Version string
	Root    string
}

// Spec renders the package identity as "name@version".
func (p NativePackage) Spec() string {
	return p.Name + "@" + p.Version
}

// ToolkitSpec declares the toolkit to compose: where packages come from,
// which packages in which order, and which package-manager metadata
// directories to strip from the merged view.
type ToolkitSpec struct {
	Repository   string
	Packages     []PackageRef
	MetadataDirs []string
}

// Toolkit is the merged filesystem view composed from an ordered list of
// native packages. Root is read-only once produced.
type Toolkit struct {
	Root     string
	Packages []NativePackage
}
