package entities

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

// DependencyKind distinguishes runtime packages from development tooling.
type DependencyKind string

const (
	// DependencyRuntime packages ship with the generated application.
	DependencyRuntime DependencyKind = "runtime"

	// DependencyDev packages are development/test tooling only.
	DependencyDev DependencyKind = "dev"
)

// Dependency is one entry in a component's ecosystem package manifest.
type Dependency struct {
	Ecosystem  values.Ecosystem `toml:"ecosystem"`
	Package    string           `toml:"package"`
	Constraint string           `toml:"constraint"`
	Kind       DependencyKind   `toml:"kind,omitempty"`
}

// KindOrDefault returns the dependency kind, defaulting to runtime.
func (d Dependency) KindOrDefault() DependencyKind {
	if d.Kind == "" {
		return DependencyRuntime
	}
	return d.Kind
}

// MinimumVersion parses the numeric floor of the constraint. Constraints in
// the catalog are minimum-style (">=X.Y.Z", "^X.Y.Z", "~X.Y" or a bare
// version); the merger compares these floors to decide which duplicate entry
// survives.
func (d Dependency) MinimumVersion() (*semver.Version, error) {
	raw := strings.TrimSpace(d.Constraint)
	raw = strings.TrimLeft(raw, ">=^~ ")
	if raw == "" {
		return nil, fmt.Errorf("dependency %s: empty version constraint", d.Package)
	}

	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("dependency %s: constraint %q: %w", d.Package, d.Constraint, err)
	}
	return v, nil
}

// ManifestLine renders the entry in its ecosystem's manifest syntax:
// requirements.txt for python, package.json value for node.
func (d Dependency) ManifestLine() string {
	if d.Ecosystem.Equals(values.EcosystemPython) {
		return d.Package + d.Constraint
	}
	return d.Constraint
}
