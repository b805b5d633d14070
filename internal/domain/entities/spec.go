package entities

import (
	"slices"

	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

// Feature flags understood by the engine. Flags gate generation behavior
// only; they never participate in implication or conflict logic.
const (
	// FlagExamples includes per-component example code in the skeletons.
	FlagExamples = "examples"

	// FlagDeps includes ecosystem dependency manifests (requirements.txt,
	// package.json) in the generated tree.
	FlagDeps = "deps"

	// FlagSkipGit suppresses the version-control bootstrap files.
	FlagSkipGit = "skip-git"
)

// KnownFlags lists every feature flag the engine understands.
var KnownFlags = []string{FlagExamples, FlagDeps, FlagSkipGit}

// Selection is the raw input handed to the engine by the CLI layer: the
// user's explicit components, an optional profile, version overrides and
// feature flags, plus the target directory and mode.
type Selection struct {
	TargetDir        string
	Mode             values.Mode
	Components       []string
	Profile          string
	VersionOverrides map[string]string
	Flags            []string
}

// ResolvedSpec is the canonical output of selection resolution: a
// deduplicated, implication-closed, conflict-checked component set with every
// version key resolved. It is built once per invocation and read-only
// thereafter; every downstream stage reads it, none mutates it.
type ResolvedSpec struct {
	// Components are the closed component ids in catalog order, so that
	// generation is deterministic across runs.
	Components []string

	// Versions maps each versionKey present in the closed set to its
	// resolved version string.
	Versions map[string]string

	// Flags are the active feature flags, recorded verbatim from the
	// selection. Flags never participate in implication or conflict logic.
	Flags map[string]bool

	// DependencyTemplate is the dependency-template id inherited from the
	// selected profile, if any.
	DependencyTemplate string

	Profile   string
	TargetDir string
	Mode      values.Mode
}

// HasComponent reports whether the closed set contains the given id.
func (s *ResolvedSpec) HasComponent(id string) bool {
	return slices.Contains(s.Components, id)
}

// HasFlag reports whether a feature flag is active.
func (s *ResolvedSpec) HasFlag(name string) bool {
	return s.Flags[name]
}

// FlagNames returns the active flags in sorted order.
func (s *ResolvedSpec) FlagNames() []string {
	names := make([]string, 0, len(s.Flags))
	for name, on := range s.Flags {
		if on {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Version returns the resolved version for a key, or "" if the key is not
// part of this spec.
func (s *ResolvedSpec) Version(key string) string {
	return s.Versions[key]
}
