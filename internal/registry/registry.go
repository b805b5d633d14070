// Package registry loads and validates the static component catalog: every
// selectable component, the named profiles, and the dependency templates
// profiles may reference. The catalog is embedded in the binary, loaded once
// at process start, and read-only for the process lifetime; any malformed or
// inconsistent document is a fatal load error, never a per-invocation one.
package registry

import (
	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

// Registry is the immutable component catalog.
type Registry struct {
	components []*entities.Component
	byID       map[string]*entities.Component
	ordinal    map[string]int

	profiles     map[string]*entities.Profile
	profileOrder []string

	templates map[string][]entities.Dependency
}

// Lookup returns the component with the given id.
func (r *Registry) Lookup(id string) (*entities.Component, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// All returns every component in catalog order. The returned slice is shared;
// callers must not modify it.
func (r *Registry) All() []*entities.Component {
	return r.components
}

// Ordinal returns the catalog position of a component id. Resolution sorts
// closed sets by ordinal so downstream stages see a deterministic order.
func (r *Registry) Ordinal(id string) int {
	return r.ordinal[id]
}

// Profile returns the named profile.
func (r *Registry) Profile(name string) (*entities.Profile, bool) {
	p, ok := r.profiles[name]
	return p, ok
}

// Profiles returns every profile in catalog order.
func (r *Registry) Profiles() []*entities.Profile {
	out := make([]*entities.Profile, 0, len(r.profileOrder))
	for _, name := range r.profileOrder {
		out = append(out, r.profiles[name])
	}
	return out
}

// DependencyTemplate returns the extra manifest entries for a template id.
func (r *Registry) DependencyTemplate(id string) ([]entities.Dependency, bool) {
	deps, ok := r.templates[id]
	return deps, ok
}

// BuiltinVersions returns the builtin default for every version key in the
// catalog. This is the lowest rung of the version precedence chain.
func (r *Registry) BuiltinVersions() map[string]string {
	defaults := make(map[string]string)
	for _, c := range r.components {
		if c.HasVersionKey() {
			defaults[c.VersionKey] = c.DefaultVersion
		}
	}
	return defaults
}

// DefaultRuntime returns the id of the default base-runtime component for an
// ecosystem: the first base-runtime of that ecosystem in catalog order.
func (r *Registry) DefaultRuntime(eco values.Ecosystem) (string, bool) {
	for _, c := range r.components {
		if c.Category.IsBaseRuntime() && c.Ecosystem.Equals(eco) {
			return c.ID, true
		}
	}
	return "", false
}
