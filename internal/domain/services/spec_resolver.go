package services

import (
	"fmt"
	"slices"
	"sort"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

// SpecResolver turns a raw selection into a canonical ResolvedSpec:
// deduplicated, implication-closed, conflict-checked, with every version key
// resolved. Resolution is deterministic: the closed set is ordered by catalog
// ordinal, never by map iteration.
type SpecResolver struct {
	catalog  Catalog
	versions *VersionResolver
}

// NewSpecResolver creates a new spec resolver service.
func NewSpecResolver(catalog Catalog, versions *VersionResolver) *SpecResolver {
	return &SpecResolver{catalog: catalog, versions: versions}
}

// Resolve expands the selection's profile and explicit flags into a closed
// component set and validates it. Selecting both a profile and extra explicit
// components is additive. A conflicting pair yields a ResolutionError naming
// both ids regardless of input order.
func (r *SpecResolver) Resolve(sel entities.Selection, versionIn VersionInputs) (*entities.ResolvedSpec, error) {
	seed, template, err := r.seedSet(sel)
	if err != nil {
		return nil, err
	}

	closed := r.implicationClosure(seed)

	if err := r.checkConflicts(closed); err != nil {
		return nil, err
	}

	r.addDefaultRuntimes(closed)

	ids := make([]string, 0, len(closed))
	for id := range closed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return r.catalog.Ordinal(ids[i]) < r.catalog.Ordinal(ids[j])
	})

	if !sel.Mode.IsAdd() {
		// Project-local config participates in version precedence only
		// when adding to an existing project.
		versionIn.ProjectVersions = nil
	}
	resolved := make(map[string]string)
	for _, id := range ids {
		c, _ := r.catalog.Lookup(id)
		if c.HasVersionKey() {
			resolved[c.VersionKey] = r.versions.Resolve(c.VersionKey, versionIn)
		}
	}

	flags, err := recordFlags(sel.Flags)
	if err != nil {
		return nil, err
	}

	return &entities.ResolvedSpec{
		Components:         ids,
		Versions:           resolved,
		Flags:              flags,
		DependencyTemplate: template,
		Profile:            sel.Profile,
		TargetDir:          sel.TargetDir,
		Mode:               sel.Mode,
	}, nil
}

// seedSet builds the initial set: explicit components plus the profile's
// fixed list. Unknown ids are user-correctable resolution errors.
func (r *SpecResolver) seedSet(sel entities.Selection) (map[string]bool, string, error) {
	seed := make(map[string]bool)
	template := ""

	if sel.Profile != "" {
		p, ok := r.catalog.Profile(sel.Profile)
		if !ok {
			return nil, "", entities.NewResolutionError(fmt.Sprintf("unknown profile %q", sel.Profile))
		}
		for _, id := range p.Components {
			seed[id] = true
		}
		template = p.DependencyTemplate
	}

	for _, id := range sel.Components {
		if _, ok := r.catalog.Lookup(id); !ok {
			return nil, "", entities.NewResolutionError(fmt.Sprintf("unknown component %q", id), id)
		}
		seed[id] = true
	}

	if len(seed) == 0 {
		return nil, "", entities.NewResolutionError("nothing selected: name at least one component or a profile")
	}
	return seed, template, nil
}

// implicationClosure adds every implied component until a fixed point. The
// implies graph is validated acyclic at catalog load, so this terminates.
func (r *SpecResolver) implicationClosure(set map[string]bool) map[string]bool {
	queue := make([]string, 0, len(set))
	for id := range set {
		queue = append(queue, id)
	}
	sort.Strings(queue)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		c, ok := r.catalog.Lookup(id)
		if !ok {
			continue
		}
		for _, implied := range c.Implies {
			if !set[implied] {
				set[implied] = true
				queue = append(queue, implied)
			}
		}
	}
	return set
}

// checkConflicts fails if any pair in the closed set conflicts. Either
// direction of declaration counts; the error names both ids in sorted order
// so the message is stable across input orderings.
func (r *SpecResolver) checkConflicts(set map[string]bool) error {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for i, a := range ids {
		ca, _ := r.catalog.Lookup(a)
		for _, b := range ids[i+1:] {
			cb, _ := r.catalog.Lookup(b)
			if slices.Contains(ca.Conflicts, b) || slices.Contains(cb.Conflicts, a) {
				return entities.NewResolutionError("conflicting components selected", a, b)
			}
		}
	}
	return nil
}

// addDefaultRuntimes satisfies ecosystem requirements: if the set needs an
// ecosystem (python/node) but contains no base runtime for it, the
// ecosystem's default runtime is added implicitly. Base runtimes are always
// satisfiable defaults, not user-facing errors.
func (r *SpecResolver) addDefaultRuntimes(set map[string]bool) {
	needed := make(map[values.Ecosystem]bool)
	have := make(map[values.Ecosystem]bool)

	for id := range set {
		c, _ := r.catalog.Lookup(id)
		if c.Ecosystem.IsNone() {
			continue
		}
		if c.Category.IsBaseRuntime() {
			have[c.Ecosystem] = true
		} else {
			needed[c.Ecosystem] = true
		}
	}

	for eco := range needed {
		if have[eco] {
			continue
		}
		if id, ok := r.catalog.DefaultRuntime(eco); ok {
			set[id] = true
		}
	}
}

// recordFlags copies the selection's flags verbatim, rejecting names the
// engine does not understand.
func recordFlags(flags []string) (map[string]bool, error) {
	out := make(map[string]bool, len(flags))
	for _, f := range flags {
		if !slices.Contains(entities.KnownFlags, f) {
			return nil, entities.NewResolutionError(fmt.Sprintf("unknown feature flag %q", f))
		}
		out[f] = true
	}
	return out, nil
}
