package services

import (
	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

// DependencyMerger merges the per-ecosystem package manifests of every
// resolved component into one deduplicated list per ecosystem.
//
// Merge semantics:
//   - first-seen ordering is preserved for output stability
//   - when two components declare the same package, the entry with the
//     numerically highest minimum version wins (highest-requirement-wins)
//   - the profile's dependency template contributes entries last, subject
//     to the same deduplication
type DependencyMerger struct {
	catalog Catalog
}

// NewDependencyMerger creates a new dependency merger service.
func NewDependencyMerger(catalog Catalog) *DependencyMerger {
	return &DependencyMerger{catalog: catalog}
}

// Merged holds the deduplicated manifests keyed by ecosystem.
type Merged map[values.Ecosystem][]entities.Dependency

// Manifest returns the merged list for an ecosystem (nil if empty).
func (m Merged) Manifest(eco values.Ecosystem) []entities.Dependency {
	return m[eco]
}

// Merge gathers manifest entries in spec order (the spec's component order is
// already deterministic) and deduplicates by package name within each
// ecosystem. Given the same ResolvedSpec the result is identical across runs.
func (m *DependencyMerger) Merge(spec *entities.ResolvedSpec) (Merged, error) {
	out := make(Merged)
	// position of each package in its ecosystem list, for in-place upgrades
	index := make(map[values.Ecosystem]map[string]int)

	add := func(dep entities.Dependency) error {
		eco := dep.Ecosystem
		if index[eco] == nil {
			index[eco] = make(map[string]int)
		}
		pos, seen := index[eco][dep.Package]
		if !seen {
			index[eco][dep.Package] = len(out[eco])
			out[eco] = append(out[eco], dep)
			return nil
		}

		existing := out[eco][pos]
		existingMin, err := existing.MinimumVersion()
		if err != nil {
			return err
		}
		candidateMin, err := dep.MinimumVersion()
		if err != nil {
			return err
		}
		// Strictly higher replaces; ties keep the first-seen entry.
		if candidateMin.GreaterThan(existingMin) {
			out[eco][pos] = dep
		}
		return nil
	}

	for _, id := range spec.Components {
		c, ok := m.catalog.Lookup(id)
		if !ok {
			continue
		}
		for _, dep := range c.Dependencies {
			if err := add(dep); err != nil {
				return nil, err
			}
		}
	}

	if spec.DependencyTemplate != "" {
		deps, ok := m.catalog.DependencyTemplate(spec.DependencyTemplate)
		if ok {
			for _, dep := range deps {
				if err := add(dep); err != nil {
					return nil, err
				}
			}
		}
	}

	return out, nil
}
