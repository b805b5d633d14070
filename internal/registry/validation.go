package registry

import (
	"fmt"
	"strings"
)

// validate runs the cross-document checks after every file parsed cleanly:
// dangling implies/conflicts references, implication cycles, profile
// references to unknown components or templates, and version-key collisions.
func (r *Registry) validate() error {
	var errs []string

	for _, c := range r.components {
		for _, ref := range c.Implies {
			if _, ok := r.byID[ref]; !ok {
				errs = append(errs, fmt.Sprintf("component %s implies unknown component %s", c.ID, ref))
			}
		}
		for _, ref := range c.Conflicts {
			if _, ok := r.byID[ref]; !ok {
				errs = append(errs, fmt.Sprintf("component %s conflicts with unknown component %s", c.ID, ref))
			}
			if ref == c.ID {
				errs = append(errs, fmt.Sprintf("component %s conflicts with itself", c.ID))
			}
		}
	}

	seenKeys := make(map[string]string)
	for _, c := range r.components {
		if !c.HasVersionKey() {
			continue
		}
		if c.DefaultVersion == "" {
			errs = append(errs, fmt.Sprintf("component %s declares version key %s without a builtin default", c.ID, c.VersionKey))
		}
		if owner, dup := seenKeys[c.VersionKey]; dup {
			errs = append(errs, fmt.Sprintf("version key %s declared by both %s and %s", c.VersionKey, owner, c.ID))
		}
		seenKeys[c.VersionKey] = c.ID
	}

	if len(errs) == 0 {
		if cycle := r.findImplicationCycle(); len(cycle) > 0 {
			errs = append(errs, fmt.Sprintf("implication cycle: %s", strings.Join(cycle, " -> ")))
		}
	}

	for _, name := range r.profileOrder {
		p := r.profiles[name]
		for _, id := range p.Components {
			if _, ok := r.byID[id]; !ok {
				errs = append(errs, fmt.Sprintf("profile %s references unknown component %s", p.Name, id))
			}
		}
		if p.DependencyTemplate != "" {
			if _, ok := r.templates[p.DependencyTemplate]; !ok {
				errs = append(errs, fmt.Sprintf("profile %s references unknown dependency template %s", p.Name, p.DependencyTemplate))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// findImplicationCycle walks the implies graph depth-first and returns the
// first cycle found, or nil. The graph must be acyclic for the resolver's
// closure to reach a fixed point.
func (r *Registry) findImplicationCycle() []string {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int)

	var walk func(id string, trail []string) []string
	walk = func(id string, trail []string) []string {
		switch state[id] {
		case visiting:
			return append(trail, id)
		case done:
			return nil
		}
		state[id] = visiting

		c := r.byID[id]
		for _, next := range c.Implies {
			if cycle := walk(next, append(trail, id)); cycle != nil {
				return cycle
			}
		}
		state[id] = done
		return nil
	}

	for _, c := range r.components {
		if cycle := walk(c.ID, nil); cycle != nil {
			return cycle
		}
	}
	return nil
}
