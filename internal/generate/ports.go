package generate

import (
	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/services"
)

// AssignPorts chooses a host port for every runnable component in the spec.
//
// Persisted assignments from a previous run are honored first, so that add
// runs never move a port a developer already depends on. Every remaining
// runnable component receives the first free port at or above its catalog
// default, walking the spec's deterministic component order.
func AssignPorts(catalog services.Catalog, spec *entities.ResolvedSpec, persisted map[string]int) map[string]int {
	assigned := make(map[string]int)
	used := make(map[int]bool)

	// Reserve every persisted port, including those of components outside
	// this spec; their services still occupy the port on the host.
	for _, port := range persisted {
		used[port] = true
	}

	for _, id := range spec.Components {
		c, ok := catalog.Lookup(id)
		if !ok || !c.IsRunnable() {
			continue
		}
		if port, ok := persisted[id]; ok {
			assigned[id] = port
			continue
		}
		port := c.Service.DefaultPort
		for used[port] {
			port++
		}
		assigned[id] = port
		used[port] = true
	}
	return assigned
}
