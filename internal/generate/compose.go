package generate

import (
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/services"
)

// BuildCompose renders the orchestration file for every runnable component
// in the spec. Services appear in spec order and every mapping is emitted
// through ordered nodes, so the output is byte-identical across runs.
func BuildCompose(catalog services.Catalog, spec *entities.ResolvedSpec, ports map[string]int) ([]byte, error) {
	serviceNodes := yaml.MapSlice{}
	var volumeNames []string

	for _, id := range spec.Components {
		c, ok := catalog.Lookup(id)
		if !ok || !c.IsRunnable() {
			continue
		}
		serviceNodes = append(serviceNodes, yaml.MapItem{
			Key:   id,
			Value: serviceNode(c, spec, ports[id]),
		})
		volumeNames = append(volumeNames, namedVolumes(c.Service.Volumes)...)
	}

	doc := yaml.MapSlice{{Key: "services", Value: serviceNodes}}
	if len(volumeNames) > 0 {
		vols := yaml.MapSlice{}
		for _, name := range dedupeStrings(volumeNames) {
			vols = append(vols, yaml.MapItem{Key: name, Value: nil})
		}
		doc = append(doc, yaml.MapItem{Key: "volumes", Value: vols})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling orchestration file: %w", err)
	}
	return out, nil
}

func serviceNode(c *entities.Component, spec *entities.ResolvedSpec, hostPort int) yaml.MapSlice {
	s := c.Service
	node := yaml.MapSlice{}

	if s.Build != "" {
		node = append(node, yaml.MapItem{Key: "build", Value: "./" + s.Build})
	} else {
		node = append(node, yaml.MapItem{Key: "image", Value: imageRef(c, spec)})
	}
	if s.Command != "" {
		node = append(node, yaml.MapItem{Key: "command", Value: s.Command})
	}
	node = append(node, yaml.MapItem{
		Key:   "ports",
		Value: []string{fmt.Sprintf("%d:%d", hostPort, s.ContainerPortOrDefault())},
	})
	if len(s.Environment) > 0 {
		env := yaml.MapSlice{}
		for _, key := range sortedKeys(s.Environment) {
			env = append(env, yaml.MapItem{Key: key, Value: s.Environment[key]})
		}
		node = append(node, yaml.MapItem{Key: "environment", Value: env})
	}
	if len(s.Volumes) > 0 {
		node = append(node, yaml.MapItem{Key: "volumes", Value: s.Volumes})
	}
	node = append(node, yaml.MapItem{Key: "restart", Value: "unless-stopped"})
	return node
}

// imageRef tags the image with the component's resolved version when it has
// a version key; unversioned images stay as written in the catalog.
func imageRef(c *entities.Component, spec *entities.ResolvedSpec) string {
	if c.HasVersionKey() {
		if v := spec.Version(c.VersionKey); v != "" {
			return c.Service.Image + ":" + v
		}
	}
	return c.Service.Image
}

// MergeCompose folds a freshly generated orchestration file into an existing
// one. Existing service entries and top-level keys always win; only services
// and named volumes absent from the existing file are appended.
func MergeCompose(existing, fresh []byte) ([]byte, error) {
	current, err := decodeOrdered(existing)
	if err != nil {
		return nil, fmt.Errorf("parsing existing orchestration file: %w", err)
	}
	generated, err := decodeOrdered(fresh)
	if err != nil {
		return nil, fmt.Errorf("parsing generated orchestration file: %w", err)
	}

	merged := yaml.MapSlice{}
	for _, item := range current {
		key, _ := item.Key.(string)
		switch key {
		case "services", "volumes":
			item.Value = unionOrdered(asMapSlice(item.Value), asMapSlice(lookupOrdered(generated, key)))
		}
		merged = append(merged, item)
	}
	for _, item := range generated {
		key, _ := item.Key.(string)
		if !hasOrderedKey(current, key) {
			merged = append(merged, item)
		}
	}

	out, err := yaml.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("marshaling merged orchestration file: %w", err)
	}
	return out, nil
}

func decodeOrdered(data []byte) (yaml.MapSlice, error) {
	var doc yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return doc, nil
}

// unionOrdered keeps every item of a and appends the items of b whose keys
// a does not already carry.
func unionOrdered(a, b yaml.MapSlice) yaml.MapSlice {
	out := append(yaml.MapSlice{}, a...)
	for _, item := range b {
		key, _ := item.Key.(string)
		if !hasOrderedKey(a, key) {
			out = append(out, item)
		}
	}
	return out
}

func lookupOrdered(doc yaml.MapSlice, key string) any {
	for _, item := range doc {
		if k, ok := item.Key.(string); ok && k == key {
			return item.Value
		}
	}
	return nil
}

func hasOrderedKey(doc yaml.MapSlice, key string) bool {
	for _, item := range doc {
		if k, ok := item.Key.(string); ok && k == key {
			return true
		}
	}
	return false
}

func asMapSlice(v any) yaml.MapSlice {
	ms, _ := v.(yaml.MapSlice)
	return ms
}

// namedVolumes extracts the named-volume tokens from a service's volume
// mounts, skipping host-path binds.
func namedVolumes(mounts []string) []string {
	var names []string
	for _, m := range mounts {
		for i := 0; i < len(m); i++ {
			if m[i] == ':' {
				name := m[:i]
				if len(name) > 0 && name[0] != '.' && name[0] != '/' {
					names = append(names, name)
				}
				break
			}
		}
	}
	return names
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
