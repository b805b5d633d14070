package generate

import (
	"encoding/json"
	"fmt"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/services"
)

type devcontainerFile struct {
	Name              string         `json:"name"`
	DockerComposeFile string         `json:"dockerComposeFile,omitempty"`
	Service           string         `json:"service,omitempty"`
	WorkspaceFolder   string         `json:"workspaceFolder,omitempty"`
	ForwardPorts      []int          `json:"forwardPorts,omitempty"`
	Customizations    *vscodeSection `json:"customizations,omitempty"`
	Mounts            []string       `json:"mounts,omitempty"`
}

type vscodeSection struct {
	VSCode vscodeCustomizations `json:"vscode"`
}

type vscodeCustomizations struct {
	Extensions []string `json:"extensions,omitempty"`
}

// BuildDevcontainer assembles the container descriptor from the per-component
// hints: forwarded ports from the assigned host ports, editor extensions and
// mounts as the union of every component's contribution in spec order.
func BuildDevcontainer(catalog services.Catalog, spec *entities.ResolvedSpec, ports map[string]int, project string) ([]byte, error) {
	doc := devcontainerFile{Name: project}

	var extensions, mounts []string
	for _, id := range spec.Components {
		c, ok := catalog.Lookup(id)
		if !ok {
			continue
		}
		if c.IsRunnable() {
			if doc.Service == "" {
				doc.Service = id
			}
			doc.ForwardPorts = append(doc.ForwardPorts, ports[id])
		}
		extensions = append(extensions, c.Devcontainer.Extensions...)
		mounts = append(mounts, c.Devcontainer.Mounts...)
	}

	if doc.Service != "" {
		doc.DockerComposeFile = entities.OrchestrationFilePath
		doc.WorkspaceFolder = "/app"
	}
	if ext := dedupeStrings(extensions); len(ext) > 0 {
		doc.Customizations = &vscodeSection{VSCode: vscodeCustomizations{Extensions: ext}}
	}
	doc.Mounts = dedupeStrings(mounts)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling container descriptor: %w", err)
	}
	return append(out, '\n'), nil
}

// MergeDevcontainer folds a generated descriptor into an existing one.
// Array-valued keys become the union of both documents with the existing
// order first; every other key keeps its existing value and missing keys are
// adopted from the generated document.
func MergeDevcontainer(existing, fresh []byte) ([]byte, error) {
	var current, generated map[string]any
	if err := json.Unmarshal(existing, &current); err != nil {
		return nil, fmt.Errorf("parsing existing container descriptor: %w", err)
	}
	if err := json.Unmarshal(fresh, &generated); err != nil {
		return nil, fmt.Errorf("parsing generated container descriptor: %w", err)
	}

	for key, value := range generated {
		existingValue, ok := current[key]
		if !ok {
			current[key] = value
			continue
		}
		switch key {
		case "forwardPorts", "mounts":
			current[key] = unionLists(existingValue, value)
		case "customizations":
			current[key] = mergeCustomizations(existingValue, value)
		}
	}

	out, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling merged container descriptor: %w", err)
	}
	return append(out, '\n'), nil
}

func mergeCustomizations(existing, fresh any) any {
	cur, ok1 := existing.(map[string]any)
	gen, ok2 := fresh.(map[string]any)
	if !ok1 || !ok2 {
		return existing
	}
	curVS, ok1 := cur["vscode"].(map[string]any)
	genVS, ok2 := gen["vscode"].(map[string]any)
	if !ok2 {
		return existing
	}
	if !ok1 {
		cur["vscode"] = genVS
		return cur
	}
	if genExt, ok := genVS["extensions"]; ok {
		if curExt, ok := curVS["extensions"]; ok {
			curVS["extensions"] = unionLists(curExt, genExt)
		} else {
			curVS["extensions"] = genExt
		}
	}
	cur["vscode"] = curVS
	return cur
}

// unionLists appends the elements of b not already present in a. Elements
// are compared by their printed form since JSON numbers decode as float64.
func unionLists(a, b any) []any {
	listA, _ := a.([]any)
	listB, _ := b.([]any)

	seen := make(map[string]bool, len(listA))
	out := make([]any, 0, len(listA)+len(listB))
	for _, v := range listA {
		seen[fmt.Sprint(v)] = true
		out = append(out, v)
	}
	for _, v := range listB {
		if !seen[fmt.Sprint(v)] {
			seen[fmt.Sprint(v)] = true
			out = append(out, v)
		}
	}
	return out
}
