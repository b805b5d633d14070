package generate

import (
	"fmt"
	"path/filepath"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/services"
	"github.com/stackforge-dev/stackforge/internal/templates"
)

// TreeGenerator turns a resolved spec into a fully staged project tree.
// Nothing touches the filesystem here; the commit controller promotes the
// tree afterwards.
type TreeGenerator struct {
	catalog    services.Catalog
	generators map[string]Generator
}

// NewTreeGenerator creates a tree generator over the standard generator set.
func NewTreeGenerator(catalog services.Catalog) *TreeGenerator {
	return &TreeGenerator{
		catalog:    catalog,
		generators: NewGeneratorSet(),
	}
}

// Generate stages every file for the spec and returns the tree together with
// the host-port assignment used in the orchestration file. persistedPorts
// carries the assignments of a previous run (empty in create mode); returned
// assignments are a superset and must be persisted by the caller.
func (g *TreeGenerator) Generate(spec *entities.ResolvedSpec, deps services.Merged, persistedPorts map[string]int) (*entities.StagedTree, map[string]int, error) {
	tmpl, err := templates.Load()
	if err != nil {
		return nil, nil, &entities.GenerationError{Reason: err.Error()}
	}

	project := filepath.Base(spec.TargetDir)
	ctx := &Context{
		Spec: spec,
		Deps: deps,
		tmpl: tmpl,
		data: templates.Data{
			Project:    project,
			Components: spec.Components,
			Versions:   spec.Versions,
			Flags:      spec.FlagNames(),
		},
	}

	tree := entities.NewStagedTree()
	if err := ctx.stage(tree, "project", "README.md", "project/README.md"); err != nil {
		return nil, nil, err
	}
	if !spec.HasFlag(entities.FlagSkipGit) {
		if err := ctx.stage(tree, "project", ".gitignore", "project/gitignore"); err != nil {
			return nil, nil, err
		}
	}

	for _, id := range spec.Components {
		gen, ok := g.generators[id]
		if !ok {
			return nil, nil, &entities.GenerationError{
				Reason: fmt.Sprintf("no generator registered for component %s", id),
			}
		}
		if err := gen.Generate(ctx, tree); err != nil {
			return nil, nil, err
		}
	}

	ports := AssignPorts(g.catalog, spec, persistedPorts)

	compose, err := BuildCompose(g.catalog, spec, ports)
	if err != nil {
		return nil, nil, &entities.GenerationError{Reason: err.Error(), Path: entities.OrchestrationFilePath}
	}
	if err := tree.SetMergeable(entities.OrchestrationFilePath, compose); err != nil {
		return nil, nil, err
	}

	descriptor, err := BuildDevcontainer(g.catalog, spec, ports, project)
	if err != nil {
		return nil, nil, &entities.GenerationError{Reason: err.Error(), Path: entities.ContainerDescriptorPath}
	}
	if err := tree.SetMergeable(entities.ContainerDescriptorPath, descriptor); err != nil {
		return nil, nil, err
	}

	return tree, ports, nil
}
