package generate

import (
	"strings"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

// pythonGenerator stages the Python runtime marker and, when the deps flag
// is active, the merged requirements manifests. The manifests live inside
// the backend skeleton when one exists so its Dockerfile can copy them from
// its own build context.
type pythonGenerator struct{}

func (pythonGenerator) ComponentID() string { return "python" }

func (pythonGenerator) Generate(ctx *Context, tree *entities.StagedTree) error {
	if err := ctx.stage(tree, "python", ".python-version", "python/python-version"); err != nil {
		return err
	}
	if !ctx.Spec.HasFlag(entities.FlagDeps) {
		return nil
	}

	deps := ctx.Deps.Manifest(values.EcosystemPython)
	if len(deps) == 0 {
		return nil
	}

	dir := ""
	if ctx.Spec.HasComponent("fastapi") {
		dir = "fastapi/"
	}

	runtime, dev := splitByKind(deps)
	if len(runtime) > 0 {
		if err := ctx.stageLiteral(tree, "python", dir+"requirements.txt", requirementsFile(runtime)); err != nil {
			return err
		}
	}
	if len(dev) > 0 {
		if err := ctx.stageLiteral(tree, "python", dir+"requirements-dev.txt", requirementsFile(dev)); err != nil {
			return err
		}
	}
	return nil
}

// nodeGenerator stages the Node.js version marker. The package manifest is
// written by the frontend generator, which owns the skeleton directory.
type nodeGenerator struct{}

func (nodeGenerator) ComponentID() string { return "node" }

func (nodeGenerator) Generate(ctx *Context, tree *entities.StagedTree) error {
	return ctx.stage(tree, "node", ".nvmrc", "node/nvmrc")
}

func splitByKind(deps []entities.Dependency) (runtime, dev []entities.Dependency) {
	for _, d := range deps {
		if d.KindOrDefault() == entities.DependencyDev {
			dev = append(dev, d)
		} else {
			runtime = append(runtime, d)
		}
	}
	return runtime, dev
}

func requirementsFile(deps []entities.Dependency) []byte {
	var b strings.Builder
	for _, d := range deps {
		b.WriteString(d.ManifestLine())
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
