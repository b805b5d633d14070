package generate

import (
	"encoding/json"
	"fmt"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

// fastapiGenerator stages the backend application skeleton: a versioned API
// entrypoint, a settings module that only mentions the services actually in
// the spec, and a Dockerfile building from the skeleton directory.
type fastapiGenerator struct{}

func (fastapiGenerator) ComponentID() string { return "fastapi" }

func (fastapiGenerator) Generate(ctx *Context, tree *entities.StagedTree) error {
	skeleton := []struct{ target, template string }{
		{"fastapi/app/main.py", "fastapi/app/main.py"},
		{"fastapi/app/core/config.py", "fastapi/app/core/config.py"},
		{"fastapi/app/api/routes.py", "fastapi/app/api/routes.py"},
		{"fastapi/Dockerfile", "fastapi/Dockerfile"},
	}
	for _, s := range skeleton {
		if err := ctx.stage(tree, "fastapi", s.target, s.template); err != nil {
			return err
		}
	}
	for _, init := range []string{
		"fastapi/app/__init__.py",
		"fastapi/app/core/__init__.py",
		"fastapi/app/api/__init__.py",
	} {
		if err := ctx.stageLiteral(tree, "fastapi", init, nil); err != nil {
			return err
		}
	}

	return ctx.stageExamples(tree, "fastapi", []exampleSpec{
		{template: "fastapi/example-basic-crud.py", target: "examples/fastapi-basic-crud.py"},
		{template: "fastapi/example-caching-api.py", target: "examples/fastapi-caching-api.py", when: `Has("redis")`},
		{template: "fastapi/example-rag-api.py", target: "examples/fastapi-rag-api.py", when: `Has("chroma")`},
	})
}

// nextjsGenerator stages the frontend skeleton and, when the deps flag is
// active, a package manifest assembled from the merged node dependency list.
type nextjsGenerator struct{}

func (nextjsGenerator) ComponentID() string { return "nextjs" }

func (nextjsGenerator) Generate(ctx *Context, tree *entities.StagedTree) error {
	skeleton := []struct{ target, template string }{
		{"nextjs/app/page.tsx", "nextjs/app/page.tsx"},
		{"nextjs/app/layout.tsx", "nextjs/app/layout.tsx"},
		{"nextjs/next.config.mjs", "nextjs/next.config.mjs"},
		{"nextjs/tsconfig.json", "nextjs/tsconfig.json"},
		{"nextjs/Dockerfile", "nextjs/Dockerfile"},
	}
	for _, s := range skeleton {
		if err := ctx.stage(tree, "nextjs", s.target, s.template); err != nil {
			return err
		}
	}

	if !ctx.Spec.HasFlag(entities.FlagDeps) {
		return nil
	}
	manifest, err := packageManifest(ctx.Project(), ctx.Deps.Manifest(values.EcosystemNode))
	if err != nil {
		return fmt.Errorf("building package manifest: %w", err)
	}
	return ctx.stageLiteral(tree, "nextjs", "nextjs/package.json", manifest)
}

type nodePackageFile struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

func packageManifest(project string, deps []entities.Dependency) ([]byte, error) {
	doc := nodePackageFile{
		Name:    project,
		Version: "0.1.0",
		Private: true,
		Scripts: map[string]string{
			"dev":   "next dev",
			"build": "next build",
			"start": "next start",
			"lint":  "next lint",
		},
	}
	for _, d := range deps {
		if d.KindOrDefault() == entities.DependencyDev {
			if doc.DevDependencies == nil {
				doc.DevDependencies = make(map[string]string)
			}
			doc.DevDependencies[d.Package] = d.ManifestLine()
			continue
		}
		if doc.Dependencies == nil {
			doc.Dependencies = make(map[string]string)
		}
		doc.Dependencies[d.Package] = d.ManifestLine()
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
