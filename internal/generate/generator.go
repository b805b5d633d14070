// Package generate builds the staged project tree for a resolved spec:
// per-component skeletons rendered from the embedded templates, dependency
// manifests from the merged package lists, and the two mergeable artifacts
// (orchestration file and container descriptor) assembled from catalog
// metadata.
package generate

import (
	"text/template"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/services"
	"github.com/stackforge-dev/stackforge/internal/templates"
)

// Generator produces the exclusive files one component contributes to the
// staged tree. Generators never write the mergeable artifacts; those are
// assembled centrally after every generator has run.
type Generator interface {
	// ComponentID names the catalog component this generator serves.
	ComponentID() string

	// Generate stages the component's files. A second claim on an already
	// staged path surfaces as a GenerationError from the tree.
	Generate(ctx *Context, tree *entities.StagedTree) error
}

// NewGeneratorSet returns the registered generator for every component id.
// The mapping is explicit so a catalog component without a generator is a
// deliberate choice, not a silent fallthrough.
func NewGeneratorSet() map[string]Generator {
	return map[string]Generator{
		"python":     pythonGenerator{},
		"node":       nodeGenerator{},
		"fastapi":    fastapiGenerator{},
		"nextjs":     nextjsGenerator{},
		"mongodb":    mongodbGenerator{},
		"postgresql": postgresqlGenerator{},
		"redis":      redisGenerator{},
		"chroma":     chromaGenerator{},
	}
}

// Context carries everything a generator reads: the resolved spec, the merged
// dependency manifests, and the parsed template set with its render data.
type Context struct {
	Spec *entities.ResolvedSpec
	Deps services.Merged

	tmpl *template.Template
	data templates.Data
}

// Project returns the target project name used in rendered files.
func (c *Context) Project() string {
	return c.data.Project
}

func (c *Context) render(name string) ([]byte, error) {
	return templates.Render(c.tmpl, name, c.data)
}

// stage renders one template and records it as an exclusive file.
func (c *Context) stage(tree *entities.StagedTree, owner, target, templateName string) error {
	content, err := c.render(templateName)
	if err != nil {
		return &entities.GenerationError{Reason: err.Error(), Path: target, Owners: []string{owner}}
	}
	return tree.Add(entities.StagedFile{Path: target, Content: content, Owner: owner})
}

// stageLiteral records a file with fixed content, e.g. package init markers.
func (c *Context) stageLiteral(tree *entities.StagedTree, owner, target string, content []byte) error {
	return tree.Add(entities.StagedFile{Path: target, Content: content, Owner: owner})
}

// exampleSpec binds an example template to its target path and an optional
// gating clause evaluated against the resolved spec.
type exampleSpec struct {
	template string
	target   string
	when     string
}

// stageExamples renders the examples whose clauses hold. Nothing is staged
// unless the examples flag is active.
func (c *Context) stageExamples(tree *entities.StagedTree, owner string, specs []exampleSpec) error {
	if !c.Spec.HasFlag(entities.FlagExamples) {
		return nil
	}

	env := conditionEnv{
		Components: c.Spec.Components,
		Flags:      c.Spec.FlagNames(),
		Mode:       c.Spec.Mode.String(),
	}
	for _, ex := range specs {
		ok, err := evalCondition(ex.when, env)
		if err != nil {
			return &entities.GenerationError{Reason: err.Error(), Path: ex.target, Owners: []string{owner}}
		}
		if !ok {
			continue
		}
		if err := c.stage(tree, owner, ex.target, ex.template); err != nil {
			return err
		}
	}
	return nil
}
