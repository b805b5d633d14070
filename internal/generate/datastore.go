package generate

import (
	"github.com/stackforge-dev/stackforge/internal/domain/entities"
)

// The datastore generators contribute example code only. Their service
// entries and client packages come from catalog metadata and flow through
// the orchestration builder and the dependency merger.

type mongodbGenerator struct{}

func (mongodbGenerator) ComponentID() string { return "mongodb" }

func (mongodbGenerator) Generate(ctx *Context, tree *entities.StagedTree) error {
	return ctx.stageExamples(tree, "mongodb", []exampleSpec{
		{template: "mongodb/example-crud.py", target: "examples/mongodb-crud.py"},
	})
}

type postgresqlGenerator struct{}

func (postgresqlGenerator) ComponentID() string { return "postgresql" }

func (postgresqlGenerator) Generate(ctx *Context, tree *entities.StagedTree) error {
	return ctx.stageExamples(tree, "postgresql", []exampleSpec{
		{template: "postgresql/example-crud.py", target: "examples/postgresql-crud.py"},
	})
}

type redisGenerator struct{}

func (redisGenerator) ComponentID() string { return "redis" }

func (redisGenerator) Generate(ctx *Context, tree *entities.StagedTree) error {
	return ctx.stageExamples(tree, "redis", []exampleSpec{
		{template: "redis/example-caching.py", target: "examples/redis-caching.py"},
	})
}

type chromaGenerator struct{}

func (chromaGenerator) ComponentID() string { return "chroma" }

func (chromaGenerator) Generate(ctx *Context, tree *entities.StagedTree) error {
	return ctx.stageExamples(tree, "chroma", []exampleSpec{
		{template: "chroma/example-basic-operations.py", target: "examples/chroma-basic-operations.py"},
	})
}
