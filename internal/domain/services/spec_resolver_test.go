package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

// fakeCatalog is a minimal in-memory catalog mirroring the shape of the real
// one: two runtimes, two frameworks, two mutually exclusive databases, a
// cache and a vector store.
type fakeCatalog struct {
	components []*entities.Component
	profiles   map[string]*entities.Profile
	templates  map[string][]entities.Dependency
}

func (f *fakeCatalog) Lookup(id string) (*entities.Component, bool) {
	for _, c := range f.components {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func (f *fakeCatalog) Ordinal(id string) int {
	for i, c := range f.components {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeCatalog) Profile(name string) (*entities.Profile, bool) {
	p, ok := f.profiles[name]
	return p, ok
}

func (f *fakeCatalog) DefaultRuntime(eco values.Ecosystem) (string, bool) {
	for _, c := range f.components {
		if c.Category.IsBaseRuntime() && c.Ecosystem.Equals(eco) {
			return c.ID, true
		}
	}
	return "", false
}

func (f *fakeCatalog) DependencyTemplate(id string) ([]entities.Dependency, bool) {
	deps, ok := f.templates[id]
	return deps, ok
}

func newFakeCatalog() *fakeCatalog {
	python := values.EcosystemPython
	node := values.EcosystemNode

	return &fakeCatalog{
		components: []*entities.Component{
			{ID: "python", Category: values.CategoryBaseRuntime, Ecosystem: python,
				VersionKey: "python_version", DefaultVersion: "3.12"},
			{ID: "node", Category: values.CategoryBaseRuntime, Ecosystem: node,
				VersionKey: "node_version", DefaultVersion: "20"},
			{ID: "fastapi", Category: values.CategoryFramework, Ecosystem: python,
				Implies: []string{"python"},
				Dependencies: []entities.Dependency{
					{Ecosystem: python, Package: "fastapi", Constraint: ">=0.110.0"},
					{Ecosystem: python, Package: "pydantic", Constraint: ">=2.7.0"},
					{Ecosystem: python, Package: "pytest", Constraint: ">=8.1.0", Kind: entities.DependencyDev},
				}},
			{ID: "nextjs", Category: values.CategoryFramework, Ecosystem: node,
				Implies: []string{"node"},
				Dependencies: []entities.Dependency{
					{Ecosystem: node, Package: "next", Constraint: "^14.2.0"},
				}},
			{ID: "mongodb", Category: values.CategoryDatabase, Ecosystem: python,
				VersionKey: "mongodb_version", DefaultVersion: "7.0",
				Conflicts: []string{"postgresql"}},
			{ID: "postgresql", Category: values.CategoryDatabase, Ecosystem: python,
				VersionKey: "postgresql_version", DefaultVersion: "16",
				Dependencies: []entities.Dependency{
					{Ecosystem: python, Package: "sqlalchemy", Constraint: ">=2.0.29"},
				}},
			{ID: "redis", Category: values.CategoryCache, Ecosystem: python,
				VersionKey: "redis_version", DefaultVersion: "7.2",
				Dependencies: []entities.Dependency{
					{Ecosystem: python, Package: "redis", Constraint: ">=5.0.0"},
				}},
			{ID: "chroma", Category: values.CategoryVectorStore, Ecosystem: python,
				VersionKey: "chroma_version", DefaultVersion: "0.4.24",
				Dependencies: []entities.Dependency{
					{Ecosystem: python, Package: "chromadb", Constraint: ">=0.4.24"},
					{Ecosystem: python, Package: "pydantic", Constraint: ">=2.5.0"},
				}},
		},
		profiles: map[string]*entities.Profile{
			"backend": {Name: "backend", Components: []string{"fastapi", "postgresql"}},
			"ai-llm": {Name: "ai-llm", Components: []string{"fastapi", "redis", "chroma"},
				DependencyTemplate: "python-ai"},
		},
		templates: map[string][]entities.Dependency{
			"python-ai": {
				{Ecosystem: values.EcosystemPython, Package: "openai", Constraint: ">=1.23.0"},
				{Ecosystem: values.EcosystemPython, Package: "pydantic", Constraint: ">=2.6.0"},
			},
		},
	}
}

func newTestResolver(catalog Catalog) *SpecResolver {
	builtins := map[string]string{
		"python_version":     "3.12",
		"node_version":       "20",
		"mongodb_version":    "7.0",
		"postgresql_version": "16",
		"redis_version":      "7.2",
		"chroma_version":     "0.4.24",
	}
	return NewSpecResolver(catalog, NewVersionResolver(builtins))
}

func TestSpecResolver_ImpliedRuntimeAdded(t *testing.T) {
	resolver := newTestResolver(newFakeCatalog())

	spec, err := resolver.Resolve(entities.Selection{
		TargetDir:  "/tmp/app",
		Mode:       values.ModeCreate,
		Components: []string{"fastapi"},
	}, VersionInputs{})

	require.NoError(t, err)
	assert.Equal(t, []string{"python", "fastapi"}, spec.Components)
	assert.Equal(t, "3.12", spec.Version("python_version"))
}

func TestSpecResolver_ProfileAndExplicitComponentsAreAdditive(t *testing.T) {
	resolver := newTestResolver(newFakeCatalog())

	spec, err := resolver.Resolve(entities.Selection{
		TargetDir:  "/tmp/app",
		Mode:       values.ModeCreate,
		Profile:    "backend",
		Components: []string{"redis"},
	}, VersionInputs{})

	require.NoError(t, err)
	assert.Equal(t, []string{"python", "fastapi", "postgresql", "redis"}, spec.Components)
	assert.Equal(t, "", spec.DependencyTemplate)
}

func TestSpecResolver_ProfileCarriesDependencyTemplate(t *testing.T) {
	resolver := newTestResolver(newFakeCatalog())

	spec, err := resolver.Resolve(entities.Selection{
		TargetDir: "/tmp/app",
		Mode:      values.ModeCreate,
		Profile:   "ai-llm",
	}, VersionInputs{})

	require.NoError(t, err)
	assert.Equal(t, "python-ai", spec.DependencyTemplate)
}

func TestSpecResolver_ConflictDetectedInEitherOrder(t *testing.T) {
	resolver := newTestResolver(newFakeCatalog())

	for _, selection := range [][]string{
		{"mongodb", "postgresql"},
		{"postgresql", "mongodb"},
	} {
		_, err := resolver.Resolve(entities.Selection{
			TargetDir:  "/tmp/app",
			Mode:       values.ModeCreate,
			Components: selection,
		}, VersionInputs{})

		var resErr *entities.ResolutionError
		require.ErrorAs(t, err, &resErr)
		// Both ids named, in sorted order, regardless of input order.
		assert.Equal(t, []string{"mongodb", "postgresql"}, resErr.ConflictingIDs)
	}
}

func TestSpecResolver_ConflictViaImplication(t *testing.T) {
	resolver := newTestResolver(newFakeCatalog())

	// The backend profile brings postgresql; adding mongodb explicitly must
	// still collide even though postgresql was never named directly.
	_, err := resolver.Resolve(entities.Selection{
		TargetDir:  "/tmp/app",
		Mode:       values.ModeCreate,
		Profile:    "backend",
		Components: []string{"mongodb"},
	}, VersionInputs{})

	var resErr *entities.ResolutionError
	require.ErrorAs(t, err, &resErr)
}

func TestSpecResolver_DefaultRuntimeAddedForEcosystem(t *testing.T) {
	resolver := newTestResolver(newFakeCatalog())

	// redis needs the python ecosystem but is not a runtime itself.
	spec, err := resolver.Resolve(entities.Selection{
		TargetDir:  "/tmp/app",
		Mode:       values.ModeCreate,
		Components: []string{"redis"},
	}, VersionInputs{})

	require.NoError(t, err)
	assert.Equal(t, []string{"python", "redis"}, spec.Components)
}

func TestSpecResolver_DeterministicOrderRegardlessOfInput(t *testing.T) {
	resolver := newTestResolver(newFakeCatalog())

	first, err := resolver.Resolve(entities.Selection{
		TargetDir:  "/tmp/app",
		Mode:       values.ModeCreate,
		Components: []string{"chroma", "fastapi", "redis"},
	}, VersionInputs{})
	require.NoError(t, err)

	second, err := resolver.Resolve(entities.Selection{
		TargetDir:  "/tmp/app",
		Mode:       values.ModeCreate,
		Components: []string{"redis", "chroma", "fastapi"},
	}, VersionInputs{})
	require.NoError(t, err)

	assert.Equal(t, first.Components, second.Components)
	assert.Equal(t, []string{"python", "fastapi", "redis", "chroma"}, first.Components)
}

func TestSpecResolver_UnknownComponentRejected(t *testing.T) {
	resolver := newTestResolver(newFakeCatalog())

	_, err := resolver.Resolve(entities.Selection{
		TargetDir:  "/tmp/app",
		Mode:       values.ModeCreate,
		Components: []string{"rabbitmq"},
	}, VersionInputs{})

	var resErr *entities.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, resErr.Reason, "rabbitmq")
}

func TestSpecResolver_UnknownProfileRejected(t *testing.T) {
	resolver := newTestResolver(newFakeCatalog())

	_, err := resolver.Resolve(entities.Selection{
		TargetDir: "/tmp/app",
		Mode:      values.ModeCreate,
		Profile:   "kitchen-sink",
	}, VersionInputs{})

	var resErr *entities.ResolutionError
	require.ErrorAs(t, err, &resErr)
}

func TestSpecResolver_EmptySelectionRejected(t *testing.T) {
	resolver := newTestResolver(newFakeCatalog())

	_, err := resolver.Resolve(entities.Selection{
		TargetDir: "/tmp/app",
		Mode:      values.ModeCreate,
	}, VersionInputs{})

	var resErr *entities.ResolutionError
	require.ErrorAs(t, err, &resErr)
}

func TestSpecResolver_UnknownFlagRejected(t *testing.T) {
	resolver := newTestResolver(newFakeCatalog())

	_, err := resolver.Resolve(entities.Selection{
		TargetDir:  "/tmp/app",
		Mode:       values.ModeCreate,
		Components: []string{"redis"},
		Flags:      []string{"turbo"},
	}, VersionInputs{})

	var resErr *entities.ResolutionError
	require.ErrorAs(t, err, &resErr)
}

func TestSpecResolver_FlagsRecordedVerbatim(t *testing.T) {
	resolver := newTestResolver(newFakeCatalog())

	spec, err := resolver.Resolve(entities.Selection{
		TargetDir:  "/tmp/app",
		Mode:       values.ModeCreate,
		Components: []string{"redis"},
		Flags:      []string{entities.FlagDeps, entities.FlagExamples},
	}, VersionInputs{})

	require.NoError(t, err)
	assert.True(t, spec.HasFlag(entities.FlagDeps))
	assert.True(t, spec.HasFlag(entities.FlagExamples))
	assert.False(t, spec.HasFlag(entities.FlagSkipGit))
}

func TestSpecResolver_ProjectVersionsIgnoredInCreateMode(t *testing.T) {
	resolver := newTestResolver(newFakeCatalog())

	in := VersionInputs{ProjectVersions: map[string]string{"python_version": "3.10"}}

	created, err := resolver.Resolve(entities.Selection{
		TargetDir:  "/tmp/app",
		Mode:       values.ModeCreate,
		Components: []string{"fastapi"},
	}, in)
	require.NoError(t, err)
	assert.Equal(t, "3.12", created.Version("python_version"))

	added, err := resolver.Resolve(entities.Selection{
		TargetDir:  "/tmp/app",
		Mode:       values.ModeAdd,
		Components: []string{"fastapi"},
	}, in)
	require.NoError(t, err)
	assert.Equal(t, "3.10", added.Version("python_version"))
}
