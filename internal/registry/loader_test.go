package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

func TestRegistry_LoadEmbeddedCatalog(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	var ids []string
	for _, c := range reg.All() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{
		"python", "node", "fastapi", "nextjs",
		"mongodb", "postgresql", "redis", "chroma",
	}, ids)
}

func TestRegistry_OrdinalsFollowCatalogOrder(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	assert.Less(t, reg.Ordinal("python"), reg.Ordinal("fastapi"))
	assert.Less(t, reg.Ordinal("fastapi"), reg.Ordinal("chroma"))
}

func TestRegistry_DatabaseConflictIsSymmetric(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	mongo, ok := reg.Lookup("mongodb")
	require.True(t, ok)
	postgres, ok := reg.Lookup("postgresql")
	require.True(t, ok)

	assert.Contains(t, mongo.Conflicts, "postgresql")
	assert.Contains(t, postgres.Conflicts, "mongodb")
}

func TestRegistry_FrameworksImplyTheirRuntime(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	fastapi, ok := reg.Lookup("fastapi")
	require.True(t, ok)
	assert.Contains(t, fastapi.Implies, "python")

	nextjs, ok := reg.Lookup("nextjs")
	require.True(t, ok)
	assert.Contains(t, nextjs.Implies, "node")
}

func TestRegistry_BuiltinVersionsCoverEveryVersionKey(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	builtins := reg.BuiltinVersions()
	for _, c := range reg.All() {
		if c.HasVersionKey() {
			assert.NotEmpty(t, builtins[c.VersionKey], "missing builtin for %s", c.VersionKey)
		}
	}
	assert.Equal(t, "3.12", builtins["python_version"])
}

func TestRegistry_DefaultRuntimePerEcosystem(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	id, ok := reg.DefaultRuntime(values.EcosystemPython)
	require.True(t, ok)
	assert.Equal(t, "python", id)

	id, ok = reg.DefaultRuntime(values.EcosystemNode)
	require.True(t, ok)
	assert.Equal(t, "node", id)

	_, ok = reg.DefaultRuntime(values.EcosystemNone)
	assert.False(t, ok)
}

func TestRegistry_ProfilesReferenceKnownComponents(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	profiles := reg.Profiles()
	require.NotEmpty(t, profiles)

	for _, p := range profiles {
		for _, id := range p.Components {
			_, ok := reg.Lookup(id)
			assert.True(t, ok, "profile %s references unknown component %s", p.Name, id)
		}
		if p.DependencyTemplate != "" {
			_, ok := reg.DependencyTemplate(p.DependencyTemplate)
			assert.True(t, ok, "profile %s references unknown template %s", p.Name, p.DependencyTemplate)
		}
	}
}

func TestRegistry_DependencyTemplatesParse(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	deps, ok := reg.DependencyTemplate("python-ai")
	require.True(t, ok)
	require.NotEmpty(t, deps)
	for _, d := range deps {
		assert.True(t, d.Ecosystem.Equals(values.EcosystemPython))
		_, err := d.MinimumVersion()
		assert.NoError(t, err, "template dependency %s has unparseable constraint", d.Package)
	}
}
