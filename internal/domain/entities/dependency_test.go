package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

func TestDependency_MinimumVersion(t *testing.T) {
	tests := []struct {
		constraint string
		expected   string
	}{
		{">=2.7.0", "2.7.0"},
		{"^14.2.0", "14.2.0"},
		{"~1.13", "1.13.0"},
		{"5.0.0", "5.0.0"},
		{">= 0.4.24", "0.4.24"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			d := Dependency{Package: "pkg", Constraint: tt.constraint}
			v, err := d.MinimumVersion()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.String())
		})
	}
}

func TestDependency_MinimumVersionRejectsEmptyConstraint(t *testing.T) {
	d := Dependency{Package: "pkg", Constraint: ">= "}
	_, err := d.MinimumVersion()
	assert.Error(t, err)
}

func TestDependency_ManifestLine(t *testing.T) {
	python := Dependency{Ecosystem: values.EcosystemPython, Package: "fastapi", Constraint: ">=0.110.0"}
	assert.Equal(t, "fastapi>=0.110.0", python.ManifestLine())

	node := Dependency{Ecosystem: values.EcosystemNode, Package: "next", Constraint: "^14.2.0"}
	assert.Equal(t, "^14.2.0", node.ManifestLine())
}

func TestDependency_KindOrDefault(t *testing.T) {
	assert.Equal(t, DependencyRuntime, Dependency{}.KindOrDefault())
	assert.Equal(t, DependencyDev, Dependency{Kind: DependencyDev}.KindOrDefault())
}
