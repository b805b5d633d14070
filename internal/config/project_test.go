package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectState_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	state := &ProjectState{
		Components: []string{"python", "fastapi", "postgresql"},
		Versions:   map[string]string{"python_version": "3.12", "postgresql_version": "16"},
		Ports:      map[string]int{"fastapi": 8000, "postgresql": 5432},
	}
	require.NoError(t, SaveProjectState(dir, state))

	loaded, err := LoadProjectState(dir)
	require.NoError(t, err)
	assert.Equal(t, state.Components, loaded.Components)
	assert.Equal(t, state.Versions, loaded.Versions)
	assert.Equal(t, state.Ports, loaded.Ports)
}

func TestProjectState_MissingFileYieldsEmptyState(t *testing.T) {
	state, err := LoadProjectState(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, state.Components)
	assert.Empty(t, state.Versions)
	assert.Empty(t, state.Ports)
}

func TestProjectState_CorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectStateFile), []byte("components = {broken"), 0o644))

	_, err := LoadProjectState(dir)
	assert.Error(t, err)
}
