package commit

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/values"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func stagedTree(t *testing.T, files map[string]string) *entities.StagedTree {
	t.Helper()
	tree := entities.NewStagedTree()
	for path, content := range files {
		require.NoError(t, tree.Add(entities.StagedFile{
			Path:    path,
			Content: []byte(content),
			Owner:   "test",
		}))
	}
	return tree
}

func specForTarget(target string, mode values.Mode) *entities.ResolvedSpec {
	return &entities.ResolvedSpec{TargetDir: target, Mode: mode}
}

func TestController_CreateWritesFullTree(t *testing.T) {
	target := filepath.Join(t.TempDir(), "myapp")
	tree := stagedTree(t, map[string]string{
		"README.md":           "# myapp\n",
		"fastapi/app/main.py": "app = ...\n",
		".python-version":     "3.12\n",
	})
	require.NoError(t, tree.SetMergeable(entities.OrchestrationFilePath, []byte("services: {}\n")))

	result, err := NewController(testLogger()).Commit(tree, specForTarget(target, values.ModeCreate))
	require.NoError(t, err)

	assert.Len(t, result.Written, 4)
	data, err := os.ReadFile(filepath.Join(target, "fastapi/app/main.py"))
	require.NoError(t, err)
	assert.Equal(t, "app = ...\n", string(data))
}

func TestController_CreateLeavesNoStagingBehind(t *testing.T) {
	parent := t.TempDir()
	target := filepath.Join(parent, "myapp")
	tree := stagedTree(t, map[string]string{"README.md": "# myapp\n"})

	_, err := NewController(testLogger()).Commit(tree, specForTarget(target, values.ModeCreate))
	require.NoError(t, err)

	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), stagePrefix), "staging dir %s left behind", e.Name())
	}
}

func TestController_CreateRefusesNonEmptyTarget(t *testing.T) {
	target := filepath.Join(t.TempDir(), "myapp")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "existing.txt"), []byte("x"), 0o644))

	tree := stagedTree(t, map[string]string{"README.md": "# myapp\n"})
	_, err := NewController(testLogger()).Commit(tree, specForTarget(target, values.ModeCreate))

	var commitErr *entities.CommitError
	require.ErrorAs(t, err, &commitErr)

	// The existing file is untouched.
	_, statErr := os.Stat(filepath.Join(target, "existing.txt"))
	assert.NoError(t, statErr)
}

func TestController_CreateAcceptsEmptyTargetDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "myapp")
	require.NoError(t, os.MkdirAll(target, 0o755))

	tree := stagedTree(t, map[string]string{"README.md": "# myapp\n"})
	_, err := NewController(testLogger()).Commit(tree, specForTarget(target, values.ModeCreate))
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(target, "README.md"))
	assert.NoError(t, statErr)
}

func TestController_AddPreservesExistingFiles(t *testing.T) {
	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "README.md"), []byte("user edits\n"), 0o644))

	tree := stagedTree(t, map[string]string{
		"README.md":       "# regenerated\n",
		".python-version": "3.12\n",
	})

	result, err := NewController(testLogger()).Commit(tree, specForTarget(target, values.ModeAdd))
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md"}, result.Preserved)
	assert.Equal(t, []string{".python-version"}, result.Written)

	data, err := os.ReadFile(filepath.Join(target, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "user edits\n", string(data))
}

func TestController_AddMergesOrchestrationFile(t *testing.T) {
	target := t.TempDir()
	existing := "services:\n  fastapi:\n    build: ./fastapi\n    ports:\n    - \"9000:8000\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(target, entities.OrchestrationFilePath), []byte(existing), 0o644))

	tree := entities.NewStagedTree()
	fresh := "services:\n  redis:\n    image: redis:7.2\n    ports:\n    - \"6379:6379\"\n"
	require.NoError(t, tree.SetMergeable(entities.OrchestrationFilePath, []byte(fresh)))

	result, err := NewController(testLogger()).Commit(tree, specForTarget(target, values.ModeAdd))
	require.NoError(t, err)
	assert.Equal(t, []string{entities.OrchestrationFilePath}, result.Merged)

	data, err := os.ReadFile(filepath.Join(target, entities.OrchestrationFilePath))
	require.NoError(t, err)
	assert.Contains(t, string(data), "9000:8000")
	assert.Contains(t, string(data), "redis:7.2")
}

func TestController_AddWritesMergeableWhenAbsent(t *testing.T) {
	target := t.TempDir()

	tree := entities.NewStagedTree()
	require.NoError(t, tree.SetMergeable(entities.OrchestrationFilePath, []byte("services: {}\n")))

	result, err := NewController(testLogger()).Commit(tree, specForTarget(target, values.ModeAdd))
	require.NoError(t, err)

	assert.Equal(t, []string{entities.OrchestrationFilePath}, result.Written)
	assert.Empty(t, result.Merged)
}

func TestController_AddRequiresExistingDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "missing")

	tree := stagedTree(t, map[string]string{"README.md": "# myapp\n"})
	_, err := NewController(testLogger()).Commit(tree, specForTarget(target, values.ModeAdd))

	var commitErr *entities.CommitError
	require.ErrorAs(t, err, &commitErr)
}

func TestController_AddRollsBackOnMergeFailure(t *testing.T) {
	target := t.TempDir()
	// Corrupt descriptor forces the devcontainer merge to fail after the
	// orchestration file has already been written.
	require.NoError(t, os.MkdirAll(filepath.Join(target, ".devcontainer"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, entities.ContainerDescriptorPath), []byte("{not json"), 0o644))

	tree := entities.NewStagedTree()
	require.NoError(t, tree.SetMergeable(entities.OrchestrationFilePath, []byte("services: {}\n")))
	require.NoError(t, tree.SetMergeable(entities.ContainerDescriptorPath, []byte("{\"name\": \"myapp\"}\n")))

	_, err := NewController(testLogger()).Commit(tree, specForTarget(target, values.ModeAdd))
	require.Error(t, err)

	// The orchestration file written before the failure is gone again.
	_, statErr := os.Stat(filepath.Join(target, entities.OrchestrationFilePath))
	assert.True(t, os.IsNotExist(statErr))
}
