// Package commit promotes a staged tree into the target directory. Create
// mode writes the whole tree into a hidden sibling directory and publishes
// it with a single atomic rename; add mode edits an existing project in
// place with preserve-existing semantics and rollback on failure.
package commit

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/generate"
)

const stagePrefix = ".stackforge-stage-"

// Controller writes staged trees to disk.
type Controller struct {
	logger *slog.Logger
}

// NewController creates a commit controller.
func NewController(logger *slog.Logger) *Controller {
	return &Controller{logger: logger}
}

// Result reports what the commit did, path by path. Paths are relative to
// the target directory.
type Result struct {
	TargetDir string

	// Written paths were created by this run.
	Written []string

	// Preserved paths already existed and were left untouched (add mode).
	Preserved []string

	// Merged paths are mergeable artifacts combined with their existing
	// content (add mode).
	Merged []string
}

// Commit writes the tree according to the spec's mode.
func (c *Controller) Commit(tree *entities.StagedTree, spec *entities.ResolvedSpec) (*Result, error) {
	if spec.Mode.IsAdd() {
		return c.add(tree, spec.TargetDir)
	}
	return c.create(tree, spec.TargetDir)
}

// create stages the full tree next to the target and publishes it with one
// rename, so an interrupted run never leaves a half-written project.
func (c *Controller) create(tree *entities.StagedTree, target string) (*Result, error) {
	if err := ensureCreatable(target); err != nil {
		return nil, err
	}

	parent := filepath.Dir(target)
	staging := filepath.Join(parent, stagePrefix+uuid.NewString())
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return nil, &entities.CommitError{Reason: "creating staging directory", Path: staging, Cause: err}
	}
	defer os.RemoveAll(staging)

	result := &Result{TargetDir: target}
	for _, f := range tree.Files() {
		if err := writeStaged(staging, f); err != nil {
			return nil, err
		}
		result.Written = append(result.Written, f.Path)
	}

	if err := verifyStaged(staging, tree); err != nil {
		return nil, err
	}

	// The target may exist as an empty directory; rename requires it gone.
	if _, err := os.Stat(target); err == nil {
		if err := os.Remove(target); err != nil {
			return nil, &entities.CommitError{Reason: "clearing empty target", Path: target, Cause: err}
		}
	}
	if err := os.Rename(staging, target); err != nil {
		return nil, &entities.CommitError{Reason: "publishing staged tree", Path: target, Cause: err}
	}

	c.logger.Info("project created", "target", target, "files", len(result.Written))
	return result, nil
}

// add edits an existing project. Existing exclusive files are preserved;
// mergeable artifacts are combined with their on-disk content. Any failure
// rolls the directory back to its pre-run state.
func (c *Controller) add(tree *entities.StagedTree, target string) (*Result, error) {
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return nil, &entities.CommitError{Reason: "target is not an existing project directory", Path: target, Cause: err}
	}

	tx := newTransaction(target)
	result := &Result{TargetDir: target}

	for _, f := range tree.Files() {
		dest := filepath.Join(target, f.Path)

		if f.Mergeable {
			merged, existed, err := c.mergeArtifact(dest, f)
			if err != nil {
				tx.rollback(c.logger)
				return nil, err
			}
			if err := tx.write(f.Path, merged, f.Perm); err != nil {
				tx.rollback(c.logger)
				return nil, err
			}
			if existed {
				result.Merged = append(result.Merged, f.Path)
			} else {
				result.Written = append(result.Written, f.Path)
			}
			continue
		}

		if _, err := os.Stat(dest); err == nil {
			c.logger.Debug("preserved existing file", "path", f.Path)
			result.Preserved = append(result.Preserved, f.Path)
			continue
		}
		if err := tx.write(f.Path, f.Content, f.Perm); err != nil {
			tx.rollback(c.logger)
			return nil, err
		}
		result.Written = append(result.Written, f.Path)
	}

	c.logger.Info("components added", "target", target,
		"written", len(result.Written), "merged", len(result.Merged), "preserved", len(result.Preserved))
	return result, nil
}

// mergeArtifact combines a mergeable artifact with its existing content.
func (c *Controller) mergeArtifact(dest string, f entities.StagedFile) ([]byte, bool, error) {
	existing, err := os.ReadFile(dest)
	if os.IsNotExist(err) {
		return f.Content, false, nil
	}
	if err != nil {
		return nil, false, &entities.CommitError{Reason: "reading mergeable artifact", Path: f.Path, Cause: err}
	}

	var merged []byte
	switch f.Path {
	case entities.OrchestrationFilePath:
		merged, err = generate.MergeCompose(existing, f.Content)
	case entities.ContainerDescriptorPath:
		merged, err = generate.MergeDevcontainer(existing, f.Content)
	default:
		err = fmt.Errorf("no merge strategy for %s", f.Path)
	}
	if err != nil {
		return nil, false, &entities.CommitError{Reason: "merging artifact", Path: f.Path, Cause: err}
	}
	return merged, true, nil
}

func ensureCreatable(target string) error {
	info, err := os.Stat(target)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return &entities.CommitError{Reason: "inspecting target", Path: target, Cause: err}
	}
	if !info.IsDir() {
		return &entities.CommitError{Reason: "target exists and is not a directory", Path: target}
	}
	entries, err := os.ReadDir(target)
	if err != nil {
		return &entities.CommitError{Reason: "inspecting target", Path: target, Cause: err}
	}
	if len(entries) > 0 {
		return &entities.CommitError{Reason: "target directory already exists and is not empty", Path: target}
	}
	return nil
}

func writeStaged(root string, f entities.StagedFile) error {
	dest := filepath.Join(root, f.Path)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return &entities.CommitError{Reason: "creating directory", Path: f.Path, Cause: err}
	}
	if err := os.WriteFile(dest, f.Content, f.Perm); err != nil {
		return &entities.CommitError{Reason: "writing staged file", Path: f.Path, Cause: err}
	}
	return nil
}

// verifyStaged re-reads every staged file before the rename. A mismatch
// means the filesystem lied about a write; better to fail before publishing.
func verifyStaged(root string, tree *entities.StagedTree) error {
	for _, f := range tree.Files() {
		data, err := os.ReadFile(filepath.Join(root, f.Path))
		if err != nil {
			return &entities.CommitError{Reason: "verifying staged file", Path: f.Path, Cause: err}
		}
		if !bytes.Equal(data, f.Content) {
			return &entities.CommitError{Reason: "staged file content mismatch", Path: f.Path}
		}
	}
	return nil
}
