package entities

import (
	"io/fs"
	"sort"
)

// Reserved mergeable artifacts. Every other path in a staged tree is
// exclusive to a single owning component.
const (
	OrchestrationFilePath   = "docker-compose.yml"
	ContainerDescriptorPath = ".devcontainer/devcontainer.json"
)

const defaultStagedFilePerm = fs.FileMode(0o644)

// StagedFile is one file awaiting commit, tagged with the component that
// produced it for provenance and conflict reporting.
type StagedFile struct {
	Path      string
	Content   []byte
	Perm      fs.FileMode
	Owner     string
	Mergeable bool
}

// StagedTree holds every file to be written, keyed by target-relative path.
// Invariant: no two entries claim the same path unless the path is one of
// the reserved mergeable artifacts, and those are only written through
// SetMergeable by the dedicated merge steps.
type StagedTree struct {
	entries map[string]StagedFile
}

// NewStagedTree creates an empty staged tree.
func NewStagedTree() *StagedTree {
	return &StagedTree{entries: make(map[string]StagedFile)}
}

// Add records an exclusive file. A second claim on the same path fails with
// a GenerationError naming both owners; mergeable paths are rejected so a
// component generator cannot bypass the merge steps.
func (t *StagedTree) Add(file StagedFile) error {
	if file.Path == OrchestrationFilePath || file.Path == ContainerDescriptorPath {
		return &GenerationError{
			Reason: "component generators may not write mergeable artifacts directly",
			Path:   file.Path,
			Owners: []string{file.Owner},
		}
	}
	if existing, ok := t.entries[file.Path]; ok {
		return &GenerationError{
			Reason: "path claimed by two generators",
			Path:   file.Path,
			Owners: []string{existing.Owner, file.Owner},
		}
	}
	if file.Perm == 0 {
		file.Perm = defaultStagedFilePerm
	}
	t.entries[file.Path] = file
	return nil
}

// SetMergeable records one of the two reserved artifacts. Only the dedicated
// merge steps call this; repeated calls replace the previous content.
func (t *StagedTree) SetMergeable(path string, content []byte) error {
	if path != OrchestrationFilePath && path != ContainerDescriptorPath {
		return &GenerationError{
			Reason: "not a mergeable artifact",
			Path:   path,
			Owners: nil,
		}
	}
	t.entries[path] = StagedFile{
		Path:      path,
		Content:   content,
		Perm:      defaultStagedFilePerm,
		Owner:     "stackforge",
		Mergeable: true,
	}
	return nil
}

// Lookup returns the entry for a path.
func (t *StagedTree) Lookup(path string) (StagedFile, bool) {
	f, ok := t.entries[path]
	return f, ok
}

// Len returns the number of staged files.
func (t *StagedTree) Len() int {
	return len(t.entries)
}

// Files returns all entries sorted by path, so that iteration (and thus
// commit order and test output) is deterministic.
func (t *StagedTree) Files() []StagedFile {
	files := make([]StagedFile, 0, len(t.entries))
	for _, f := range t.entries {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}
