package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ProjectStateFile is the per-project state file at the project root. It
// records what previous runs resolved so that add runs stay consistent with
// the existing tree.
const ProjectStateFile = ".stackforge.toml"

// ProjectState is the persisted outcome of the last run against a project.
type ProjectState struct {
	// Components are the resolved component ids, in catalog order. Add runs
	// seed their selection with these so prior choices participate in
	// conflict checking.
	Components []string `toml:"components,omitempty"`

	// Versions pins the resolved version per version key. These take
	// precedence over global config in add runs.
	Versions map[string]string `toml:"versions,omitempty"`

	// Ports records the host-port assignment per component, so a later add
	// never moves a port the developer already depends on.
	Ports map[string]int `toml:"ports,omitempty"`
}

// LoadProjectState reads the state file from a project directory. A missing
// file yields an empty state, not an error.
func LoadProjectState(dir string) (*ProjectState, error) {
	data, err := os.ReadFile(filepath.Join(dir, ProjectStateFile))
	if os.IsNotExist(err) {
		return &ProjectState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading project state: %w", err)
	}

	var state ProjectState
	if err := toml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ProjectStateFile, err)
	}
	return &state, nil
}

// EncodeProjectState renders the state file content.
func EncodeProjectState(state *ProjectState) ([]byte, error) {
	out, err := toml.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encoding project state: %w", err)
	}
	return out, nil
}

// SaveProjectState writes the state file into a project directory.
func SaveProjectState(dir string, state *ProjectState) error {
	data, err := EncodeProjectState(state)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, ProjectStateFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing project state: %w", err)
	}
	return nil
}
