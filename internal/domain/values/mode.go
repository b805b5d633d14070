package values

import (
	"fmt"
	"strings"
)

// Mode selects how a generated tree reaches the target directory.
type Mode struct {
	value string
}

// Predefined modes
var (
	// ModeCreate writes a brand-new project; the target must not exist
	// (or must be empty).
	ModeCreate = Mode{"create"}

	// ModeAdd merges new components into an existing project, preserving
	// files that already exist.
	ModeAdd = Mode{"add"}
)

// NewMode creates a Mode from string
func NewMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "create":
		return ModeCreate, nil
	case "add":
		return ModeAdd, nil
	default:
		return Mode{}, fmt.Errorf("invalid mode: %s (expected create or add)", s)
	}
}

// String returns the string representation
func (m Mode) String() string {
	return m.value
}

// IsCreate reports whether this is create mode.
func (m Mode) IsCreate() bool {
	return m.value == ModeCreate.value
}

// IsAdd reports whether this is add-to-existing mode.
func (m Mode) IsAdd() bool {
	return m.value == ModeAdd.value
}
