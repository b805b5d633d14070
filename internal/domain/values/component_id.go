// Package values contains validated value types for the stackforge domain model.
package values

import (
	"fmt"
	"regexp"
	"strings"
)

// Component IDs must be lowercase alphanumeric with single hyphens.
var componentIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$|^[a-z]$`)

// ValidateComponentID checks that a component identifier is well formed.
// IDs are author-controlled (they come from registry files), so a failure
// here is a catalog authoring defect, not user input.
func ValidateComponentID(id string) error {
	if id == "" {
		return fmt.Errorf("component ID cannot be empty")
	}
	if !componentIDPattern.MatchString(id) {
		return fmt.Errorf("invalid component ID %q: must be lowercase alphanumeric with hyphens, starting with a letter", id)
	}
	if strings.Contains(id, "--") {
		return fmt.Errorf("invalid component ID %q: consecutive hyphens not allowed", id)
	}
	return nil
}
