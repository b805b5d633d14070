package entities

import (
	"fmt"
	"strings"
)

// ResolutionError indicates a user-correctable selection problem: unknown
// components or profiles, or a conflicting component pair. It is never
// partially applied; the caller may re-prompt and retry.
type ResolutionError struct {
	Reason string
	// ConflictingIDs names the offending components when the failure is a
	// conflict; empty otherwise.
	ConflictingIDs []string
}

func (e *ResolutionError) Error() string {
	if len(e.ConflictingIDs) == 0 {
		return fmt.Sprintf("resolution failed: %s", e.Reason)
	}
	return fmt.Sprintf("resolution failed: %s (components: %s)", e.Reason, strings.Join(e.ConflictingIDs, ", "))
}

// NewResolutionError creates a resolution error naming the offending ids.
func NewResolutionError(reason string, ids ...string) *ResolutionError {
	return &ResolutionError{Reason: reason, ConflictingIDs: ids}
}

// GenerationError indicates a generator authoring defect: two component
// generators claimed the same exclusive path. It always fails the invocation
// before any file is written.
type GenerationError struct {
	Reason string
	Path   string
	// Owners are the component ids that claimed the path.
	Owners []string
}

func (e *GenerationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("generation failed: %s", e.Reason)
	}
	return fmt.Sprintf("generation failed: %s: %s (claimed by %s)", e.Reason, e.Path, strings.Join(e.Owners, ", "))
}

// CommitError indicates a filesystem-level failure while promoting the
// staged tree. The target directory is left exactly as it was.
type CommitError struct {
	Reason string
	Path   string
	Cause  error
}

func (e *CommitError) Error() string {
	msg := fmt.Sprintf("commit failed: %s", e.Reason)
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *CommitError) Unwrap() error {
	return e.Cause
}
