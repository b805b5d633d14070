// Package errors defines application-level error types.
package errors

import "fmt"

// ConfigurationError indicates a problem with the user's configuration
// layers rather than with the selection itself: an unreadable global config
// or a corrupt project state file.
type ConfigurationError struct {
	Source string
	Cause  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %v", e.Source, e.Cause)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError wraps a configuration failure with its source.
func NewConfigurationError(source string, cause error) *ConfigurationError {
	return &ConfigurationError{Source: source, Cause: cause}
}
