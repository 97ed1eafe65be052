package contract

import "fmt"

// ConfigurationError reports an invalid window or threshold parameter.
// It is fatal and surfaced before any window is processed.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// NewConfigurationError builds a ConfigurationError for the given field.
func NewConfigurationError(field, reason string) error {
	return &ConfigurationError{Field: field, Reason: reason}
}

// UnknownDeveloperError reports a replacement request for a developer that
// is absent from the window's graph. It is reported per request and does
// not abort the run.
type UnknownDeveloperError struct {
	DeveloperID string
	WindowID    int
}

func (e *UnknownDeveloperError) Error() string {
	return fmt.Sprintf("developer %q not present in window %d", e.DeveloperID, e.WindowID)
}
