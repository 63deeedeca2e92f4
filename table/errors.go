package table

import "fmt"

// ValidationError reports an invalid column set or key function.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("table validation failed: %s", e.Reason)
}

// InvalidConfigurationError reports pagination settings the presenter cannot window.
type InvalidConfigurationError struct {
	Field string
	Value int
}

func (e InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid pagination: %s=%d", e.Field, e.Value)
}
