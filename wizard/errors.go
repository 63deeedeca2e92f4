package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmissionInFlight is returned when a submit is attempted while a previous one is still running.
	ErrSubmissionInFlight = errors.New("wizard: submission already in progress")
	// ErrAlreadySubmitted is returned once the flow has been submitted successfully.
	ErrAlreadySubmitted = errors.New("wizard: flow already submitted")
)

// DuplicateStepError occurs when a step with an existing ID is registered.
type DuplicateStepError struct {
	ID string
}

func (e DuplicateStepError) Error() string {
	return fmt.Sprintf("step with id %q already registered", e.ID)
}

// ConfigurationError represents an invalid controller or step setup.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("wizard configuration invalid: %s", e.Reason)
}

// InvalidPathError reports a field path the form cannot address.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e InvalidPathError) Error() string {
	return fmt.Sprintf("invalid field path %q: %s", e.Path, e.Reason)
}

// SubmissionError wraps a failure reported by the Registrar.
type SubmissionError struct {
	Step StepMetadata
	Err  error
}

func (e SubmissionError) Error() string {
	return fmt.Sprintf("submission from step %s failed: %v", e.Step.ID, e.Err)
}

func (e SubmissionError) Unwrap() error {
	return e.Err
}
