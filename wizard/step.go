package wizard

// Step is one data-entry screen of a multi-step flow.
type Step interface {
	Metadata() StepMetadata
	// Validate inspects the form and reports violations for this step's fields.
	Validate(form *FormState) ErrorMap
}

// StepMetadata contains descriptive information used by presentation layers.
type StepMetadata struct {
	ID          string
	Title       string
	Description string
	Fields      []FieldDefinition
}

// FieldDefinition describes one input a step collects.
type FieldDefinition struct {
	Path        string
	Label       string
	Placeholder string
	Kind        FieldKind
	Required    bool
	Options     []FieldOption
	Default     any
}

// FieldKind identifies how a field should be rendered.
type FieldKind string

const (
	FieldKindText   FieldKind = "text"
	FieldKindSecret FieldKind = "secret"
	FieldKindSelect FieldKind = "select"
)

// FieldOption represents a selectable value.
type FieldOption struct {
	Value       string
	Label       string
	Description string
}

// ErrorMap maps a field path to a human-readable violation.
type ErrorMap map[string]string

// Empty reports whether no violations are recorded.
func (e ErrorMap) Empty() bool {
	return len(e) == 0
}

func (e ErrorMap) clone() ErrorMap {
	out := make(ErrorMap, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Observer receives flow lifecycle callbacks.
type Observer interface {
	StepChanged(from, to StepMetadata)
	SubmissionCompleted(result Result, err error)
}

// Status describes where the flow is in its lifecycle.
type Status int

const (
	StatusEditing Status = iota
	StatusSubmitting
	StatusSubmitted
)

func (s Status) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusSubmitting:
		return "submitting"
	case StatusSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}
