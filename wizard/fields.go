package wizard

// FieldOpt customizes field definitions produced by helper constructors.
type FieldOpt func(*FieldDefinition)

// WithPlaceholder sets the hint shown in an empty input.
func WithPlaceholder(text string) FieldOpt {
	return func(def *FieldDefinition) {
		if def != nil {
			def.Placeholder = text
		}
	}
}

// WithDefault sets the value a fresh form starts with.
func WithDefault(value any) FieldOpt {
	return func(def *FieldDefinition) {
		if def != nil {
			def.Default = value
		}
	}
}

// Required marks the field as mandatory.
func Required() FieldOpt {
	return func(def *FieldDefinition) {
		if def != nil {
			def.Required = true
		}
	}
}

// Optional clears the required flag for clarity at call sites.
func Optional() FieldOpt {
	return func(def *FieldDefinition) {
		if def != nil {
			def.Required = false
		}
	}
}

// TextField builds a plain text field definition.
func TextField(path, label string, opts ...FieldOpt) FieldDefinition {
	def := FieldDefinition{
		Path:  path,
		Label: label,
		Kind:  FieldKindText,
	}
	applyFieldOpts(&def, opts...)
	return def
}

// SecretField builds a masked field definition.
func SecretField(path, label string, opts ...FieldOpt) FieldDefinition {
	def := FieldDefinition{
		Path:  path,
		Label: label,
		Kind:  FieldKindSecret,
	}
	applyFieldOpts(&def, opts...)
	return def
}

// SelectField builds a choice field with the provided options.
func SelectField(path, label string, options []FieldOption, opts ...FieldOpt) FieldDefinition {
	def := FieldDefinition{
		Path:    path,
		Label:   label,
		Kind:    FieldKindSelect,
		Options: append([]FieldOption{}, options...),
	}
	applyFieldOpts(&def, opts...)
	return def
}

// Defaults collects the default value of every field across steps, keyed by path.
func Defaults(steps ...Step) map[string]any {
	form := NewFormState(nil)
	for _, st := range steps {
		if st == nil {
			continue
		}
		for _, field := range st.Metadata().Fields {
			if field.Default == nil {
				continue
			}
			_ = form.Set(field.Path, field.Default)
		}
	}
	return form.Snapshot()
}

func applyFieldOpts(def *FieldDefinition, opts ...FieldOpt) {
	for _, opt := range opts {
		if opt != nil {
			opt(def)
		}
	}
}
