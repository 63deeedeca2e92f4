package dashapp

import (
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/BrianJOC/agri-console/wizard"
	"github.com/BrianJOC/agri-console/wizard/onboarding"
)

const registrationFailedNotice = "Registration failed. Please try again."

// onboardingForm binds one text input per wizard field to the controller.
type onboardingForm struct {
	controller  *wizard.Controller
	inputs      map[string]textinput.Model
	focus       int
	selectIndex int
	notice      string
	// submitting is set from dispatch until the submissionMsg arrives.
	submitting bool
}

func newOnboardingForm(cfg Config) (*onboardingForm, error) {
	opts := []wizard.ControllerOption{
		wizard.WithRegistrar(cfg.Registrar),
		wizard.WithLogger(cfg.Logger),
	}
	opts = append(opts, cfg.ControllerOptions...)
	controller, err := onboarding.NewController(opts...)
	if err != nil {
		return nil, err
	}

	f := &onboardingForm{
		controller: controller,
		inputs:     make(map[string]textinput.Model),
	}
	for _, st := range onboarding.Steps() {
		for _, field := range st.Metadata().Fields {
			switch field.Kind {
			case wizard.FieldKindSelect:
				f.selectIndex = optionIndex(field, controller.Form().String(field.Path))
			default:
				f.inputs[field.Path] = newFieldInput(field, controller.Form().String(field.Path))
			}
		}
	}
	f.focusCurrent()
	return f, nil
}

func newFieldInput(field wizard.FieldDefinition, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = field.Placeholder
	ti.Prompt = "> "
	ti.CharLimit = 128
	if field.Kind == wizard.FieldKindSecret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.SetValue(value)
	ti.Blur()
	return ti
}

func optionIndex(field wizard.FieldDefinition, value string) int {
	for idx, opt := range field.Options {
		if opt.Value == value {
			return idx
		}
	}
	return 0
}

func (f *onboardingForm) fields() []wizard.FieldDefinition {
	return f.controller.Current().Fields
}

func (f *onboardingForm) focused() (wizard.FieldDefinition, bool) {
	fields := f.fields()
	if f.focus < 0 || f.focus >= len(fields) {
		return wizard.FieldDefinition{}, false
	}
	return fields[f.focus], true
}

func (f *onboardingForm) focusedIsSelect() bool {
	field, ok := f.focused()
	return ok && field.Kind == wizard.FieldKindSelect
}

// focusCurrent blurs every input and focuses the one under the cursor.
func (f *onboardingForm) focusCurrent() tea.Cmd {
	for path, ti := range f.inputs {
		ti.Blur()
		f.inputs[path] = ti
	}
	field, ok := f.focused()
	if !ok || field.Kind == wizard.FieldKindSelect {
		return nil
	}
	ti := f.inputs[field.Path]
	cmd := ti.Focus()
	ti.CursorEnd()
	f.inputs[field.Path] = ti
	return cmd
}

func (f *onboardingForm) moveFocus(delta int) tea.Cmd {
	count := len(f.fields())
	if count == 0 {
		return nil
	}
	f.focus = (f.focus + delta) % count
	if f.focus < 0 {
		f.focus += count
	}
	return f.focusCurrent()
}

// resetFocus puts the cursor on the first field of the current step.
func (f *onboardingForm) resetFocus() tea.Cmd {
	f.focus = 0
	return f.focusCurrent()
}

// focusFirstError moves the cursor to the first field of the step that has an error.
func (f *onboardingForm) focusFirstError() tea.Cmd {
	errs := f.controller.Errors()
	for idx, field := range f.fields() {
		if _, bad := errs[field.Path]; bad {
			f.focus = idx
			return f.focusCurrent()
		}
	}
	return nil
}

func (f *onboardingForm) moveSelection(delta int) {
	field, ok := f.focused()
	if !ok || len(field.Options) == 0 {
		return
	}
	count := len(field.Options)
	f.selectIndex = (f.selectIndex + delta) % count
	if f.selectIndex < 0 {
		f.selectIndex += count
	}
	_ = f.controller.UpdateField(field.Path, field.Options[f.selectIndex].Value)
}

func (f *onboardingForm) chooseOption(idx int) bool {
	field, ok := f.focused()
	if !ok || idx < 0 || idx >= len(field.Options) {
		return false
	}
	f.selectIndex = idx
	_ = f.controller.UpdateField(field.Path, field.Options[idx].Value)
	return true
}

// updateInput feeds msg to the focused text input and mirrors the value into the form.
func (f *onboardingForm) updateInput(msg tea.Msg) tea.Cmd {
	field, ok := f.focused()
	if !ok || field.Kind == wizard.FieldKindSelect {
		return nil
	}
	ti := f.inputs[field.Path]
	before := ti.Value()
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	f.inputs[field.Path] = ti
	if ti.Value() != before {
		_ = f.controller.UpdateField(field.Path, ti.Value())
	}
	return cmd
}
