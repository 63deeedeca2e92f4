// Package wizard drives a linear multi-step data-entry flow. A Controller
// owns one FormState, gates every forward transition on the current step's
// validation, and hands the accumulated form to a Registrar from the final
// step.
package wizard

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Controller coordinates step position, validation errors, and submission.
type Controller struct {
	mu        sync.Mutex
	steps     []Step
	observers []Observer
	registrar Registrar
	logger    *zap.Logger
	initial   map[string]any

	form    *FormState
	current int
	errors  ErrorMap
	status  Status
	result  Result
}

// ControllerOption mutates controller configuration.
type ControllerOption func(*Controller)

// WithObserver registers an observer to receive lifecycle events.
func WithObserver(obs Observer) ControllerOption {
	return func(c *Controller) {
		if obs == nil {
			return
		}
		c.observers = append(c.observers, obs)
	}
}

// WithRegistrar sets the collaborator invoked on final submission.
func WithRegistrar(r Registrar) ControllerOption {
	return func(c *Controller) {
		if r == nil {
			return
		}
		c.registrar = r
	}
}

// WithInitialValues seeds the form. Values set here take precedence over field defaults.
func WithInitialValues(values map[string]any) ControllerOption {
	return func(c *Controller) {
		c.initial = copyValues(values)
	}
}

// WithLogger attaches a logger for transition and submission events.
func WithLogger(logger *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if logger == nil {
			return
		}
		c.logger = logger
	}
}

// NewController constructs a Controller with no steps.
func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		logger: zap.NewNop(),
		errors: ErrorMap{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.form = NewFormState(c.initial)
	return c
}

// Register appends steps, returning an error on empty or duplicate IDs.
// Field defaults of newly registered steps are applied to unset form paths.
func (c *Controller) Register(steps ...Step) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, st := range steps {
		if st == nil {
			continue
		}
		meta := st.Metadata()
		if meta.ID == "" {
			return ConfigurationError{Reason: "step id must not be empty"}
		}
		if c.hasStep(meta.ID) {
			return DuplicateStepError{ID: meta.ID}
		}
		c.steps = append(c.steps, st)
		for _, field := range meta.Fields {
			if field.Default == nil {
				continue
			}
			if _, ok := c.form.Get(field.Path); ok {
				continue
			}
			if err := c.form.Set(field.Path, field.Default); err != nil {
				return err
			}
		}
	}
	return nil
}

// Form exposes the live form state.
func (c *Controller) Form() *FormState {
	return c.form
}

// Step returns the 1-indexed position of the current step.
func (c *Controller) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current + 1
}

// StepCount returns how many steps are registered.
func (c *Controller) StepCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.steps)
}

// Current returns the metadata of the active step.
func (c *Controller) Current() StepMetadata {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metaAt(c.current)
}

// Errors returns a copy of the current validation errors.
func (c *Controller) Errors() ErrorMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors.clone()
}

// Status reports the submission lifecycle state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Result returns the registration result once submitted.
func (c *Controller) Result() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.status == StatusSubmitted
}

// UpdateField stores value under path and clears any error recorded for that exact path.
func (c *Controller) UpdateField(path string, value any) error {
	if err := c.form.Set(path, value); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.errors, path)
	c.mu.Unlock()
	return nil
}

// ValidateStep runs the validation of the 1-indexed step against the current form.
// Out of range indexes validate as empty.
func (c *Controller) ValidateStep(step int) ErrorMap {
	c.mu.Lock()
	idx := step - 1
	if idx < 0 || idx >= len(c.steps) {
		c.mu.Unlock()
		return ErrorMap{}
	}
	st := c.steps[idx]
	c.mu.Unlock()

	errs := st.Validate(c.form)
	if errs == nil {
		return ErrorMap{}
	}
	return errs.clone()
}

// Advance moves forward one step when the current step validates. On failure
// the errors are recorded and the position is unchanged. It reports whether
// the position moved.
func (c *Controller) Advance() bool {
	from, to, moved := c.advance()
	if moved {
		c.notifyStepChanged(from, to)
	}
	return moved
}

// Retreat moves back one step, never before the first. Errors and form values are untouched.
func (c *Controller) Retreat() bool {
	c.mu.Lock()
	if c.current == 0 || c.status != StatusEditing {
		c.mu.Unlock()
		return false
	}
	from := c.metaAt(c.current)
	c.current--
	to := c.metaAt(c.current)
	c.mu.Unlock()

	c.logger.Debug("step retreated", zap.String("from", from.ID), zap.String("to", to.ID))
	c.notifyStepChanged(from, to)
	return true
}

// SubmitIfFinal behaves like Advance on every step but the last. On the last
// step a passing validation hands a copy of the form to the Registrar. A
// failed registration leaves the flow on the last step so the caller can
// retry.
func (c *Controller) SubmitIfFinal(ctx context.Context) (Result, error) {
	c.mu.Lock()
	switch c.status {
	case StatusSubmitted:
		res := c.result
		c.mu.Unlock()
		return res, ErrAlreadySubmitted
	case StatusSubmitting:
		c.mu.Unlock()
		return Result{}, ErrSubmissionInFlight
	}
	if len(c.steps) == 0 {
		c.mu.Unlock()
		return Result{}, ConfigurationError{Reason: "no steps registered"}
	}
	if c.current < len(c.steps)-1 {
		c.mu.Unlock()
		c.Advance()
		return Result{}, nil
	}
	if c.registrar == nil {
		c.mu.Unlock()
		return Result{}, ConfigurationError{Reason: "no registrar configured"}
	}

	final := c.steps[c.current]
	meta := final.Metadata()
	if errs := final.Validate(c.form); !errs.Empty() {
		c.errors = errs.clone()
		c.mu.Unlock()
		c.logger.Debug("final step rejected", zap.String("step", meta.ID), zap.Int("errors", len(errs)))
		return Result{}, nil
	}
	c.errors = ErrorMap{}
	c.status = StatusSubmitting
	registrar := c.registrar
	c.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	c.logger.Info("submitting flow", zap.String("step", meta.ID))
	res, err := registrar.Register(ctx, c.form.Clone())

	c.mu.Lock()
	if err != nil {
		c.status = StatusEditing
		c.mu.Unlock()
		c.logger.Warn("submission failed", zap.String("step", meta.ID), zap.Error(err))
		subErr := SubmissionError{Step: meta, Err: err}
		c.notifySubmission(Result{}, subErr)
		return Result{}, subErr
	}
	c.status = StatusSubmitted
	c.result = res
	c.mu.Unlock()

	c.logger.Info("submission accepted", zap.String("role", res.Role), zap.String("destination", res.Destination))
	c.notifySubmission(res, nil)
	return res, nil
}

func (c *Controller) advance() (StepMetadata, StepMetadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.steps) == 0 || c.status != StatusEditing {
		return StepMetadata{}, StepMetadata{}, false
	}
	st := c.steps[c.current]
	errs := st.Validate(c.form)
	if !errs.Empty() {
		c.errors = errs.clone()
		c.logger.Debug("step rejected", zap.String("step", st.Metadata().ID), zap.Int("errors", len(errs)))
		return StepMetadata{}, StepMetadata{}, false
	}
	c.errors = ErrorMap{}
	if c.current >= len(c.steps)-1 {
		return StepMetadata{}, StepMetadata{}, false
	}
	from := c.metaAt(c.current)
	c.current++
	to := c.metaAt(c.current)
	c.logger.Debug("step advanced", zap.String("from", from.ID), zap.String("to", to.ID))
	return from, to, true
}

func (c *Controller) metaAt(idx int) StepMetadata {
	if idx < 0 || idx >= len(c.steps) {
		return StepMetadata{}
	}
	return c.steps[idx].Metadata()
}

func (c *Controller) hasStep(id string) bool {
	for _, st := range c.steps {
		if st.Metadata().ID == id {
			return true
		}
	}
	return false
}

func (c *Controller) notifyStepChanged(from, to StepMetadata) {
	for _, obs := range c.observers {
		obs.StepChanged(from, to)
	}
}

func (c *Controller) notifySubmission(res Result, err error) {
	for _, obs := range c.observers {
		obs.SubmissionCompleted(res, err)
	}
}
