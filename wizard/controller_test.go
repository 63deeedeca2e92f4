package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegisterDetectsDuplicates(t *testing.T) {
	t.Parallel()

	c := NewController()
	err := c.Register(requiredStep("one", "a"), requiredStep("one", "b"))
	require.Error(t, err)
	require.IsType(t, DuplicateStepError{}, err)

	var cfgErr ConfigurationError
	require.ErrorAs(t, NewController().Register(requiredStep("", "a")), &cfgErr)
}

func TestRegisterAppliesDefaults(t *testing.T) {
	t.Parallel()

	st := &fakeStep{meta: StepMetadata{ID: "role", Fields: []FieldDefinition{
		SelectField("role", "Role", nil, WithDefault("farmer")),
		TextField("location.country", "Country", WithDefault("")),
	}}}
	c := NewController(WithInitialValues(map[string]any{"role": "ngo"}))
	require.NoError(t, c.Register(st))

	require.Equal(t, "ngo", c.Form().String("role"))
	val, ok := c.Form().Get("location.country")
	require.True(t, ok)
	require.Equal(t, "", val)
}

func TestAdvanceBlockedByValidation(t *testing.T) {
	t.Parallel()

	c := newFlow(t)
	require.False(t, c.Advance())
	require.Equal(t, 1, c.Step())
	require.Equal(t, ErrorMap{"a": "a is required"}, c.Errors())

	require.NoError(t, c.UpdateField("a", "x"))
	require.Empty(t, c.Errors())
	require.True(t, c.Advance())
	require.Equal(t, 2, c.Step())
	require.Equal(t, "two", c.Current().ID)
}

func TestUpdateFieldClearsOnlyThatPath(t *testing.T) {
	t.Parallel()

	st := &fakeStep{
		meta: StepMetadata{ID: "both"},
		validate: func(f *FormState) ErrorMap {
			errs := ErrorMap{}
			if f.String("a") == "" {
				errs["a"] = "a is required"
			}
			if f.String("b") == "" {
				errs["b"] = "b is required"
			}
			return errs
		},
	}
	c := NewController()
	require.NoError(t, c.Register(st))
	require.False(t, c.Advance())
	require.Len(t, c.Errors(), 2)

	require.NoError(t, c.UpdateField("a", "x"))
	require.Equal(t, ErrorMap{"b": "b is required"}, c.Errors())
}

func TestRetreatFloorsAtFirstStep(t *testing.T) {
	t.Parallel()

	c := newFlow(t)
	require.False(t, c.Retreat())
	require.Equal(t, 1, c.Step())

	require.NoError(t, c.UpdateField("a", "x"))
	require.True(t, c.Advance())
	require.NoError(t, c.UpdateField("b", "y"))
	require.True(t, c.Retreat())
	require.Equal(t, 1, c.Step())
	require.Equal(t, "y", c.Form().String("b"))
}

func TestValidateStepOutOfRange(t *testing.T) {
	t.Parallel()

	c := newFlow(t)
	require.Empty(t, c.ValidateStep(0))
	require.Empty(t, c.ValidateStep(4))
	require.Equal(t, ErrorMap{"a": "a is required"}, c.ValidateStep(1))
	require.Empty(t, c.Errors())
}

func TestSubmitIfFinalAdvancesOnIntermediateSteps(t *testing.T) {
	t.Parallel()

	var calls int
	c := newFlow(t, WithRegistrar(RegistrarFunc(func(context.Context, *FormState) (Result, error) {
		calls++
		return Result{}, nil
	})))
	require.NoError(t, c.UpdateField("a", "x"))

	res, err := c.SubmitIfFinal(context.Background())
	require.NoError(t, err)
	require.Equal(t, Result{}, res)
	require.Equal(t, 2, c.Step())
	require.Zero(t, calls)
}

func TestSubmitIfFinalInvalidFinalStepRecordsErrors(t *testing.T) {
	t.Parallel()

	var calls int
	c := newFlow(t, WithRegistrar(RegistrarFunc(func(context.Context, *FormState) (Result, error) {
		calls++
		return Result{}, nil
	})))
	walkToLast(t, c)

	_, err := c.SubmitIfFinal(context.Background())
	require.NoError(t, err)
	require.Equal(t, ErrorMap{"c": "c is required"}, c.Errors())
	require.Equal(t, StatusEditing, c.Status())
	require.Zero(t, calls)
}

func TestSubmitIfFinalSuccess(t *testing.T) {
	t.Parallel()

	var submitted map[string]any
	c := newFlow(t, WithRegistrar(RegistrarFunc(func(_ context.Context, form *FormState) (Result, error) {
		submitted = form.Snapshot()
		return Result{Role: "farmer", Destination: "/dashboard/farmer"}, nil
	})))
	walkToLast(t, c)
	require.NoError(t, c.UpdateField("c", "z"))

	res, err := c.SubmitIfFinal(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/dashboard/farmer", res.Destination)
	require.Equal(t, StatusSubmitted, c.Status())
	require.Equal(t, map[string]any{"a": "x", "b": "y", "c": "z"}, submitted)

	stored, ok := c.Result()
	require.True(t, ok)
	require.Equal(t, res, stored)

	_, err = c.SubmitIfFinal(context.Background())
	require.ErrorIs(t, err, ErrAlreadySubmitted)
	require.False(t, c.Retreat())
}

func TestSubmitIfFinalFailureKeepsState(t *testing.T) {
	t.Parallel()

	failErr := errors.New("boom")
	attempts := 0
	c := newFlow(t, WithRegistrar(RegistrarFunc(func(context.Context, *FormState) (Result, error) {
		attempts++
		if attempts == 1 {
			return Result{}, failErr
		}
		return Result{Role: "vendor"}, nil
	})))
	walkToLast(t, c)
	require.NoError(t, c.UpdateField("c", "z"))

	_, err := c.SubmitIfFinal(context.Background())
	require.ErrorIs(t, err, failErr)
	var subErr SubmissionError
	require.ErrorAs(t, err, &subErr)
	require.Equal(t, "three", subErr.Step.ID)
	require.Equal(t, 3, c.Step())
	require.Equal(t, StatusEditing, c.Status())
	require.Equal(t, "z", c.Form().String("c"))

	res, err := c.SubmitIfFinal(context.Background())
	require.NoError(t, err)
	require.Equal(t, "vendor", res.Role)
	require.Equal(t, 2, attempts)
}

func TestSubmitIfFinalGuardsDoubleSubmit(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	c := newFlow(t, WithRegistrar(RegistrarFunc(func(context.Context, *FormState) (Result, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(entered)
		<-release
		return Result{Role: "ngo"}, nil
	})))
	walkToLast(t, c)
	require.NoError(t, c.UpdateField("c", "z"))

	done := make(chan error, 1)
	go func() {
		_, err := c.SubmitIfFinal(context.Background())
		done <- err
	}()

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("registrar was not called")
	}
	require.Equal(t, StatusSubmitting, c.Status())
	_, err := c.SubmitIfFinal(context.Background())
	require.ErrorIs(t, err, ErrSubmissionInFlight)
	require.False(t, c.Retreat())

	close(release)
	require.NoError(t, <-done)
	mu.Lock()
	require.Equal(t, 1, calls)
	mu.Unlock()
}

func TestSubmitIfFinalRequiresRegistrar(t *testing.T) {
	t.Parallel()

	c := newFlow(t)
	walkToLast(t, c)
	_, err := c.SubmitIfFinal(context.Background())
	var cfgErr ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	_, err = NewController().SubmitIfFinal(context.Background())
	require.ErrorAs(t, err, &cfgErr)
}

func TestObserverNotifications(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var transitions []string
	var outcomes []error
	observer := observerFunc{
		onStep: func(from, to StepMetadata) {
			mu.Lock()
			defer mu.Unlock()
			transitions = append(transitions, from.ID+">"+to.ID)
		},
		onSubmit: func(_ Result, err error) {
			mu.Lock()
			defer mu.Unlock()
			outcomes = append(outcomes, err)
		},
	}

	c := newFlow(t, WithObserver(observer), WithRegistrar(RegistrarFunc(func(context.Context, *FormState) (Result, error) {
		return Result{}, nil
	})))
	walkToLast(t, c)
	require.True(t, c.Retreat())
	require.True(t, c.Advance())
	require.NoError(t, c.UpdateField("c", "z"))
	_, err := c.SubmitIfFinal(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{"one>two", "two>three", "three>two", "two>three"}, transitions)
	require.Equal(t, []error{nil}, outcomes)
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "editing", StatusEditing.String())
	require.Equal(t, "submitting", StatusSubmitting.String())
	require.Equal(t, "submitted", StatusSubmitted.String())
}

// --- helpers ---

func newFlow(t *testing.T, opts ...ControllerOption) *Controller {
	t.Helper()
	c := NewController(opts...)
	require.NoError(t, c.Register(
		requiredStep("one", "a"),
		requiredStep("two", "b"),
		requiredStep("three", "c"),
	))
	return c
}

func walkToLast(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.UpdateField("a", "x"))
	require.True(t, c.Advance())
	require.NoError(t, c.UpdateField("b", "y"))
	require.True(t, c.Advance())
	require.Equal(t, 3, c.Step())
}

func requiredStep(id, path string) *fakeStep {
	return &fakeStep{
		meta: StepMetadata{ID: id, Title: id, Fields: []FieldDefinition{TextField(path, path, Required())}},
		validate: func(f *FormState) ErrorMap {
			if f.String(path) == "" {
				return ErrorMap{path: path + " is required"}
			}
			return nil
		},
	}
}

type fakeStep struct {
	meta     StepMetadata
	validate func(*FormState) ErrorMap
}

func (s *fakeStep) Metadata() StepMetadata {
	return s.meta
}

func (s *fakeStep) Validate(f *FormState) ErrorMap {
	if s.validate == nil {
		return nil
	}
	return s.validate(f)
}

type observerFunc struct {
	onStep   func(from, to StepMetadata)
	onSubmit func(Result, error)
}

func (o observerFunc) StepChanged(from, to StepMetadata) {
	if o.onStep != nil {
		o.onStep(from, to)
	}
}

func (o observerFunc) SubmissionCompleted(res Result, err error) {
	if o.onSubmit != nil {
		o.onSubmit(res, err)
	}
}
