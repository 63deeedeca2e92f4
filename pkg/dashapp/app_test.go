package dashapp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/BrianJOC/agri-console/dashboard"
	"github.com/BrianJOC/agri-console/wizard/onboarding"
)

func TestNewRequiresSource(t *testing.T) {
	t.Parallel()
	_, err := New(WithRegistrar(onboarding.OfflineRegistrar()))
	require.ErrorIs(t, err, ErrNoSource)
}

func TestNewRequiresRegistrarForOnboarding(t *testing.T) {
	t.Parallel()
	_, err := New(WithSource(dashboard.MockSource{}))
	require.ErrorIs(t, err, ErrNoRegistrar)

	_, err = New(WithSource(dashboard.MockSource{}), WithRole(onboarding.RoleVendor))
	require.NoError(t, err)
}

func TestNewRejectsUnknownRole(t *testing.T) {
	t.Parallel()
	_, err := New(WithSource(dashboard.MockSource{}), WithRole("banker"))
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestAppStartAndStop(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, WithRole(onboarding.RoleFarmer))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := runAppAsync(app, ctx)
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, app.Stop())
	assertNoError(t, errCh)
}

func TestAppRejectsConcurrentStart(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, WithRegistrar(onboarding.OfflineRegistrar()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := runAppAsync(app, ctx)

	// Give the first Start call a moment to initialize.
	time.Sleep(50 * time.Millisecond)

	require.ErrorIs(t, app.Start(ctx), ErrProgramRunning)

	require.NoError(t, app.Stop())
	assertNoError(t, errCh)
}

func TestAppStartReturnsWhenContextCancelled(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, WithRole(onboarding.RoleNGO))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := runAppAsync(app, ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("expected nil or context cancellation error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("start did not return after cancellation")
	}
}

func TestStopWithoutStartIsNoop(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, WithRole(onboarding.RoleVendor))
	require.NoError(t, app.Stop())
}

// --- helpers ---

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	headlessInput := bytes.NewBuffer(nil)
	opts = append([]Option{WithSource(dashboard.MockSource{})}, opts...)
	opts = append(opts, WithProgramOptions(
		tea.WithoutRenderer(),
		tea.WithInput(headlessInput),
		tea.WithOutput(io.Discard),
	))
	app, err := New(opts...)
	require.NoError(t, err)
	return app
}

func runAppAsync(app *App, ctx context.Context) chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start(ctx)
	}()
	return errCh
}

func assertNoError(t *testing.T, errCh <-chan error) {
	t.Helper()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("app did not exit")
	}
}
