// Package dashapp hosts the Bubble Tea console: the onboarding wizard
// followed by the role dashboard. It wires a wizard.Controller and the
// dashboard tables behind a small lifecycle API so binaries only supply
// collaborators.
package dashapp

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/BrianJOC/agri-console/dashboard"
	"github.com/BrianJOC/agri-console/wizard"
	"github.com/BrianJOC/agri-console/wizard/onboarding"
)

const defaultItemsPerPage = 5

var (
	// ErrNoRegistrar indicates no registration collaborator was supplied.
	ErrNoRegistrar = errors.New("dashapp: a registrar is required")
	// ErrNoSource indicates no dashboard data source was supplied.
	ErrNoSource = errors.New("dashapp: a dashboard source is required")
	// ErrProgramRunning reports that Start was invoked while the program is already running.
	ErrProgramRunning = errors.New("dashapp: program already running")
	// ErrUnknownRole reports a role that has no dashboard.
	ErrUnknownRole = errors.New("dashapp: unknown role")
)

// Config controls how an App should be assembled.
type Config struct {
	Registrar         wizard.Registrar
	Source            dashboard.Source
	ItemsPerPage      int
	Role              onboarding.Role
	Logger            *zap.Logger
	ControllerOptions []wizard.ControllerOption
	ProgramOptions    []tea.ProgramOption
}

// Option mutates Config during construction.
type Option func(*Config)

// WithRegistrar sets the collaborator that receives the completed onboarding form.
func WithRegistrar(r wizard.Registrar) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.Registrar = r
	}
}

// WithSource sets where dashboard records come from.
func WithSource(src dashboard.Source) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.Source = src
	}
}

// WithItemsPerPage sets the dashboard page size.
func WithItemsPerPage(n int) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.ItemsPerPage = n
	}
}

// WithRole skips onboarding and opens the dashboard for role.
func WithRole(role onboarding.Role) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.Role = role
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.Logger = logger
	}
}

// WithControllerOptions appends wizard controller options.
func WithControllerOptions(opts ...wizard.ControllerOption) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.ControllerOptions = append(cfg.ControllerOptions, opts...)
	}
}

// WithProgramOptions appends tea.Program options.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.ProgramOptions = append(cfg.ProgramOptions, opts...)
	}
}

// App hosts the Bubble Tea-driven console.
type App struct {
	cfg      Config
	mu       sync.Mutex
	program  *tea.Program
	inFlight bool
}

// New constructs an App from the provided options.
func New(opts ...Option) (*App, error) {
	cfg := Config{ItemsPerPage: defaultItemsPerPage}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Source == nil {
		return nil, ErrNoSource
	}
	if cfg.Role == "" && cfg.Registrar == nil {
		return nil, ErrNoRegistrar
	}
	if cfg.Role != "" && !cfg.Role.Valid() {
		return nil, ErrUnknownRole
	}
	if cfg.ItemsPerPage <= 0 {
		cfg.ItemsPerPage = defaultItemsPerPage
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &App{cfg: cfg}, nil
}

// Start runs the console until the user quits or ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	m, err := newModel(ctx, a.cfg)
	if err != nil {
		return err
	}
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.cfg.ProgramOptions...)
	program := tea.NewProgram(m, opts...)

	a.mu.Lock()
	if a.inFlight {
		a.mu.Unlock()
		return ErrProgramRunning
	}
	a.program = program
	a.inFlight = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.program = nil
		a.inFlight = false
		a.mu.Unlock()
	}()

	_, runErr := program.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return runErr
}

// Stop signals the running program (if any) to exit.
func (a *App) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.program == nil {
		return nil
	}
	a.program.Quit()
	return nil
}
