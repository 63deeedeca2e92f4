// Agri-console is a terminal client for the agricultural information
// platform.
//
// Running without arguments launches the interactive onboarding wizard
// followed by the dashboard for the registered role. Once a session is saved
// by login or registration, the console opens that role's dashboard
// directly. The crops, products, analytics and weather subcommands print a
// table and exit; their add, update and delete subcommands change records
// on the backend.
//
// Usage:
//
//	agri-console [command] [flags]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/BrianJOC/agri-console/api"
	"github.com/BrianJOC/agri-console/dashboard"
	"github.com/BrianJOC/agri-console/internal/config"
	"github.com/BrianJOC/agri-console/internal/logging"
	"github.com/BrianJOC/agri-console/internal/version"
	"github.com/BrianJOC/agri-console/pkg/dashapp"
	"github.com/BrianJOC/agri-console/wizard"
	"github.com/BrianJOC/agri-console/wizard/onboarding"
)

var (
	configPath string
	apiURL     string
	offline    bool
	pageSize   int
	logLevel   string
	roleFlag   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "agri-console",
	Short: "Terminal client for the agricultural information platform",
	Long: `Create an account and browse your farmer, vendor or NGO dashboard from
the terminal.

If no command is specified, the interactive console launches.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConsole,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "agri-console %s (commit: %s)\n", version.Version, version.Commit)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/agri-console/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Use built-in sample data instead of the API")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0, "Rows per table page")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&roleFlag, "role", "", "Skip onboarding and open the dashboard for farmer, vendor or ngo")

	rootCmd.AddCommand(versionCmd)
}

// errOffline is returned by commands that must reach the backend.
var errOffline = errors.New("this command needs the API; drop --offline")

// env bundles what every command needs once flags and config are merged.
type env struct {
	cfg        config.Config
	configPath string
	logger     *zap.Logger
	client     *api.Client
}

// loadEnv merges the config file with the flags. Interactive runs log to a
// file because the terminal belongs to the TUI.
func loadEnv(cmd *cobra.Command, interactive bool) (*env, error) {
	path, err := config.Resolve(configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("api") {
		cfg.APIURL = apiURL
	}
	if flags.Changed("offline") {
		cfg.Offline = offline
	}
	if flags.Changed("page-size") {
		cfg.ItemsPerPage = pageSize
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logFile := cfg.LogFile
	if interactive && logFile == "" {
		if logFile, err = config.LogPath(); err != nil {
			return nil, err
		}
	}
	logger, err := logging.New(cfg.LogLevel, logFile)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, configPath: path, logger: logger}
	if cfg.Offline {
		return e, nil
	}
	client, err := api.New(cfg.APIURL,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(logger),
		api.WithToken(cfg.Token),
	)
	if err != nil {
		return nil, err
	}
	e.client = client
	return e, nil
}

// source falls back to sample data when the API cannot be reached.
func (e *env) source() dashboard.Source {
	if e.client == nil {
		return dashboard.MockSource{}
	}
	return dashboard.FallbackSource{
		Primary:   dashboard.NewAPISource(e.client),
		Secondary: dashboard.MockSource{},
		Logger:    e.logger,
	}
}

// backend returns the client, or errOffline when running on sample data.
func (e *env) backend() (*api.Client, error) {
	if e.client == nil {
		return nil, errOffline
	}
	return e.client, nil
}

func (e *env) registrar() wizard.Registrar {
	if e.client == nil {
		return onboarding.OfflineRegistrar()
	}
	return onboarding.NewRegistrar(e.client)
}

// startRole picks the dashboard to open without onboarding: --role first,
// then the role of a saved session.
func (e *env) startRole() onboarding.Role {
	if roleFlag != "" {
		return onboarding.Role(roleFlag)
	}
	if role := onboarding.Role(e.cfg.Role); e.client != nil && e.cfg.Authenticated() && role.Valid() {
		return role
	}
	return ""
}

func runConsole(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("the interactive console needs a terminal; use the crops, products or analytics commands instead")
	}

	e, err := loadEnv(cmd, true)
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	opts := []dashapp.Option{
		dashapp.WithRegistrar(e.registrar()),
		dashapp.WithSource(e.source()),
		dashapp.WithItemsPerPage(e.cfg.ItemsPerPage),
		dashapp.WithLogger(e.logger),
		dashapp.WithControllerOptions(wizard.WithObserver(sessionSaver{path: e.configPath, logger: e.logger})),
	}
	if role := e.startRole(); role != "" {
		opts = append(opts, dashapp.WithRole(role))
	}
	app, err := dashapp.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize console: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e.logger.Info("console starting", zap.String("api", e.cfg.APIURL), zap.Bool("offline", e.cfg.Offline))
	if err := app.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("console exited with error: %w", err)
	}
	return nil
}
