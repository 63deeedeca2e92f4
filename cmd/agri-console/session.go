package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/BrianJOC/agri-console/api"
	"github.com/BrianJOC/agri-console/internal/config"
	"github.com/BrianJOC/agri-console/wizard"
	"github.com/BrianJOC/agri-console/wizard/onboarding"
)

// Login command flags
var (
	loginEmail    string
	loginPassword string
	loginRole     string
)

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginRole, "role", "", "Role to sign in as: farmer, vendor or ngo")

	rootCmd.AddCommand(loginCmd, logoutCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and save the session",
	Example: `  # Prompt for the password
  agri-console login --email jane@farm.co`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd, false)
		if err != nil {
			return err
		}
		defer func() { _ = e.logger.Sync() }()

		password := loginPassword
		if password == "" {
			if password, err = promptPassword(cmd.ErrOrStderr()); err != nil {
				return err
			}
		}
		user, err := e.login(cmd.Context(), api.LoginRequest{
			Email:    strings.TrimSpace(loginEmail),
			Password: password,
			Role:     loginRole,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", user.Name, user.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd, false)
		if err != nil {
			return err
		}
		if err := config.SaveSession(e.configPath, "", ""); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

// login authenticates against the backend and saves the token and role.
func (e *env) login(ctx context.Context, req api.LoginRequest) (api.User, error) {
	client, err := e.backend()
	if err != nil {
		return api.User{}, err
	}
	if req.Role != "" && !onboarding.Role(req.Role).Valid() {
		return api.User{}, fmt.Errorf("unknown role %q", req.Role)
	}
	resp, err := client.Login(ctx, req)
	if err != nil {
		return api.User{}, fmt.Errorf("login failed: %w", err)
	}
	role := resp.User.Role
	if !onboarding.Role(role).Valid() {
		role = req.Role
	}
	if err := config.SaveSession(e.configPath, resp.Token, role); err != nil {
		return api.User{}, err
	}
	e.logger.Info("session saved", zap.String("role", role), zap.String("config", e.configPath))
	resp.User.Role = role
	return resp.User, nil
}

func promptPassword(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("--password is required when stdin is not a terminal")
	}
	fmt.Fprint(w, "Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

// sessionSaver stores the token of a successful registration so the next
// run opens the dashboard directly.
type sessionSaver struct {
	path   string
	logger *zap.Logger
}

func (s sessionSaver) StepChanged(from, to wizard.StepMetadata) {}

func (s sessionSaver) SubmissionCompleted(result wizard.Result, err error) {
	if err != nil || result.Token == "" {
		return
	}
	if err := config.SaveSession(s.path, result.Token, result.Role); err != nil {
		s.logger.Warn("failed to save session", zap.Error(err))
	}
}
