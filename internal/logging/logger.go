// Package logging builds the zap logger shared by the console. Logging is
// silent unless a level is configured, because the terminal belongs to the
// TUI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnvVar overrides the configured level when set.
const LevelEnvVar = "AGRI_LOG_LEVEL"

// New returns a logger writing at level to path. An empty level (after
// consulting LevelEnvVar) yields a no-op logger. An empty path writes to
// stderr. Parent directories of path are created.
func New(level, path string) (*zap.Logger, error) {
	if env := strings.TrimSpace(os.Getenv(LevelEnvVar)); env != "" {
		level = env
	}
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" || level == "off" {
		return zap.NewNop(), nil
	}

	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	output := strings.TrimSpace(path)
	switch output {
	case "":
		output = "stderr"
	case "stderr", "stdout":
	default:
		if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if output == "stderr" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps debug/info/warn/error to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}
