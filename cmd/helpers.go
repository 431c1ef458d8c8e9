package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/inovacc/kollect/internal/application"
	"github.com/inovacc/kollect/internal/core"
	"github.com/inovacc/kollect/internal/kinto"
	"github.com/inovacc/kollect/internal/params"
)

// loadConfig reads the active configuration, honoring --config.
func loadConfig() (*core.Config, error) {
	if cfgFile != "" {
		return core.LoadConfigFrom(cfgFile)
	}

	return core.LoadConfig()
}

// newLogger builds the logger for one-shot commands, writing to stderr
// so command output stays clean on stdout.
func newLogger() *slog.Logger {
	return newLoggerTo(os.Stderr)
}

func newLoggerTo(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openLogFile opens the append-only log file used while the TUI owns
// the terminal.
func openLogFile() (*os.File, error) {
	path := filepath.Join(params.AppdataDir, application.AppName+".log")

	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// newClient builds the record server client from the configuration.
func newClient(cfg *core.Config, logger *slog.Logger) (*kinto.Client, error) {
	client, err := kinto.New(cfg.ClientConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// configLimit converts the configured page size to the client
// representation (nil = unlimited).
func configLimit(cfg *core.Config) *int {
	if cfg.UI.Limit <= 0 {
		return nil
	}

	limit := cfg.UI.Limit

	return &limit
}

func formatOptional(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
