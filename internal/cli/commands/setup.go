// Package commands implements the leaptrain subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/leaptrain/internal/cli/output"
	"github.com/leapstack-labs/leaptrain/internal/config"
	"github.com/spf13/cobra"
)

// loggerKey is used to store the logger in the command context.
type loggerKey struct{}

// WithLogger stores a logger in ctx. The root command calls this so
// commands can log without importing the cli package.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFrom retrieves the logger from the command context.
func loggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Discard logger as safe fallback
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// resolveConfigPath finds the run config file from the global --config flag
// or the default file names in the working directory.
func resolveConfigPath(cmd *cobra.Command) (string, error) {
	explicit, _ := cmd.Root().PersistentFlags().GetString("config")
	path := config.FindConfigFile(explicit)
	if path == "" {
		return "", fmt.Errorf("no run config found; looked for %s and %s (use --config)",
			config.ConfigFileName, config.ConfigFileNameAlt)
	}
	return path, nil
}

// loadConfig resolves and loads the run config, honoring the global
// hyperparameter override flags.
func loadConfig(cmd *cobra.Command) (*config.RunConfig, string, error) {
	path, err := resolveConfigPath(cmd)
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadWithOverrides(path, cmd.Root().PersistentFlags())
	if err != nil {
		return nil, path, err
	}
	loggerFrom(cmd.Context()).Debug("loaded run config", "path", path, "trainer", cfg.Trainer, "model", cfg.Model.Name)
	return cfg, path, nil
}

// newRenderer builds a renderer from the global --output flag.
func newRenderer(cmd *cobra.Command) *output.Renderer {
	mode, _ := cmd.Root().PersistentFlags().GetString("output")
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(mode))
}
