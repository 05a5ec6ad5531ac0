package commands

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/leaptrain/internal/cli/output"
	"github.com/leapstack-labs/leaptrain/internal/config"
	"github.com/spf13/cobra"
)

// ValidateOutput is the JSON output for the validate command.
type ValidateOutput struct {
	Path     string           `json:"path"`
	Valid    bool             `json:"valid"`
	Warnings []config.Warning `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var strict bool
	var checkPaths bool
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the run configuration",
		Long: `Load the run configuration and check it against the schema: required
fields, value types, positivity constraints, and milestone ordering.

Advisory findings (unknown trainer/logger/model tags, a decay factor outside
(0, 1), milestones no realistic run reaches) are reported as warnings and do
not fail validation unless --strict is set.`,
		Example: `  # Validate ./leaptrain.yaml
  leaptrain validate

  # Validate a specific file, treating warnings as errors
  leaptrain validate --config runs/band_gap.yaml --strict

  # Also check that the dataset split paths exist
  leaptrain validate --check-paths

  # Re-validate whenever the file changes
  leaptrain validate --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := newRenderer(cmd)
			path, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}
			if watch {
				return watchValidate(cmd, r, path, strict, checkPaths)
			}
			return validateOnce(cmd, r, path, strict, checkPaths)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")
	cmd.Flags().BoolVar(&checkPaths, "check-paths", false, "Verify dataset split paths exist")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-validate when the config file changes")

	return cmd
}

func validateOnce(cmd *cobra.Command, r *output.Renderer, path string, strict, checkPaths bool) error {
	cfg, err := config.LoadWithOverrides(path, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	if checkPaths {
		if err := cfg.CheckPaths(); err != nil {
			return err
		}
	}

	warnings := cfg.Lint()
	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(ValidateOutput{Path: path, Valid: true, Warnings: warnings}); err != nil {
			return err
		}
	} else {
		for _, w := range warnings {
			r.Warning(w.String())
		}
	}

	if strict && len(warnings) > 0 {
		return fmt.Errorf("strict mode: %d warning(s) promoted to errors", len(warnings))
	}

	if r.EffectiveMode() != output.ModeJSON {
		r.Success(fmt.Sprintf("%s is valid", path))
	}
	return nil
}

// watchValidate re-runs validation each time the config file is written.
// A failing validation keeps the watch alive; the point is a feedback loop
// while editing.
func watchValidate(cmd *cobra.Command, r *output.Renderer, path string, strict, checkPaths bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace the file on save,
	// which would drop a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	report := func() {
		if err := validateOnce(cmd, r, path, strict, checkPaths); err != nil {
			r.Error(err.Error())
		}
	}
	report()

	log := loggerFrom(cmd.Context())
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			log.Debug("config changed", "event", ev.Op.String())
			report()
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.Warning(fmt.Sprintf("watch error: %v", werr))
		}
	}
}
