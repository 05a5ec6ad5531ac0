package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leaptrain/internal/config"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter run configuration",
		Long: `Write a starter leaptrain.yaml: the OMDB band-gap regression setup for
LEFTNet. Edit the dataset split paths, then run 'leaptrain validate'.`,
		Example: `  # Initialize in the current directory
  leaptrain init

  # Initialize in a new directory
  leaptrain init runs/band_gap

  # Overwrite an existing config
  leaptrain init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := newRenderer(cmd)

			if dir != "." {
				if err := os.MkdirAll(dir, 0750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			path := filepath.Join(dir, config.ConfigFileName)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists. Use --force to overwrite", path)
			}

			if err := os.WriteFile(path, []byte(config.SampleDocument), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			r.Success(fmt.Sprintf("wrote %s", path))
			r.Println("")
			r.Println("Next steps:")
			r.Println("  1. Point dataset.{train,val,test}.src at your LMDB splits")
			r.Println("  2. Run 'leaptrain validate --check-paths'")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}
