package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/leapstack-labs/leaptrain/internal/cli/output"
	"github.com/leapstack-labs/leaptrain/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved run configuration",
		Long: `Load the run configuration and print it after all layers are applied:
defaults, the document, environment overrides, and flag overrides. What show
prints is exactly what a training run would receive.`,
		Example: `  # Styled tables on a terminal, markdown when piped
  leaptrain show

  # Machine-readable forms
  leaptrain show --format json
  leaptrain show --format yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			r := newRenderer(cmd)
			if format != "" && format != "yaml" {
				r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
			}

			if format == "yaml" {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(cfg)
			}
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(cfg)
			}

			renderConfigTables(r, path, cfg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

func renderConfigTables(r *output.Renderer, path string, cfg *config.RunConfig) {
	r.Printf("Run config: %s\n\n", path)

	r.Table("Run", []string{"Field", "Value"}, [][]string{
		{"trainer", cfg.Trainer},
		{"logger", cfg.Logger},
		{"task.dataset", cfg.Task.Dataset},
		{"task.type", cfg.Task.Type},
		{"task.metric", cfg.Task.Metric},
		{"task.description", cfg.Task.Description},
	})
	r.Println()

	r.Table("Dataset", []string{"Split", "Source"}, [][]string{
		{"train", cfg.Dataset.Train.Src},
		{"val", cfg.Dataset.Val.Src},
		{"test", cfg.Dataset.Test.Src},
	})
	r.Println()

	r.Table("Model", []string{"Field", "Value"}, [][]string{
		{"name", cfg.Model.Name},
		{"cutoff", formatFloat(cfg.Model.Cutoff)},
		{"hidden_channels", strconv.Itoa(cfg.Model.HiddenChannels)},
		{"num_layers", strconv.Itoa(cfg.Model.NumLayers)},
		{"num_radial", strconv.Itoa(cfg.Model.NumRadial)},
		{"regress_forces", strconv.FormatBool(cfg.Model.RegressForces)},
		{"use_pbc", strconv.FormatBool(cfg.Model.UsePBC)},
		{"otf_graph", strconv.FormatBool(cfg.Model.OTFGraph)},
		{"output_dim", strconv.Itoa(cfg.Model.OutputDim)},
	})
	r.Println()

	r.Table("Optim", []string{"Field", "Value"}, [][]string{
		{"batch_size", strconv.Itoa(cfg.Optim.BatchSize)},
		{"eval_batch_size", strconv.Itoa(cfg.Optim.EvalBatchSize)},
		{"num_workers", strconv.Itoa(cfg.Optim.NumWorkers)},
		{"lr_initial", formatFloat(cfg.Optim.LRInitial)},
		{"lr_gamma", formatFloat(cfg.Optim.LRGamma)},
		{"lr_milestones", fmt.Sprint(cfg.Optim.LRMilestones)},
		{"warmup_steps", strconv.Itoa(cfg.Optim.WarmupSteps)},
		{"warmup_factor", formatFloat(cfg.Optim.WarmupFactor)},
		{"max_epochs", strconv.Itoa(cfg.Optim.MaxEpochs)},
		{"eval_every", strconv.Itoa(cfg.Optim.EvalEvery)},
	})

	if len(cfg.Extra) > 0 {
		r.Println()
		keys := make([]string, 0, len(cfg.Extra))
		for k := range cfg.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rows := make([][]string, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, []string{k, fmt.Sprint(cfg.Extra[k])})
		}
		r.Table("Extra (passed through)", []string{"Key", "Value"}, rows)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
