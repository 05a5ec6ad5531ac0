package config

import (
	"fmt"
	"os"
)

// Validate checks the structural and domain invariants of the configuration.
// It operates on the struct, so configs built in code are held to the same
// rules as loaded documents. All violations are fatal.
func (c *RunConfig) Validate() error {
	required := []struct {
		path  string
		value string
	}{
		{"trainer", c.Trainer},
		{"logger", c.Logger},
		{"task.dataset", c.Task.Dataset},
		{"task.type", c.Task.Type},
		{"task.metric", c.Task.Metric},
		{"model.name", c.Model.Name},
		{"dataset.train.src", c.Dataset.Train.Src},
		{"dataset.val.src", c.Dataset.Val.Src},
		{"dataset.test.src", c.Dataset.Test.Src},
	}
	for _, r := range required {
		if r.value == "" {
			return missingField(r.path)
		}
	}

	positiveInts := []struct {
		path  string
		value int
	}{
		{"model.hidden_channels", c.Model.HiddenChannels},
		{"model.num_layers", c.Model.NumLayers},
		{"model.num_radial", c.Model.NumRadial},
		{"model.output_dim", c.Model.OutputDim},
		{"optim.batch_size", c.Optim.BatchSize},
		{"optim.eval_batch_size", c.Optim.EvalBatchSize},
		{"optim.num_workers", c.Optim.NumWorkers},
		{"optim.max_epochs", c.Optim.MaxEpochs},
		{"optim.eval_every", c.Optim.EvalEvery},
	}
	for _, p := range positiveInts {
		if p.value <= 0 {
			return domainViolation(p.path, fmt.Sprintf("must be a positive integer, got %d", p.value))
		}
	}

	if c.Model.Cutoff <= 0 {
		return domainViolation("model.cutoff", fmt.Sprintf("must be a positive number, got %g", c.Model.Cutoff))
	}
	if c.Optim.LRInitial <= 0 {
		return domainViolation("optim.lr_initial", fmt.Sprintf("must be a positive number, got %g", c.Optim.LRInitial))
	}
	if c.Optim.LRGamma <= 0 {
		return domainViolation("optim.lr_gamma", fmt.Sprintf("must be a positive number, got %g", c.Optim.LRGamma))
	}

	for i, m := range c.Optim.LRMilestones {
		if m <= 0 {
			return domainViolation(fmt.Sprintf("optim.lr_milestones[%d]", i),
				fmt.Sprintf("milestones must be positive step indices, got %d", m))
		}
		if i > 0 && m <= c.Optim.LRMilestones[i-1] {
			return domainViolation("optim.lr_milestones",
				fmt.Sprintf("must be strictly increasing, got %d after %d", m, c.Optim.LRMilestones[i-1]))
		}
	}

	if c.Optim.WarmupSteps < -1 {
		return domainViolation("optim.warmup_steps",
			fmt.Sprintf("must be a non-negative step count, or -1 to disable warmup, got %d", c.Optim.WarmupSteps))
	}
	if c.Optim.WarmupSteps > 0 && c.Optim.WarmupFactor <= 0 {
		return domainViolation("optim.warmup_factor",
			fmt.Sprintf("must be positive when warmup is enabled, got %g", c.Optim.WarmupFactor))
	}

	return nil
}

// CheckPaths verifies that every dataset split references a location
// resolvable right now. It is separate from Validate so a config can be
// structurally validated on machines where the datasets are not mounted.
func (c *RunConfig) CheckPaths() error {
	splits := []struct {
		name string
		src  string
	}{
		{"train", c.Dataset.Train.Src},
		{"val", c.Dataset.Val.Src},
		{"test", c.Dataset.Test.Src},
	}
	for _, s := range splits {
		if _, err := os.Stat(s.src); err != nil {
			return fmt.Errorf("%s split path is not resolvable: %s: %w", s.name, s.src, err)
		}
	}
	return nil
}
