package config

import (
	"fmt"
	"slices"
	"strings"
)

// Warning is an advisory lint finding. Warnings never fail a load: the
// external framework may legitimately support tags this loader does not
// know, and an unreachable milestone is an authoring smell, not an error.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// Tags this loader knows about. The sets are open: unknown values are
// passed through to the framework and only warned about.
var (
	knownTrainers  = []string{"energy", "forces"}
	knownLoggers   = []string{"wandb", "tensorboard", "dummy"}
	knownModels    = []string{"leftnet", "schnet", "dimenet_plus_plus", "gemnet_t", "painn"}
	knownTaskTypes = []string{"regression", "classification"}
)

// maxPlausibleStep is an upper bound on step counts any realistic run
// reaches. Milestones beyond it (like the 5000000000 seen in the wild)
// are syntactically valid but will never trigger.
const maxPlausibleStep = 100_000_000

// Lint reports advisory findings on an already-valid configuration.
func (c *RunConfig) Lint() []Warning {
	var warnings []Warning

	unknown := func(field, value string, known []string) {
		if !slices.Contains(known, value) {
			warnings = append(warnings, Warning{
				Field: field,
				Message: fmt.Sprintf("unknown tag %q (known: %s); passed through to the framework uninterpreted",
					value, strings.Join(known, ", ")),
			})
		}
	}
	unknown("trainer", c.Trainer, knownTrainers)
	unknown("logger", c.Logger, knownLoggers)
	unknown("model.name", c.Model.Name, knownModels)
	unknown("task.type", c.Task.Type, knownTaskTypes)

	if c.Optim.LRGamma >= 1 {
		warnings = append(warnings, Warning{
			Field:   "optim.lr_gamma",
			Message: fmt.Sprintf("%g is outside (0, 1); milestones will not decay the learning rate", c.Optim.LRGamma),
		})
	}

	for _, m := range c.Optim.LRMilestones {
		if m > maxPlausibleStep {
			warnings = append(warnings, Warning{
				Field:   "optim.lr_milestones",
				Message: fmt.Sprintf("milestone %d exceeds any plausible training step count and will never trigger", m),
			})
			break
		}
	}

	if c.Optim.WarmupSteps == 0 {
		warnings = append(warnings, Warning{
			Field:   "optim.warmup_steps",
			Message: "0 is an empty warmup; use -1 to disable warmup explicitly",
		})
	}

	return warnings
}
