package commands

import (
	"sort"
	"strconv"

	"github.com/leapstack-labs/leaptrain/internal/cli/output"
	"github.com/leapstack-labs/leaptrain/internal/schedule"
	"github.com/spf13/cobra"
)

// SchedulePoint is one sampled step of the learning-rate schedule.
type SchedulePoint struct {
	Step      int     `json:"step"`
	LR        float64 `json:"lr"`
	Milestone bool    `json:"milestone,omitempty"`
}

// NewScheduleCommand creates the schedule command.
func NewScheduleCommand() *cobra.Command {
	var until int
	var every int

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Preview the learning-rate schedule",
		Long: `Evaluate the learning-rate schedule the optim section describes, without
running anything: the warmup ramp, then multiplicative decay at each
milestone step.

Useful for spotting schedules that never decay, such as a milestone beyond
any step count the run will reach.`,
		Example: `  # Sample the schedule up to the last milestone
  leaptrain schedule

  # Sample a fixed range
  leaptrain schedule --until 10000 --every 1000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runSchedule(newRenderer(cmd), schedule.New(cfg.Optim), until, every)
		},
	}

	cmd.Flags().IntVar(&until, "until", 0, "Last step to sample (default: last milestone)")
	cmd.Flags().IntVar(&every, "every", 0, "Sampling interval (default: until/10)")

	return cmd
}

func runSchedule(r *output.Renderer, s *schedule.Schedule, until, every int) error {
	milestones := s.Milestones()
	if until <= 0 {
		switch {
		case len(milestones) > 0:
			until = milestones[len(milestones)-1]
		case s.WarmupSteps() > 0:
			until = 2 * s.WarmupSteps()
		default:
			until = 10000
		}
	}
	if every <= 0 {
		every = max(until/10, 1)
	}

	points := samplePoints(s, until, every)
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(points)
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		note := ""
		if p.Milestone {
			note = "milestone"
		}
		rows = append(rows, []string{strconv.Itoa(p.Step), formatFloat(p.LR), note})
	}
	r.Table("LR schedule", []string{"Step", "Learning rate", ""}, rows)
	return nil
}

// samplePoints evaluates the schedule at regular intervals plus each
// milestone boundary, deduplicated and in step order.
func samplePoints(s *schedule.Schedule, until, every int) []SchedulePoint {
	isMilestone := make(map[int]bool)
	steps := []int{0}
	for _, m := range s.Milestones() {
		if m > until {
			break
		}
		isMilestone[m] = true
		steps = append(steps, m-1, m)
	}
	if w := s.WarmupSteps(); w > 0 && w <= until {
		steps = append(steps, w)
	}
	for step := every; step <= until; step += every {
		steps = append(steps, step)
	}

	sort.Ints(steps)
	points := make([]SchedulePoint, 0, len(steps))
	seen := -1
	for _, step := range steps {
		if step == seen || step < 0 {
			continue
		}
		seen = step
		points = append(points, SchedulePoint{
			Step:      step,
			LR:        s.At(step),
			Milestone: isMilestone[step],
		})
	}
	return points
}
