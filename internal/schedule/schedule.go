// Package schedule evaluates the learning-rate schedule an optimizer
// configuration describes: a linear warmup ramp followed by multiplicative
// decay at each milestone step.
package schedule

import (
	"math"

	"github.com/leapstack-labs/leaptrain/internal/config"
)

// Schedule is a pure function of the optimizer configuration. It performs
// no optimization itself; it only answers "what would the learning rate
// be at step n".
type Schedule struct {
	initial      float64
	gamma        float64
	milestones   []int
	warmupSteps  int
	warmupFactor float64
}

// New builds a Schedule from an optimizer configuration. The config is
// assumed to have passed Validate.
func New(optim config.OptimConfig) *Schedule {
	return &Schedule{
		initial:      optim.LRInitial,
		gamma:        optim.LRGamma,
		milestones:   optim.LRMilestones,
		warmupSteps:  optim.WarmupSteps,
		warmupFactor: optim.WarmupFactor,
	}
}

// At returns the learning rate at the given training step.
//
// During warmup the rate ramps linearly from warmupFactor*initial to
// initial. From the warmup boundary on, the rate is initial * gamma^k,
// where k is the number of milestones at or below the step.
func (s *Schedule) At(step int) float64 {
	if s.warmupSteps > 0 && step < s.warmupSteps {
		alpha := float64(step) / float64(s.warmupSteps)
		return s.initial * (s.warmupFactor*(1-alpha) + alpha)
	}

	decays := 0
	for _, m := range s.milestones {
		if step < m {
			break
		}
		decays++
	}
	return s.initial * math.Pow(s.gamma, float64(decays))
}

// Milestones returns the decay step indices.
func (s *Schedule) Milestones() []int {
	return s.milestones
}

// WarmupSteps returns the warmup length, or -1 when warmup is disabled.
func (s *Schedule) WarmupSteps() int {
	return s.warmupSteps
}
