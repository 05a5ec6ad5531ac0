package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaptrain/internal/cli/output"
	"github.com/leapstack-labs/leaptrain/internal/cli/testutil"
	"github.com/leapstack-labs/leaptrain/internal/config"
	"github.com/leapstack-labs/leaptrain/internal/schedule"
)

func testSchedule() *schedule.Schedule {
	return schedule.New(config.OptimConfig{
		LRInitial:    0.01,
		LRGamma:      0.1,
		LRMilestones: []int{100, 200},
		WarmupSteps:  -1,
		WarmupFactor: 1.0,
	})
}

func TestSamplePoints(t *testing.T) {
	points := samplePoints(testSchedule(), 200, 50)

	// Milestone boundaries are always included, on top of the sampling grid.
	steps := make([]int, len(points))
	for i, p := range points {
		steps[i] = p.Step
	}
	assert.Equal(t, []int{0, 50, 99, 100, 150, 199, 200}, steps)

	byStep := make(map[int]SchedulePoint, len(points))
	for _, p := range points {
		byStep[p.Step] = p
	}
	assert.InDelta(t, 0.01, byStep[99].LR, 1e-12)
	assert.InDelta(t, 0.001, byStep[100].LR, 1e-12)
	assert.True(t, byStep[100].Milestone)
	assert.False(t, byStep[150].Milestone)
	assert.InDelta(t, 0.0001, byStep[200].LR, 1e-12)
}

func TestRunSchedule_JSON(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeJSON, false)
	require.NoError(t, runSchedule(tr.Renderer, testSchedule(), 200, 100))

	var points []SchedulePoint
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &points))
	assert.NotEmpty(t, points)
	assert.Equal(t, 0, points[0].Step)
}

func TestRunSchedule_DefaultsToLastMilestone(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeJSON, false)
	require.NoError(t, runSchedule(tr.Renderer, testSchedule(), 0, 0))

	var points []SchedulePoint
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &points))
	last := points[len(points)-1]
	assert.Equal(t, 200, last.Step)
	assert.True(t, last.Milestone)
}

func TestRunSchedule_Markdown(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeMarkdown, false)
	require.NoError(t, runSchedule(tr.Renderer, testSchedule(), 200, 100))

	testutil.AssertNoANSI(t, tr.Output())
	assert.Contains(t, tr.Output(), "milestone")
}
