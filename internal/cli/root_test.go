package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaptrain/internal/cli/testutil"
	"github.com/leapstack-labs/leaptrain/internal/config"
)

// runCLI executes the root command with args and returns stdout, stderr,
// and the execution error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestValidate_SampleConfig(t *testing.T) {
	path := testutil.WriteSampleConfig(t)

	out, errOut, err := runCLI(t, "validate", "--config", path, "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	// The sample carries a milestone no run reaches; that is a warning,
	// not an error.
	assert.Contains(t, errOut, "will never trigger")
}

func TestValidate_Strict(t *testing.T) {
	path := testutil.WriteSampleConfig(t)

	_, _, err := runCLI(t, "validate", "--config", path, "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict mode")
}

func TestValidate_InvalidConfig(t *testing.T) {
	doc := strings.Replace(config.SampleDocument, "cutoff: 6.0", "cutoff: -6.0", 1)
	path := testutil.WriteConfig(t, doc)

	_, _, err := runCLI(t, "validate", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model.cutoff")
}

func TestValidate_MissingFile(t *testing.T) {
	_, _, err := runCLI(t, "validate", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate_JSONOutput(t *testing.T) {
	path := testutil.WriteSampleConfig(t)

	out, _, err := runCLI(t, "validate", "--config", path, "-o", "json")
	require.NoError(t, err)

	var result struct {
		Valid    bool `json:"valid"`
		Warnings []struct {
			Field string `json:"field"`
		} `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Valid)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "optim.lr_milestones", result.Warnings[0].Field)
}

func TestValidate_CheckPaths(t *testing.T) {
	dir := t.TempDir()
	for _, split := range []string{"train", "val", "test"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "data", split), 0755))
	}
	doc := config.SampleDocument
	doc = strings.Replace(doc, "data/omdb/band_gap/random_train/", filepath.Join(dir, "data", "train"), 1)
	doc = strings.Replace(doc, "data/omdb/band_gap/random_val/", filepath.Join(dir, "data", "val"), 1)
	doc = strings.Replace(doc, "data/omdb/band_gap/random_test/", filepath.Join(dir, "data", "test"), 1)
	path := testutil.WriteConfig(t, doc)

	_, _, err := runCLI(t, "validate", "--config", path, "--check-paths")
	require.NoError(t, err)

	// And with the default sample paths, which do not exist here.
	_, _, err = runCLI(t, "validate", "--config", testutil.WriteSampleConfig(t), "--check-paths")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not resolvable")
}

func TestValidate_FlagOverrideRejected(t *testing.T) {
	path := testutil.WriteSampleConfig(t)

	// An override flows through the same validation as the document.
	_, _, err := runCLI(t, "validate", "--config", path, "--batch-size", "-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "optim.batch_size")
}

func TestShow_JSON(t *testing.T) {
	path := testutil.WriteSampleConfig(t)

	out, _, err := runCLI(t, "show", "--config", path, "--format", "json")
	require.NoError(t, err)

	var cfg config.RunConfig
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 128, cfg.Model.HiddenChannels)
	assert.Equal(t, "energy", cfg.Trainer)
}

func TestShow_YAML(t *testing.T) {
	path := testutil.WriteSampleConfig(t)

	out, _, err := runCLI(t, "show", "--config", path, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "hidden_channels: 128")
	assert.Contains(t, out, "trainer: energy")
}

func TestShow_Markdown(t *testing.T) {
	path := testutil.WriteSampleConfig(t)

	out, _, err := runCLI(t, "show", "--config", path, "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "| Field | Value |")
	assert.Contains(t, out, "leftnet")
	testutil.AssertNoANSI(t, out)
}

func TestShow_FlagOverride(t *testing.T) {
	path := testutil.WriteSampleConfig(t)

	out, _, err := runCLI(t, "show", "--config", path, "--format", "json", "--batch-size", "64", "--lr", "0.001")
	require.NoError(t, err)

	var cfg config.RunConfig
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 64, cfg.Optim.BatchSize)
	assert.Equal(t, 0.001, cfg.Optim.LRInitial)
}

func TestSchedule_JSON(t *testing.T) {
	doc := strings.Replace(config.SampleDocument, "    - 5000000000", "    - 100\n    - 200", 1)
	path := testutil.WriteConfig(t, doc)

	out, _, err := runCLI(t, "schedule", "--config", path, "-o", "json", "--until", "200", "--every", "100")
	require.NoError(t, err)

	var points []struct {
		Step int     `json:"step"`
		LR   float64 `json:"lr"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &points))
	require.NotEmpty(t, points)

	lrAt := make(map[int]float64, len(points))
	for _, p := range points {
		lrAt[p.Step] = p.LR
	}
	assert.InDelta(t, 0.0005, lrAt[0], 1e-12)
	assert.InDelta(t, 0.00005, lrAt[100], 1e-12)
	assert.InDelta(t, 0.000005, lrAt[200], 1e-12)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "band_gap")

	_, _, err := runCLI(t, "init", target)
	require.NoError(t, err)

	written := filepath.Join(target, config.ConfigFileName)
	data, err := os.ReadFile(written)
	require.NoError(t, err)
	assert.Equal(t, config.SampleDocument, string(data))

	// The written starter must pass its own validation.
	_, _, err = runCLI(t, "validate", "--config", written)
	require.NoError(t, err)

	// A second init without --force refuses to clobber.
	_, _, err = runCLI(t, "init", target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, _, err = runCLI(t, "init", target, "--force")
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "leaptrain v")
}
