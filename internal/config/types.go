// Package config loads and validates training run configurations.
//
// A run configuration is a YAML document describing a single training run:
// which trainer and logger the framework should use, where the dataset
// splits live, the model hyperparameters, and the optimizer schedule.
// The loader rejects malformed or semantically invalid documents before
// any training resource is allocated.
package config

// RunConfig is the top-level run configuration. It is constructed once by
// Load at process start and never mutated afterwards; consumers receive it
// as an explicit parameter, never through package globals.
type RunConfig struct {
	Trainer string        `koanf:"trainer" json:"trainer" yaml:"trainer"`
	Logger  string        `koanf:"logger" json:"logger" yaml:"logger"`
	Task    TaskConfig    `koanf:"task" json:"task" yaml:"task"`
	Dataset DatasetConfig `koanf:"dataset" json:"dataset" yaml:"dataset"`
	Model   ModelConfig   `koanf:"model" json:"model" yaml:"model"`
	Optim   OptimConfig   `koanf:"optim" json:"optim" yaml:"optim"`

	// Extra holds keys present in the document but unknown to this schema,
	// keyed by dotted path. They are preserved uninterpreted so the
	// external framework can consume fields this loader does not know.
	Extra map[string]any `koanf:"-" json:"extra,omitempty" yaml:"extra,omitempty"`
}

// TaskConfig describes what the run is regressing or classifying.
type TaskConfig struct {
	Dataset     string `koanf:"dataset" json:"dataset" yaml:"dataset"`
	Description string `koanf:"description" json:"description" yaml:"description"`
	Type        string `koanf:"type" json:"type" yaml:"type"`
	Metric      string `koanf:"metric" json:"metric" yaml:"metric"`
}

// DatasetConfig names the three dataset splits.
type DatasetConfig struct {
	Train SplitConfig `koanf:"train" json:"train" yaml:"train"`
	Val   SplitConfig `koanf:"val" json:"val" yaml:"val"`
	Test  SplitConfig `koanf:"test" json:"test" yaml:"test"`
}

// SplitConfig holds the filesystem location of one dataset split.
type SplitConfig struct {
	Src string `koanf:"src" json:"src" yaml:"src"`
}

// ModelConfig holds the architecture hyperparameters.
type ModelConfig struct {
	Name           string  `koanf:"name" json:"name" yaml:"name"`
	Cutoff         float64 `koanf:"cutoff" json:"cutoff" yaml:"cutoff"`
	HiddenChannels int     `koanf:"hidden_channels" json:"hidden_channels" yaml:"hidden_channels"`
	NumLayers      int     `koanf:"num_layers" json:"num_layers" yaml:"num_layers"`
	NumRadial      int     `koanf:"num_radial" json:"num_radial" yaml:"num_radial"`
	RegressForces  bool    `koanf:"regress_forces" json:"regress_forces" yaml:"regress_forces"`
	UsePBC         bool    `koanf:"use_pbc" json:"use_pbc" yaml:"use_pbc"`
	OTFGraph       bool    `koanf:"otf_graph" json:"otf_graph" yaml:"otf_graph"`
	OutputDim      int     `koanf:"output_dim" json:"output_dim" yaml:"output_dim"`
}

// OptimConfig holds the optimizer and learning-rate schedule parameters.
// WarmupSteps of -1 disables warmup.
type OptimConfig struct {
	BatchSize     int     `koanf:"batch_size" json:"batch_size" yaml:"batch_size"`
	EvalBatchSize int     `koanf:"eval_batch_size" json:"eval_batch_size" yaml:"eval_batch_size"`
	NumWorkers    int     `koanf:"num_workers" json:"num_workers" yaml:"num_workers"`
	LRInitial     float64 `koanf:"lr_initial" json:"lr_initial" yaml:"lr_initial"`
	LRGamma       float64 `koanf:"lr_gamma" json:"lr_gamma" yaml:"lr_gamma"`
	LRMilestones  []int   `koanf:"lr_milestones" json:"lr_milestones" yaml:"lr_milestones"`
	WarmupSteps   int     `koanf:"warmup_steps" json:"warmup_steps" yaml:"warmup_steps"`
	WarmupFactor  float64 `koanf:"warmup_factor" json:"warmup_factor" yaml:"warmup_factor"`
	MaxEpochs     int     `koanf:"max_epochs" json:"max_epochs" yaml:"max_epochs"`
	EvalEvery     int     `koanf:"eval_every" json:"eval_every" yaml:"eval_every"`
}

// DefaultWarmupFactor is applied before the document is merged. It is the
// only defaulted field; the framework itself defaults it, so a document
// that omits it is still complete. Everything else is required.
const DefaultWarmupFactor = 1.0

// ConfigFileName is the default name of the run config file.
const ConfigFileName = "leaptrain.yaml"

// ConfigFileNameAlt is the alternate name of the run config file.
const ConfigFileNameAlt = "leaptrain.yml"
