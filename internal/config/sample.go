package config

// SampleDocument is the starter run configuration written by `leaptrain init`.
// It is the OMDB band-gap regression setup for LEFTNet.
const SampleDocument = `trainer: energy
logger: wandb

task:
  dataset: lmdb
  description: "Regressing the band gap energy for the OMDB dataset"
  type: regression
  metric: mae

dataset:
  train:
    src: data/omdb/band_gap/random_train/
  val:
    src: data/omdb/band_gap/random_val/
  test:
    src: data/omdb/band_gap/random_test/

model:
  name: leftnet
  cutoff: 6.0
  hidden_channels: 128
  num_layers: 4
  num_radial: 32
  regress_forces: false
  use_pbc: true
  otf_graph: true
  output_dim: 1

optim:
  batch_size: 32
  eval_batch_size: 32
  num_workers: 4
  lr_initial: 0.0005
  lr_gamma: 0.1
  lr_milestones:
    - 5000000000
  warmup_steps: -1
  warmup_factor: 1.0
  max_epochs: 500
  eval_every: 500
`
