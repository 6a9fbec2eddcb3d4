// Package config provides run configuration loading for normsim.
// It supports loading from YAML files with defaults for omitted fields.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sociophysics/normsim/internal/sim"
)

// #region types
// Bias is an initial (conform, break) weighting for one group. The pair
// need not sum to 1; the simulator normalizes at construction.
type Bias struct {
	Conform float64 `yaml:"conform"`
	Break   float64 `yaml:"break"`
}

// RunConfig contains all parameters for one simulation run.
type RunConfig struct {
	// Population is the number of agents per group.
	Population int `yaml:"population"`

	// BiasA and BiasB seed every agent's initial state in each group.
	BiasA Bias `yaml:"bias_a"`
	BiasB Bias `yaml:"bias_b"`

	// StrengthA and StrengthB are the per-group norm strengths, nominally
	// in [0,1]. Out-of-range values are passed through unvalidated.
	StrengthA float64 `yaml:"strength_a"`
	StrengthB float64 `yaml:"strength_b"`

	// Entanglement is the pairwise coupling strength.
	Entanglement float64 `yaml:"entanglement"`

	// Steps is the fixed step count for the run.
	Steps int `yaml:"steps"`

	// Seed fixes the measurement draw stream. 0 means "derive from the
	// wall clock at run time"; see ResolveSeed.
	Seed int64 `yaml:"seed"`
}

// #endregion types

// #region defaults
// Default returns a RunConfig with sensible defaults: a modest population,
// mirrored biases, and moderate conformity pull.
func Default() *RunConfig {
	return &RunConfig{
		Population:   100,
		BiasA:        Bias{Conform: 0.6, Break: 0.4},
		BiasB:        Bias{Conform: 0.4, Break: 0.6},
		StrengthA:    0.8,
		StrengthB:    0.8,
		Entanglement: 0.05,
		Steps:        50,
		Seed:         0,
	}
}

// #endregion defaults

// #region load
// Load reads a YAML config file over the defaults, so omitted fields keep
// their default values.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// #endregion load

// #region resolve
// ResolveSeed fills a zero seed from the wall clock and returns the
// effective seed. Call once before SimConfig so the archived seed is the one
// the run actually used.
func (c *RunConfig) ResolveSeed() int64 {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c.Seed
}

// SimConfig converts to the simulator's construction config.
func (c *RunConfig) SimConfig() sim.Config {
	return sim.Config{
		PopulationSize: c.Population,
		BiasA:          [2]float64{c.BiasA.Conform, c.BiasA.Break},
		BiasB:          [2]float64{c.BiasB.Conform, c.BiasB.Break},
		StrengthA:      c.StrengthA,
		StrengthB:      c.StrengthB,
		Entanglement:   c.Entanglement,
		Seed:           c.Seed,
	}
}

// #endregion resolve
