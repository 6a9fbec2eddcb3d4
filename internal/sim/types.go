package sim

import "errors"

// #region config
// Config is the construction-time configuration for a simulator. Strength
// and entanglement values outside their nominal ranges are accepted without
// validation; only the population size is checked.
type Config struct {
	// PopulationSize is the number of agents per group. Group A and group B
	// always hold the same count, paired index-for-index.
	PopulationSize int

	// BiasA and BiasB are the initial (conform, break) bias pairs per group.
	// They need not sum to 1; states are normalized at construction.
	BiasA [2]float64
	BiasB [2]float64

	// StrengthA and StrengthB are the per-group norm strengths, nominally in
	// [0,1].
	StrengthA float64
	StrengthB float64

	// Entanglement is the pairwise coupling strength, nominally small and
	// positive.
	Entanglement float64

	// Seed fixes the measurement draw stream. Runs with equal Config and
	// step count produce identical histories.
	Seed int64
}

// #endregion config

// #region step-record
// StepRecord holds the per-step aggregate outcome counts. Immutable after
// creation; AConforming+ABreaking and BConforming+BBreaking each equal the
// population size.
type StepRecord struct {
	Step        int // 1-based
	AConforming int
	ABreaking   int
	BConforming int
	BBreaking   int
}

// #endregion step-record

// #region history
// History is the ordered, append-only sequence of step records. It is the
// sole artifact read by export and rendering collaborators.
type History []StepRecord

// #endregion history

// #region errors
// ErrInvalidPopulation rejects a non-positive population size at
// construction.
var ErrInvalidPopulation = errors.New("invalid population: size must be positive")

// #endregion errors
