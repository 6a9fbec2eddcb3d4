package sim

import (
	"fmt"

	"github.com/sociophysics/normsim/internal/dynamics"
	"github.com/sociophysics/normsim/internal/measure"
)

// #region simulator-struct
// Simulator owns the two paired agent groups and the measurement draw
// source. It is single-threaded: one goroutine drives the whole run.
type Simulator struct {
	cfg     Config
	groupA  []dynamics.State
	groupB  []dynamics.State
	src     *measure.Source
	history History
	step    int
}

// #endregion simulator-struct

// #region constructor
// NewSimulator validates the population size, normalizes the initial biases
// into per-agent states, and seeds the measurement source.
func NewSimulator(cfg Config) (*Simulator, error) {
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("population %d: %w", cfg.PopulationSize, ErrInvalidPopulation)
	}

	initA, err := dynamics.NewState(cfg.BiasA[0], cfg.BiasA[1])
	if err != nil {
		return nil, fmt.Errorf("group A bias: %w", err)
	}
	initB, err := dynamics.NewState(cfg.BiasB[0], cfg.BiasB[1])
	if err != nil {
		return nil, fmt.Errorf("group B bias: %w", err)
	}

	s := &Simulator{
		cfg:    cfg,
		groupA: make([]dynamics.State, cfg.PopulationSize),
		groupB: make([]dynamics.State, cfg.PopulationSize),
		src:    measure.NewSource(cfg.Seed),
	}
	for i := range s.groupA {
		s.groupA[i] = initA
		s.groupB[i] = initB
	}
	return s, nil
}

// #endregion constructor

// #region run-step
// RunStep executes one full step: the norm-conforming transform on every
// agent, then the pairwise coupling from the post-transform states, then one
// measurement draw per agent. The tallied record is appended to the history
// and returned. A degenerate state aborts immediately; the error is not
// transient and the run must not be retried.
func (s *Simulator) RunStep() (StepRecord, error) {
	opA := dynamics.NewNormOperator(s.cfg.StrengthA)
	opB := dynamics.NewNormOperator(s.cfg.StrengthB)

	for i := range s.groupA {
		a, err := dynamics.ApplyNorm(s.groupA[i], opA)
		if err != nil {
			return StepRecord{}, fmt.Errorf("step %d pair %d group A: %w", s.step+1, i, err)
		}
		b, err := dynamics.ApplyNorm(s.groupB[i], opB)
		if err != nil {
			return StepRecord{}, fmt.Errorf("step %d pair %d group B: %w", s.step+1, i, err)
		}

		// Coupling reads both post-transform states of the pair.
		a, b, err = dynamics.Couple(a, b, s.cfg.Entanglement)
		if err != nil {
			return StepRecord{}, fmt.Errorf("step %d pair %d coupling: %w", s.step+1, i, err)
		}
		s.groupA[i] = a
		s.groupB[i] = b
	}

	s.step++
	rec := StepRecord{Step: s.step}

	// Measurement pass. Draw order is fixed (all of A, then all of B) so the
	// history is reproducible from the seed alone.
	for i := range s.groupA {
		if measure.Measure(s.groupA[i], s.src) == measure.Conforming {
			rec.AConforming++
		} else {
			rec.ABreaking++
		}
	}
	for i := range s.groupB {
		if measure.Measure(s.groupB[i], s.src) == measure.Conforming {
			rec.BConforming++
		} else {
			rec.BBreaking++
		}
	}

	s.history = append(s.history, rec)
	return rec, nil
}

// #endregion run-step

// #region run
// Run executes a fixed number of steps. There is no early stopping or
// convergence check; the first error aborts the run.
func (s *Simulator) Run(steps int) error {
	for i := 0; i < steps; i++ {
		if _, err := s.RunStep(); err != nil {
			return err
		}
	}
	return nil
}

// #endregion run

// #region accessors
// History returns a copy of the per-step records so collaborators can read
// it without aliasing simulator state.
func (s *Simulator) History() History {
	out := make(History, len(s.history))
	copy(out, s.history)
	return out
}

// StepCount reports how many steps have run.
func (s *Simulator) StepCount() int {
	return s.step
}

// Snapshot returns copies of both groups' current states, paired
// index-for-index.
func (s *Simulator) Snapshot() ([]dynamics.State, []dynamics.State) {
	a := make([]dynamics.State, len(s.groupA))
	b := make([]dynamics.State, len(s.groupB))
	copy(a, s.groupA)
	copy(b, s.groupB)
	return a, b
}

// #endregion accessors

// #region simulate
// Simulate is the run driver: it constructs a simulator and executes a fixed
// step count, returning the full history.
func Simulate(cfg Config, steps int) (History, error) {
	s, err := NewSimulator(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Run(steps); err != nil {
		return nil, err
	}
	return s.History(), nil
}

// #endregion simulate
