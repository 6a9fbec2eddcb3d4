package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sociophysics/normsim/internal/sim"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a full
// parameter set plus the history it is expected to reproduce.
type Fixture struct {
	Description string              `json:"description"`
	Config      FixtureConfig       `json:"config"`
	Steps       int                 `json:"steps"`
	Expected    []FixtureStepRecord `json:"expected"`
}

// FixtureConfig mirrors sim.Config with JSON tags.
type FixtureConfig struct {
	Population   int        `json:"population"`
	BiasA        [2]float64 `json:"bias_a"`
	BiasB        [2]float64 `json:"bias_b"`
	StrengthA    float64    `json:"strength_a"`
	StrengthB    float64    `json:"strength_b"`
	Entanglement float64    `json:"entanglement"`
	Seed         int64      `json:"seed"`
}

// FixtureStepRecord mirrors sim.StepRecord with JSON tags.
type FixtureStepRecord struct {
	Step        int `json:"step"`
	AConforming int `json:"a_conforming"`
	ABreaking   int `json:"a_breaking"`
	BConforming int `json:"b_conforming"`
	BBreaking   int `json:"b_breaking"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToSimConfig converts a FixtureConfig to a domain sim.Config.
func (c *FixtureConfig) ToSimConfig() sim.Config {
	return sim.Config{
		PopulationSize: c.Population,
		BiasA:          c.BiasA,
		BiasB:          c.BiasB,
		StrengthA:      c.StrengthA,
		StrengthB:      c.StrengthB,
		Entanglement:   c.Entanglement,
		Seed:           c.Seed,
	}
}

// ExpectedHistory converts the fixture's expected records to a domain
// History.
func (f *Fixture) ExpectedHistory() sim.History {
	h := make(sim.History, len(f.Expected))
	for i, rec := range f.Expected {
		h[i] = sim.StepRecord{
			Step:        rec.Step,
			AConforming: rec.AConforming,
			ABreaking:   rec.ABreaking,
			BConforming: rec.BConforming,
			BBreaking:   rec.BBreaking,
		}
	}
	return h
}

// FromHistory builds fixture records from a live history, for exporting a
// run as a regression fixture.
func FromHistory(h sim.History) []FixtureStepRecord {
	out := make([]FixtureStepRecord, len(h))
	for i, rec := range h {
		out[i] = FixtureStepRecord{
			Step:        rec.Step,
			AConforming: rec.AConforming,
			ABreaking:   rec.ABreaking,
			BConforming: rec.BConforming,
			BBreaking:   rec.BBreaking,
		}
	}
	return out
}

// #endregion fixture-loader
