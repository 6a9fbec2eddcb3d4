package replay

import (
	"github.com/sociophysics/normsim/internal/sim"
)

// #region types
// StepResult is one compared step of a replay: expected record vs the record
// the fresh run produced.
type StepResult struct {
	Step     int
	Expected sim.StepRecord
	Got      sim.StepRecord
	Match    bool
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalSteps int
	Matches    int
	Diverged   int
}

// Deterministic reports whether the replay reproduced every expected record.
func (s Summary) Deterministic() bool {
	return s.Diverged == 0
}

// #endregion types

// #region replay
// Compare runs a fresh simulation from the given parameters and compares it
// element-for-element against the expected history. Both lengths must agree
// for a deterministic verdict; extra or missing steps count as divergence.
func Compare(cfg sim.Config, steps int, expected sim.History) ([]StepResult, Summary, error) {
	got, err := sim.Simulate(cfg, steps)
	if err != nil {
		return nil, Summary{}, err
	}

	n := len(expected)
	if len(got) > n {
		n = len(got)
	}

	results := make([]StepResult, 0, n)
	summary := Summary{TotalSteps: n}

	for i := 0; i < n; i++ {
		var res StepResult
		res.Step = i + 1
		if i < len(expected) {
			res.Expected = expected[i]
		}
		if i < len(got) {
			res.Got = got[i]
		}
		res.Match = i < len(expected) && i < len(got) && res.Expected == res.Got
		if res.Match {
			summary.Matches++
		} else {
			summary.Diverged++
		}
		results = append(results, res)
	}
	return results, summary, nil
}

// Run replays a fixture: fresh simulation from its parameters, compared
// against its expected records.
func Run(f *Fixture) ([]StepResult, Summary, error) {
	return Compare(f.Config.ToSimConfig(), f.Steps, f.ExpectedHistory())
}

// #endregion replay
