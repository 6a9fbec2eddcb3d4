package check

import (
	"fmt"
	"math"

	"github.com/sociophysics/normsim/internal/dynamics"
	"github.com/sociophysics/normsim/internal/sim"
)

// #region harness
// Harness runs lightweight invariant audits over simulator output.
type Harness struct {
	config Config
}

// NewHarness creates a harness with the given configuration.
func NewHarness(config Config) *Harness {
	return &Harness{config: config}
}

// #endregion harness

// #region audit-states
// AuditStates verifies every agent state in both groups is unit-norm within
// tolerance.
func (h *Harness) AuditStates(groupA, groupB []dynamics.State) Result {
	var metrics []Metric
	passed := true
	var failReasons []string

	groups := []struct {
		name   string
		states []dynamics.State
	}{
		{"group_a", groupA},
		{"group_b", groupB},
	}

	for _, g := range groups {
		worst := 0.0
		for _, s := range g.states {
			if d := math.Abs(dynamics.Norm(s) - 1); d > worst {
				worst = d
			}
		}
		pass := worst <= h.config.NormTolerance
		metrics = append(metrics, Metric{
			Name:  fmt.Sprintf("%s_max_norm_error", g.name),
			Value: worst,
			Pass:  pass,
		})
		if !pass {
			passed = false
			failReasons = append(failReasons,
				fmt.Sprintf("%s norm error %.3g exceeds %.3g", g.name, worst, h.config.NormTolerance))
		}
	}

	return buildResult(passed, metrics, failReasons)
}

// #endregion audit-states

// #region audit-history
// AuditRecord verifies one step record's counts: non-negative and summing to
// the population size per group.
func (h *Harness) AuditRecord(rec sim.StepRecord, population int) Result {
	var metrics []Metric
	passed := true
	var failReasons []string

	sums := []struct {
		name string
		sum  int
	}{
		{"a_count_sum", rec.AConforming + rec.ABreaking},
		{"b_count_sum", rec.BConforming + rec.BBreaking},
	}
	for _, s := range sums {
		pass := s.sum == population
		metrics = append(metrics, Metric{Name: s.name, Value: float64(s.sum), Pass: pass})
		if !pass {
			passed = false
			failReasons = append(failReasons,
				fmt.Sprintf("step %d %s = %d, want %d", rec.Step, s.name, s.sum, population))
		}
	}

	negPass := rec.AConforming >= 0 && rec.ABreaking >= 0 && rec.BConforming >= 0 && rec.BBreaking >= 0
	metrics = append(metrics, Metric{Name: "counts_non_negative", Value: 0, Pass: negPass})
	if !negPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("step %d has negative counts", rec.Step))
	}

	return buildResult(passed, metrics, failReasons)
}

// AuditHistory audits every record in a history, including 1-based
// contiguous step numbering.
func (h *Harness) AuditHistory(history sim.History, population int) Result {
	passed := true
	var metrics []Metric
	var failReasons []string

	for i, rec := range history {
		if rec.Step != i+1 {
			passed = false
			failReasons = append(failReasons,
				fmt.Sprintf("record %d has step %d, want %d", i, rec.Step, i+1))
		}
		res := h.AuditRecord(rec, population)
		if !res.Passed {
			passed = false
			failReasons = append(failReasons, res.Reason)
		}
	}
	metrics = append(metrics, Metric{
		Name:  "history_length",
		Value: float64(len(history)),
		Pass:  true,
	})

	return buildResult(passed, metrics, failReasons)
}

// #endregion audit-history

// #region helpers
func buildResult(passed bool, metrics []Metric, failReasons []string) Result {
	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("audit failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("audit failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}
	return Result{Passed: passed, Metrics: metrics, Reason: reason}
}

// #endregion helpers
