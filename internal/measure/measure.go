package measure

import "github.com/sociophysics/normsim/internal/dynamics"

// #region outcome
// Outcome is the discrete observable label produced by measuring a state.
type Outcome int

const (
	// Conforming is the norm-conforming outcome.
	Conforming Outcome = iota
	// Breaking is the norm-breaking outcome.
	Breaking
)

// String returns the label used in records and exports.
func (o Outcome) String() string {
	if o == Conforming {
		return "conforming"
	}
	return "breaking"
}

// #endregion outcome

// #region measure
// Measure performs one Born-rule draw on a unit-norm state: Conforming with
// probability state[0]², Breaking with probability state[1]². The draw is
// cumulative-distribution inversion against a single uniform sample, so one
// call consumes exactly one draw from src. The state is not mutated.
func Measure(s dynamics.State, src *Source) Outcome {
	u := src.Float64()
	if u < s[0]*s[0] {
		return Conforming
	}
	return Breaking
}

// #endregion measure
