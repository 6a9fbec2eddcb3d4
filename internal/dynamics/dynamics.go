package dynamics

import "math"

// #region operator-construction
// NewNormOperator builds the conformity-pull matrix [[s,1−s],[1−s,s]] for a
// strength s. s is nominally in [0,1] but is not validated: out-of-range
// values produce a mathematically valid matrix and are an accepted-range
// contract with the caller.
func NewNormOperator(strength float64) NormOperator {
	return NormOperator{
		{strength, 1 - strength},
		{1 - strength, strength},
	}
}

// #endregion operator-construction

// #region normalize
// Norm computes the L2 norm of a state vector.
func Norm(v State) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1])
}

// Normalize scales v to unit length. A zero-norm input is a precondition
// violation and returns ErrDegenerateState.
func Normalize(v State) (State, error) {
	n := Norm(v)
	if n == 0 {
		return State{}, ErrDegenerateState
	}
	return State{v[0] / n, v[1] / n}, nil
}

// NewState constructs a unit-norm state from an initial bias pair. The pair
// need not sum to 1; it is normalized here.
func NewState(biasConform, biasBreak float64) (State, error) {
	return Normalize(State{biasConform, biasBreak})
}

// #endregion normalize

// #region apply-norm
// ApplyNorm returns normalize(op · s): the deterministic norm-conforming
// transform applied to one agent per step.
func ApplyNorm(s State, op NormOperator) (State, error) {
	raw := State{
		op[0][0]*s[0] + op[0][1]*s[1],
		op[1][0]*s[0] + op[1][1]*s[1],
	}
	return Normalize(raw)
}

// #endregion apply-norm

// #region couple
// Couple applies the symmetric pairwise pull-together adjustment with
// entanglement strength k: delta = k·(a−b), then a−delta and b+delta are
// renormalized. Both inputs must be the post-norm-update states of the pair.
func Couple(a, b State, k float64) (State, State, error) {
	delta := State{k * (a[0] - b[0]), k * (a[1] - b[1])}

	newA, err := Normalize(State{a[0] - delta[0], a[1] - delta[1]})
	if err != nil {
		return State{}, State{}, err
	}
	newB, err := Normalize(State{b[0] + delta[0], b[1] + delta[1]})
	if err != nil {
		return State{}, State{}, err
	}
	return newA, newB, nil
}

// #endregion couple
