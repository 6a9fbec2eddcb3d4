package dynamics

import "errors"

// #region state
// State is a 2-component probability-amplitude vector. Index 0 holds the
// conforming amplitude, index 1 the norm-breaking amplitude. A State is
// unit-length (L2) at every observable point; every mutation in this package
// renormalizes before returning.
type State [2]float64

// #endregion state

// #region operator
// NormOperator is the fixed 2×2 conformity-pull matrix built from a single
// strength scalar. Immutable once constructed.
type NormOperator [2][2]float64

// #endregion operator

// #region errors
// ErrDegenerateState reports a zero-norm vector at the point of
// normalization. Fatal: the run cannot continue past it.
var ErrDegenerateState = errors.New("degenerate state: zero-norm vector")

// #endregion errors
