package dynamics

import (
	"math"
	"testing"
)

const tol = 1e-9

func unitNorm(t *testing.T, s State) {
	t.Helper()
	if d := math.Abs(Norm(s) - 1); d > tol {
		t.Fatalf("state %v has norm %v, want 1 within %v", s, Norm(s), tol)
	}
}

func TestNewStateNormalizesBias(t *testing.T) {
	s, err := NewState(0.6, 0.4)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	unitNorm(t, s)

	// Components keep the bias ratio
	if math.Abs(s[0]/s[1]-1.5) > tol {
		t.Fatalf("bias ratio not preserved: %v", s)
	}
}

func TestNewStateZeroBias(t *testing.T) {
	if _, err := NewState(0, 0); err != ErrDegenerateState {
		t.Fatalf("expected ErrDegenerateState, got %v", err)
	}
}

func TestNormOperatorStrengthOneIsIdentity(t *testing.T) {
	op := NewNormOperator(1.0)
	want := NormOperator{{1, 0}, {0, 1}}
	if op != want {
		t.Fatalf("strength 1 operator = %v, want identity", op)
	}

	s, _ := NewState(0.6, 0.4)
	out, err := ApplyNorm(s, op)
	if err != nil {
		t.Fatalf("ApplyNorm: %v", err)
	}
	for i := range s {
		if math.Abs(out[i]-s[i]) > tol {
			t.Fatalf("identity operator changed state: %v -> %v", s, out)
		}
	}
}

func TestApplyNormKeepsUnitNorm(t *testing.T) {
	for _, strength := range []float64{0, 0.25, 0.5, 0.8, 1.0, 1.3} {
		op := NewNormOperator(strength)
		s, _ := NewState(0.9, 0.1)
		out, err := ApplyNorm(s, op)
		if err != nil {
			t.Fatalf("strength %v: %v", strength, err)
		}
		unitNorm(t, out)
	}
}

func TestCoupleZeroStrengthIsNoOp(t *testing.T) {
	a, _ := NewState(0.6, 0.4)
	b, _ := NewState(0.4, 0.6)

	newA, newB, err := Couple(a, b, 0)
	if err != nil {
		t.Fatalf("Couple: %v", err)
	}
	for i := range a {
		if math.Abs(newA[i]-a[i]) > tol || math.Abs(newB[i]-b[i]) > tol {
			t.Fatalf("k=0 coupling changed states: %v %v -> %v %v", a, b, newA, newB)
		}
	}
}

func TestCouplePullsStatesTogether(t *testing.T) {
	a, _ := NewState(0.9, 0.1)
	b, _ := NewState(0.2, 0.8)
	before := stateDistance(a, b)

	for _, k := range []float64{0.1, 0.3, 0.5, 0.9} {
		newA, newB, err := Couple(a, b, k)
		if err != nil {
			t.Fatalf("k=%v: %v", k, err)
		}
		unitNorm(t, newA)
		unitNorm(t, newB)
		after := stateDistance(newA, newB)
		if after >= before {
			t.Fatalf("k=%v: distance %v did not shrink from %v", k, after, before)
		}
	}
}

func TestCoupleOrthogonalStatesCollapseToEqual(t *testing.T) {
	a := State{1, 0}
	b := State{0, 1}

	newA, newB, err := Couple(a, b, 0.5)
	if err != nil {
		t.Fatalf("Couple: %v", err)
	}

	// delta = (0.5, -0.5): both raw vectors become (0.5, 0.5), normalizing
	// to the equal-probability state.
	eq := 1 / math.Sqrt2
	for i := range newA {
		if math.Abs(newA[i]-eq) > tol || math.Abs(newB[i]-eq) > tol {
			t.Fatalf("expected both states (%v, %v), got %v and %v", eq, eq, newA, newB)
		}
	}
}

func TestCoupleIdenticalStatesUnchanged(t *testing.T) {
	// identical states: delta is zero, no-op regardless of k
	a := State{1, 0}
	newA, newB, err := Couple(a, a, 5)
	if err != nil {
		t.Fatalf("Couple identical states: %v", err)
	}
	if newA != a || newB != a {
		t.Fatalf("identical states should be unchanged, got %v %v", newA, newB)
	}
}

func TestCoupleDegenerateCancellation(t *testing.T) {
	// b+delta cancels exactly: b=(3,0), a=(1,0), k=1.5 gives
	// delta=(-3,0) and b+delta=(0,0). Must surface ErrDegenerateState.
	a := State{1, 0}
	b := State{3, 0}
	if _, _, err := Couple(a, b, 1.5); err != ErrDegenerateState {
		t.Fatalf("expected ErrDegenerateState, got %v", err)
	}
}

func stateDistance(a, b State) float64 {
	d0 := a[0] - b[0]
	d1 := a[1] - b[1]
	return math.Sqrt(d0*d0 + d1*d1)
}
