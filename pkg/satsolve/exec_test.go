package satsolve

import (
	"context"
	"errors"
	"testing"
)

func TestExternalSolverMissingBinary(t *testing.T) {
	b := NewBuilder()
	x := b.NewVar()
	b.Unit(x)

	s := NewExternalSolver("definitely-not-a-real-solver-binary")
	_, err := s.Solve(context.Background(), b)
	if err == nil {
		t.Fatal("expected an error when the solver binary cannot be found")
	}
	if errors.Is(err, ErrUnsat) {
		t.Fatal("a missing binary should not be reported as UNSAT")
	}
}

func TestExternalSolverDefaultWallClock(t *testing.T) {
	s := NewExternalSolver("kissat")
	if s.WallClock != 0 {
		t.Fatalf("expected zero-value WallClock before Solve normalizes it, got %v", s.WallClock)
	}
	if DefaultWallClock <= 0 {
		t.Fatal("DefaultWallClock must be positive")
	}
}
