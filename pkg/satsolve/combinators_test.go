package satsolve

import "testing"

func TestConjVarMatchesLogicalAnd(t *testing.T) {
	b := NewBuilder()
	a1, a2, a3 := b.NewVar(), b.NewVar(), b.NewVar()
	v := b.ConjVar([]Lit{a1, a2, a3})

	for mask := 0; mask < 8; mask++ {
		assignment := map[int]bool{
			int(a1): mask&1 != 0,
			int(a2): mask&2 != 0,
			int(a3): mask&4 != 0,
		}
		want := assignment[int(a1)] && assignment[int(a2)] && assignment[int(a3)]
		// v's value is forced by the clauses, not chosen freely; try both
		// and confirm exactly one choice satisfies everything.
		assignment[int(v)] = want
		for _, c := range b.Clauses {
			if !evalClause(assignment, c) {
				t.Fatalf("mask=%d: expected v=%v to satisfy clause %v", mask, want, c)
			}
		}
		assignment[int(v)] = !want
		violated := false
		for _, c := range b.Clauses {
			if !evalClause(assignment, c) {
				violated = true
				break
			}
		}
		if !violated {
			t.Fatalf("mask=%d: expected v=%v to violate some clause", mask, !want)
		}
	}
}

// satisfiableWithFixed reports whether some assignment to freeVars, on top
// of the already-fixed entries in base, satisfies every clause.
func satisfiableWithFixed(base map[int]bool, freeVars []int, clauses []Clause) bool {
	total := 1 << len(freeVars)
	for mask := 0; mask < total; mask++ {
		assignment := map[int]bool{}
		for k, v := range base {
			assignment[k] = v
		}
		for i, v := range freeVars {
			assignment[v] = mask&(1<<i) != 0
		}
		ok := true
		for _, c := range clauses {
			if !evalClause(assignment, c) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func TestEqVarMatchesBitwiseEquality(t *testing.T) {
	b := NewBuilder()
	x := b.NewBitVector(2)
	y := b.NewBitVector(2)
	eq := b.EqVar(x, y)

	fixedVars := map[int]bool{int(x[0]): true, int(x[1]): true, int(y[0]): true, int(y[1]): true}
	var freeVars []int
	for v := 1; v <= b.NVars(); v++ {
		if !fixedVars[v] && v != int(eq) {
			freeVars = append(freeVars, v)
		}
	}

	for xv := 0; xv < 4; xv++ {
		for yv := 0; yv < 4; yv++ {
			base := map[int]bool{}
			setBits(base, x, xv)
			setBits(base, y, yv)
			want := xv == yv

			base[int(eq)] = want
			if !satisfiableWithFixed(base, freeVars, b.Clauses) {
				t.Fatalf("x=%d y=%d: expected eq=%v to be satisfiable", xv, yv, want)
			}

			base[int(eq)] = !want
			if satisfiableWithFixed(base, freeVars, b.Clauses) {
				t.Fatalf("x=%d y=%d: expected eq=%v to be unsatisfiable", xv, yv, !want)
			}
		}
	}
}
