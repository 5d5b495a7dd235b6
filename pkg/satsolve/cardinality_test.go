package satsolve

import "testing"

// bruteForceSatisfiable enumerates every assignment to the first nVars
// variables and reports whether any satisfies every clause. Only usable
// for small variable counts, which is all these tests need.
func bruteForceSatisfiable(nVars int, clauses []Clause) (map[int]bool, bool) {
	total := 1 << nVars
	for mask := 0; mask < total; mask++ {
		assignment := map[int]bool{}
		for v := 1; v <= nVars; v++ {
			assignment[v] = mask&(1<<(v-1)) != 0
		}
		ok := true
		for _, c := range clauses {
			if !evalClause(assignment, c) {
				ok = false
				break
			}
		}
		if ok {
			return assignment, true
		}
	}
	return nil, false
}

func countTrue(assignment map[int]bool, lits []Lit) int {
	n := 0
	for _, l := range lits {
		if assignment[int(l)] {
			n++
		}
	}
	return n
}

func TestExactlyKAcceptsValidCounts(t *testing.T) {
	for n := 1; n <= 3; n++ {
		for k := 0; k <= n; k++ {
			b := NewBuilder()
			lits := make([]Lit, n)
			for i := range lits {
				lits[i] = b.NewVar()
			}
			b.ExactlyK(lits, k)
			assignment, ok := bruteForceSatisfiable(b.NVars(), b.Clauses)
			if !ok {
				t.Fatalf("n=%d k=%d: expected a satisfying assignment to exist", n, k)
			}
			if got := countTrue(assignment, lits); got != k {
				t.Fatalf("n=%d k=%d: satisfying assignment had %d true literals, want %d", n, k, got, k)
			}
		}
	}
}

func TestExactlyKRejectsOutOfRange(t *testing.T) {
	b := NewBuilder()
	lits := []Lit{b.NewVar(), b.NewVar()}
	b.ExactlyK(lits, 5)
	if _, ok := bruteForceSatisfiable(b.NVars(), b.Clauses); ok {
		t.Fatal("expected ExactlyK(lits, 5) over 2 literals to be unsatisfiable")
	}
}
