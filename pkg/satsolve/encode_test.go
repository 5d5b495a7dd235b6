package satsolve

import (
	"testing"

	"github.com/dshills/aedificium/pkg/aedificium"
)

// evalClause reports whether at least one literal in clause is satisfied
// under assignment.
func evalClause(assignment map[int]bool, clause Clause) bool {
	for _, lit := range clause {
		v := int(lit)
		neg := v < 0
		if v < 0 {
			v = -v
		}
		val := assignment[v]
		if neg {
			val = !val
		}
		if val {
			return true
		}
	}
	return false
}

// setBits records bv's per-bit assignment for integer value.
func setBits(assignment map[int]bool, bv BitVector, value int) {
	for i, lit := range bv {
		assignment[int(lit)] = value&(1<<i) != 0
	}
}

// TestEncodeSingleRoomSelfLoops hand-builds the full variable assignment
// for the canonical one-room, six-self-loop example and checks every
// clause the encoder produced is satisfied by it. Because D==1
// here, no Tseitin auxiliary variables (ConjVar/EqVar) are introduced, so
// the assignment can be constructed directly from known bit values.
func TestEncodeSingleRoomSelfLoops(t *testing.T) {
	plan := []aedificium.Token{
		{Kind: aedificium.TokenMove, Value: 0},
		{Kind: aedificium.TokenMove, Value: 1},
		{Kind: aedificium.TokenMove, Value: 2},
		{Kind: aedificium.TokenMove, Value: 3},
		{Kind: aedificium.TokenMove, Value: 4},
		{Kind: aedificium.TokenMove, Value: 5},
	}
	p := Problem{
		K: 1,
		D: 1,
		Observations: []Observation{
			{Plan: plan, Labels: []int{0, 0, 0, 0, 0, 0, 0}},
		},
		BreakStartSymmetry: true,
	}

	enc, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	assignment := map[int]bool{}
	// One room: every bitvector over rooms is 1 bit wide and must be 0.
	for i := range enc.X[0] {
		setBits(assignment, enc.X[0][i], 0)
	}
	for r := 0; r < p.N(); r++ {
		for i := range enc.Lab[0] {
			setBits(assignment, enc.Lab[0][i][r], 0)
		}
	}
	// Doors pair (0,1) (2,3) (4,5), all within room 0.
	partner := map[int]int{0: 1, 1: 0, 2: 3, 3: 2, 4: 5, 5: 4}
	for q := 0; q < aedificium.Doors; q++ {
		setBits(assignment, enc.DD[0][q], 0)
		setBits(assignment, enc.DC[0][q], partner[q])
	}

	for ci, clause := range enc.Builder.Clauses {
		if !evalClause(assignment, clause) {
			t.Fatalf("clause %d unsatisfied: %v", ci, clause)
		}
	}
}

// TestEncodeRejectsOutOfRangeLabel checks the encoder validates observed
// labels eagerly instead of silently building an unsatisfiable formula.
func TestEncodeRejectsOutOfRangeLabel(t *testing.T) {
	p := Problem{
		K: 1,
		D: 1,
		Observations: []Observation{
			{Plan: nil, Labels: []int{9}},
		},
	}
	if _, err := Encode(p); err == nil {
		t.Fatal("expected an error for an out-of-range label")
	}
}

// TestEncodeRejectsBadDoor checks a MOVE token referencing a nonexistent
// port is rejected during encoding rather than producing a silently
// unsatisfiable CNF document.
func TestEncodeRejectsBadDoor(t *testing.T) {
	p := Problem{
		K: 1,
		D: 1,
		Observations: []Observation{
			{
				Plan:   []aedificium.Token{{Kind: aedificium.TokenMove, Value: 9}},
				Labels: []int{0, 0},
			},
		},
	}
	if _, err := Encode(p); err == nil {
		t.Fatal("expected an error for an out-of-range door")
	}
}

// TestEncodeDuplicationShapesVariables checks that D>1 allocates Orig
// variables and wires the duplication-count and indistinguishability
// constraints without erroring, for a small enough N that building the
// CSP stays cheap.
func TestEncodeDuplicationShapesVariables(t *testing.T) {
	p := Problem{
		K: 2,
		D: 2,
		Observations: []Observation{
			{
				Plan:   []aedificium.Token{{Kind: aedificium.TokenMove, Value: 0}},
				Labels: []int{0, 1},
			},
		},
	}
	enc, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(enc.Orig) != p.N() {
		t.Fatalf("expected %d Orig variables, got %d", p.N(), len(enc.Orig))
	}
	if enc.Builder.NVars() == 0 || len(enc.Builder.Clauses) == 0 {
		t.Fatal("expected a non-trivial CSP")
	}
}

// TestEncodeRejectsNonPositiveDimensions checks K and D are validated.
func TestEncodeRejectsNonPositiveDimensions(t *testing.T) {
	if _, err := Encode(Problem{K: 0, D: 1}); err == nil {
		t.Fatal("expected an error for K=0")
	}
	if _, err := Encode(Problem{K: 1, D: 0}); err == nil {
		t.Fatal("expected an error for D=0")
	}
}
