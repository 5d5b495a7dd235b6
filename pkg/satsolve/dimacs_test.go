package satsolve

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteDIMACSHeader(t *testing.T) {
	b := NewBuilder()
	x, y := b.NewVar(), b.NewVar()
	b.AddClause(x, Not(y))
	b.AddClause(y)

	var buf bytes.Buffer
	if err := b.WriteDIMACS(&buf); err != nil {
		t.Fatalf("WriteDIMACS: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "p cnf 2 2" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if strings.TrimSpace(lines[1]) != "1 -2 0" {
		t.Fatalf("unexpected clause line: %q", lines[1])
	}
	if strings.TrimSpace(lines[2]) != "2 0" {
		t.Fatalf("unexpected clause line: %q", lines[2])
	}
}

func TestParseSolverOutputSat(t *testing.T) {
	out := "c comment\ns SATISFIABLE\nv 1 -2 3 0\n"
	assignment, sat, err := ParseSolverOutput(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseSolverOutput: %v", err)
	}
	if !sat {
		t.Fatal("expected sat=true")
	}
	if !assignment[1] || assignment[2] || !assignment[3] {
		t.Fatalf("unexpected assignment: %v", assignment)
	}
}

func TestParseSolverOutputUnsat(t *testing.T) {
	_, sat, err := ParseSolverOutput(strings.NewReader("s UNSATISFIABLE\n"))
	if err != nil {
		t.Fatalf("ParseSolverOutput: %v", err)
	}
	if sat {
		t.Fatal("expected sat=false")
	}
}

func TestParseSolverOutputMalformed(t *testing.T) {
	if _, _, err := ParseSolverOutput(strings.NewReader("v 1 2 0\n")); err == nil {
		t.Fatal("expected an error when no status line is present")
	}
}

func TestAssignmentValueDecodesBitVector(t *testing.T) {
	b := NewBuilder()
	bv := b.NewBitVector(3)
	assignment := Assignment{int(bv[0]): true, int(bv[1]): false, int(bv[2]): true}
	if got := assignment.Value(bv); got != 5 {
		t.Fatalf("Value() = %d, want 5", got)
	}
}
