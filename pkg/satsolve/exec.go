package satsolve

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// DefaultWallClock is the default time budget given to the external
// solver process before a worker voluntarily terminates it.
const DefaultWallClock = 30 * time.Second

// ErrUnsat is returned when the external solver proves the formula has
// no satisfying assignment.
var ErrUnsat = fmt.Errorf("satsolve: formula is unsatisfiable")

// ExternalSolver invokes a DIMACS-compatible SAT solver binary (the
// reference implementation is "kissat") as a subprocess: the CNF is
// written to a temp file, the solver runs with the given wall-clock cap
// enforced via context cancellation, and its stdout is parsed back into
// an Assignment.
type ExternalSolver struct {
	// BinaryPath is the solver executable, e.g. "kissat" (resolved via
	// PATH) or an absolute path.
	BinaryPath string

	// WallClock bounds how long the subprocess may run; DefaultWallClock
	// is used if zero.
	WallClock time.Duration
}

// NewExternalSolver returns an ExternalSolver for the given binary.
func NewExternalSolver(binaryPath string) *ExternalSolver {
	return &ExternalSolver{BinaryPath: binaryPath}
}

// Solve writes b's CNF to a temp file, runs the solver against it under
// ctx, and returns the decoded assignment. Returns ErrUnsat (wrapped) on
// a proven-UNSAT result, so callers can distinguish "no solution" from
// a transport/process failure with errors.Is.
func (s *ExternalSolver) Solve(ctx context.Context, b *Builder) (Assignment, error) {
	wall := s.WallClock
	if wall <= 0 {
		wall = DefaultWallClock
	}
	ctx, cancel := context.WithTimeout(ctx, wall)
	defer cancel()

	cnfFile, err := os.CreateTemp("", "aedificium-*.cnf")
	if err != nil {
		return nil, fmt.Errorf("satsolve: creating CNF temp file: %w", err)
	}
	defer os.Remove(cnfFile.Name())
	defer cnfFile.Close()

	if err := b.WriteDIMACS(cnfFile); err != nil {
		return nil, fmt.Errorf("satsolve: writing CNF: %w", err)
	}
	if err := cnfFile.Close(); err != nil {
		return nil, fmt.Errorf("satsolve: closing CNF temp file: %w", err)
	}

	cmd := exec.CommandContext(ctx, s.BinaryPath, cnfFile.Name())
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	// kissat (and most DIMACS solvers) exit with a non-zero status for
	// both SAT (10) and UNSAT (20), so the exit code alone cannot
	// distinguish success from a genuine process failure; the status
	// line in stdout is authoritative.
	runErr := cmd.Run()

	assignment, sat, parseErr := ParseSolverOutput(&stdout)
	if parseErr != nil {
		if runErr != nil {
			return nil, fmt.Errorf("satsolve: solver process failed (%v) and output was unparsable: %w", runErr, parseErr)
		}
		return nil, parseErr
	}
	if !sat {
		return nil, ErrUnsat
	}
	return assignment, nil
}
