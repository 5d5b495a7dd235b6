package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gammazero/workerpool"

	"github.com/dshills/aedificium/pkg/aedificium"
)

// Solver is one named attempt at reconstructing a layout. Run must return
// promptly after ctx is cancelled; solvers that ignore ctx keep consuming
// a worker slot even after Race has already picked a winner.
type Solver struct {
	Name string
	Run  func(ctx context.Context) (*aedificium.Aedificium, error)
}

// Config bounds how Race spends its budget.
type Config struct {
	// MaxConcurrency caps how many solvers run at once. Zero means
	// "one worker per solver".
	MaxConcurrency int
	// Budget is the wall-clock deadline for the whole race. Zero means
	// no deadline beyond ctx's own.
	Budget time.Duration
}

// Result names which solver produced the winning layout.
type Result struct {
	Name  string
	Graph *aedificium.Aedificium
}

// attempt pairs a solver's outcome with its name for fan-in.
type attempt struct {
	name  string
	graph *aedificium.Aedificium
	err   error
}

// Race runs every solver concurrently (bounded by cfg.MaxConcurrency) and
// returns the first one to produce a layout without error. Once a winner
// is found, Race cancels the shared context so the remaining solvers can
// stop early and returns at once, without waiting for them; their
// results are drained and discarded in the background. If
// every solver fails or the budget expires first, Race returns the last
// error observed.
func Race(ctx context.Context, cfg Config, solvers []Solver) (Result, error) {
	if len(solvers) == 0 {
		return Result{}, fmt.Errorf("orchestrator: no solvers given")
	}

	raceCtx := ctx
	if cfg.Budget > 0 {
		var cancel context.CancelFunc
		raceCtx, cancel = context.WithTimeout(ctx, cfg.Budget)
		defer cancel()
	}
	raceCtx, cancelRace := context.WithCancel(raceCtx)
	defer cancelRace()

	maxWorkers := cfg.MaxConcurrency
	if maxWorkers <= 0 {
		maxWorkers = len(solvers)
	}
	pool := workerpool.New(maxWorkers)

	results := make(chan attempt, len(solvers))
	var winnerOnce sync.Once

	for _, s := range solvers {
		s := s
		pool.Submit(func() {
			graph, err := s.Run(raceCtx)
			if err == nil {
				winnerOnce.Do(cancelRace)
			}
			results <- attempt{name: s.Name, graph: graph, err: err}
		})
	}

	go func() {
		pool.StopWait()
		close(results)
	}()

	var lastErr error
	for a := range results {
		if a.err == nil && a.graph != nil {
			winnerOnce.Do(cancelRace)
			// Drain the rest without blocking the caller; remaining
			// solvers have already been told to stop.
			go func() {
				for range results {
				}
			}()
			return Result{Name: a.name, Graph: a.graph}, nil
		}
		if a.err != nil {
			lastErr = fmt.Errorf("orchestrator: solver %q: %w", a.name, a.err)
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("orchestrator: no solver produced a layout")
	}
	return Result{}, lastErr
}
