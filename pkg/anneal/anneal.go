package anneal

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/dshills/aedificium/pkg/aedificium"
	"github.com/dshills/aedificium/pkg/rng"
	"github.com/dshills/aedificium/pkg/satsolve"
)

// Config tunes the annealing schedule.
type Config struct {
	// N is the total room count to search over.
	N int
	// MaxIterations caps the number of mutate/accept-or-reject steps.
	MaxIterations int
	// InitialTemp and Cooling define a geometric cooling schedule:
	// temp_i = InitialTemp * Cooling^i.
	InitialTemp float64
	Cooling     float64
	// StateSpace selects the A (door-destination table) or B
	// (per-observation room-history) search variant. The zero value is
	// StateSpaceA.
	StateSpace StateSpace
}

// DefaultConfig returns reasonable defaults for a graph of n rooms,
// searching state space A.
func DefaultConfig(n int) Config {
	return Config{
		N:             n,
		MaxIterations: 20000,
		InitialTemp:   4.0,
		Cooling:       0.9995,
		StateSpace:    StateSpaceA,
	}
}

// Solve searches for a candidate Aedificium consistent with observations,
// returning the best (lowest-cost) layout found within cfg.MaxIterations
// steps. A zero-cost result perfectly explains every observation; a
// non-zero result is the closest approximation found and the caller
// should treat it as a failure to converge (no silent bogus guess).
func Solve(ctx context.Context, cfg Config, seed uint64, observations []satsolve.Observation) (*aedificium.Aedificium, float64, error) {
	if cfg.N <= 0 {
		return nil, 0, fmt.Errorf("anneal: N must be positive, got %d", cfg.N)
	}
	masterRNG := rng.NewRNG(seed, "anneal", []byte(fmt.Sprintf("n=%d,state=%d", cfg.N, cfg.StateSpace)))
	rnd := rand.New(rand.NewSource(int64(masterRNG.Seed())))

	if cfg.StateSpace == StateSpaceB {
		return solveStateB(ctx, cfg, masterRNG, rnd, observations)
	}
	return solveStateA(ctx, cfg, masterRNG, rnd, observations)
}

// solveStateA searches directly over a door-destination table, the
// representation pkg/reconnect and pkg/aedificium already use natively.
func solveStateA(ctx context.Context, cfg Config, masterRNG *rng.RNG, rnd *rand.Rand, observations []satsolve.Observation) (*aedificium.Aedificium, float64, error) {
	var current []aedificium.Connection
	var currentGraph *aedificium.Aedificium
	for attempt := 0; attempt < 64; attempt++ {
		candidate := newRandomMatching(cfg.N, rnd)
		if g := build(cfg.N, candidate); g != nil {
			current, currentGraph = candidate, g
			break
		}
	}
	if currentGraph == nil {
		return nil, 0, fmt.Errorf("anneal: could not find a connected starting matching for %d rooms", cfg.N)
	}

	currentEnergy := energy(currentGraph, observations)
	bestGraph := currentGraph
	bestEnergy := currentEnergy

	temp := cfg.InitialTemp
	for i := 0; i < cfg.MaxIterations && bestEnergy > zeroCost; i++ {
		select {
		case <-ctx.Done():
			return bestGraph, bestEnergy, ctx.Err()
		default:
		}

		candidate := mutate(cfg.N, current, masterRNG, rnd)
		g := build(cfg.N, candidate)
		if g == nil {
			temp *= cfg.Cooling
			continue
		}
		candEnergy := energy(g, observations)
		delta := candEnergy - currentEnergy
		if delta <= 0 || rnd.Float64() < math.Exp(-delta/temp) {
			current, currentGraph, currentEnergy = candidate, g, candEnergy
			if candEnergy < bestEnergy {
				bestGraph, bestEnergy = g, candEnergy
			}
		}
		temp *= cfg.Cooling
	}

	return bestGraph, bestEnergy, nil
}
