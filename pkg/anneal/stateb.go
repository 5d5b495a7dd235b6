package anneal

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/dshills/aedificium/pkg/aedificium"
	"github.com/dshills/aedificium/pkg/reconnect"
	"github.com/dshills/aedificium/pkg/rng"
	"github.com/dshills/aedificium/pkg/satsolve"
)

// historyState is state space B's candidate: for each observation, a
// room-history vector parallel to its label sequence. history[o][i] is
// the room the walker is claimed to occupy at position i of
// observations[o], subject to the hard constraint
// history[o][i] % Labels == observations[o].Labels[i].
type historyState struct {
	history [][]int
}

func newHistoryState(n int, observations []satsolve.Observation, rnd *rand.Rand) historyState {
	hs := historyState{history: make([][]int, len(observations))}
	for o, obs := range observations {
		h := make([]int, len(obs.Labels))
		for i, label := range obs.Labels {
			h[i] = randomRoomWithLabel(n, label, rnd)
		}
		hs.history[o] = h
	}
	return hs
}

func (hs historyState) clone() historyState {
	out := historyState{history: make([][]int, len(hs.history))}
	for o, h := range hs.history {
		cp := make([]int, len(h))
		copy(cp, h)
		out.history[o] = cp
	}
	return out
}

// randomRoomWithLabel returns a uniformly random room in [0,n) whose
// canonical label (room mod Labels) equals label.
func randomRoomWithLabel(n, label int, rnd *rand.Rand) int {
	count := (n - label + aedificium.Labels - 1) / aedificium.Labels
	if count <= 0 {
		return label % n
	}
	return label + rnd.Intn(count)*aedificium.Labels
}

// doorPosition names one (observation, index) pair contributing a vote
// to a door: history[obs][pos] -> history[obs][pos+1] across the MOVE
// token plan[obs][pos].
type doorPosition struct {
	obs, pos int
}

// collectContributions groups every MOVE-token transition in hs by the
// door it exercises.
func collectContributions(observations []satsolve.Observation, hs historyState) map[aedificium.Door][]doorPosition {
	out := map[aedificium.Door][]doorPosition{}
	for o, obs := range observations {
		h := hs.history[o]
		for i, t := range obs.Plan {
			if t.Kind != aedificium.TokenMove || i+1 >= len(h) {
				continue
			}
			d := aedificium.Door{Room: h[i], Port: t.Value}
			out[d] = append(out[d], doorPosition{obs: o, pos: i})
		}
	}
	return out
}

// majorityDest picks the most common destination among votes, breaking
// ties by the smallest room id for reproducibility, and reports how
// many of the votes disagreed with it.
func majorityDest(votes []int) (dest, conflicts int) {
	counts := map[int]int{}
	for _, v := range votes {
		counts[v]++
	}
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	best, bestCount := 0, -1
	for _, k := range keys {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best, len(votes) - bestCount
}

// deriveDestTable collapses contributions into a door-destination map
// by majority vote, and reports the total number of dissenting votes.
func deriveDestTable(contribs map[aedificium.Door][]doorPosition, hs historyState) (reconnect.DestMap, int) {
	dest := reconnect.DestMap{}
	conflicts := 0
	for d, positions := range contribs {
		votes := make([]int, len(positions))
		for i, p := range positions {
			votes[i] = hs.history[p.obs][p.pos+1]
		}
		best, c := majorityDest(votes)
		dest[d] = best
		conflicts += c
	}
	return dest, conflicts
}

// incomingOverflow counts, across every room with more than Doors
// distinct incoming doors in dest, how far over that limit it runs.
func incomingOverflow(n int, dest reconnect.DestMap) int {
	incoming := make([]int, n)
	for _, to := range dest {
		if to >= 0 && to < n {
			incoming[to]++
		}
	}
	overflow := 0
	for _, c := range incoming {
		if c > aedificium.Doors {
			overflow += c - aedificium.Doors
		}
	}
	return overflow
}

// costB scores a history-state candidate: door conflicts (votes that
// disagree with their door's majority destination) plus incoming
// overflow (rooms claimed as a destination by more doors than they
// have), normalized by total observed length. Zero means every
// position's destination vote agrees with its door's majority and no
// room is over-subscribed.
func costB(n int, observations []satsolve.Observation, hs historyState) (float64, reconnect.DestMap) {
	contribs := collectContributions(observations, hs)
	dest, conflicts := deriveDestTable(contribs, hs)
	overflow := incomingOverflow(n, dest)

	total := 0
	for _, obs := range observations {
		total += len(obs.Labels)
	}
	if total == 0 {
		total = 1
	}
	return float64(conflicts+overflow) / float64(total), dest
}

// stateBMutationWeights gives the relative selection frequency of state
// space B's three operators, in the order [reassign, resolveConflict,
// resolveOverflow].
var stateBMutationWeights = [3]float64{1, 1, 1}

// mutateStateB applies one randomly chosen operator to a copy of hs.
func mutateStateB(n int, hs historyState, observations []satsolve.Observation, r *rng.RNG, rnd *rand.Rand) historyState {
	next := hs.clone()
	switch r.WeightedChoice(stateBMutationWeights[:]) {
	case 0:
		reassignRandom(n, next, observations, rnd)
	case 1:
		resolveConflict(n, next, observations, rnd)
	case 2:
		resolveOverflow(n, next, observations, rnd)
	}
	return next
}

// reassignRandom changes one h[i] to another room sharing its position's
// observed label.
func reassignRandom(n int, hs historyState, observations []satsolve.Observation, rnd *rand.Rand) {
	if len(hs.history) == 0 {
		return
	}
	o := rnd.Intn(len(hs.history))
	h := hs.history[o]
	if len(h) == 0 {
		return
	}
	i := rnd.Intn(len(h))
	hs.history[o][i] = randomRoomWithLabel(n, observations[o].Labels[i], rnd)
}

// resolveConflict picks a door whose votes disagree, then perturbs one
// of the dissenting positions toward escaping the disagreement. Falls
// back to reassignRandom when nothing currently conflicts.
func resolveConflict(n int, hs historyState, observations []satsolve.Observation, rnd *rand.Rand) {
	contribs := collectContributions(observations, hs)

	var conflicting []aedificium.Door
	for d, positions := range contribs {
		votes := make([]int, len(positions))
		for i, p := range positions {
			votes[i] = hs.history[p.obs][p.pos+1]
		}
		if _, c := majorityDest(votes); c > 0 {
			conflicting = append(conflicting, d)
		}
	}
	if len(conflicting) == 0 {
		reassignRandom(n, hs, observations, rnd)
		return
	}

	d := conflicting[rnd.Intn(len(conflicting))]
	positions := contribs[d]
	votes := make([]int, len(positions))
	for i, p := range positions {
		votes[i] = hs.history[p.obs][p.pos+1]
	}
	best, _ := majorityDest(votes)

	var dissenting []doorPosition
	for _, p := range positions {
		if hs.history[p.obs][p.pos+1] != best {
			dissenting = append(dissenting, p)
		}
	}
	if len(dissenting) == 0 {
		return
	}
	p := dissenting[rnd.Intn(len(dissenting))]
	hs.history[p.obs][p.pos+1] = randomRoomWithLabel(n, observations[p.obs].Labels[p.pos+1], rnd)
}

// resolveOverflow picks a room claimed by more doors than it has and
// perturbs one of the destination positions voting for it. Falls back
// to reassignRandom when nothing currently overflows.
func resolveOverflow(n int, hs historyState, observations []satsolve.Observation, rnd *rand.Rand) {
	contribs := collectContributions(observations, hs)
	dest, _ := deriveDestTable(contribs, hs)

	incoming := make([]int, n)
	for _, to := range dest {
		if to >= 0 && to < n {
			incoming[to]++
		}
	}
	var overflowed []int
	for room, c := range incoming {
		if c > aedificium.Doors {
			overflowed = append(overflowed, room)
		}
	}
	if len(overflowed) == 0 {
		reassignRandom(n, hs, observations, rnd)
		return
	}

	room := overflowed[rnd.Intn(len(overflowed))]
	var into []doorPosition
	for d, positions := range contribs {
		if dest[d] == room {
			into = append(into, positions...)
		}
	}
	if len(into) == 0 {
		return
	}
	p := into[rnd.Intn(len(into))]
	hs.history[p.obs][p.pos+1] = randomRoomWithLabel(n, observations[p.obs].Labels[p.pos+1], rnd)
}

// solveStateB searches over room-history vectors, deriving a
// door-destination table from the current candidate by majority vote on
// every accepted or improving step and handing the best one found to
// pkg/reconnect to assemble a layout.
func solveStateB(ctx context.Context, cfg Config, masterRNG *rng.RNG, rnd *rand.Rand, observations []satsolve.Observation) (*aedificium.Aedificium, float64, error) {
	hs := newHistoryState(cfg.N, observations, rnd)
	currentCost, currentDest := costB(cfg.N, observations, hs)
	bestCost, bestDest := currentCost, currentDest

	temp := cfg.InitialTemp
	for i := 0; i < cfg.MaxIterations && bestCost > zeroCost; i++ {
		select {
		case <-ctx.Done():
			return finalizeStateB(cfg.N, bestDest), bestCost, ctx.Err()
		default:
		}

		candidate := mutateStateB(cfg.N, hs, observations, masterRNG, rnd)
		candCost, candDest := costB(cfg.N, observations, candidate)
		delta := candCost - currentCost
		if delta <= 0 || rnd.Float64() < math.Exp(-delta/temp) {
			hs, currentCost, currentDest = candidate, candCost, candDest
			if candCost < bestCost {
				bestCost, bestDest = candCost, currentDest
			}
		}
		temp *= cfg.Cooling
	}

	return finalizeStateB(cfg.N, bestDest), bestCost, nil
}

// finalizeStateB turns the best door-destination table found into a
// full Aedificium, returning nil if reconstruction or validation fails
// (a non-zero-cost candidate's table need not be a consistent
// involution yet).
func finalizeStateB(n int, dest reconnect.DestMap) *aedificium.Aedificium {
	conns, err := reconnect.Reconstruct(n, dest)
	if err != nil {
		return nil
	}
	g, err := aedificium.New(canonicalLabels(n), 0, conns)
	if err != nil {
		return nil
	}
	if err := g.Build(); err != nil {
		return nil
	}
	return g
}
