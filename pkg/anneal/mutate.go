package anneal

import (
	"math/rand"

	"github.com/dshills/aedificium/pkg/aedificium"
	"github.com/dshills/aedificium/pkg/rng"
)

// MutationWeights gives the relative selection frequency of the four
// mutation operators, in the order [swapRoomLabels, rewirePair,
// selfLoopsToCross, crossToSelfLoops]. The reference weighting favors
// the plain two-connection reshuffle heavily over the other three.
var MutationWeights = [4]float64{1, 17, 1, 1}

// mutate applies one randomly chosen operator to a copy of conns (n is
// the room count) and returns the mutated copy; conns itself is
// untouched so the caller can fall back to it on rejection.
func mutate(n int, conns []aedificium.Connection, r *rng.RNG, rnd *rand.Rand) []aedificium.Connection {
	next := make([]aedificium.Connection, len(conns))
	copy(next, conns)

	switch r.WeightedChoice(MutationWeights[:]) {
	case 0:
		swapRoomLabels(n, next, rnd)
	case 1:
		rewirePair(next, rnd)
	case 2:
		selfLoopsToCross(next, rnd)
	case 3:
		crossToSelfLoops(next, rnd)
	}
	return next
}

// rewirePair performs a 2-opt swap: pick two connections (a<->b) and
// (c<->d) and replace them with (a<->c) and (b<->d). This always
// preserves the perfect-matching invariant.
func rewirePair(conns []aedificium.Connection, rnd *rand.Rand) {
	if len(conns) < 2 {
		return
	}
	i := rnd.Intn(len(conns))
	j := rnd.Intn(len(conns))
	for j == i {
		j = rnd.Intn(len(conns))
	}
	a, b := conns[i].From, conns[i].To
	c, d := conns[j].From, conns[j].To
	conns[i] = aedificium.Connection{From: a, To: c}
	conns[j] = aedificium.Connection{From: b, To: d}
}

// swapRoomLabels picks two rooms sharing the same canonical label
// (room mod Labels) and exchanges their entire door wiring. Since both
// rooms already report the same label, every observation's predicted
// label sequence is invariant under the swap as long as neither room is
// room 0, where every walk starts: such a swap costs nothing in A-cost
// terms while still moving the search to a structurally different point
// it might mutate further. A swap involving room 0 changes the start
// room's wiring and can change the cost.
func swapRoomLabels(n int, conns []aedificium.Connection, rnd *rand.Rand) {
	if n < aedificium.Labels*2 {
		return
	}
	label := rnd.Intn(aedificium.Labels)
	var rooms []int
	for room := label; room < n; room += aedificium.Labels {
		rooms = append(rooms, room)
	}
	if len(rooms) < 2 {
		return
	}
	i := rooms[rnd.Intn(len(rooms))]
	j := rooms[rnd.Intn(len(rooms))]
	for j == i {
		j = rooms[rnd.Intn(len(rooms))]
	}
	swap := func(d aedificium.Door) aedificium.Door {
		switch d.Room {
		case i:
			return aedificium.Door{Room: j, Port: d.Port}
		case j:
			return aedificium.Door{Room: i, Port: d.Port}
		default:
			return d
		}
	}
	for k := range conns {
		conns[k].From = swap(conns[k].From)
		conns[k].To = swap(conns[k].To)
	}
}

// selfLoopsToCross finds two connections that each loop within a
// single room, in two different rooms, and replaces them with a pair
// of edges crossing between those rooms instead. The same four ports
// are reused, so door uniqueness is preserved automatically.
func selfLoopsToCross(conns []aedificium.Connection, rnd *rand.Rand) {
	var selfLoops []int
	for i, c := range conns {
		if c.From.Room == c.To.Room {
			selfLoops = append(selfLoops, i)
		}
	}
	if len(selfLoops) < 2 {
		return
	}
	rnd.Shuffle(len(selfLoops), func(i, j int) { selfLoops[i], selfLoops[j] = selfLoops[j], selfLoops[i] })

	for a := 0; a < len(selfLoops); a++ {
		i := selfLoops[a]
		for b := a + 1; b < len(selfLoops); b++ {
			j := selfLoops[b]
			if conns[i].From.Room == conns[j].From.Room {
				continue
			}
			p1, p3 := conns[i].From, conns[i].To
			p2, p4 := conns[j].From, conns[j].To
			conns[i] = aedificium.Connection{From: p1, To: p2}
			conns[j] = aedificium.Connection{From: p3, To: p4}
			return
		}
	}
}

// crossToSelfLoops finds two connections that both cross between the
// same pair of rooms and replaces them with a self-loop in each room
// instead: the inverse of selfLoopsToCross.
func crossToSelfLoops(conns []aedificium.Connection, rnd *rand.Rand) {
	type pair struct{ a, b int }
	byPair := map[pair][]int{}
	for i, c := range conns {
		if c.From.Room == c.To.Room {
			continue
		}
		a, b := c.From.Room, c.To.Room
		if a > b {
			a, b = b, a
		}
		byPair[pair{a, b}] = append(byPair[pair{a, b}], i)
	}

	var candidates []pair
	for p, idxs := range byPair {
		if len(idxs) >= 2 {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return
	}
	chosen := byPair[candidates[rnd.Intn(len(candidates))]]
	i, j := chosen[0], chosen[1]

	roomA := conns[i].From.Room
	endpointIn := func(c aedificium.Connection, room int) (in, out aedificium.Door) {
		if c.From.Room == room {
			return c.From, c.To
		}
		return c.To, c.From
	}
	ai, bi := endpointIn(conns[i], roomA)
	aj, bj := endpointIn(conns[j], roomA)
	conns[i] = aedificium.Connection{From: ai, To: aj}
	conns[j] = aedificium.Connection{From: bi, To: bj}
}
