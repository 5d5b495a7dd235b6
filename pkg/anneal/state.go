package anneal

import (
	"math/rand"

	"github.com/dshills/aedificium/pkg/aedificium"
)

// doorID linearizes a (room, port) pair into 0..n*Doors-1.
func doorID(room, port int) int { return room*aedificium.Doors + port }

func doorFromID(id int) aedificium.Door {
	return aedificium.Door{Room: id / aedificium.Doors, Port: id % aedificium.Doors}
}

// newRandomMatching builds a uniformly random perfect matching over the
// n*Doors doors of an n-room graph (self-loops allowed), as a starting
// point for the search.
func newRandomMatching(n int, rnd *rand.Rand) []aedificium.Connection {
	ids := make([]int, n*aedificium.Doors)
	for i := range ids {
		ids[i] = i
	}
	rnd.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	conns := make([]aedificium.Connection, 0, len(ids)/2)
	for i := 0; i < len(ids); i += 2 {
		conns = append(conns, aedificium.Connection{
			From: doorFromID(ids[i]),
			To:   doorFromID(ids[i+1]),
		})
	}
	return conns
}

// StateSpace selects which of the two SA state-space variants Solve
// searches over.
type StateSpace int

const (
	// StateSpaceA searches directly over a door-destination table,
	// with room labels fixed as room mod Labels.
	StateSpaceA StateSpace = iota
	// StateSpaceB searches over a per-observation room-history vector
	// and derives the door-destination table from it by majority
	// vote, paying a cost for the votes that disagree.
	StateSpaceB
)

// canonicalLabels returns the fixed label assignment room r -> r mod 4.
func canonicalLabels(n int) []int {
	labels := make([]int, n)
	for r := range labels {
		labels[r] = r % aedificium.Labels
	}
	return labels
}

// build turns a connection list into a validated Aedificium, returning
// nil if the matching happens to be structurally invalid (it shouldn't
// be, since every mutation preserves the perfect-matching invariant, but
// Build also checks full-graph connectivity, which a mutation can break).
func build(n int, conns []aedificium.Connection) *aedificium.Aedificium {
	a, err := aedificium.New(canonicalLabels(n), 0, conns)
	if err != nil {
		return nil
	}
	if err := a.Build(); err != nil {
		return nil
	}
	return a
}
