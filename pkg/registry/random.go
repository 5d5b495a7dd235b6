package registry

import (
	"fmt"
	"math/rand"

	"github.com/dshills/aedificium/pkg/aedificium"
	"github.com/dshills/aedificium/pkg/rng"
)

// RandomFull builds a fully-random Aedificium for problem p, seeded
// deterministically by seed: the same (p, seed) pair always produces the
// same graph. Labels follow the room-index-mod-Labels convention pkg/
// anneal's search assumes, so a solver fed observations from this graph
// faces the same canonical-labeling assumption it would against a real
// judge.
func RandomFull(p Problem, seed uint64) (*aedificium.Aedificium, error) {
	n := p.N()
	if n <= 0 {
		return nil, fmt.Errorf("registry: RandomFull requires a positive room count, got k=%d d=%d", p.K, p.D)
	}

	masterRNG := rng.NewRNG(seed, "registry_random_full", []byte(fmt.Sprintf("k=%d,d=%d", p.K, p.D)))
	rnd := rand.New(rand.NewSource(int64(masterRNG.Seed())))

	labels := make([]int, n)
	for r := range labels {
		labels[r] = r % aedificium.Labels
	}

	const maxAttempts = 256
	for attempt := 0; attempt < maxAttempts; attempt++ {
		conns := randomMatching(n, rnd)
		a, err := aedificium.New(labels, 0, conns)
		if err == nil {
			return a, nil
		}
	}
	return nil, fmt.Errorf("registry: could not find a connected random matching for %d rooms after %d attempts", n, maxAttempts)
}

// randomMatching draws a uniformly random perfect matching over the
// n*Doors doors of an n-room graph, mirroring pkg/anneal's starting-point
// construction.
func randomMatching(n int, rnd *rand.Rand) []aedificium.Connection {
	ids := make([]int, n*aedificium.Doors)
	for i := range ids {
		ids[i] = i
	}
	rnd.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	conns := make([]aedificium.Connection, 0, len(ids)/2)
	for i := 0; i < len(ids); i += 2 {
		conns = append(conns, aedificium.Connection{
			From: aedificium.Door{Room: ids[i] / aedificium.Doors, Port: ids[i] % aedificium.Doors},
			To:   aedificium.Door{Room: ids[i+1] / aedificium.Doors, Port: ids[i+1] % aedificium.Doors},
		})
	}
	return conns
}
