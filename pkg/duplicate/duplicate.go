package duplicate

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/dshills/aedificium/pkg/aedificium"
	"github.com/dshills/aedificium/pkg/reconnect"
	"github.com/dshills/aedificium/pkg/rng"
)

// Explorer issues one batched explore call against the judge (live or
// mocked) and returns one label sequence per submitted plan, in
// submission order.
type Explorer interface {
	Explore(ctx context.Context, plans []string) ([][]int, error)
}

// Config tunes the lifting search.
type Config struct {
	// Expeditions is how many independently randomized covering walks to
	// run and merge; more expeditions give more chances to observe every
	// door but cost more queries.
	Expeditions int
}

// DefaultConfig returns reasonable defaults for a base reconstruction of
// k rooms.
func DefaultConfig(k int) Config {
	e := k / 3
	if e < 4 {
		e = 4
	}
	return Config{Expeditions: e}
}

// Lift takes base, a k-room reconstruction produced by treating a
// duplication-factor-d judge as if it had no duplication at all, and
// recovers the full k*d-room physical graph. For d=1 base already is the
// answer. For d>1, base's rooms are only a quotient of the real graph:
// every base room stands for d indistinguishable physical copies, and
// nothing in base says which copy a given door actually leads to.
//
// Lift resolves that by sending the judge fresh charcoal-annotated
// plans: a charcoal mark flips a room's label for the rest of the walk,
// so revisiting a room through a different physical copy shows up as a
// label mismatch against what base alone would predict. Comparing the
// observed label stream to a simulation of base over the same plan
// decodes, door by door, which physical copy a move actually landed in.
func Lift(ctx context.Context, ex Explorer, base *aedificium.Aedificium, d int, cfg Config, seed uint64) (*aedificium.Aedificium, error) {
	k := base.N()
	masterRNG := rng.NewRNG(seed, "duplicate_lift", []byte(fmt.Sprintf("k=%d,d=%d,e=%d", k, d, cfg.Expeditions)))
	rnd := rand.New(rand.NewSource(int64(masterRNG.Seed())))

	switch d {
	case 1:
		return base.Clone(), nil
	case 2, 3:
		return lift(ctx, ex, base, d, cfg, rnd)
	default:
		return nil, fmt.Errorf("duplicate: unsupported duplication factor d=%d (only 1, 2, 3 are implemented)", d)
	}
}

// lift runs the d=2/d=3 procedure: build a shared covering-path prefix
// with first-visit charcoal marks (and, for d=3, a second canonical pass
// that locates and marks a layer-B position for every base room), then
// append E independently randomized tails to that same prefix, decode
// every resulting expedition into a door-destination map over k*d rooms,
// and reconnect it.
//
// The prefix must be literally shared across every expedition rather
// than rebuilt per expedition: for d=3 there are two physically distinct
// "still original label" copies of each base room, and which one gets
// called layer 1 versus layer 2 is an arbitrary choice made the first
// time a revisit is observed. If that choice were allowed to vary
// between expeditions, two expeditions could disagree about which
// physical room "layer 1" even refers to, turning real data into
// spurious conflicts. Anchoring every expedition to the same prefix
// (and therefore the same layer-B discovery) keeps the labeling stable
// no matter how many independent tails are appended after it.
func lift(ctx context.Context, ex Explorer, base *aedificium.Aedificium, d int, cfg Config, rnd *rand.Rand) (*aedificium.Aedificium, error) {
	k := base.N()

	targets := make([]int, k)
	for r := range targets {
		targets[r] = r
	}
	cover := aedificium.BuildCoveringPath(targets, base)
	prefix := aedificium.InjectCharcoalOnFirstVisit(cover, base)
	budget := moveBudget(k, d)

	if d == 3 {
		var err error
		prefix, err = canonicalTripleLayerPrefix(ctx, ex, base, prefix, budget, rnd)
		if err != nil {
			return nil, err
		}
	}

	tailLen := budget - aedificium.MoveCount(prefix)
	if tailLen < 0 {
		tailLen = 0
	}

	plans := make([]string, cfg.Expeditions)
	tokens := make([][]aedificium.Token, cfg.Expeditions)
	for e := range plans {
		tail := randomTail(tailLen, rnd)
		tokens[e] = append(append([]aedificium.Token{}, prefix...), tail...)
		plans[e] = aedificium.FormatPlan(tokens[e])
	}
	results, err := ex.Explore(ctx, plans)
	if err != nil {
		return nil, fmt.Errorf("duplicate: d=%d explore: %w", d, err)
	}
	if len(results) != len(plans) {
		return nil, fmt.Errorf("duplicate: got %d results for %d expeditions", len(results), len(plans))
	}

	dests := reconnect.DestMap{}
	for e := range tokens {
		if err := decodeExpedition(base, d, tokens[e], results[e], dests); err != nil {
			return nil, fmt.Errorf("duplicate: expedition %d: %w", e, err)
		}
	}
	return buildLifted(base, d, dests)
}

// canonicalTripleLayerPrefix extends prefix with a single, long random
// walk, explores it once, and locates a layer-B position for every base
// room from that one canonical run; it returns prefix with the
// resulting layer-B charcoal marks spliced in. This canonical run is the
// only place layer-B positions are ever decided, so every expedition
// built from its result shares the same physical layer identities.
func canonicalTripleLayerPrefix(ctx context.Context, ex Explorer, base *aedificium.Aedificium, prefix []aedificium.Token, budget int, rnd *rand.Rand) ([]aedificium.Token, error) {
	k := base.N()
	tailLen := budget - aedificium.MoveCount(prefix)
	if tailLen < 0 {
		tailLen = 0
	}
	canonical := append(append([]aedificium.Token{}, prefix...), randomTail(tailLen, rnd)...)

	results, err := ex.Explore(ctx, []string{aedificium.FormatPlan(canonical)})
	if err != nil {
		return nil, fmt.Errorf("duplicate: d=3 canonical explore: %w", err)
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("duplicate: got %d results for 1 canonical plan", len(results))
	}

	pos := findLayerBPositions(base, canonical, results[0])
	found := map[int]bool{}
	for _, room := range pos {
		found[room] = true
	}
	if len(found) != k {
		return nil, fmt.Errorf("duplicate: canonical walk only distinguished a third layer for %d of %d base rooms", len(found), k)
	}

	return injectLayerBCharcoal(canonical, base, pos), nil
}

// moveBudget returns the largest move-token count a single plan can
// carry without tripping the judge protocol's 6*N-moves-per-plan limit,
// where N is the full k*d room count being lifted into.
func moveBudget(k, d int) int {
	return 6 * k * d
}

// randomTail returns n random MOVE tokens.
func randomTail(n int, rnd *rand.Rand) []aedificium.Token {
	tail := make([]aedificium.Token, n)
	for i := range tail {
		tail[i] = aedificium.Token{Kind: aedificium.TokenMove, Value: rnd.Intn(aedificium.Doors)}
	}
	return tail
}

// findLayerBPositions walks tokens alongside their observed labels,
// tracking which base rooms have already been charcoal-marked (layer A)
// and which have already been assigned a layer-B position. The first
// time a move lands on an already-marked room whose label has reverted
// to its original, unflipped value, that room is being seen through a
// second physical copy for the first time: record the token index so a
// layer-B mark can be injected right after it.
func findLayerBPositions(base *aedificium.Aedificium, tokens []aedificium.Token, labels []int) map[int]int {
	k := base.N()
	layerAMarked := make([]bool, k)
	layerBFound := make([]bool, k)
	pos := map[int]int{}

	room := base.Start
	for i, t := range tokens {
		switch t.Kind {
		case aedificium.TokenCharcoal:
			layerAMarked[room] = true
		case aedificium.TokenMove:
			next := base.Step(aedificium.Door{Room: room, Port: t.Value}).Room
			if layerAMarked[next] && !layerBFound[next] && labels[i+1] == base.Label(next) {
				layerBFound[next] = true
				pos[i] = next
			}
			room = next
		}
	}
	return pos
}

// injectLayerBCharcoal replays tokens, inserting an extra CHARCOAL
// token flipping the destination's label to (label+2) mod Labels
// immediately after each move recorded in pos.
func injectLayerBCharcoal(tokens []aedificium.Token, base *aedificium.Aedificium, pos map[int]int) []aedificium.Token {
	out := make([]aedificium.Token, 0, len(tokens)+len(pos))
	room := base.Start
	for i, t := range tokens {
		out = append(out, t)
		if t.Kind != aedificium.TokenMove {
			continue
		}
		next := base.Step(aedificium.Door{Room: room, Port: t.Value}).Room
		if target, ok := pos[i]; ok && target == next {
			out = append(out, aedificium.Token{Kind: aedificium.TokenCharcoal, Value: (base.Label(next) + 2) % aedificium.Labels})
		}
		room = next
	}
	return out
}

// decodeExpedition replays one expedition's tokens against base,
// resolving the physical layer of every move's destination from the
// observed label, or, when a charcoal mark immediately follows the move,
// from that mark's own payload, which names its layer directly rather
// than leaving it to be inferred; and records every door->room it learns
// into dests. Conflicting evidence for the same door is an error.
func decodeExpedition(base *aedificium.Aedificium, d int, tokens []aedificium.Token, labels []int, dests reconnect.DestMap) error {
	k := base.N()
	room, layer := base.Start, 0
	for i, t := range tokens {
		if t.Kind != aedificium.TokenMove {
			continue
		}
		next := base.Step(aedificium.Door{Room: room, Port: t.Value}).Room
		label := labels[i+1]
		if i+1 < len(tokens) && tokens[i+1].Kind == aedificium.TokenCharcoal {
			label = tokens[i+1].Value
		}
		nextLayer, err := resolveLayer(label, base.Label(next), d)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		from := aedificium.Door{Room: room + layer*k, Port: t.Value}
		to := next + nextLayer*k
		if existing, ok := dests[from]; ok && existing != to {
			return fmt.Errorf("conflicting destination for door %s: %d vs %d", from, existing, to)
		}
		dests[from] = to

		room, layer = next, nextLayer
	}
	return nil
}

// resolveLayer maps an observed label for a room whose base label is
// baseLabel to the physical layer it must belong to: layer 0 carries
// the layer-A mark (baseLabel+1), layer 1 (only possible when d=3)
// carries the layer-B mark (baseLabel+2), and the last layer is
// whichever copy was never marked at all, still showing baseLabel.
func resolveLayer(observedLabel, baseLabel, d int) (int, error) {
	if observedLabel == (baseLabel+1)%aedificium.Labels {
		return 0, nil
	}
	if d == 3 && observedLabel == (baseLabel+2)%aedificium.Labels {
		return 1, nil
	}
	if observedLabel == baseLabel {
		return d - 1, nil
	}
	return 0, fmt.Errorf("label %d is consistent with no layer of base label %d", observedLabel, baseLabel)
}

// buildLifted assembles the decoded door-destination map into a full
// k*d-room Aedificium: layer l's rooms carry the same labels as base,
// offset by l*k, and the start room stays layer 0 since every
// expedition's plan begins there.
func buildLifted(base *aedificium.Aedificium, d int, dests reconnect.DestMap) (*aedificium.Aedificium, error) {
	k := base.N()
	n := k * d
	labels := make([]int, n)
	for layer := 0; layer < d; layer++ {
		for r := 0; r < k; r++ {
			labels[r+layer*k] = base.Label(r)
		}
	}

	conns, err := reconnect.Reconstruct(n, dests)
	if err != nil {
		return nil, fmt.Errorf("reconstructing connections: %w", err)
	}
	full, err := aedificium.New(labels, base.Start, conns)
	if err != nil {
		return nil, fmt.Errorf("building lifted layout: %w", err)
	}
	return full, nil
}
