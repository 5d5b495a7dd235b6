package fingerprint

import (
	"context"
	"fmt"

	"github.com/dshills/aedificium/pkg/aedificium"
	"github.com/dshills/aedificium/pkg/reconnect"
	"github.com/dshills/aedificium/pkg/rng"
)

// Config tunes the active-learning search.
type Config struct {
	// HasherCount (H) is how many independently sampled hasher suffixes
	// back every prefix's fingerprint; more hashers make an accidental
	// collision between two physically distinct rooms exponentially
	// less likely, at the cost of H plans per probe.
	HasherCount int
	// HasherLength is the length of each fixed random hasher suffix
	// appended to every probe to discriminate between rooms.
	HasherLength int
	// MaxPrefixLength bounds how many MOVE tokens a probe prefix may
	// carry before the search gives up extending it further.
	MaxPrefixLength int
	// ExpectedRooms, if positive, is the minimum number of distinct
	// fingerprints a successful solve must recover (postcondition 1);
	// set it to the problem's known room count.
	ExpectedRooms int
}

// DefaultConfig returns reasonable defaults sized to a graph of
// approximately k rooms.
func DefaultConfig(k int) Config {
	hasher := k * 4
	if hasher < 8 {
		hasher = 8
	}
	return Config{
		HasherCount:     5,
		HasherLength:    hasher,
		MaxPrefixLength: k * 3,
		ExpectedRooms:   k,
	}
}

// roomClass is one room discovered so far: the prefix that first reached
// it, its fingerprint (one label sequence per hasher, in hasher order),
// and the door-destination table for the doors already probed from it.
type roomClass struct {
	id          int
	prefix      []aedificium.Token
	fingerprint [][]int
	dest        [aedificium.Doors]int
}

// Solve actively explores ex, growing a set of room classes by comparing
// H-hasher fingerprints, until a breadth-first sweep over every door of
// every known room adds no new class (or MaxPrefixLength is reached),
// then assembles the resulting automaton into an Aedificium.
func Solve(ctx context.Context, cfg Config, seed uint64, ex Explorer) (*aedificium.Aedificium, error) {
	if cfg.HasherLength <= 0 {
		return nil, fmt.Errorf("fingerprint: HasherLength must be positive, got %d", cfg.HasherLength)
	}
	if cfg.HasherCount <= 0 {
		return nil, fmt.Errorf("fingerprint: HasherCount must be positive, got %d", cfg.HasherCount)
	}

	hashers := make([][]aedificium.Token, cfg.HasherCount)
	for h := range hashers {
		hasherRNG := rng.NewRNG(seed, "fingerprint_hasher", []byte(fmt.Sprintf("h=%d,len=%d", h, cfg.HasherLength)))
		seq := make([]aedificium.Token, cfg.HasherLength)
		for i := range seq {
			seq[i] = aedificium.Token{Kind: aedificium.TokenMove, Value: hasherRNG.Intn(aedificium.Doors)}
		}
		hashers[h] = seq
	}

	// probe submits every hasher's (prefix·hasher) concatenation as one
	// batched explore call, returning the fingerprint: the tuple, over
	// hashers in canonical order, of label sequences observed after
	// prefix.
	probe := func(prefix []aedificium.Token) ([][]int, error) {
		plans := make([]string, len(hashers))
		for h, suffix := range hashers {
			tokens := make([]aedificium.Token, 0, len(prefix)+len(suffix))
			tokens = append(tokens, prefix...)
			tokens = append(tokens, suffix...)
			plans[h] = aedificium.FormatPlan(tokens)
		}
		results, err := ex.Explore(ctx, plans)
		if err != nil {
			return nil, err
		}
		if len(results) != len(plans) {
			return nil, fmt.Errorf("fingerprint: got %d results for %d hasher plans", len(results), len(plans))
		}
		fp := make([][]int, len(hashers))
		for h, labels := range results {
			if len(labels) < len(prefix) {
				return nil, fmt.Errorf("fingerprint: judge returned %d labels for a %d-prefix plan", len(labels), len(prefix))
			}
			fp[h] = labels[len(prefix):]
		}
		return fp, nil
	}

	rootFingerprint, err := probe(nil)
	if err != nil {
		return nil, fmt.Errorf("fingerprint: probing start room: %w", err)
	}
	classes := []*roomClass{{id: 0, prefix: nil, fingerprint: rootFingerprint}}

	frontier := []*roomClass{classes[0]}
	for len(frontier) > 0 {
		var next []*roomClass
		for _, c := range frontier {
			if len(c.prefix) >= cfg.MaxPrefixLength {
				continue
			}
			for q := 0; q < aedificium.Doors; q++ {
				childPrefix := append(append([]aedificium.Token{}, c.prefix...), aedificium.Token{Kind: aedificium.TokenMove, Value: q})
				fp, err := probe(childPrefix)
				if err != nil {
					return nil, fmt.Errorf("fingerprint: probing prefix of length %d: %w", len(childPrefix), err)
				}
				if match := findMatch(classes, fp); match != nil {
					c.dest[q] = match.id
					continue
				}
				nc := &roomClass{id: len(classes), prefix: childPrefix, fingerprint: fp}
				c.dest[q] = nc.id
				classes = append(classes, nc)
				next = append(next, nc)
			}
		}
		frontier = next
	}

	if err := validateDistinctFingerprints(classes, cfg.ExpectedRooms); err != nil {
		return nil, err
	}
	if err := validateEveryRoomVisited(classes); err != nil {
		return nil, err
	}

	labels := make([]int, len(classes))
	dest := make(reconnect.DestMap, len(classes)*aedificium.Doors)
	for _, c := range classes {
		labels[c.id] = c.fingerprint[0][0]
		for q := 0; q < aedificium.Doors; q++ {
			dest[aedificium.Door{Room: c.id, Port: q}] = c.dest[q]
		}
	}

	conns, err := reconnect.Reconstruct(len(classes), dest)
	if err != nil {
		return nil, fmt.Errorf("fingerprint: reconstructing connections: %w", err)
	}
	a, err := aedificium.New(labels, 0, conns)
	if err != nil {
		return nil, fmt.Errorf("fingerprint: %w", err)
	}
	if err := a.Build(); err != nil {
		return nil, fmt.Errorf("fingerprint: %w", err)
	}

	if err := validateReconstructionConsistency(a, classes, hashers); err != nil {
		return nil, err
	}
	return a, nil
}

// validateDistinctFingerprints fails when fewer distinct fingerprints
// were recovered than want, the minimum discriminating power a
// successful solve requires (postcondition 1). want <= 0 disables the
// check.
func validateDistinctFingerprints(classes []*roomClass, want int) error {
	if want <= 0 {
		return nil
	}
	if len(classes) < want {
		return fmt.Errorf("fingerprint: found %d distinct fingerprints, want at least %d (insufficient discriminating power)", len(classes), want)
	}
	return nil
}

// validateEveryRoomVisited fails if any non-root class is missing the
// prefix that must have discovered it (postcondition 2).
func validateEveryRoomVisited(classes []*roomClass) error {
	for id, c := range classes {
		if c == nil || (len(c.prefix) == 0 && id != 0) {
			return fmt.Errorf("fingerprint: room %d was never visited by any prefix", id)
		}
	}
	return nil
}

// validateReconstructionConsistency fails if replaying any class's own
// discovering prefix plus any hasher against the assembled candidate a
// does not reproduce exactly the fingerprint that prefix was recorded
// with. A mismatch means the candidate can't simultaneously explain all
// of its own training data: a fingerprint collision or an inconsistent
// door successor slipped through the BFS merge above (postcondition 3).
func validateReconstructionConsistency(a *aedificium.Aedificium, classes []*roomClass, hashers [][]aedificium.Token) error {
	for _, c := range classes {
		for h, suffix := range hashers {
			tokens := make([]aedificium.Token, 0, len(c.prefix)+len(suffix))
			tokens = append(tokens, c.prefix...)
			tokens = append(tokens, suffix...)
			got := aedificium.Simulate(tokens, a)
			if len(got) <= len(c.prefix) || !intsEqual(got[len(c.prefix):], c.fingerprint[h]) {
				return fmt.Errorf("fingerprint: room %d's reconstruction does not reproduce its own observed fingerprint (hasher %d): collision or inconsistent successor", c.id, h)
			}
		}
	}
	return nil
}

// findMatch returns the first known class whose fingerprint exactly
// matches fp, or nil if none does.
func findMatch(classes []*roomClass, fp [][]int) *roomClass {
	for _, c := range classes {
		if fingerprintsEqual(c.fingerprint, fp) {
			return c
		}
	}
	return nil
}

func fingerprintsEqual(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !intsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
