package fingerprint

import (
	"context"
	"testing"

	"github.com/dshills/aedificium/pkg/aedificium"
)

// graphExplorer answers Explore by simulating every plan against a fixed
// reference Aedificium, standing in for a live judge connection, and
// records how many plans arrived in each batched call so tests can
// confirm hashers are submitted together rather than one at a time.
type graphExplorer struct {
	ref       *aedificium.Aedificium
	batchLens []int
}

func (g *graphExplorer) Explore(_ context.Context, plans []string) ([][]int, error) {
	g.batchLens = append(g.batchLens, len(plans))
	results := make([][]int, len(plans))
	for i, p := range plans {
		tokens, err := aedificium.ParsePlan(p)
		if err != nil {
			return nil, err
		}
		results[i] = aedificium.Simulate(tokens, g.ref)
	}
	return results, nil
}

func threeRoomLinear(t *testing.T) *aedificium.Aedificium {
	t.Helper()
	// 0 -(0)-(0)- 1 -(1)-(0)- 2, all other ports self-loop.
	conns := []aedificium.Connection{
		{From: aedificium.Door{Room: 0, Port: 0}, To: aedificium.Door{Room: 1, Port: 0}},
		{From: aedificium.Door{Room: 1, Port: 1}, To: aedificium.Door{Room: 2, Port: 0}},
	}
	for r := 0; r < 3; r++ {
		for p := 0; p < aedificium.Doors; p++ {
			used := false
			for _, c := range conns {
				if (c.From.Room == r && c.From.Port == p) || (c.To.Room == r && c.To.Port == p) {
					used = true
				}
			}
			if !used {
				conns = append(conns, aedificium.Connection{
					From: aedificium.Door{Room: r, Port: p},
					To:   aedificium.Door{Room: r, Port: p},
				})
			}
		}
	}
	a, err := aedificium.New([]int{0, 1, 2}, 0, conns)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return a
}

func TestSolveRecoversThreeRoomLinear(t *testing.T) {
	ref := threeRoomLinear(t)
	cfg := DefaultConfig(3)

	got, err := Solve(context.Background(), cfg, 7, &graphExplorer{ref: ref})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got.N() != ref.N() {
		t.Fatalf("N() = %d, want %d", got.N(), ref.N())
	}

	// The two graphs should agree on every label sequence for every
	// single-door probe, which is sufficient evidence of isomorphism for
	// this deterministic, fully-explored graph.
	for q := 0; q < aedificium.Doors; q++ {
		plan := []aedificium.Token{{Kind: aedificium.TokenMove, Value: q}}
		want := aedificium.Simulate(plan, ref)
		gotLabels := aedificium.Simulate(plan, got)
		if len(want) != len(gotLabels) || want[0] != gotLabels[0] || want[1] != gotLabels[1] {
			t.Fatalf("door %d: Simulate mismatch: want %v, got %v", q, want, gotLabels)
		}
	}
}

func TestSolveBatchesHashersIntoOneExploreCall(t *testing.T) {
	ref := threeRoomLinear(t)
	cfg := DefaultConfig(3)
	cfg.HasherCount = 6

	ge := &graphExplorer{ref: ref}
	if _, err := Solve(context.Background(), cfg, 7, ge); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(ge.batchLens) == 0 {
		t.Fatal("Explore was never called")
	}
	for _, n := range ge.batchLens {
		if n != cfg.HasherCount {
			t.Fatalf("one Explore call carried %d plans, want exactly %d (all hashers batched together)", n, cfg.HasherCount)
		}
	}
}

func TestSolveRejectsNonPositiveHasherLength(t *testing.T) {
	ref := threeRoomLinear(t)
	cfg := Config{HasherCount: 1, HasherLength: 0, MaxPrefixLength: 5}
	if _, err := Solve(context.Background(), cfg, 1, &graphExplorer{ref: ref}); err == nil {
		t.Fatal("expected an error for HasherLength=0")
	}
}

func TestSolveRejectsNonPositiveHasherCount(t *testing.T) {
	ref := threeRoomLinear(t)
	cfg := Config{HasherCount: 0, HasherLength: 8, MaxPrefixLength: 5}
	if _, err := Solve(context.Background(), cfg, 1, &graphExplorer{ref: ref}); err == nil {
		t.Fatal("expected an error for HasherCount=0")
	}
}

func TestSolveRejectsTooFewRoomsForExpectedCount(t *testing.T) {
	ref := threeRoomLinear(t)
	cfg := DefaultConfig(3)
	cfg.ExpectedRooms = 99
	if _, err := Solve(context.Background(), cfg, 7, &graphExplorer{ref: ref}); err == nil {
		t.Fatal("expected an error when fewer fingerprints are found than ExpectedRooms")
	}
}

func TestValidateDistinctFingerprintsFailsBelowExpected(t *testing.T) {
	classes := []*roomClass{{id: 0}, {id: 1, prefix: []aedificium.Token{{Kind: aedificium.TokenMove, Value: 0}}}}
	if err := validateDistinctFingerprints(classes, 3); err == nil {
		t.Fatal("expected an error when classes undercount the expected room count")
	}
	if err := validateDistinctFingerprints(classes, 2); err != nil {
		t.Fatalf("validateDistinctFingerprints: unexpected error: %v", err)
	}
	if err := validateDistinctFingerprints(classes, 0); err != nil {
		t.Fatalf("validateDistinctFingerprints: want=0 should disable the check, got: %v", err)
	}
}

func TestValidateEveryRoomVisitedFailsOnMissingPrefix(t *testing.T) {
	classes := []*roomClass{
		{id: 0}, // root: nil prefix is expected
		{id: 1}, // non-root with no discovering prefix: invalid
	}
	if err := validateEveryRoomVisited(classes); err == nil {
		t.Fatal("expected an error for a non-root class with no discovering prefix")
	}

	classes[1].prefix = []aedificium.Token{{Kind: aedificium.TokenMove, Value: 2}}
	if err := validateEveryRoomVisited(classes); err != nil {
		t.Fatalf("validateEveryRoomVisited: unexpected error: %v", err)
	}
}

func TestValidateReconstructionConsistencyFailsOnMismatch(t *testing.T) {
	ref := threeRoomLinear(t)
	hashers := [][]aedificium.Token{{{Kind: aedificium.TokenMove, Value: 0}}}

	goodFP := aedificium.Simulate(hashers[0], ref)
	classes := []*roomClass{{id: 0, fingerprint: [][]int{goodFP}}}
	if err := validateReconstructionConsistency(ref, classes, hashers); err != nil {
		t.Fatalf("validateReconstructionConsistency: unexpected error for a faithful fingerprint: %v", err)
	}

	badFP := append([]int{}, goodFP...)
	badFP[len(badFP)-1] = (badFP[len(badFP)-1] + 1) % aedificium.Labels
	classes[0].fingerprint = [][]int{badFP}
	if err := validateReconstructionConsistency(ref, classes, hashers); err == nil {
		t.Fatal("expected an error when a class's recorded fingerprint disagrees with replaying it against the candidate")
	}
}
