package aedificium

import (
	"encoding/json"
	"math/rand"
	"testing"

	"pgregory.net/rapid"
)

func TestBuildRejectsMissingDoor(t *testing.T) {
	conns := []Connection{{From: Door{0, 0}, To: Door{0, 0}}}
	if _, err := New([]int{0}, 0, conns); err == nil {
		t.Fatal("expected error for a room with undefined doors")
	}
}

func TestBuildRejectsDisconnectedGraph(t *testing.T) {
	labels := []int{0, 1}
	var conns []Connection
	for _, r := range []int{0, 1} {
		for p := 0; p < Doors; p++ {
			conns = append(conns, Connection{From: Door{r, p}, To: Door{r, p}})
		}
	}
	if _, err := New(labels, 0, conns); err == nil {
		t.Fatal("expected error for a disconnected graph (two isolated self-loop rooms)")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	a := threeRoomLinear(t)

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var b Aedificium
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(b.CheckInvariants(0)) != 0 {
		t.Fatalf("round-tripped graph fails invariants: %v", b.CheckInvariants(0))
	}
	if _, differ := EquivalenceTest(a, &b, true, rand.New(rand.NewSource(1))); differ {
		t.Fatal("round-tripped graph is not equivalent to the original")
	}
}

func TestEquivalenceTestDetectsDifference(t *testing.T) {
	a := threeRoomLinear(t)
	b := a.Clone()
	b.Labels[1] = (b.Labels[1] + 1) % Labels

	if _, differ := EquivalenceTest(a, b, true, rand.New(rand.NewSource(42))); !differ {
		t.Fatal("expected EquivalenceTest to detect a relabeled room")
	}
}

func TestEquivalenceTestAgreesWithItself(t *testing.T) {
	a := threeRoomLinear(t)
	if _, differ := EquivalenceTest(a, a.Clone(), true, rand.New(rand.NewSource(7))); differ {
		t.Fatal("an unmodified clone must be observationally equivalent")
	}
}

func TestBuildCoveringPathVisitsAllTargets(t *testing.T) {
	a := threeRoomLinear(t)
	plan := BuildCoveringPath([]int{0, 1, 2}, a)

	visited := map[int]bool{a.Start: true}
	room := a.Start
	for _, tok := range plan {
		if tok.Kind != TokenMove {
			continue
		}
		room = a.Step(Door{Room: room, Port: tok.Value}).Room
		visited[room] = true
	}
	for _, r := range []int{0, 1, 2} {
		if !visited[r] {
			t.Errorf("covering path never visited room %d", r)
		}
	}
}

func TestInjectCharcoalOnFirstVisit(t *testing.T) {
	a := threeRoomLinear(t)
	plan, err := ParsePlan("01")
	if err != nil {
		t.Fatal(err)
	}
	tagged := InjectCharcoalOnFirstVisit(plan, a)
	labels := Simulate(tagged, a)

	// labels[0] is observed before any token; the label right after the
	// leading charcoal mark must be the starting room's flipped value
	for i, l := range labels {
		if i == 1 {
			if l != (a.Label(a.Start)+1)%Labels {
				t.Fatalf("starting room not flipped: %v", labels)
			}
		}
	}
}

// TestInvolutionProperty checks that for any graph built from a random
// door-pairing, step is an involution and every door is covered.
func TestInvolutionProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "n")
		total := n * Doors
		perm := rapid.Permutation(seq(total)).Draw(rt, "perm")

		used := make([]bool, total)
		var conns []Connection
		for i := 0; i < total; i++ {
			if used[i] {
				continue
			}
			j := perm[i]
			if used[j] {
				continue
			}
			used[i] = true
			used[j] = true
			conns = append(conns, Connection{From: decodeDoor(i), To: decodeDoor(j)})
		}

		labels := make([]int, n)
		for i := range labels {
			labels[i] = i % Labels
		}

		a, err := New(labels, 0, conns)
		if err != nil {
			// disconnected or malformed draws are expected and uninteresting
			return
		}
		if errs := a.CheckInvariants(0); len(errs) != 0 {
			rt.Fatalf("invariant violated: %v", errs)
		}
	})
}

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}
