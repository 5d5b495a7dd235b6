package satsolve

import (
	"testing"

	"github.com/dshills/aedificium/pkg/aedificium"
)

func TestDecodeAndBuildSingleRoom(t *testing.T) {
	p := Problem{
		K: 1,
		D: 1,
		Observations: []Observation{
			{
				Plan:   []aedificium.Token{{Kind: aedificium.TokenMove, Value: 0}},
				Labels: []int{0, 0},
			},
		},
	}
	enc, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	assignment := Assignment{}
	for _, xs := range enc.X {
		for _, x := range xs {
			setBits(assignment, x, 0)
		}
	}
	for _, perObs := range enc.Lab {
		for _, perRoom := range perObs {
			for _, lab := range perRoom {
				setBits(assignment, lab, 0)
			}
		}
	}
	partner := map[int]int{0: 1, 1: 0, 2: 3, 3: 2, 4: 5, 5: 4}
	for q := 0; q < aedificium.Doors; q++ {
		setBits(assignment, enc.DD[0][q], 0)
		setBits(assignment, enc.DC[0][q], partner[q])
	}

	layout := Decode(enc, p, assignment)
	if len(layout.Labels) != 1 || layout.Labels[0] != 0 {
		t.Fatalf("unexpected labels: %v", layout.Labels)
	}

	built, err := layout.Build(p.N())
	if err != nil {
		t.Fatalf("Layout.Build: %v", err)
	}
	if built.N() != 1 {
		t.Fatalf("N() = %d, want 1", built.N())
	}
	for q := 0; q < aedificium.Doors; q++ {
		dst := built.Step(aedificium.Door{Room: 0, Port: q})
		if dst.Room != 0 || dst.Port != partner[q] {
			t.Fatalf("Step(0/%d) = %v, want room 0 port %d", q, dst, partner[q])
		}
	}
}
