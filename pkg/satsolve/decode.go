package satsolve

import (
	"github.com/dshills/aedificium/pkg/aedificium"
	"github.com/dshills/aedificium/pkg/reconnect"
)

// Layout is a decoded candidate Ædificium: a room's canonical label
// (Labels[r]) plus the full door-destination table.
type Layout struct {
	Labels []int
	Dest   reconnect.DestMap
}

// Decode reads a satisfying Assignment back into a Layout. Room r's label
// is derived from Orig (when D>1) or directly from r mod 4 (when D==1),
// matching the same rule the encoder assumed.
func Decode(enc *Encoding, p Problem, a Assignment) Layout {
	n := p.N()
	labels := make([]int, n)
	for r := 0; r < n; r++ {
		if p.D > 1 {
			labels[r] = a.Value(enc.Orig[r]) % aedificium.Labels
		} else {
			labels[r] = r % aedificium.Labels
		}
	}

	dest := make(reconnect.DestMap, n*aedificium.Doors)
	for r := 0; r < n; r++ {
		for q := 0; q < aedificium.Doors; q++ {
			dest[aedificium.Door{Room: r, Port: q}] = a.Value(enc.DD[r][q])
		}
	}

	return Layout{Labels: labels, Dest: dest}
}

// Build turns a decoded Layout into a validated Aedificium, reconstructing
// the door-to-door wiring via reconnect.Reconstruct. A Layout carries only
// each door's destination room: Decode does not read the DC port
// variables, so the ports Build pairs need not be the ones in the model.
func (l Layout) Build(n int) (*aedificium.Aedificium, error) {
	conns, err := reconnect.Reconstruct(n, l.Dest)
	if err != nil {
		return nil, err
	}
	a, err := aedificium.New(l.Labels, 0, conns)
	if err != nil {
		return nil, err
	}
	if err := a.Build(); err != nil {
		return nil, err
	}
	return a, nil
}
