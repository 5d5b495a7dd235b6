package reconnect

import (
	"fmt"
	"sort"

	"github.com/dshills/aedificium/pkg/aedificium"
)

// DestMap is a partial door-destination map: dest[d] is the room door d
// leads into, when known.
type DestMap map[aedificium.Door]int

// Reconstruct turns a partial door-destination map over n rooms into a
// full connection list: a total involution on doors consistent with
// dest. For each room r, every door known to lead into r (its incoming
// set) is paired with a free outgoing port of r whose own recorded
// destination (if any) agrees with the incoming door's room — this is
// the back-direction consistency check. Any door left unpaired becomes
// a self-loop. Fails if a room has more than Doors incoming doors, or an
// incoming door finds no consistent free port.
func Reconstruct(n int, dest DestMap) ([]aedificium.Connection, error) {
	incoming := make([][]aedificium.Door, n)
	for d, to := range dest {
		if to < 0 || to >= n {
			return nil, fmt.Errorf("reconnect: destination room %d out of range [0,%d)", to, n)
		}
		incoming[to] = append(incoming[to], d)
	}
	// Deterministic ordering: map iteration above is randomized, but the
	// pairing choice can depend on it when several ports are equally
	// consistent, so sort for reproducible output.
	for r := range incoming {
		sort.Slice(incoming[r], func(i, j int) bool {
			a, b := incoming[r][i], incoming[r][j]
			if a.Room != b.Room {
				return a.Room < b.Room
			}
			return a.Port < b.Port
		})
	}

	used := make(map[aedificium.Door]bool)
	var conns []aedificium.Connection

	for room := 0; room < n; room++ {
		if len(incoming[room]) > aedificium.Doors {
			return nil, fmt.Errorf("reconnect: room %d has %d incoming doors, more than %d",
				room, len(incoming[room]), aedificium.Doors)
		}
		for _, in := range incoming[room] {
			if used[in] {
				continue
			}
			paired := false
			for p := 0; p < aedificium.Doors; p++ {
				out := aedificium.Door{Room: room, Port: p}
				if used[out] {
					continue
				}
				other, known := dest[out]
				if known && other != in.Room {
					continue
				}
				conns = append(conns, aedificium.Connection{From: in, To: out})
				used[in] = true
				used[out] = true
				paired = true
				break
			}
			if !paired {
				return nil, fmt.Errorf("reconnect: incoming door %s into room %d has no consistent free port", in, room)
			}
		}
	}

	for room := 0; room < n; room++ {
		for p := 0; p < aedificium.Doors; p++ {
			d := aedificium.Door{Room: room, Port: p}
			if !used[d] {
				conns = append(conns, aedificium.Connection{From: d, To: d})
				used[d] = true
			}
		}
	}

	return conns, nil
}
