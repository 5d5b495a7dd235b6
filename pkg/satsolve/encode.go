package satsolve

import (
	"fmt"

	"github.com/dshills/aedificium/pkg/aedificium"
)

// Observation is one completed expedition: the route plan that was sent
// and the label sequence the judge returned (len(Labels) == len(Plan)+1).
type Observation struct {
	Plan   []aedificium.Token
	Labels []int
}

// Problem bundles everything the encoder needs to build a CSP whose
// models correspond to candidate Ædificium layouts consistent with a
// batch of expeditions.
type Problem struct {
	// K is the number of distinct base rooms.
	K int
	// D is the duplication factor; N = K*D total rooms.
	D int
	// Observations is the set of completed expeditions to explain.
	Observations []Observation
	// BreakStartSymmetry pins the starting room to index 0, which is
	// always sound since room numbering is otherwise arbitrary.
	BreakStartSymmetry bool
}

// N returns the total room count K*D.
func (p Problem) N() int { return p.K * p.D }

// Encoding is the compiled CSP plus the variable handles needed to
// decode a satisfying Assignment back into a layout (see decode.go).
type Encoding struct {
	Builder *Builder

	// X[p][i] is the room occupied at step i of observation p.
	X [][]BitVector
	// Orig[r] is room r's base identity, only populated when D>1.
	Orig []BitVector
	// DD[r][q] / DC[r][q] are the destination room/port of door (r,q).
	DD [][]BitVector
	DC [][]BitVector
	// Lab[p][r][i] is room r's label at step i of observation p. Tracked
	// for every D, since CHARCOAL can overwrite a room's label within a
	// walk regardless of duplication factor.
	Lab [][][]BitVector
}

// Encode builds the per-step room-position variables, a destination
// table per door, per-room base identity when rooms are duplicated, and
// the constraints tying them to the observed label sequences.
func Encode(p Problem) (*Encoding, error) {
	if p.K <= 0 {
		return nil, fmt.Errorf("satsolve: K must be positive, got %d", p.K)
	}
	if p.D <= 0 {
		return nil, fmt.Errorf("satsolve: D must be positive, got %d", p.D)
	}
	n := p.N()
	b := NewBuilder()
	enc := &Encoding{Builder: b}

	// Destination table: one (room, port) pair per door.
	enc.DD = make([][]BitVector, n)
	enc.DC = make([][]BitVector, n)
	for r := 0; r < n; r++ {
		enc.DD[r] = make([]BitVector, aedificium.Doors)
		enc.DC[r] = make([]BitVector, aedificium.Doors)
		for q := 0; q < aedificium.Doors; q++ {
			enc.DD[r][q] = b.NewRoomVar(n)
			enc.DC[r][q] = b.NewRoomVar(aedificium.Doors)
		}
	}

	// Per-room base identity, only meaningful when rooms are duplicated.
	if p.D > 1 {
		enc.Orig = make([]BitVector, n)
		for r := 0; r < n; r++ {
			enc.Orig[r] = b.NewRoomVar(p.K)
		}
	}

	// Per-observation, per-step room-position variables.
	enc.X = make([][]BitVector, len(p.Observations))
	enc.Lab = make([][][]BitVector, len(p.Observations))
	for oi, obs := range p.Observations {
		steps := len(obs.Plan) + 1
		enc.X[oi] = make([]BitVector, steps)
		for i := range enc.X[oi] {
			enc.X[oi][i] = b.NewRoomVar(n)
		}
		// Per-step, per-room labels are tracked unconditionally: CHARCOAL
		// overwrites a room's observed label within a walk regardless of
		// duplication factor, so the "label == room mod 4" shortcut noted
		// for D==1 only holds on charcoal-free plans and is not safe to
		// take as a blanket special case.
		enc.Lab[oi] = make([][]BitVector, steps)
		for i := range enc.Lab[oi] {
			enc.Lab[oi][i] = make([]BitVector, n)
			for r := 0; r < n; r++ {
				enc.Lab[oi][i][r] = b.NewRoomVar(aedificium.Labels)
			}
		}
	}

	if err := enc.encodeLabelObservations(p); err != nil {
		return nil, err
	}
	enc.encodeInitialLabels(p)
	enc.encodeSameStart(p)
	if err := enc.encodeMovementAndLabelUpdates(p); err != nil {
		return nil, err
	}
	enc.encodeBijectivity(p)
	if p.D > 1 {
		enc.encodeDuplicationCounts(p)
		enc.encodeIndistinguishability(p)
	}
	if p.BreakStartSymmetry {
		enc.Builder.ImplyEqualsConst(nil, enc.X[0][0], 0)
	}

	return enc, nil
}

// encodeLabelObservations wires constraint 1: the label seen at step i of
// plan p must match the occupied room's tracked label, read off the
// per-room Lab variable via case-split over the occupied room.
func (e *Encoding) encodeLabelObservations(p Problem) error {
	for oi, obs := range p.Observations {
		for i, lab := range obs.Labels {
			if lab < 0 || lab >= aedificium.Labels {
				return fmt.Errorf("satsolve: observation %d step %d: label %d out of range", oi, i, lab)
			}
			for r := 0; r < p.N(); r++ {
				ante := EqLits(e.X[oi][i], r)
				e.Builder.ImplyEqualsConst(ante, e.Lab[oi][i][r], lab)
			}
		}
	}
	return nil
}

// encodeInitialLabels wires constraint 2: before any CHARCOAL, every
// room's label is its base room's canonical label (base index mod 4).
func (e *Encoding) encodeInitialLabels(p Problem) {
	for oi := range p.Observations {
		for r := 0; r < p.N(); r++ {
			if p.D == 1 {
				// No duplication: room r's base identity is itself.
				e.Builder.ImplyEqualsConst(nil, e.Lab[oi][0][r], r%aedificium.Labels)
				continue
			}
			for base := 0; base < p.K; base++ {
				ante := EqLits(e.Orig[r], base)
				e.Builder.ImplyEqualsConst(ante, e.Lab[oi][0][r], base%aedificium.Labels)
			}
		}
	}
}

// encodeSameStart wires constraint 3: every expedition begins in the same
// physical room, since they all describe one fixed Ædificium.
func (e *Encoding) encodeSameStart(p Problem) {
	for oi := 1; oi < len(p.Observations); oi++ {
		e.Builder.ImplyEqual(nil, e.X[oi][0], e.X[0][0])
	}
}

// encodeMovementAndLabelUpdates wires constraints 4 and 5: a MOVE token
// follows the destination table and leaves every label untouched; a
// CHARCOAL token leaves the room unchanged but overwrites that room's
// label, leaving every other room's label untouched.
func (e *Encoding) encodeMovementAndLabelUpdates(p Problem) error {
	n := p.N()
	for oi, obs := range p.Observations {
		for i, tok := range obs.Plan {
			cur, next := e.X[oi][i], e.X[oi][i+1]
			switch tok.Kind {
			case aedificium.TokenMove:
				if tok.Value < 0 || tok.Value >= aedificium.Doors {
					return fmt.Errorf("satsolve: observation %d step %d: door %d out of range", oi, i, tok.Value)
				}
				for r := 0; r < n; r++ {
					ante := EqLits(cur, r)
					e.Builder.ImplyEqual(ante, e.DD[r][tok.Value], next)
				}
				for r := 0; r < n; r++ {
					e.Builder.ImplyEqual(nil, e.Lab[oi][i][r], e.Lab[oi][i+1][r])
				}
			case aedificium.TokenCharcoal:
				if tok.Value < 0 || tok.Value >= aedificium.Labels {
					return fmt.Errorf("satsolve: observation %d step %d: charcoal value %d out of range", oi, i, tok.Value)
				}
				e.Builder.ImplyEqual(nil, next, cur)
				for r := 0; r < n; r++ {
					ante := EqLits(cur, r)
					for r2 := 0; r2 < n; r2++ {
						if r2 == r {
							e.Builder.ImplyEqualsConst(ante, e.Lab[oi][i+1][r2], tok.Value)
							continue
						}
						e.Builder.ImplyEqual(ante, e.Lab[oi][i+1][r2], e.Lab[oi][i][r2])
					}
				}
			default:
				return fmt.Errorf("satsolve: observation %d step %d: unknown token kind %v", oi, i, tok.Kind)
			}
		}
	}
	return nil
}

// encodeBijectivity wires constraint 6: connections are an involution.
// If door (r,q) leads to (r2,p2), then door (r2,p2) must lead back to
// (r,q). Case-split over every candidate destination pair, since the
// destination table cannot be indexed by a variable directly in CNF.
func (e *Encoding) encodeBijectivity(p Problem) {
	n := p.N()
	for r := 0; r < n; r++ {
		for q := 0; q < aedificium.Doors; q++ {
			for r2 := 0; r2 < n; r2++ {
				for p2 := 0; p2 < aedificium.Doors; p2++ {
					ante := append(append([]Lit{}, EqLits(e.DD[r][q], r2)...), EqLits(e.DC[r][q], p2)...)
					e.Builder.ImplyEqualsConst(ante, e.DD[r2][p2], r)
					e.Builder.ImplyEqualsConst(ante, e.DC[r2][p2], q)
				}
			}
		}
	}
}

// encodeDuplicationCounts wires constraint 7: under duplication factor D,
// each base room index must be claimed by exactly D of the N physical
// rooms.
func (e *Encoding) encodeDuplicationCounts(p Problem) {
	n := p.N()
	for base := 0; base < p.K; base++ {
		indicators := make([]Lit, n)
		for r := 0; r < n; r++ {
			indicators[r] = e.Builder.ConjVar(EqLits(e.Orig[r], base))
		}
		e.Builder.ExactlyK(indicators, p.D)
	}
}

// encodeIndistinguishability wires constraint 8: rooms sharing a base
// identity must be behaviorally identical copies — stepping through the
// same port from either one must land in rooms that again share a base
// identity, so no expedition can ever tell the duplicates apart.
func (e *Encoding) encodeIndistinguishability(p Problem) {
	n := p.N()
	for r1 := 0; r1 < n; r1++ {
		for r2 := r1 + 1; r2 < n; r2++ {
			origEq := e.Builder.EqVar(e.Orig[r1], e.Orig[r2])
			for q := 0; q < aedificium.Doors; q++ {
				for d1 := 0; d1 < n; d1++ {
					for d2 := 0; d2 < n; d2++ {
						ante := []Lit{origEq}
						ante = append(ante, EqLits(e.DD[r1][q], d1)...)
						ante = append(ante, EqLits(e.DD[r2][q], d2)...)
						e.Builder.ImplyEqual(ante, e.Orig[d1], e.Orig[d2])
					}
				}
			}
		}
	}
}
