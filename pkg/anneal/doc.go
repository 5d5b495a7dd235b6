// Package anneal reconstructs a candidate Ædificium by simulated
// annealing: starting from a candidate state, it repeatedly mutates the
// state and accepts or rejects each move by the Metropolis criterion,
// driving a cost that measures disagreement with the observed label
// sequences down to zero.
//
// Two state spaces share the same cooling schedule and acceptance rule
// but differ in what they search over:
//
//   - State space A (the default) searches directly over a
//     door-destination table with canonical labels (room r has label
//     r mod 4, a symmetry-breaking renumbering rather than a
//     restriction — any layout can be relabeled into this form by
//     permuting same-label rooms among themselves). Its cost is a
//     convex combination of position-wise label mismatch and n-gram
//     dissimilarity between the observed and simulated streams.
//   - State space B searches over a room-history vector per
//     observation, constrained so each entry's label matches what was
//     actually observed there, and derives a door-destination table
//     from it by majority vote. Its cost counts the votes that
//     disagree with their door's majority plus any room claimed by
//     more doors than it has.
//
// The package has no notion of room duplication (K base rooms
// replicated D times): it searches over exactly Config.N rooms. For a
// duplicated problem the CLI anneals the K-room base problem and then
// lifts the result to K*D rooms with pkg/duplicate.
package anneal
