// Package orchestrator races the three solver families — pkg/satsolve,
// pkg/anneal and pkg/fingerprint — against the same set of expeditions,
// returning whichever finishes first with a candidate layout. Each family
// trades completeness for speed differently (exhaustive SAT search vs.
// randomized annealing vs. active exploration), so no single family
// dominates across problem sizes; running them concurrently and taking
// the first winner is cheaper than picking one in advance.
//
// Solvers are adapted to a single Solver contract by the caller (a thin
// closure wrapping whichever package-specific Solve function applies),
// keeping this package free of any dependency on the solver packages'
// individual configuration types.
package orchestrator
