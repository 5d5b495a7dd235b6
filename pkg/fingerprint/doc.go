// Package fingerprint reconstructs a candidate Ædificium by active
// automaton learning: it explores one door at a time from each room
// discovered so far, appends H independently sampled fixed "hasher"
// suffixes to the probe, and submits all H (prefix·hasher) plans as one
// batched explore call. A prefix's fingerprint is the tuple, over
// hashers in canonical order, of the label sequences observed after it.
// Two probes that land in the same room always produce the same
// fingerprint (given hashers long and numerous enough to be
// discriminating), so equal fingerprints merge into one room and a new
// fingerprint starts a new one.
//
// Before a result is returned, Solve checks three postconditions: the
// number of distinct fingerprints found must meet the expected room
// count, every discovered room must trace back to the prefix that found
// it, and the assembled candidate must reproduce every fingerprint it
// was built from when replayed against itself. Any failure is reported
// rather than silently guessed at.
//
// Unlike pkg/satsolve and pkg/anneal, which fit a batch of already
// completed expeditions, this solver drives the Explorer itself,
// choosing each subsequent probe from what it has learned so far.
package fingerprint
