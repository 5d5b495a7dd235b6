// Package satsolve encodes the reconstruction problem — walk histories
// plus door bijectivity — as a Boolean formula, compiles it to DIMACS
// CNF, hands it to an external SAT solver process, and decodes a
// satisfying assignment back into a door-destination map.
package satsolve
