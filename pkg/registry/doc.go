// Package registry resolves a problem name to its (k, d) dimensions, the
// static contest table plus a random_full_<k>_<d>_<seed> synthetic form
// used for offline testing and the mock server's /select. Synthetic
// names additionally synthesize a fully-random Ædificium of the right
// size, deterministically from the seed, using the same random-matching
// construction pkg/anneal uses as its search's starting point.
package registry
