// Package rng provides deterministic random number generation for the
// reconstruction engine.
//
// # Overview
//
// The RNG type ensures reproducible solving by deriving component-specific
// seeds from a master seed. This allows each component (annealing,
// duplication lifting, synthetic problem generation) to have
// independent random sequences while maintaining overall determinism.
//
// # Sub-Seed Derivation
//
// Each RNG derives its seed using SHA-256:
//
//	seed_component = H(masterSeed, componentName, configHash)
//
// where:
//   - masterSeed: Top-level seed for the whole solving run
//   - componentName: component identifier (e.g., "anneal")
//   - configHash: Hash of configuration parameters
//
// This ensures:
//  1. Same inputs always produce same RNG sequence (determinism)
//  2. Different components get independent random sequences (isolation)
//  3. Config changes result in different sequences (sensitivity)
//
// # Usage
//
// Create an RNG for each component:
//
//	configHash := sha256.Sum256([]byte(configJSON))
//	annealRNG := rng.NewRNG(masterSeed, "anneal", configHash[:])
//	duplicateRNG := rng.NewRNG(masterSeed, "duplicate", configHash[:])
//
// Use the RNG for all random decisions in that component:
//
//	door := annealRNG.IntRange(0, 5)
//	temperature := annealRNG.Float64Range(0.3, 0.8)
//	if annealRNG.Bool() {
//	    // accept an uphill move
//	}
//
// # Thread Safety
//
// RNG instances are NOT thread-safe. Each goroutine should use its own RNG
// instance. Create component-specific RNGs before spawning goroutines and
// pass them explicitly.
//
// # Performance
//
// The underlying math/rand.Rand is highly efficient:
//   - Uint64(): ~2ns per call
//   - Intn():   ~3ns per call
//   - Float64(): ~2ns per call
//
// Creating a new RNG costs ~8µs due to SHA-256 computation.
// Reuse RNG instances within a component for best performance.
package rng
