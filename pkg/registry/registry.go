package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// Problem names the dimensions of a named contest problem.
type Problem struct {
	K int
	D int
}

// N returns the total physical room count k*d.
func (p Problem) N() int { return p.K * p.D }

// Named is the static contest table, name -> (k, d).
var Named = map[string]Problem{
	"probatio": {K: 3, D: 1}, "primus": {K: 6, D: 1}, "secundus": {K: 12, D: 1},
	"tertius": {K: 18, D: 1}, "quartus": {K: 24, D: 1}, "quintus": {K: 30, D: 1},

	"aleph": {K: 6, D: 2}, "beth": {K: 12, D: 2}, "gimel": {K: 18, D: 2},
	"daleth": {K: 24, D: 2}, "he": {K: 30, D: 2},

	"vau": {K: 6, D: 3}, "zain": {K: 12, D: 3}, "hhet": {K: 18, D: 3},
	"teth": {K: 24, D: 3}, "iod": {K: 30, D: 3},
}

// syntheticPrefix introduces the random_full_<k>_<d>_<seed> name form.
const syntheticPrefix = "random_full_"

// Lookup resolves name to its (k, d) dimensions, checking the static
// table first and falling back to the random_full_<k>_<d>_<seed> form.
func Lookup(name string) (Problem, error) {
	if p, ok := Named[name]; ok {
		return p, nil
	}
	if strings.HasPrefix(name, syntheticPrefix) {
		p, _, err := parseSynthetic(name)
		return p, err
	}
	return Problem{}, fmt.Errorf("registry: unknown problem name %q", name)
}

// Seed resolves the seed embedded in a synthetic random_full_<k>_<d>_<seed>
// name, returning an error for any name that isn't in that form (the
// static table has no associated seed).
func Seed(name string) (uint64, error) {
	if !strings.HasPrefix(name, syntheticPrefix) {
		return 0, fmt.Errorf("registry: %q is not a synthetic problem name", name)
	}
	_, seed, err := parseSynthetic(name)
	return seed, err
}

// parseSynthetic splits random_full_<k>_<d>_<seed> into its dimensions
// and seed.
func parseSynthetic(name string) (Problem, uint64, error) {
	rest := strings.TrimPrefix(name, syntheticPrefix)
	parts := strings.Split(rest, "_")
	if len(parts) != 3 {
		return Problem{}, 0, fmt.Errorf("registry: malformed synthetic name %q, want random_full_<k>_<d>_<seed>", name)
	}
	k, err := strconv.Atoi(parts[0])
	if err != nil || k <= 0 {
		return Problem{}, 0, fmt.Errorf("registry: malformed k in %q: %w", name, err)
	}
	d, err := strconv.Atoi(parts[1])
	if err != nil || d <= 0 {
		return Problem{}, 0, fmt.Errorf("registry: malformed d in %q: %w", name, err)
	}
	seed, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return Problem{}, 0, fmt.Errorf("registry: malformed seed in %q: %w", name, err)
	}
	return Problem{K: k, D: d}, seed, nil
}

// IsSynthetic reports whether name is in the random_full_<k>_<d>_<seed>
// form rather than a name from the static table.
func IsSynthetic(name string) bool {
	return strings.HasPrefix(name, syntheticPrefix)
}
