package anneal

import (
	"github.com/dshills/aedificium/pkg/aedificium"
	"github.com/dshills/aedificium/pkg/satsolve"
)

// aCostMismatchWeight and aCostJaccardWeight set the convex combination
// between position-wise mismatch and n-gram dissimilarity in energy;
// they sum to 1.
const (
	aCostMismatchWeight = 0.5
	aCostJaccardWeight  = 0.5
)

// ngramSizes are the n-gram lengths whose Jaccard similarity of hash
// sets contributes to the A-cost.
var ngramSizes = [2]int{3, 5}

// Rolling-hash parameters, fixed so two runs hash identical streams to
// identical values: hashModulus is the Mersenne prime 2^31-1.
const (
	hashPrime   = 131
	hashModulus = 1<<31 - 1
)

// zeroCost is the energy threshold below which a candidate is treated
// as an exact fit; A-cost is a convex combination of ratios rather than
// an integer count, so an epsilon guards against floating-point noise
// around an otherwise-exact zero.
const zeroCost = 1e-9

// energy scores a candidate Aedificium against a batch of observations
// as a convex combination of (a) the position-wise label-mismatch ratio
// and (b) 1 minus the average Jaccard similarity, over n-gram sizes 3
// and 5, of rolling-hash sets built from the observed and simulated
// (port,label) streams. Zero means a perfectly explains every
// expedition.
func energy(a *aedificium.Aedificium, observations []satsolve.Observation) float64 {
	mismatches, total := 0, 0
	jaccardSum := 0.0

	for _, obs := range observations {
		got := aedificium.Simulate(obs.Plan, a)
		for i, want := range obs.Labels {
			total++
			if i >= len(got) || got[i] != want {
				mismatches++
			}
		}

		wantStream := interleave(obs.Plan, obs.Labels)
		gotStream := interleave(obs.Plan, got)
		sum := 0.0
		for _, n := range ngramSizes {
			sum += jaccard(ngramHashes(wantStream, n), ngramHashes(gotStream, n))
		}
		jaccardSum += sum / float64(len(ngramSizes))
	}

	mismatchRatio := 0.0
	if total > 0 {
		mismatchRatio = float64(mismatches) / float64(total)
	}
	avgJaccard := 1.0
	if len(observations) > 0 {
		avgJaccard = jaccardSum / float64(len(observations))
	}

	return aCostMismatchWeight*mismatchRatio + aCostJaccardWeight*(1-avgJaccard)
}

// interleave builds the token stream an n-gram hash walks over: each
// MOVE step contributes its door port followed by the label observed
// immediately after it, so an n-gram captures n consecutive
// (port,label) pairs rather than labels alone.
func interleave(plan []aedificium.Token, labels []int) []int {
	stream := make([]int, 0, 2*len(plan))
	for i, t := range plan {
		if t.Kind != aedificium.TokenMove {
			continue
		}
		stream = append(stream, t.Value)
		if i+1 < len(labels) {
			stream = append(stream, labels[i+1])
		}
	}
	return stream
}

// ngramHashes rolls a fixed-prime polynomial hash over every length-n
// window of stream, returning the set of distinct hash values seen.
// Values are offset by 1 before hashing so a 0 token doesn't collapse
// the leading term of the polynomial.
func ngramHashes(stream []int, n int) map[uint64]bool {
	set := map[uint64]bool{}
	if len(stream) < n {
		return set
	}

	pow := uint64(1)
	for i := 0; i < n-1; i++ {
		pow = (pow * hashPrime) % hashModulus
	}

	var h uint64
	for i := 0; i < n; i++ {
		h = (h*hashPrime + uint64(stream[i]+1)) % hashModulus
	}
	set[h] = true

	for i := n; i < len(stream); i++ {
		drop := (uint64(stream[i-n]+1) * pow) % hashModulus
		h = (h + hashModulus - drop) % hashModulus
		h = (h*hashPrime + uint64(stream[i]+1)) % hashModulus
		set[h] = true
	}
	return set
}

// jaccard returns |a∩b| / |a∪b| over two hash sets, defined as 1 when
// both are empty (no n-grams to compare is vacuously a perfect match).
func jaccard(a, b map[uint64]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	inter := 0
	for h := range a {
		if b[h] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}
