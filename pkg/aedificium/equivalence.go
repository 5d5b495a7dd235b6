package aedificium

import "math/rand"

// equivalencePlans is the number of random plans drawn by EquivalenceTest,
// matching the judge's own acceptance bar: 100 plans, each must agree.
const equivalencePlans = 100

// EquivalenceTest draws equivalencePlans random plans and returns the
// plan-string of the first one on which a and b disagree, or ("", false)
// if all plans agree. Plan length is k*6 MOVE tokens (k*18 when charcoal
// is disabled, to compensate for the lost discriminating power), with
// charcoal marks interleaved uniformly at random when withCharcoal is
// true. rnd supplies all randomness so callers can make the test
// reproducible.
func EquivalenceTest(a, b *Aedificium, withCharcoal bool, rnd *rand.Rand) (string, bool) {
	k := a.N()
	length := k * 6
	if !withCharcoal {
		length = k * 18
	}

	for i := 0; i < equivalencePlans; i++ {
		tokens := randomPlan(length, withCharcoal, rnd)
		la := Simulate(tokens, a)
		lb := Simulate(tokens, b)
		if !equalInts(la, lb) {
			return FormatPlan(tokens), true
		}
	}
	return "", false
}

// randomPlan draws a uniformly random plan of the given MOVE-token
// length. When withCharcoal is true, a random CHARCOAL token is
// interleaved after each MOVE with 50% probability.
func randomPlan(length int, withCharcoal bool, rnd *rand.Rand) []Token {
	tokens := make([]Token, 0, 2*length)
	for i := 0; i < length; i++ {
		tokens = append(tokens, Token{Kind: TokenMove, Value: rnd.Intn(Doors)})
		if withCharcoal && rnd.Intn(2) == 0 {
			tokens = append(tokens, Token{Kind: TokenCharcoal, Value: rnd.Intn(Labels)})
		}
	}
	return tokens
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
