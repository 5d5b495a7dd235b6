package aedificium

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePlan parses a route-plan string over the alphabet {0..5} plus
// bracketed charcoal marks "[0]".."[3]" into an ordered token list.
// Parsing is unambiguous: a digit outside brackets is MOVE(digit), a
// bracketed digit is CHARCOAL(digit).
func ParsePlan(plan string) ([]Token, error) {
	tokens := make([]Token, 0, len(plan))
	i := 0
	for i < len(plan) {
		switch c := plan[i]; {
		case c == '[':
			end := strings.IndexByte(plan[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("aedificium: unterminated charcoal mark at offset %d", i)
			}
			end += i
			inner := plan[i+1 : end]
			v, err := strconv.Atoi(inner)
			if err != nil || v < 0 || v >= Labels {
				return nil, fmt.Errorf("aedificium: invalid charcoal value %q at offset %d", inner, i)
			}
			tokens = append(tokens, Token{Kind: TokenCharcoal, Value: v})
			i = end + 1
		case c >= '0' && c <= '9':
			v := int(c - '0')
			if v >= Doors {
				return nil, fmt.Errorf("aedificium: move token %d out of door range at offset %d", v, i)
			}
			tokens = append(tokens, Token{Kind: TokenMove, Value: v})
			i++
		default:
			return nil, fmt.Errorf("aedificium: unexpected character %q at offset %d", c, i)
		}
	}
	return tokens, nil
}

// FormatPlan renders a token list back into plan-string form.
func FormatPlan(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.String())
	}
	return sb.String()
}

// MoveCount returns the number of MOVE tokens in a parsed plan, the
// quantity the judge protocol bounds to 6*N per plan.
func MoveCount(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		if t.Kind == TokenMove {
			n++
		}
	}
	return n
}

// Simulate deterministically executes a parsed plan against a, returning
// one label per token boundary: the label of the starting room, then one
// more label after each token is applied. Charcoal edits are scoped to
// this call and never mutate a.Labels. Moving through a missing door is
// impossible by construction (step is total): any Aedificium built for
// simulation must leave no door undefined.
func Simulate(tokens []Token, a *Aedificium) []int {
	current := make([]int, a.N())
	copy(current, a.Labels)

	room := a.Start
	out := make([]int, 0, len(tokens)+1)
	out = append(out, current[room])

	for _, t := range tokens {
		switch t.Kind {
		case TokenMove:
			dst := a.Step(Door{Room: room, Port: t.Value})
			room = dst.Room
		case TokenCharcoal:
			current[room] = t.Value
		}
		out = append(out, current[room])
	}
	return out
}
