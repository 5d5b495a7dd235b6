package satsolve

import "math/bits"

// BitVector is a little-endian binary-encoded integer: Bits[0] is the
// least-significant bit. A BitVector with b bits represents a value in
// [0, 2^b), and the encoder always sizes it so the represented domain
// (e.g. 0..N-1 for a room index) fits.
type BitVector []Lit

// BitsFor returns the number of bits needed to represent any value in
// [0, domain).
func BitsFor(domain int) int {
	if domain <= 1 {
		return 1
	}
	return bits.Len(uint(domain - 1))
}

// NewBitVector allocates a fresh BitVector of n bits.
func (b *Builder) NewBitVector(n int) BitVector {
	bv := make(BitVector, n)
	for i := range bv {
		bv[i] = b.NewVar()
	}
	return bv
}

// NewRoomVar allocates a BitVector sized to hold any value in [0, domain)
// and, if domain is not a power of two, forbids the out-of-range high
// values so the variable never represents an invalid room/port index.
func (b *Builder) NewRoomVar(domain int) BitVector {
	bv := b.NewBitVector(BitsFor(domain))
	full := 1 << len(bv)
	for v := domain; v < full; v++ {
		b.AddClause(negateAll(EqLits(bv, v))...)
	}
	return bv
}

// EqLits returns, for each bit of bv, the literal that is true exactly
// when that bit matches value's binary encoding. The conjunction of the
// returned literals is true iff bv == value.
func EqLits(bv BitVector, value int) []Lit {
	lits := make([]Lit, len(bv))
	for i, v := range bv {
		if value&(1<<i) != 0 {
			lits[i] = v
		} else {
			lits[i] = Not(v)
		}
	}
	return lits
}

// negateAll returns the literal-wise negation of lits.
func negateAll(lits []Lit) []Lit {
	out := make([]Lit, len(lits))
	for i, l := range lits {
		out[i] = Not(l)
	}
	return out
}

// ImplyEqualsConst asserts bv == value whenever every literal in ante
// holds.
func (b *Builder) ImplyEqualsConst(ante []Lit, bv BitVector, value int) {
	for _, target := range EqLits(bv, value) {
		b.Implies(ante, target)
	}
}

// ForbidEqualsConst asserts bv != value whenever every literal in ante
// holds (used to rule out an inconsistent case-split branch).
func (b *Builder) ForbidEqualsConst(ante []Lit, bv BitVector, value int) {
	lits := EqLits(bv, value)
	b.Implies(append(append([]Lit(nil), ante...), lits...))
}

// ImplyEqual asserts x == y bit-for-bit whenever every literal in ante
// holds. x and y must have the same width.
func (b *Builder) ImplyEqual(ante []Lit, x, y BitVector) {
	for i := range x {
		b.Implies(append(append([]Lit(nil), ante...), x[i]), y[i])
		b.Implies(append(append([]Lit(nil), ante...), Not(x[i])), Not(y[i]))
	}
}

// LowBitsEqualConst asserts that the low `bits` bits of bv equal value,
// unconditionally. Used for the d=1 shortcut where room-index mod 4 can
// be read directly off the two low bits of a binary room encoding.
func (b *Builder) LowBitsEqualConst(bv BitVector, bitsWide, value int) {
	for i := 0; i < bitsWide; i++ {
		if value&(1<<i) != 0 {
			b.Unit(bv[i])
		} else {
			b.Unit(Not(bv[i]))
		}
	}
}
