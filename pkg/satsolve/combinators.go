package satsolve

// ConjVar returns a fresh literal that is true iff every literal in
// lits is true (a Tseitin-encoded AND gate).
func (b *Builder) ConjVar(lits []Lit) Lit {
	v := b.NewVar()
	for _, l := range lits {
		b.AddClause(Not(v), l)
	}
	clause := make(Clause, 0, len(lits)+1)
	for _, l := range lits {
		clause = append(clause, Not(l))
	}
	clause = append(clause, v)
	b.Clauses = append(b.Clauses, clause)
	return v
}

// bitEqVar returns a fresh literal true iff x and y agree.
func (b *Builder) bitEqVar(x, y Lit) Lit {
	v := b.NewVar()
	b.AddClause(Not(v), Not(x), y)
	b.AddClause(Not(v), x, Not(y))
	b.AddClause(v, x, y)
	b.AddClause(v, Not(x), Not(y))
	return v
}

// EqVar returns a fresh literal that is true iff BitVectors x and y
// represent the same value. x and y must have equal width.
func (b *Builder) EqVar(x, y BitVector) Lit {
	bitEqs := make([]Lit, len(x))
	for i := range x {
		bitEqs[i] = b.bitEqVar(x[i], y[i])
	}
	return b.ConjVar(bitEqs)
}
