package satsolve

// ExactlyK asserts that exactly k of lits are true, using a sequential
// unary counter (Sinz-style): register[i][j] is true iff at least j+1 of
// lits[0..i] are true. This is the encoding used for constraint 7 (every
// base room index must be claimed by exactly d rooms under duplication).
func (b *Builder) ExactlyK(lits []Lit, k int) {
	n := len(lits)
	if k < 0 || k > n {
		// Unsatisfiable by construction; emit a trivially false clause
		// rather than silently accepting a malformed request.
		b.AddClause()
		return
	}
	if n == 0 {
		return
	}
	if k == 0 {
		// No counter needed: every literal must be false.
		for _, l := range lits {
			b.Unit(Not(l))
		}
		return
	}

	// register[i][j], j in [0,k), true iff at least j+1 of lits[0..i] hold.
	reg := make([][]Lit, n)
	for i := range reg {
		reg[i] = make([]Lit, k)
		for j := range reg[i] {
			reg[i][j] = b.NewVar()
		}
	}

	// Base case: i == 0.
	b.Iff(reg[0][0], lits[0])
	for j := 1; j < k; j++ {
		b.Unit(Not(reg[0][j]))
	}

	for i := 1; i < n; i++ {
		// register[i][0] = register[i-1][0] OR lits[i]
		b.AddClause(Not(reg[i-1][0]), reg[i][0])
		b.AddClause(Not(lits[i]), reg[i][0])
		b.AddClause(reg[i-1][0], lits[i], Not(reg[i][0]))

		for j := 1; j < k; j++ {
			// register[i][j] = register[i-1][j] OR (register[i-1][j-1] AND lits[i])
			b.AddClause(Not(reg[i-1][j]), reg[i][j])
			b.AddClause(Not(reg[i-1][j-1]), Not(lits[i]), reg[i][j])
			b.AddClause(reg[i-1][j], Not(reg[i][j]), reg[i-1][j-1])
			b.AddClause(reg[i-1][j], Not(reg[i][j]), lits[i])
		}

		// Forbid the (k+1)th true literal: once register[i-1][k-1] holds,
		// lits[i] must not.
		b.AddClause(Not(reg[i-1][k-1]), Not(lits[i]))
	}

	// Exactly k: the k-th register must hold after all n literals.
	b.Unit(reg[n-1][k-1])
}
