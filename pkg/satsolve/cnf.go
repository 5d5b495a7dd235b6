package satsolve

// Lit is a DIMACS literal: a positive value asserts a variable is true,
// a negative value asserts its negation. Variable numbering starts at 1.
type Lit int

// Not returns the negation of l.
func Not(l Lit) Lit { return -l }

// Clause is a disjunction of literals.
type Clause []Lit

// Builder accumulates variables and clauses while a problem is encoded,
// then renders them as a DIMACS CNF document.
type Builder struct {
	nVars   int
	Clauses []Clause
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewVar allocates a fresh Boolean variable and returns its positive
// literal.
func (b *Builder) NewVar() Lit {
	b.nVars++
	return Lit(b.nVars)
}

// NVars reports how many variables have been allocated.
func (b *Builder) NVars() int { return b.nVars }

// AddClause appends a disjunction of literals as a hard constraint.
func (b *Builder) AddClause(lits ...Lit) {
	clause := make(Clause, len(lits))
	copy(clause, lits)
	b.Clauses = append(b.Clauses, clause)
}

// Unit asserts a single literal.
func (b *Builder) Unit(l Lit) {
	b.AddClause(l)
}

// Implies adds the clause (¬ante1 ∨ ¬ante2 ∨ ... ∨ conseq1 ∨ conseq2 ...),
// i.e. "if every literal in ante holds, then at least one literal in
// conseq holds". An empty ante degenerates to an unconditional clause
// over conseq; an empty conseq degenerates to forbidding ante outright.
func (b *Builder) Implies(ante []Lit, conseq ...Lit) {
	clause := make(Clause, 0, len(ante)+len(conseq))
	for _, a := range ante {
		clause = append(clause, Not(a))
	}
	clause = append(clause, conseq...)
	b.Clauses = append(b.Clauses, clause)
}

// Iff adds clauses asserting x and y have the same truth value.
func (b *Builder) Iff(x, y Lit) {
	b.AddClause(Not(x), y)
	b.AddClause(x, Not(y))
}
