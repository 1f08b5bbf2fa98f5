package kasuari

// Constraint is an equation `expression op 0` with an associated strength.
// Constraints are immutable after construction and compare by identity:
// the solver keys its internal tables on the *Constraint pointer, so the
// same pointer must be used to remove a constraint that was added. Two
// structurally identical constraints built by separate NewConstraint calls
// are distinct to the solver.
type Constraint struct {
	expression Expression
	op         RelationalOperator
	strength   Strength
}

// NewConstraint builds the constraint `e op 0` at the given strength. For
// equations with a non-zero right hand side, subtract it from the left
// hand side first (or use Constrain).
func NewConstraint(e Expression, op RelationalOperator, strength Strength) *Constraint {
	return &Constraint{expression: e, op: op, strength: strength.clip()}
}

// Expr returns the left hand side of the constraint equation.
func (c *Constraint) Expr() Expression { return c.expression }

// Op returns the relational operator governing the constraint.
func (c *Constraint) Op() RelationalOperator { return c.op }

// Strength returns the strength the solver uses for the constraint.
func (c *Constraint) Strength() Strength { return c.strength }
