package kasuari

// Term is a variable scaled by a coefficient.
type Term struct {
	Variable    Variable
	Coefficient float64
}

// NewTerm pairs a variable with a coefficient.
func NewTerm(v Variable, coeff float64) Term {
	return Term{Variable: v, Coefficient: coeff}
}

// Neg negates the term's coefficient.
func (t Term) Neg() Term {
	return Term{Variable: t.Variable, Coefficient: -t.Coefficient}
}

// Mul scales the term's coefficient.
func (t Term) Mul(coeff float64) Term {
	return Term{Variable: t.Variable, Coefficient: t.Coefficient * coeff}
}

// Div divides the term's coefficient.
func (t Term) Div(coeff float64) Term {
	return Term{Variable: t.Variable, Coefficient: t.Coefficient / coeff}
}

// Expr wraps the term into a single-term expression.
func (t Term) Expr() Expression {
	return NewExpression(0, t)
}
