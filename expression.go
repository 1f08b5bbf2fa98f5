package kasuari

// Expression is a linear combination of variables plus a constant:
//
//	expression = term_1 + term_2 + ... + term_n + constant
//
// Expressions may mention the same variable more than once; the solver
// sums duplicate terms when the expression is ingested. Expressions are
// value types: the arithmetic methods below return new expressions and
// never alias the receiver's term slice.
type Expression struct {
	Terms    []Term
	Constant float64
}

// NewExpression builds an expression from a constant and a sequence of
// terms.
func NewExpression(constant float64, terms ...Term) Expression {
	return Expression{Terms: terms, Constant: constant}
}

func (e Expression) clone() Expression {
	terms := make([]Term, len(e.Terms))
	copy(terms, e.Terms)
	return Expression{Terms: terms, Constant: e.Constant}
}

// Neg negates the whole expression.
func (e Expression) Neg() Expression {
	out := e.clone()
	out.Constant = -out.Constant
	for i := range out.Terms {
		out.Terms[i].Coefficient = -out.Terms[i].Coefficient
	}
	return out
}

// Mul scales every term and the constant.
func (e Expression) Mul(coeff float64) Expression {
	out := e.clone()
	out.Constant *= coeff
	for i := range out.Terms {
		out.Terms[i].Coefficient *= coeff
	}
	return out
}

// Div divides every term and the constant.
func (e Expression) Div(coeff float64) Expression {
	return e.Mul(1 / coeff)
}

// Add returns the sum of two expressions.
func (e Expression) Add(other Expression) Expression {
	terms := make([]Term, 0, len(e.Terms)+len(other.Terms))
	terms = append(terms, e.Terms...)
	terms = append(terms, other.Terms...)
	return Expression{Terms: terms, Constant: e.Constant + other.Constant}
}

// Sub returns the difference of two expressions.
func (e Expression) Sub(other Expression) Expression {
	return e.Add(other.Neg())
}

// AddTerm appends a term to the expression.
func (e Expression) AddTerm(t Term) Expression {
	terms := make([]Term, 0, len(e.Terms)+1)
	terms = append(terms, e.Terms...)
	terms = append(terms, t)
	return Expression{Terms: terms, Constant: e.Constant}
}

// AddConstant shifts the expression's constant.
func (e Expression) AddConstant(c float64) Expression {
	out := e.clone()
	out.Constant += c
	return out
}
