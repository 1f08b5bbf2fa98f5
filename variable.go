package kasuari

import "sync/atomic"

// Variable identifies a value for the constraint solver to compute. Each
// call to NewVariable produces a variable unique within the process;
// copying a Variable produces the same variable. Variables compare and
// hash by id only.
type Variable uint64

var variableCount uint64

// NewVariable produces a new unique variable for use in constraint
// solving.
func NewVariable() Variable {
	return Variable(atomic.AddUint64(&variableCount, 1))
}

// T pairs the variable with a coefficient, forming a term.
func (v Variable) T(coeff float64) Term {
	return Term{Variable: v, Coefficient: coeff}
}

// Expr wraps the variable into a single-term expression with coefficient
// one.
func (v Variable) Expr() Expression {
	return NewExpression(0, v.T(1))
}
