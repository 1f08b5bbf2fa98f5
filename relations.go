package kasuari

// RelationalOperator is the relation a constraint imposes between its
// expression and zero.
type RelationalOperator uint8

const (
	// LessOrEqual is `<=`.
	LessOrEqual RelationalOperator = iota
	// Equal is `==`.
	Equal
	// GreaterOrEqual is `>=`.
	GreaterOrEqual
)

var operatorTable = [...]string{
	LessOrEqual:    "<=",
	Equal:          "==",
	GreaterOrEqual: ">=",
}

func (op RelationalOperator) String() string { return operatorTable[op] }

// WeightedRelation is a relational operator paired with a strength. It is
// the middle piece of the constraint-building grammar:
//
//	kasuari.Constrain(lhs, kasuari.GE(kasuari.Required), rhs)
type WeightedRelation struct {
	op       RelationalOperator
	strength Strength
}

// EQ relates two expressions by equality at the given strength.
func EQ(s Strength) WeightedRelation {
	return WeightedRelation{op: Equal, strength: s}
}

// LE relates two expressions by `<=` at the given strength.
func LE(s Strength) WeightedRelation {
	return WeightedRelation{op: LessOrEqual, strength: s}
}

// GE relates two expressions by `>=` at the given strength.
func GE(s Strength) WeightedRelation {
	return WeightedRelation{op: GreaterOrEqual, strength: s}
}

// Constrain builds the constraint `lhs op rhs` by folding the right hand
// side into the left: `(lhs - rhs) op 0`.
func Constrain(lhs Expression, rel WeightedRelation, rhs Expression) *Constraint {
	return NewConstraint(lhs.Sub(rhs), rel.op, rel.strength)
}
