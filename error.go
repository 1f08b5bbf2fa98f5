package kasuari

import "errors"

var (
	// ErrDuplicateConstraint is returned by AddConstraint when the given
	// constraint has already been added to the solver.
	ErrDuplicateConstraint = errors.New("constraint has already been added to the solver")

	// ErrUnsatisfiableConstraint is returned by AddConstraint when a
	// required constraint cannot be satisfied together with the required
	// constraints already in the solver.
	ErrUnsatisfiableConstraint = errors.New("required constraint is unsatisfiable")

	// ErrUnknownConstraint is returned by RemoveConstraint when the given
	// constraint is not currently in the solver (never added, or already
	// removed).
	ErrUnknownConstraint = errors.New("constraint is not registered with the solver")

	// ErrDuplicateEditVariable is returned by AddEditVariable when the
	// variable is already registered as editable.
	ErrDuplicateEditVariable = errors.New("variable is already registered as an edit variable")

	// ErrBadRequiredStrength is returned by AddEditVariable when the given
	// strength is Required. Edit variables are never required.
	ErrBadRequiredStrength = errors.New("edit variables are not allowed to be required")

	// ErrUnknownEditVariable is returned by SuggestValue and
	// RemoveEditVariable when the variable is not registered as editable.
	ErrUnknownEditVariable = errors.New("variable is not registered as an edit variable")
)

// InternalSolverError reports an algorithm-level invariant violation, such
// as an unbounded objective or a missing pivot candidate. It signals a bug;
// the solver is left in an unspecified state and should be discarded.
type InternalSolverError string

func (e InternalSolverError) Error() string { return "internal solver error: " + string(e) }
