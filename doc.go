// Package kasuari implements the Cassowary constraint solving algorithm,
// based upon the work by G.J. Badros et al. in 2001. The algorithm is
// designed primarily for constraining elements in user interfaces.
// Constraints are linear combinations of the problem variables. The
// notable features of Cassowary that make it ideal for user interfaces are
// that it is incremental (constraints can be added and removed at runtime
// with the minimum work needed to update the result) and that constraints
// can be violated if necessary, with the order in which they are violated
// specified by setting a strength for each constraint. This allows the
// solution to gracefully degrade, which is useful when a user interface
// needs to compromise on its constraints in order to still display
// something.
//
// # Building constraints
//
// A constraint relates two linear expressions at a strength. Expressions
// are built from variables with the Term and Expression helpers:
//
//	width := kasuari.NewVariable()
//	left := kasuari.NewVariable()
//	right := kasuari.NewVariable()
//
//	// right - left == width, required
//	c := kasuari.Constrain(
//		right.Expr().Sub(left.Expr()),
//		kasuari.EQ(kasuari.Required),
//		width.Expr(),
//	)
//
// # A simple example
//
// Imagine a layout of two boxes laid out horizontally. For small window
// widths the boxes should compress to fit, but given enough space they
// should display at their preferred widths:
//
//	solver := kasuari.NewSolver()
//	err := solver.AddConstraints(
//		// positive window width
//		kasuari.Constrain(window.Expr(), kasuari.GE(kasuari.Required), kasuari.NewExpression(0)),
//		// left align the first box, right align the second
//		kasuari.Constrain(box1Left.Expr(), kasuari.EQ(kasuari.Required), kasuari.NewExpression(0)),
//		kasuari.Constrain(box2Right.Expr(), kasuari.EQ(kasuari.Required), window.Expr()),
//		// no overlap, positive widths
//		kasuari.Constrain(box2Left.Expr(), kasuari.GE(kasuari.Required), box1Right.Expr()),
//		kasuari.Constrain(box1Left.Expr(), kasuari.LE(kasuari.Required), box1Right.Expr()),
//		kasuari.Constrain(box2Left.Expr(), kasuari.LE(kasuari.Required), box2Right.Expr()),
//		// preferred widths
//		kasuari.Constrain(box1Right.Expr().Sub(box1Left.Expr()), kasuari.EQ(kasuari.Weak), kasuari.NewExpression(50)),
//		kasuari.Constrain(box2Right.Expr().Sub(box2Left.Expr()), kasuari.EQ(kasuari.Weak), kasuari.NewExpression(100)),
//	)
//
// The window width is free to take any positive value, so constrain it
// through an edit variable, which is the efficient way to repeatedly
// change a value from outside the solver:
//
//	solver.AddEditVariable(window, kasuari.Strong)
//	solver.SuggestValue(window, 300)
//
// FetchChanges then reports the variables whose values moved. Variables
// start at zero, so values that never moved from zero are not reported:
//
//	for _, change := range solver.FetchChanges() {
//		fmt.Println(change.Variable, change.Value)
//	}
//
// When the window is too narrow for both preferred widths the solver
// violates the weakest constraints, picking among equally weak ones by
// internal order. Add a stronger constraint (say, a ratio between the box
// widths) to control which compromise is made.
//
// This package is a rather low level library: it has no inherent
// knowledge of user interfaces, directions or boxes, and is best wrapped
// by a higher level layout API.
package kasuari
