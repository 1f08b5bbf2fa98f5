package kasuari

// row is a sparse linear combination of symbols plus a constant. A basic
// row keyed by symbol b in the tableau represents the equation
// `b = constant + sum(cells[s] * s)`. Cells never hold values within
// epsilon of zero; they are elided as they cancel.
type row struct {
	cells    map[symbol]float64
	constant float64
}

func newRow(constant float64) *row {
	return &row{cells: make(map[symbol]float64), constant: constant}
}

func (r *row) clone() *row {
	cells := make(map[symbol]float64, len(r.cells))
	for s, c := range r.cells {
		cells[s] = c
	}
	return &row{cells: cells, constant: r.constant}
}

// add shifts the row's constant and returns the new value.
func (r *row) add(v float64) float64 {
	r.constant += v
	return r.constant
}

// insertSymbol merges coefficient into the cell for s, removing the cell
// if the result cancels to zero.
func (r *row) insertSymbol(s symbol, coefficient float64) {
	if existing, ok := r.cells[s]; ok {
		existing += coefficient
		if nearZero(existing) {
			delete(r.cells, s)
			return
		}
		r.cells[s] = existing
		return
	}
	if !nearZero(coefficient) {
		r.cells[s] = coefficient
	}
}

// insertRow merges coefficient*other into the row. It reports whether the
// row's constant changed.
func (r *row) insertRow(other *row, coefficient float64) bool {
	diff := other.constant * coefficient
	r.constant += diff
	for s, c := range other.cells {
		r.insertSymbol(s, c*coefficient)
	}
	return diff != 0
}

func (r *row) remove(s symbol) {
	delete(r.cells, s)
}

func (r *row) reverseSign() {
	r.constant = -r.constant
	for s, c := range r.cells {
		r.cells[s] = -c
	}
}

// solveForSymbol rewrites the row as `s = ...`, assuming s has a cell.
// The cell for s is removed and the remainder divided by its negated
// coefficient.
func (r *row) solveForSymbol(s symbol) {
	coeff := -1.0 / r.cells[s]
	delete(r.cells, s)
	r.constant *= coeff
	for sym, c := range r.cells {
		r.cells[sym] = c * coeff
	}
}

// solveForSymbols rewrites the row, currently basic for lhs, so that it is
// solved for rhs instead.
func (r *row) solveForSymbols(lhs, rhs symbol) {
	r.insertSymbol(lhs, -1.0)
	r.solveForSymbol(rhs)
}

func (r *row) coefficientFor(s symbol) float64 {
	return r.cells[s]
}

// substitute replaces every occurrence of s with coefficient*other. It
// reports whether the row's constant changed.
func (r *row) substitute(s symbol, other *row) bool {
	coeff, ok := r.cells[s]
	if !ok {
		return false
	}
	delete(r.cells, s)
	return r.insertRow(other, coeff)
}
