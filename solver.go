package kasuari

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// tag records the auxiliary symbols introduced for a constraint. For
// inequalities the marker is the slack symbol and other is the error
// symbol (invalid when required). For soft equalities marker and other are
// the error pair; for required equalities the marker is a dummy symbol.
type tag struct {
	marker symbol
	other  symbol
}

type editInfo struct {
	tag        tag
	constraint *Constraint
	constant   float64
}

// varData pairs a variable's external symbol with its value as of the
// last FetchChanges drain.
type varData struct {
	sym   symbol
	value float64
}

// Change is a variable whose value moved, paired with its latest value.
type Change struct {
	Variable Variable
	Value    float64
}

// objDelta is a pending objective contribution for an error symbol,
// applied only once an AddConstraint is known to succeed.
type objDelta struct {
	sym   symbol
	coeff float64
}

// Solver is an incremental Cassowary constraint solver. It maintains a
// solved-form simplex tableau under addition and removal of constraints
// and under suggested values on edit variables, doing the minimum work per
// operation.
//
// A Solver is not safe for concurrent use.
type Solver struct {
	rows       map[symbol]*row
	vars       map[Variable]*varData
	cns        map[*Constraint]tag
	edits      map[Variable]*editInfo
	infeasible []symbol

	objective  *row
	artificial *row

	changes            map[Variable]float64
	shouldClearChanges bool

	idTick uint64

	trace *logrus.Logger
}

// NewSolver returns an empty solver.
func NewSolver() *Solver {
	return &Solver{
		rows:      make(map[symbol]*row),
		vars:      make(map[Variable]*varData),
		cns:       make(map[*Constraint]tag),
		edits:     make(map[Variable]*editInfo),
		objective: newRow(0),
		changes:   make(map[Variable]float64),
	}
}

// SetTraceLogger installs a logger that receives operation- and
// pivot-level diagnostics at trace level. Pass nil to disable.
func (s *Solver) SetTraceLogger(l *logrus.Logger) {
	s.trace = l
}

func (s *Solver) tracef(msg string, fields logrus.Fields) {
	if s.trace == nil {
		return
	}
	s.trace.WithFields(fields).Trace(msg)
}

// AddConstraint adds a constraint to the solver. It fails with
// ErrDuplicateConstraint if the same constraint is already present and
// with ErrUnsatisfiableConstraint if the constraint is required and
// inconsistent with the required constraints already added. On failure the
// solver's solution is unchanged.
func (s *Solver) AddConstraint(c *Constraint) error {
	if _, ok := s.cns[c]; ok {
		return ErrDuplicateConstraint
	}

	// Build the simplex row for the constraint, expressed only in terms of
	// parametric symbols. Objective contributions for the error symbols
	// are staged and committed after the success-gating steps below.
	r, t, deltas := s.createRow(c)

	subject := s.chooseSubject(r, t)

	// A row with only dummy cells means the constraint is redundant with
	// the current required set; it is acceptable only if its constant
	// cancelled out.
	if !subject.valid() && allDummies(r) {
		if !nearZero(r.constant) {
			return ErrUnsatisfiableConstraint
		}
		subject = t.marker
	}

	if !subject.valid() {
		saved := s.snapshot()
		ok, err := s.addWithArtificialVariable(r)
		if err != nil {
			s.restore(saved)
			return err
		}
		if !ok {
			s.restore(saved)
			return ErrUnsatisfiableConstraint
		}
	} else {
		r.solveForSymbol(subject)
		s.substitute(subject, r)
		s.rows[subject] = r
	}

	for _, d := range deltas {
		if er, ok := s.rows[d.sym]; ok {
			s.objective.insertRow(er, d.coeff)
		} else {
			s.objective.insertSymbol(d.sym, d.coeff)
		}
	}
	s.cns[c] = t

	s.tracef("constraint added", logrus.Fields{
		"op":       c.op.String(),
		"strength": float64(c.strength),
		"terms":    len(c.expression.Terms),
	})

	// The tableau is feasible but the objective may no longer be optimal.
	if err := s.optimize(s.objective); err != nil {
		return err
	}
	s.publishChanges()
	return nil
}

// AddConstraints adds each constraint in order, stopping at the first
// failure. Constraints added before the failure are retained.
func (s *Solver) AddConstraints(constraints ...*Constraint) error {
	for _, c := range constraints {
		if err := s.AddConstraint(c); err != nil {
			return err
		}
	}
	return nil
}

// HasConstraint reports whether the constraint is in the solver.
func (s *Solver) HasConstraint(c *Constraint) bool {
	_, ok := s.cns[c]
	return ok
}

// RemoveConstraint removes a constraint previously added to the solver.
// It fails with ErrUnknownConstraint if the constraint is not present.
func (s *Solver) RemoveConstraint(c *Constraint) error {
	t, ok := s.cns[c]
	if !ok {
		return ErrUnknownConstraint
	}
	delete(s.cns, c)

	s.removeConstraintEffects(c, t)

	if _, ok := s.rows[t.marker]; ok {
		delete(s.rows, t.marker)
	} else if leaving, lrow := s.markerLeavingRow(t.marker); leaving.valid() {
		delete(s.rows, leaving)
		lrow.solveForSymbols(leaving, t.marker)
		s.substitute(t.marker, lrow)
	}
	// If the marker appears in no row it was already free; there is
	// nothing to pivot out.

	s.tracef("constraint removed", logrus.Fields{
		"op":       c.op.String(),
		"strength": float64(c.strength),
	})

	if err := s.optimize(s.objective); err != nil {
		return err
	}
	s.publishChanges()
	return nil
}

// removeConstraintEffects backs the constraint's error symbols out of the
// objective. A basic error symbol contributes through its row; a
// parametric one contributes directly.
func (s *Solver) removeConstraintEffects(c *Constraint, t tag) {
	if t.marker.kind == errorSymbol {
		s.removeMarkerEffects(t.marker, c.strength)
	}
	if t.other.kind == errorSymbol {
		s.removeMarkerEffects(t.other, c.strength)
	}
}

func (s *Solver) removeMarkerEffects(marker symbol, strength Strength) {
	if r, ok := s.rows[marker]; ok {
		s.objective.insertRow(r, -float64(strength))
	} else {
		s.objective.insertSymbol(marker, -float64(strength))
	}
}

// AddEditVariable registers v as an edit variable at the given strength,
// installing the soft equality `v == 0` that SuggestValue steers. Edits
// must be fallible: a Required strength fails with ErrBadRequiredStrength.
func (s *Solver) AddEditVariable(v Variable, strength Strength) error {
	if _, ok := s.edits[v]; ok {
		return ErrDuplicateEditVariable
	}
	strength = strength.clip()
	if strength == Required {
		return ErrBadRequiredStrength
	}
	cn := NewConstraint(NewExpression(0, v.T(1)), Equal, strength)
	if err := s.AddConstraint(cn); err != nil {
		// Adding a fresh fallible equality cannot conflict.
		return InternalSolverError("edit constraint could not be added")
	}
	s.edits[v] = &editInfo{tag: s.cns[cn], constraint: cn, constant: 0}
	return nil
}

// RemoveEditVariable deregisters an edit variable and removes its edit
// constraint.
func (s *Solver) RemoveEditVariable(v Variable) error {
	info, ok := s.edits[v]
	if !ok {
		return ErrUnknownEditVariable
	}
	if err := s.RemoveConstraint(info.constraint); err != nil {
		return InternalSolverError("edit constraint not in solver")
	}
	delete(s.edits, v)
	return nil
}

// HasEditVariable reports whether v is registered as an edit variable.
func (s *Solver) HasEditVariable(v Variable) bool {
	_, ok := s.edits[v]
	return ok
}

// SuggestValue pushes an edit variable toward the given value. The
// suggestion holds with the strength given to AddEditVariable, so stronger
// constraints may pull the solution elsewhere.
func (s *Solver) SuggestValue(v Variable, value float64) error {
	info, ok := s.edits[v]
	if !ok {
		return ErrUnknownEditVariable
	}
	delta := value - info.constant
	info.constant = value

	s.tracef("value suggested", logrus.Fields{
		"variable": uint64(v),
		"value":    value,
		"delta":    delta,
	})

	// Adjust the constants of the rows the edit's error symbols take part
	// in. If either error symbol is basic only its own row moves;
	// otherwise the delta propagates down the marker's column.
	if r, ok := s.rows[info.tag.marker]; ok {
		if r.add(-delta) < 0 {
			s.infeasible = append(s.infeasible, info.tag.marker)
		}
	} else if r, ok := s.rows[info.tag.other]; ok {
		if r.add(delta) < 0 {
			s.infeasible = append(s.infeasible, info.tag.other)
		}
	} else {
		for sym, r := range s.rows {
			coeff := r.coefficientFor(info.tag.marker)
			if coeff == 0 {
				continue
			}
			r.constant += delta * coeff
			if sym.kind != externalSymbol && r.constant < 0 {
				s.infeasible = append(s.infeasible, sym)
			}
		}
	}

	if err := s.dualOptimize(); err != nil {
		return err
	}
	s.publishChanges()
	return nil
}

// Value returns the current value of a variable, or 0 if the variable is
// unknown to the solver.
func (s *Solver) Value(v Variable) float64 {
	data, ok := s.vars[v]
	if !ok {
		return 0
	}
	if r, ok := s.rows[data.sym]; ok {
		return r.constant
	}
	return 0
}

// FetchChanges drains the set of variables whose values moved since the
// previous drain. Each variable appears at most once, carrying its latest
// value, in variable order. A second call with no intervening mutation
// returns nothing, and a value that moved away and back between drains is
// not reported.
func (s *Solver) FetchChanges() []Change {
	if s.shouldClearChanges {
		s.clearChanges()
	}
	out := make([]Change, 0, len(s.changes))
	for v := range s.changes {
		data, ok := s.vars[v]
		if !ok {
			continue
		}
		value := 0.0
		if r, ok := s.rows[data.sym]; ok {
			value = r.constant
		}
		if value != data.value {
			data.value = value
			out = append(out, Change{Variable: v, Value: value})
		}
	}
	s.shouldClearChanges = true
	sort.Slice(out, func(i, j int) bool { return out[i].Variable < out[j].Variable })
	return out
}

// Reset restores the solver to the state it was in when constructed. A
// trace logger installed with SetTraceLogger is kept.
func (s *Solver) Reset() {
	s.rows = make(map[symbol]*row)
	s.vars = make(map[Variable]*varData)
	s.cns = make(map[*Constraint]tag)
	s.edits = make(map[Variable]*editInfo)
	s.infeasible = nil
	s.objective = newRow(0)
	s.artificial = nil
	s.changes = make(map[Variable]float64)
	s.shouldClearChanges = false
	s.idTick = 0
}

func (s *Solver) clearChanges() {
	for v := range s.changes {
		delete(s.changes, v)
	}
	s.shouldClearChanges = false
}

func (s *Solver) markChange(v Variable, value float64) {
	if s.shouldClearChanges {
		s.clearChanges()
	}
	s.changes[v] = value
}

// publishChanges queues every external variable whose value differs from
// its last-drained cache. FetchChanges re-verifies the queued candidates,
// so a variable that later moves back to its drained value drops out.
func (s *Solver) publishChanges() {
	for v, data := range s.vars {
		value := 0.0
		if r, ok := s.rows[data.sym]; ok {
			value = r.constant
		}
		if value != data.value {
			s.markChange(v, value)
		}
	}
}

func (s *Solver) nextSymbol(kind symbolKind) symbol {
	s.idTick++
	return symbol{id: s.idTick, kind: kind}
}

// varSymbol returns the external symbol standing in for v, allocating one
// on first sight.
func (s *Solver) varSymbol(v Variable) symbol {
	if data, ok := s.vars[v]; ok {
		return data.sym
	}
	sym := s.nextSymbol(externalSymbol)
	s.vars[v] = &varData{sym: sym}
	return sym
}

// createRow converts a constraint into an augmented simplex row together
// with its marker tag and the staged objective contributions of its error
// symbols.
func (s *Solver) createRow(c *Constraint) (*row, tag, []objDelta) {
	expr := c.expression
	r := newRow(expr.Constant)

	// Substitute basic external symbols by their rows so the result is
	// expressed purely in parametric symbols.
	for _, term := range expr.Terms {
		if nearZero(term.Coefficient) {
			continue
		}
		sym := s.varSymbol(term.Variable)
		if other, ok := s.rows[sym]; ok {
			r.insertRow(other, term.Coefficient)
		} else {
			r.insertSymbol(sym, term.Coefficient)
		}
	}

	t := tag{marker: invalid, other: invalid}
	var deltas []objDelta

	switch c.op {
	case LessOrEqual, GreaterOrEqual:
		coeff := 1.0
		if c.op == GreaterOrEqual {
			coeff = -1.0
		}
		t.marker = s.nextSymbol(slackSymbol)
		r.insertSymbol(t.marker, coeff)
		if c.strength < Required {
			t.other = s.nextSymbol(errorSymbol)
			r.insertSymbol(t.other, -coeff)
			deltas = append(deltas, objDelta{sym: t.other, coeff: float64(c.strength)})
		}
	case Equal:
		if c.strength < Required {
			errPlus := s.nextSymbol(errorSymbol)
			errMinus := s.nextSymbol(errorSymbol)
			t.marker = errPlus
			t.other = errMinus
			r.insertSymbol(errPlus, -1.0)
			r.insertSymbol(errMinus, 1.0)
			deltas = append(deltas,
				objDelta{sym: errPlus, coeff: float64(c.strength)},
				objDelta{sym: errMinus, coeff: float64(c.strength)})
		} else {
			t.marker = s.nextSymbol(dummySymbol)
			r.insertSymbol(t.marker, 1.0)
		}
	}

	// The solver requires non-negative row constants.
	if r.constant < 0 {
		r.reverseSign()
	}
	return r, t, deltas
}

// chooseSubject picks the symbol the new row is solved for. It must either
// be an external symbol, or a restricted marker symbol of the row carrying
// a negative coefficient.
func (s *Solver) chooseSubject(r *row, t tag) symbol {
	best := invalid
	for sym := range r.cells {
		if sym.kind != externalSymbol {
			continue
		}
		if !best.valid() || sym.less(best) {
			best = sym
		}
	}
	if best.valid() {
		return best
	}
	if t.marker.restricted() && r.coefficientFor(t.marker) < 0 {
		return t.marker
	}
	if t.other.restricted() && r.coefficientFor(t.other) < 0 {
		return t.other
	}
	return invalid
}

func allDummies(r *row) bool {
	for sym := range r.cells {
		if sym.kind != dummySymbol {
			return false
		}
	}
	return true
}

// addWithArtificialVariable asserts the row via a temporary artificial
// basic symbol and minimizes it. It reports whether the row could be
// driven to zero, i.e. whether the constraint is satisfiable.
func (s *Solver) addWithArtificialVariable(r *row) (bool, error) {
	art := s.nextSymbol(slackSymbol)
	s.rows[art] = r.clone()
	s.artificial = r.clone()

	err := s.optimize(s.artificial)
	if err != nil {
		s.artificial = nil
		return false, err
	}
	success := nearZero(s.artificial.constant)
	s.artificial = nil

	if artRow, ok := s.rows[art]; ok {
		delete(s.rows, art)
		if len(artRow.cells) == 0 {
			return nearZero(artRow.constant), nil
		}
		entering := anyPivotableSymbol(artRow)
		if !entering.valid() {
			return false, nil
		}
		artRow.solveForSymbols(art, entering)
		s.substitute(entering, artRow)
		s.rows[entering] = artRow
	}

	// Strip the artificial symbol out of the tableau.
	for _, rr := range s.rows {
		rr.remove(art)
	}
	s.objective.remove(art)
	return success, nil
}

// anyPivotableSymbol returns the lowest restricted symbol in the row, or
// the invalid sentinel if none exists.
func anyPivotableSymbol(r *row) symbol {
	best := invalid
	for sym := range r.cells {
		if !sym.restricted() {
			continue
		}
		if !best.valid() || sym.less(best) {
			best = sym
		}
	}
	return best
}

// substitute replaces sym with the given row throughout the tableau, the
// objective, and the artificial row if one is live. Rows whose constants
// go negative are queued for dual optimization.
func (s *Solver) substitute(sym symbol, r *row) {
	for bsym, brow := range s.rows {
		brow.substitute(sym, r)
		if bsym.kind != externalSymbol && brow.constant < 0 {
			s.infeasible = append(s.infeasible, bsym)
		}
	}
	s.objective.substitute(sym, r)
	if s.artificial != nil {
		s.artificial.substitute(sym, r)
	}
}

// optimize runs the primal simplex on the given objective until no
// parametric symbol can decrease it further.
func (s *Solver) optimize(objective *row) error {
	for {
		entering := enteringSymbol(objective)
		if !entering.valid() {
			return nil
		}
		leaving, lrow := s.leavingRow(entering)
		if !leaving.valid() {
			return InternalSolverError("objective is unbounded")
		}
		delete(s.rows, leaving)
		lrow.solveForSymbols(leaving, entering)
		s.substitute(entering, lrow)
		s.rows[entering] = lrow

		s.tracef("pivot", logrus.Fields{
			"entering": entering.kind.String(),
			"leaving":  leaving.kind.String(),
		})
	}
}

// dualOptimize restores feasibility after row constants have gone
// negative, pivoting on the queued infeasible rows.
func (s *Solver) dualOptimize() error {
	for len(s.infeasible) > 0 {
		leaving := s.infeasible[len(s.infeasible)-1]
		s.infeasible = s.infeasible[:len(s.infeasible)-1]

		r, ok := s.rows[leaving]
		if !ok || r.constant >= 0 {
			continue
		}
		entering := s.dualEnteringSymbol(r)
		if !entering.valid() {
			return InternalSolverError("dual optimize found no entering symbol")
		}
		delete(s.rows, leaving)
		r.solveForSymbols(leaving, entering)
		s.substitute(entering, r)
		s.rows[entering] = r
	}
	return nil
}

// enteringSymbol picks the lowest non-dummy symbol with a negative
// objective coefficient, or the invalid sentinel at optimality.
func enteringSymbol(objective *row) symbol {
	best := invalid
	for sym, coeff := range objective.cells {
		if sym.kind == dummySymbol || coeff >= 0 {
			continue
		}
		if !best.valid() || sym.less(best) {
			best = sym
		}
	}
	return best
}

// leavingRow picks the basic row bounding the entering symbol most
// tightly. External rows never leave the basis here.
func (s *Solver) leavingRow(entering symbol) (symbol, *row) {
	ratio := math.MaxFloat64
	best := invalid
	var bestRow *row
	for sym, r := range s.rows {
		if sym.kind == externalSymbol {
			continue
		}
		coeff := r.coefficientFor(entering)
		if coeff >= 0 {
			continue
		}
		rt := -r.constant / coeff
		if rt < ratio || (rt == ratio && sym.less(best)) {
			ratio = rt
			best = sym
			bestRow = r
		}
	}
	return best, bestRow
}

// dualEnteringSymbol picks the non-dummy symbol with a positive
// coefficient minimizing the objective-to-row coefficient ratio.
func (s *Solver) dualEnteringSymbol(r *row) symbol {
	ratio := math.MaxFloat64
	best := invalid
	for sym, coeff := range r.cells {
		if coeff <= 0 || sym.kind == dummySymbol {
			continue
		}
		rt := s.objective.coefficientFor(sym) / coeff
		if rt < ratio || (rt == ratio && sym.less(best)) {
			ratio = rt
			best = sym
		}
	}
	return best
}

// markerLeavingRow picks the row used to pivot a parametric marker out of
// the tableau. Restricted rows with a negative coefficient are preferred,
// then restricted rows by smallest ratio, then any external row holding
// the marker.
func (s *Solver) markerLeavingRow(marker symbol) (symbol, *row) {
	r1 := math.MaxFloat64
	r2 := math.MaxFloat64
	first, second, third := invalid, invalid, invalid

	for sym, r := range s.rows {
		coeff := r.coefficientFor(marker)
		if coeff == 0 {
			continue
		}
		switch {
		case sym.kind == externalSymbol:
			if !third.valid() || sym.less(third) {
				third = sym
			}
		case coeff < 0:
			rt := -r.constant / coeff
			if rt < r1 || (rt == r1 && sym.less(first)) {
				r1 = rt
				first = sym
			}
		default:
			rt := r.constant / coeff
			if rt < r2 || (rt == r2 && sym.less(second)) {
				r2 = rt
				second = sym
			}
		}
	}

	leaving := third
	if first.valid() {
		leaving = first
	} else if second.valid() {
		leaving = second
	}
	if !leaving.valid() {
		return invalid, nil
	}
	return leaving, s.rows[leaving]
}

// solverState is a copy of the destructively-updated tableau parts, taken
// before the artificial-variable section so a failed insertion leaves the
// solver exactly as it was.
type solverState struct {
	rows       map[symbol]*row
	objective  *row
	infeasible []symbol
}

func (s *Solver) snapshot() solverState {
	rows := make(map[symbol]*row, len(s.rows))
	for sym, r := range s.rows {
		rows[sym] = r.clone()
	}
	infeasible := make([]symbol, len(s.infeasible))
	copy(infeasible, s.infeasible)
	return solverState{rows: rows, objective: s.objective.clone(), infeasible: infeasible}
}

func (s *Solver) restore(state solverState) {
	s.rows = state.rows
	s.objective = state.objective
	s.infeasible = state.infeasible
	s.artificial = nil
}
