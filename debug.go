package kasuari

import "github.com/davecgh/go-spew/spew"

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	SpewKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// DumpState renders the solver internals for debugging constraint systems
// that settle on unexpected values: every basic row, the objective, the
// infeasible queue, the variable registry, and the number of constraints
// and edit variables.
func (s *Solver) DumpState() string {
	snapshot := struct {
		Rows        map[symbol]*row
		Objective   *row
		Infeasible  []symbol
		Vars        map[Variable]*varData
		Constraints int
		Edits       int
		IDTick      uint64
	}{
		Rows:        s.rows,
		Objective:   s.objective,
		Infeasible:  s.infeasible,
		Vars:        s.vars,
		Constraints: len(s.cns),
		Edits:       len(s.edits),
		IDTick:      s.idTick,
	}
	return dumpConfig.Sdump(snapshot)
}
