package kasuari

// Strength specifies the precedence the solver imposes when choosing
// which constraints to enforce. The solver tries to enforce all
// constraints, but if that is impossible the lowest-strength constraints
// are the first to be violated.
//
// Strengths are real numbers clamped to [0, Required]. Required marks a
// constraint that cannot be violated under any circumstance; use it
// sparingly, since AddConstraint fails outright when the required set is
// inconsistent. Multiply the named constants to obtain intermediate
// strengths.
type Strength float64

const (
	// Weak is the lowest named strength.
	Weak Strength = 1
	// Medium sits between Weak and Strong.
	Medium Strength = 1e3 * Weak
	// Strong is the highest named fallible strength.
	Strong Strength = 1e3 * Medium
	// Required marks constraints that must hold exactly.
	Required Strength = 1e3*Strong + 1e3*Medium + 1e3*Weak
)

// CreateStrength combines Strong, Medium and Weak contributions, each
// scaled by mul and clamped to [0, 1000] before weighting. The result is
// clamped to the legal range.
func CreateStrength(strong, medium, weak, mul float64) Strength {
	s := Strength(clampUnit(strong*mul))*Strong +
		Strength(clampUnit(medium*mul))*Medium +
		Strength(clampUnit(weak*mul))*Weak
	return s.clip()
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1000 {
		return 1000
	}
	return v
}

// clip clamps the strength to the legal range.
func (s Strength) clip() Strength {
	if s < 0 {
		return 0
	}
	if s > Required {
		return Required
	}
	return s
}

// Add sums two strengths, saturating at both ends of the legal range.
func (s Strength) Add(other Strength) Strength {
	return (s + other).clip()
}

// Sub subtracts a strength, saturating at both ends of the legal range.
func (s Strength) Sub(other Strength) Strength {
	return (s - other).clip()
}

// Mul scales the strength, saturating at both ends of the legal range.
func (s Strength) Mul(mul float64) Strength {
	return (s * Strength(mul)).clip()
}
