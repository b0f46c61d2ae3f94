package types

import "gonum.org/v1/gonum/floats/scalar"

// Process-wide tolerances for approximate equality.
const (
	RTOL = 1e-5
	ATOL = 1e-7
)

// Tolerances carries the relative and absolute tolerances handed to
// consumers that compare floating point results.
type Tolerances struct {
	RTOL float64 `json:"rtol"`
	ATOL float64 `json:"atol"`
}

// DefaultTolerances returns the process-wide RTOL and ATOL.
func DefaultTolerances() Tolerances {
	return Tolerances{RTOL: RTOL, ATOL: ATOL}
}

// AlmostEqual reports whether a and b are equal within the absolute or the
// relative tolerance.
func (t Tolerances) AlmostEqual(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, t.ATOL, t.RTOL)
}
