package biquad

import "math"

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + z1
//	z1 = B1*x + z2 - A1*y
//	z2 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Identity returns the pass-through section {1, 0, 0, 0, 0}.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// IsFinite reports whether all five coefficients are neither NaN nor Inf.
func (c *Coefficients) IsFinite() bool {
	for _, v := range [5]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
