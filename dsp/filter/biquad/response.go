package biquad

import (
	"math"
	"math/cmplx"
)

// minDenominatorSquared floors |A(e^jw)|² in cascade magnitude evaluation.
const minDenominatorSquared = 1e-20

// Response computes the complex frequency response H(e^jw) of a biquad
// at the given frequency (Hz) and sample rate (Hz).
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := cmplx.Exp(complex(0, -2*w))

	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw + complex(c.B2, 0)*ej2w
	den := complex(1, 0) + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w
	return num / den
}

// MagnitudeSquared returns |H(f)|^2 using a closed-form expression.
//
// This avoids computing complex exponentials.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	num, den := c.magnitudeParts(2 * math.Pi * freqHz / sampleRate)
	return num / den
}

// magnitudeParts returns |B(e^jw)|² and |A(e^jw)|² at angular frequency w.
func (c *Coefficients) magnitudeParts(w float64) (num, den float64) {
	cw := math.Cos(w)
	c2w := math.Cos(2 * w)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num = b0*b0 + b1*b1 + b2*b2 + 2*(b0*b1+b1*b2)*cw + 2*b0*b2*c2w
	den = 1 + a1*a1 + a2*a2 + 2*(a1+a1*a2)*cw + 2*a2*c2w
	return num, den
}

// MagnitudeDB returns 10*log10(|H(f)|^2).
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns the phase response in radians at the given frequency.
// The result is in [-pi, pi], consistent with the standard DSP convention
// H(e^{-jw}).
func (c *Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// CascadeResponse returns the complex response of sections run in series.
func CascadeResponse(sections []Coefficients, freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for i := range sections {
		h *= sections[i].Response(freqHz, sampleRate)
	}
	return h
}

// CascadeMagnitudeSquared returns the product of the sections' |H(f)|².
// Each denominator is floored at 1e-20 and the result is never negative, so
// the value is finite for any finite coefficients.
func CascadeMagnitudeSquared(sections []Coefficients, freqHz, sampleRate float64) float64 {
	w := 2 * math.Pi * freqHz / sampleRate

	mag := 1.0
	for i := range sections {
		num, den := sections[i].magnitudeParts(w)
		mag *= num / math.Max(den, minDenominatorSquared)
	}

	return math.Max(mag, 0)
}

// ImpulseResponse computes n samples of the impulse response of both lanes
// by feeding a unit impulse into left and right. The filter state is saved
// and restored so this method does not modify the filter.
func (s *Stereo) ImpulseResponse(n int) (left, right []float64) {
	if n <= 0 {
		return nil, nil
	}

	saved := s.State()
	s.Reset()

	left = make([]float64, n)
	right = make([]float64, n)

	x := Lanes{1, 1}
	for i := range n {
		y := s.step(x)
		left[i], right[i] = y[0], y[1]
		x = Lanes{}
	}

	s.SetState(saved)
	return left, right
}
