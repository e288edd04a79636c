package design

import (
	"math"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

const (
	// frequencyEpsilon keeps the design frequency strictly inside (0, fs/2).
	frequencyEpsilon = 1e-9

	// minQ floors Q and shelf slope before they are used as divisors.
	minQ = 1e-9

	proportionalMinQ = 0.5
	proportionalMaxQ = 3.0

	// proportionalGainSpan is the |gain| in dB at which the
	// proportional-Q curve reaches its maximum.
	proportionalGainSpan = 12.0
)

// Parametric designs one normalized parametric-EQ section using the RBJ
// cookbook formulas.
//
// qControl is the quality factor for Peaking and the shelf slope S for the
// shelves. mode only affects Peaking.
//
// Parametric never fails. A non-positive or non-finite sample rate or
// frequency, or a non-finite gain or qControl, yields the identity section.
// Every other input is clamped into the numerically safe region, so the
// result is always finite.
func Parametric(sampleRate, freq, gainDB, qControl float64, mode QMode, typ FilterType) biquad.Coefficients {
	if sampleRate <= 0 || freq <= 0 || !allFinite(sampleRate, freq, gainDB, qControl) {
		return biquad.Identity()
	}

	freq = clampFrequency(freq, sampleRate)

	a := math.Pow(10, gainDB/40)
	sqrtA := math.Sqrt(a)

	w0 := 2 * math.Pi * freq / sampleRate
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)

	q := qControl
	if typ == Peaking && mode == ProportionalQ {
		q = EffectiveQ(gainDB, qControl)
	}
	q = math.Max(q, minQ)

	var b0, b1, b2, a0, a1, a2 float64

	switch typ {
	case LowShelf:
		alpha := shelfAlpha(a, qControl, sinW0)
		ap1, am1 := a+1, a-1
		twoSqrtAAlpha := 2 * sqrtA * alpha

		b0 = a * (ap1 - am1*cosW0 + twoSqrtAAlpha)
		b1 = 2 * a * (am1 - ap1*cosW0)
		b2 = a * (ap1 - am1*cosW0 - twoSqrtAAlpha)
		a0 = ap1 + am1*cosW0 + twoSqrtAAlpha
		a1 = -2 * (am1 + ap1*cosW0)
		a2 = ap1 + am1*cosW0 - twoSqrtAAlpha

	case HighShelf:
		alpha := shelfAlpha(a, qControl, sinW0)
		ap1, am1 := a+1, a-1
		twoSqrtAAlpha := 2 * sqrtA * alpha

		b0 = a * (ap1 + am1*cosW0 + twoSqrtAAlpha)
		b1 = -2 * a * (am1 + ap1*cosW0)
		b2 = a * (ap1 + am1*cosW0 - twoSqrtAAlpha)
		a0 = ap1 - am1*cosW0 + twoSqrtAAlpha
		a1 = 2 * (am1 - ap1*cosW0)
		a2 = ap1 - am1*cosW0 - twoSqrtAAlpha

	default:
		alpha := sinW0 / (2 * q)

		// b2 = 2-b0 and a2 = 2-a0 hold before normalization only.
		b0 = 1 + alpha*a
		b2 = 2 - b0
		a0 = 1 + alpha/a
		a2 = 2 - a0
		b1 = -2 * cosW0
		a1 = b1
	}

	invA0 := 1 / a0

	return biquad.Coefficients{
		B0: b0 * invA0,
		B1: b1 * invA0,
		B2: b2 * invA0,
		A1: a1 * invA0,
		A2: a2 * invA0,
	}
}

// EffectiveQ returns the effective peaking Q for the proportional mode:
// 0.5 at 0 dB rising linearly to 3.0 at |gain| >= 12 dB, scaled by qControl.
func EffectiveQ(gainDB, qControl float64) float64 {
	gainFactor := math.Min(math.Abs(gainDB)/proportionalGainSpan, 1)
	return (proportionalMinQ + gainFactor*(proportionalMaxQ-proportionalMinQ)) * qControl
}

// ShelfSlopeLimit returns the largest shelf slope S that keeps the RBJ shelf
// radicand (A + 1/A)(1/S - 1) + 2 non-negative at gainDB. ok is false at
// 0 dB gain, where no finite bound exists.
func ShelfSlopeLimit(gainDB float64) (sMax float64, ok bool) {
	a := math.Pow(10, gainDB/40)
	return shelfSlopeLimit(a + 1/a)
}

func shelfSlopeLimit(k float64) (float64, bool) {
	denom := k - 2
	if denom <= 0 {
		return 0, false
	}
	return k / denom, true
}

// shelfAlpha computes the RBJ shelf alpha from slope s. s is first clamped to
// the slope limit, then the radicand itself is clamped at zero to absorb
// rounding and the k <= 2 case.
func shelfAlpha(a, s, sinW0 float64) float64 {
	s = math.Max(s, minQ)

	k := a + 1/a
	if sMax, ok := shelfSlopeLimit(k); ok {
		s = math.Min(s, sMax)
	}

	radicand := k*(1/s-1) + 2
	return sinW0 / 2 * math.Sqrt(math.Max(radicand, 0))
}

// clampFrequency pulls freq into [eps, fs/2 - eps]. Sample rates too small
// to hold that interval use the band center fs/4.
func clampFrequency(freq, sampleRate float64) float64 {
	hi := sampleRate/2 - frequencyEpsilon
	if hi <= frequencyEpsilon {
		return sampleRate / 4
	}
	return core.Clamp(freq, frequencyEpsilon, hi)
}

func allFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
