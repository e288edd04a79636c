package core

import "math"

// Clamp limits value to the inclusive range [lo, hi]. Swapped bounds are
// reordered.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Min(math.Max(value, lo), hi)
}

// DBToLinear converts a level in dB to a linear amplitude.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts a linear amplitude to dB. Zero maps to -Inf and
// negative amplitudes to NaN.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	}
	return 20 * math.Log10(linear)
}

// LinearPowerToDB converts a power ratio to dB. Zero maps to -Inf and
// negative powers to NaN.
func LinearPowerToDB(power float64) float64 {
	switch {
	case power < 0:
		return math.NaN()
	case power == 0:
		return math.Inf(-1)
	}
	return 10 * math.Log10(power)
}
