// Package design provides the parametric-EQ coefficient designer.
//
// [Parametric] maps a (sample rate, frequency, gain, Q or slope, Q mode,
// filter type) tuple to normalized biquad coefficients consumable by
// dsp/filter/biquad. Peaking, low-shelf and high-shelf sections follow the
// RBJ audio-EQ cookbook. Out-of-range inputs are clamped so the designer
// always returns finite coefficients, and shelf slopes are limited to keep
// the shelf response monotonic.
package design
