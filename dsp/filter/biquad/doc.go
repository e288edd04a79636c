// Package biquad provides biquad (second-order IIR) filter runtime primitives
// for stereo audio.
//
// A [Stereo] filter implements Direct Form II Transposed processing for one
// set of [Coefficients] applied to two channels in lockstep. The channels
// share coefficients but keep independent delay registers, held as one
// [Lanes] vector per register. Block processing is dispatched once per
// process to the fastest kernel registered for the running CPU (generic,
// SSE2, AVX2 or NEON); the per-sample loop itself contains no indirect calls.
//
// Frequency-domain helpers ([Coefficients.MagnitudeSquared],
// [CascadeMagnitudeSquared], [Coefficients.Poles]) evaluate designed
// sections without running audio through them.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design.
package biquad
