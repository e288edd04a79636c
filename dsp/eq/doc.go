// Package eq provides smoothed parametric equalizer sections for real-time
// stereo processing.
//
// [Engine] wraps one [biquad.Stereo] section. Control goroutines publish new
// parameters with [Engine.SetParameters]; the audio goroutine picks them up
// at the next block and ramps toward them with per-parameter [Smoother]s
// (multiplicative for frequency and Q, linear for gain in dB). While a ramp
// is running the section is redesigned sample by sample, but only when a
// parameter has moved past a small threshold. Settled blocks run through the
// vectorized block kernel.
//
// [Equalizer] chains three engines (high shelf, peak, low shelf) with bypass
// and host parameter ranges, and evaluates its combined magnitude response
// for display.
//
// ProcessBlock and Process never allocate, lock or block.
package eq
