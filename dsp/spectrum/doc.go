// Package spectrum turns complex FFT bins and impulse responses into
// magnitude curves.
//
// The package does not run an FFT itself. Callers hand it bins from any FFT
// backend, or feed time-domain samples to a [Goertzel] analyzer when only a
// few arbitrary frequencies are needed.
package spectrum
