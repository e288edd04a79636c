// Package response measures the magnitude response of a running stereo
// processor.
//
// [Measure] feeds a unit impulse through the processor block by block,
// transforms the captured impulse responses with an FFT and reports the
// magnitude per bin. [MeasureAt] reads the same impulse responses at
// arbitrary frequencies with Goertzel analyzers. The results can be checked
// against an analytic curve with [MaxDeviationDB].
package response
