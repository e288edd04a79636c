package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// ErrEmpty is returned when an operation needs at least one point.
var ErrEmpty = errors.New("spectrum: empty input")

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

// Magnitude returns |X[k]| for each bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	MagnitudeInto(out, in)
	return out
}

// MagnitudeInto writes |X[k]| into dst, which must be at least len(in) long.
// Scratch memory is pooled, so steady-state calls do not allocate.
func MagnitudeInto(dst []float64, in []complex128) {
	if len(in) == 0 {
		return
	}
	re, im, buf := getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Magnitude(dst[:len(in)], re, im)
	scratchPool.Put(buf)
}

// MagnitudeDB returns 20*log10|X[k]| for each bin, floored at floorDB.
func MagnitudeDB(in []complex128, floorDB float64) []float64 {
	out := Magnitude(in)
	for i, m := range out {
		out[i] = AmplitudeToDB(m, floorDB)
	}
	return out
}

// AmplitudeToDB converts a linear amplitude to dB. Zero, negative and NaN
// amplitudes map to floorDB.
func AmplitudeToDB(amplitude, floorDB float64) float64 {
	if !(amplitude > 0) {
		return floorDB
	}
	db := core.LinearToDB(amplitude)
	if db < floorDB {
		return floorDB
	}
	return db
}

// BinFrequencies returns the centre frequency of bins 0..n-1 of an FFT of
// length fftSize.
func BinFrequencies(n, fftSize int, sampleRate float64) []float64 {
	if n <= 0 || fftSize <= 0 {
		return nil
	}
	out := make([]float64, n)
	df := sampleRate / float64(fftSize)
	for k := range out {
		out[k] = float64(k) * df
	}
	return out
}

// InterpolateLinear performs piecewise-linear interpolation at queryX.
// Queries outside x hold the end values.
//
// x must be strictly increasing and have the same length as y.
func InterpolateLinear(x, y, queryX []float64) ([]float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, ErrEmpty
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("spectrum: interpolate length mismatch: %d != %d", len(x), len(y))
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("spectrum: interpolate x must be strictly increasing at index %d", i)
		}
	}

	out := make([]float64, len(queryX))
	last := len(x) - 1
	for i, q := range queryX {
		switch {
		case q <= x[0]:
			out[i] = y[0]
		case q >= x[last]:
			out[i] = y[last]
		default:
			j := sort.SearchFloat64s(x, q)
			t := (q - x[j-1]) / (x[j] - x[j-1])
			out[i] = y[j-1] + t*(y[j]-y[j-1])
		}
	}
	return out, nil
}

// SmoothFractionalOctave averages values over a 1/fraction-octave window
// centred on each frequency.
//
// freqHz must be strictly increasing. Non-positive frequencies (the DC bin)
// are passed through unsmoothed.
func SmoothFractionalOctave(freqHz, values []float64, fraction int) ([]float64, error) {
	if len(freqHz) == 0 || len(values) == 0 {
		return nil, ErrEmpty
	}
	if len(freqHz) != len(values) {
		return nil, fmt.Errorf("spectrum: smoothing length mismatch: %d != %d", len(freqHz), len(values))
	}
	if fraction <= 0 {
		return nil, fmt.Errorf("spectrum: smoothing fraction must be > 0: %d", fraction)
	}
	for i := 1; i < len(freqHz); i++ {
		if !(freqHz[i] > freqHz[i-1]) {
			return nil, fmt.Errorf("spectrum: smoothing frequencies must be strictly increasing at index %d", i)
		}
	}

	out := make([]float64, len(values))
	halfBand := math.Pow(2, 1/(2*float64(fraction)))

	for i, f := range freqHz {
		if f <= 0 {
			out[i] = values[i]
			continue
		}

		lo := sort.SearchFloat64s(freqHz, f/halfBand)
		hi := sort.Search(len(freqHz), func(k int) bool { return freqHz[k] > f*halfBand })

		sum := 0.0
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}

	return out, nil
}
