package eq

import (
	"math"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

// MinResponseDB is the floor of magnitude responses in dB.
const MinResponseDB = -120.0

// Default bounds of the response-curve frequency grid.
const (
	ResponseMinFrequency = 20.0
	ResponseMaxFrequency = 20000.0
)

// LogFrequencies returns n frequencies spaced evenly on a log axis from lo to
// hi inclusive. It returns nil for n <= 0 or a non-positive bound. n == 1
// yields lo.
func LogFrequencies(n int, lo, hi float64) []float64 {
	if n <= 0 || lo <= 0 || hi <= 0 {
		return nil
	}

	out := make([]float64, n)
	out[0] = lo
	if n == 1 {
		return out
	}

	ratio := math.Log(hi / lo)
	for i := 1; i < n-1; i++ {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}
	out[n-1] = hi

	return out
}

// ResponseDB evaluates the combined magnitude of sections in series at each
// frequency, in dB, floored at MinResponseDB.
func ResponseDB(sections []biquad.Coefficients, sampleRate float64, freqs []float64) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = powerToFlooredDB(biquad.CascadeMagnitudeSquared(sections, f, sampleRate))
	}
	return out
}

// ResponseDB evaluates the equalizer's running response at freqs.
func (e *Equalizer) ResponseDB(freqs []float64) []float64 {
	sections := make([]biquad.Coefficients, 0, NumBands)
	for _, b := range processingOrder {
		sections = append(sections, e.engines[b].Coefficients())
	}
	return ResponseDB(sections, e.sampleRate, freqs)
}

// BandResponseDB evaluates a single band's running response at freqs.
func (e *Equalizer) BandResponseDB(b Band, freqs []float64) []float64 {
	eng := e.Engine(b)
	if eng == nil {
		return nil
	}
	return ResponseDB([]biquad.Coefficients{eng.Coefficients()}, e.sampleRate, freqs)
}

func powerToFlooredDB(power float64) float64 {
	db := core.LinearPowerToDB(power)
	if math.IsNaN(db) || db < MinResponseDB {
		return MinResponseDB
	}
	return db
}
