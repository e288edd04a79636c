package eq

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
	"github.com/cwbudde/algo-peq/dsp/filter/design"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFrequencies(t *testing.T) {
	f := LogFrequencies(4, 20, 20000)
	require.Len(t, f, 4)

	assert.Equal(t, 20.0, f[0])
	assert.Equal(t, 20000.0, f[3])
	assert.InDelta(t, 200, f[1], 1e-9)
	assert.InDelta(t, 2000, f[2], 1e-9)

	grid := LogFrequencies(64, ResponseMinFrequency, ResponseMaxFrequency)
	ratio := grid[1] / grid[0]
	for i := 2; i < len(grid); i++ {
		assert.InDelta(t, ratio, grid[i]/grid[i-1], 1e-9)
	}
}

func TestLogFrequencies_Degenerate(t *testing.T) {
	assert.Nil(t, LogFrequencies(0, 20, 20000))
	assert.Nil(t, LogFrequencies(8, 0, 20000))
	assert.Nil(t, LogFrequencies(8, 20, -1))
	assert.Equal(t, []float64{50}, LogFrequencies(1, 50, 5000))
}

func TestResponseDB_SumsBandsInDB(t *testing.T) {
	sections := []biquad.Coefficients{
		design.Parametric(testSampleRate, 8000, 3, 0.707, design.ConstantQ, design.HighShelf),
		design.Parametric(testSampleRate, 1000, -6, 1.5, design.ConstantQ, design.Peaking),
		design.Parametric(testSampleRate, 150, 5, 0.707, design.ConstantQ, design.LowShelf),
	}
	freqs := LogFrequencies(32, 20, 20000)

	total := ResponseDB(sections, testSampleRate, freqs)
	require.Len(t, total, len(freqs))

	for i, f := range freqs {
		sum := 0.0
		for _, c := range sections {
			sum += c.MagnitudeDB(f, testSampleRate)
		}
		assert.InDelta(t, sum, total[i], 1e-9, "f=%v", f)
	}
}

func TestResponseDB_Floor(t *testing.T) {
	silent := []biquad.Coefficients{{}}
	got := ResponseDB(silent, testSampleRate, []float64{100, 1000})
	assert.Equal(t, []float64{MinResponseDB, MinResponseDB}, got)

	assert.Empty(t, ResponseDB(nil, testSampleRate, nil))
	assert.Equal(t, []float64{0}, ResponseDB(nil, testSampleRate, []float64{440}))
}

func TestEqualizer_ResponseDB(t *testing.T) {
	e := preparedEqualizer(t,
		WithBandDefaults(BandLowShelf, 100, 6),
		WithBandDefaults(BandPeak, 1000, -12),
		WithBandDefaults(BandHighShelf, 10000, 6),
	)

	got := e.ResponseDB([]float64{10, 1000, 23000})
	assert.InDelta(t, 6, got[0], 0.5, "low shelf plateau")
	assert.Less(t, got[1], -11.0, "peak cut dominates at its center")
	assert.InDelta(t, 6, got[2], 0.5, "high shelf plateau")

	band := e.BandResponseDB(BandPeak, []float64{1000})
	assert.InDelta(t, -12, band[0], 1e-6)
	assert.Nil(t, e.BandResponseDB(Band(5), []float64{1000}))
}

func TestEqualizer_ResponseBeforePrepareIsFlat(t *testing.T) {
	e := NewEqualizer(WithBandDefaults(BandPeak, 1000, 12))
	for _, db := range e.ResponseDB(LogFrequencies(8, 20, 20000)) {
		assert.InDelta(t, 0, db, 1e-12)
		assert.False(t, math.IsNaN(db))
	}
}
