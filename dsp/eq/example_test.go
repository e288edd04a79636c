package eq_test

import (
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/dsp/filter/design"
)

func ExampleEngine() {
	e := eq.NewEngine()
	e.Prepare(48000, 256, 10)
	e.SetParameters(2000, 6, 0.707, design.Peaking, design.ConstantQ)

	left := make([]float32, 256)
	right := make([]float32, 256)
	for range 4 {
		e.ProcessBlock(left, right, len(left))
	}

	fmt.Printf("smoothing=%v freq=%.0f gain=%.1f\n", e.IsSmoothing(), e.CurrentFrequency(), e.CurrentGainDB())

	// Output:
	// smoothing=false freq=2000 gain=6.0
}

func ExampleEqualizer() {
	e := eq.NewEqualizer(
		eq.WithBandDefaults(eq.BandLowShelf, 100, 4),
		eq.WithBandDefaults(eq.BandPeak, 1000, -6),
	)
	e.Prepare(core.ApplyProcessorOptions(core.WithSampleRate(48000)))

	left := []float32{1, 0, 0, 0}
	right := []float32{1, 0, 0, 0}
	e.Process([][]float32{left, right})

	db := e.BandResponseDB(eq.BandPeak, []float64{1000})
	fmt.Printf("peak at 1 kHz: %.1f dB\n", db[0])

	// Output:
	// peak at 1 kHz: -6.0 dB
}

func ExampleLogFrequencies() {
	for _, f := range eq.LogFrequencies(4, 20, 20000) {
		fmt.Printf("%.0f ", f)
	}
	fmt.Println()

	// Output:
	// 20 200 2000 20000
}
