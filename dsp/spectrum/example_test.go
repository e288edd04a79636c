package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/spectrum"
)

func ExampleMagnitudeDB() {
	bins := []complex128{1, 0.5i, 0}
	db := spectrum.MagnitudeDB(bins, -120)
	fmt.Printf("%.1f %.1f %.1f\n", db[0], db[1], db[2])
	// Output:
	// 0.0 -6.0 -120.0
}

func ExampleInterpolateLinear() {
	freq := []float64{100, 1000, 10000}
	db := []float64{0, 6, 0}
	out, _ := spectrum.InterpolateLinear(freq, db, []float64{550, 5500})
	fmt.Printf("%.1f %.1f\n", out[0], out[1])
	// Output:
	// 3.0 3.0
}

func ExampleGoertzel() {
	g, _ := spectrum.NewGoertzel(0, 48000)
	g.ProcessBlock([]float64{0.25, 0.25, 0.25, 0.25})
	fmt.Printf("%.2f\n", g.Magnitude())
	// Output:
	// 1.00
}
