package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/filter/design"
)

func ExampleParametric() {
	sr := 48000.0
	c := design.Parametric(sr, 1000, 6, 0.707, design.ConstantQ, design.Peaking)

	fmt.Printf("b0=%.6f a1=%.6f\n", c.B0, c.A1)
	fmt.Printf("gain at 1 kHz: %.2f dB\n", c.MagnitudeDB(1000, sr))

	// Output:
	// b0=1.061051 a1=-1.861256
	// gain at 1 kHz: 6.00 dB
}

func ExampleParametric_shelf() {
	sr := 48000.0
	c := design.Parametric(sr, 200, -6, 1, design.ConstantQ, design.LowShelf)

	fmt.Printf("20 Hz: %.1f dB\n", c.MagnitudeDB(20, sr))
	fmt.Printf("200 Hz: %.1f dB\n", c.MagnitudeDB(200, sr))

	// Output:
	// 20 Hz: -6.0 dB
	// 200 Hz: -3.0 dB
}

func ExampleEffectiveQ() {
	for _, gain := range []float64{0, 6, 12, 18} {
		fmt.Printf("%4.0f dB -> Q %.2f\n", gain, design.EffectiveQ(gain, 1))
	}

	// Output:
	//    0 dB -> Q 0.50
	//    6 dB -> Q 1.75
	//   12 dB -> Q 3.00
	//   18 dB -> Q 3.00
}

func ExampleShelfSlopeLimit() {
	limit, ok := design.ShelfSlopeLimit(24)
	fmt.Printf("%.4f %v\n", limit, ok)

	_, ok = design.ShelfSlopeLimit(0)
	fmt.Println(ok)

	// Output:
	// 1.8960 true
	// false
}
