package generic

import (
	"github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:          "generic",
		SIMDLevel:     cpu.SIMDNone,
		Priority:      0,
		ProcessStereo: processStereo,
	})
}

// processStereo runs the DF-II-T recursion once per sample across both lanes.
func processStereo(c registry.Coefficients, z1, z2 registry.Lanes, left, right []float32) (newZ1, newZ2 registry.Lanes) {
	right = right[:len(left)]

	for i := range left {
		x := registry.Lanes{float64(left[i]), float64(right[i])}

		var y registry.Lanes
		for ch := range x {
			y[ch] = c.B0*x[ch] + z1[ch]
			z1[ch] = c.B1*x[ch] + z2[ch] - c.A1*y[ch]
			z2[ch] = c.B2*x[ch] - c.A2*y[ch]
		}

		left[i] = float32(y[0])
		right[i] = float32(y[1])
	}

	return z1, z2
}
