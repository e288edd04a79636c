//go:build arm64 && !purego

package neon

import (
	"github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:          "neon",
		SIMDLevel:     cpu.SIMDNEON,
		Priority:      15,
		ProcessStereo: processStereo,
	})
}

func processStereo(c registry.Coefficients, z1, z2 registry.Lanes, left, right []float32) (newZ1, newZ2 registry.Lanes) {
	if len(left) == 0 {
		return z1, z2
	}
	return processStereoNEON(left, right[:len(left)], c, z1, z2)
}
