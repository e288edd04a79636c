//go:build amd64 && !purego

package avx2

import (
	"github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:          "avx2",
		SIMDLevel:     cpu.SIMDAVX2,
		Priority:      20,
		ProcessStereo: processStereo,
	})
}

// processStereo is a 4x-unrolled lane-fused kernel selected for AVX2-capable CPUs.
// TODO: replace with an explicit AVX2 asm kernel that packs two stereo frames per ymm register.
func processStereo(c registry.Coefficients, z1, z2 registry.Lanes, left, right []float32) (newZ1, newZ2 registry.Lanes) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	z1l, z1r := z1[0], z1[1]
	z2l, z2r := z2[0], z2[1]

	n := len(left)
	right = right[:n]

	i := 0
	for ; i+3 < n; i += 4 {
		l := left[i : i+4 : i+4]
		r := right[i : i+4 : i+4]

		for k := range 4 {
			xl, xr := float64(l[k]), float64(r[k])
			yl := b0*xl + z1l
			yr := b0*xr + z1r
			z1l = b1*xl + z2l - a1*yl
			z1r = b1*xr + z2r - a1*yr
			z2l = b2*xl - a2*yl
			z2r = b2*xr - a2*yr
			l[k], r[k] = float32(yl), float32(yr)
		}
	}

	for ; i < n; i++ {
		xl, xr := float64(left[i]), float64(right[i])
		yl := b0*xl + z1l
		yr := b0*xr + z1r
		z1l = b1*xl + z2l - a1*yl
		z1r = b1*xr + z2r - a1*yr
		z2l = b2*xl - a2*yl
		z2r = b2*xr - a2*yr
		left[i], right[i] = float32(yl), float32(yr)
	}

	return registry.Lanes{z1l, z1r}, registry.Lanes{z2l, z2r}
}
