//go:build arm64 && !purego

package neon

import "github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/registry"

// processStereoNEON mirrors the float64x2 layout of a NEON q-register: the
// left and right lanes of each delay register advance together.
func processStereoNEON(left, right []float32, c registry.Coefficients, z1, z2 registry.Lanes) (registry.Lanes, registry.Lanes) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	z1l, z1r := z1[0], z1[1]
	z2l, z2r := z2[0], z2[1]

	n := len(left)
	i := 0
	for ; i+1 < n; i += 2 {
		xl0, xr0 := float64(left[i]), float64(right[i])
		xl1, xr1 := float64(left[i+1]), float64(right[i+1])

		yl0 := b0*xl0 + z1l
		yr0 := b0*xr0 + z1r
		z1l = b1*xl0 + z2l - a1*yl0
		z1r = b1*xr0 + z2r - a1*yr0
		z2l = b2*xl0 - a2*yl0
		z2r = b2*xr0 - a2*yr0

		yl1 := b0*xl1 + z1l
		yr1 := b0*xr1 + z1r
		z1l = b1*xl1 + z2l - a1*yl1
		z1r = b1*xr1 + z2r - a1*yr1
		z2l = b2*xl1 - a2*yl1
		z2r = b2*xr1 - a2*yr1

		left[i], right[i] = float32(yl0), float32(yr0)
		left[i+1], right[i+1] = float32(yl1), float32(yr1)
	}

	if i < n {
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
