//nolint:funcorder
package biquad

import (
	"sync"

	archregistry "github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// LaneWidth is the number of float64 lanes in one 128-bit vector. Lane 0
// carries the left channel and lane 1 the right channel.
const LaneWidth = 2

// Lanes holds one value per channel.
type Lanes [LaneWidth]float64

// Stereo is a two-channel biquad filter. Both channels share one coefficient
// set and keep independent Direct Form II Transposed delay registers.
type Stereo struct {
	Coefficients

	z1, z2 Lanes
}

var (
	processStereoImpl     archregistry.ProcessStereoFn
	processStereoInitOnce sync.Once
)

// NewStereo returns a Stereo filter initialized with the given coefficients
// and zero state.
func NewStereo(c Coefficients) *Stereo {
	return &Stereo{Coefficients: c}
}

// SetCoefficients replaces the coefficients and keeps the delay state.
func (s *Stereo) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// ProcessPair filters one stereo frame and returns the output pair.
func (s *Stereo) ProcessPair(xl, xr float32) (yl, yr float32) {
	y := s.step(Lanes{float64(xl), float64(xr)})
	return float32(y[0]), float32(y[1])
}

// step advances both lanes by one sample at full precision.
func (s *Stereo) step(x Lanes) Lanes {
	var y Lanes
	for ch := range x {
		y[ch] = s.B0*x[ch] + s.z1[ch]
		s.z1[ch] = s.B1*x[ch] + s.z2[ch] - s.A1*y[ch]
		s.z2[ch] = s.B2*x[ch] - s.A2*y[ch]
	}

	return y
}

// ProcessBlock filters left and right in-place with the current coefficients.
// Only the first min(len(left), len(right)) frames are processed. Zero-alloc.
func (s *Stereo) ProcessBlock(left, right []float32) {
	n := min(len(left), len(right))
	if n == 0 {
		return
	}

	processStereoInitOnce.Do(initProcessStereoKernel)

	coeffs := archregistry.Coefficients{
		B0: s.B0,
		B1: s.B1,
		B2: s.B2,
		A1: s.A1,
		A2: s.A2,
	}

	z1, z2 := processStereoImpl(coeffs, archregistry.Lanes(s.z1), archregistry.Lanes(s.z2), left[:n], right[:n])
	s.z1, s.z2 = Lanes(z1), Lanes(z2)
}

func initProcessStereoKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("biquad: no ProcessStereo kernel registered (missing generic fallback?)")
	}

	if entry.ProcessStereo == nil {
		panic("biquad: selected kernel missing ProcessStereo")
	}

	processStereoImpl = entry.ProcessStereo
}

// Reset clears both delay registers. Coefficients are kept.
func (s *Stereo) Reset() {
	s.z1 = Lanes{}
	s.z2 = Lanes{}
}

// State returns the current delay registers [z1, z2].
func (s *Stereo) State() [2]Lanes {
	return [2]Lanes{s.z1, s.z2}
}

// SetState restores a previously saved delay state.
func (s *Stereo) SetState(state [2]Lanes) {
	s.z1 = state[0]
	s.z2 = state[1]
}
