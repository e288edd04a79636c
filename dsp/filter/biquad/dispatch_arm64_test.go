//go:build arm64 && !purego

package biquad

import (
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"
)

func TestProcessStereoDispatch_ARM64Modes(t *testing.T) {
	runDispatchCases(t, []dispatchCase{
		{
			name:     "generic-forced",
			features: cpu.Features{ForceGeneric: true, Architecture: "arm64"},
			wantImpl: "generic",
		},
		{
			name:     "neon",
			features: cpu.Features{HasNEON: true, Architecture: "arm64"},
			wantImpl: "neon",
		},
	})
}
