package biquad

import (
	"sync"
	"testing"

	archregistry "github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

type dispatchCase struct {
	name     string
	features cpu.Features
	wantImpl string
}

func resetProcessStereoDispatchForTest() {
	processStereoImpl = nil
	processStereoInitOnce = sync.Once{}
}

// runDispatchCases forces each feature set, checks which kernel the registry
// picks, and verifies the block path against the per-frame path.
func runDispatchCases(t *testing.T, cases []dispatchCase) {
	t.Helper()

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			cpu.SetForcedFeatures(tt.features)
			defer cpu.ResetDetection()

			resetProcessStereoDispatchForTest()
			defer resetProcessStereoDispatchForTest()

			entry := archregistry.Global.Lookup(cpu.DetectFeatures())
			if entry == nil {
				t.Fatal("Lookup returned nil")
			}
			if entry.Name != tt.wantImpl {
				t.Fatalf("expected %q, got %q", tt.wantImpl, entry.Name)
			}

			c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
			ref := NewStereo(c)
			got := NewStereo(c)

			left, right := stereoInput()
			wantL := make([]float32, len(left))
			wantR := make([]float32, len(right))
			for i := range left {
				wantL[i], wantR[i] = ref.ProcessPair(left[i], right[i])
			}

			got.ProcessBlock(left, right)

			for i := range left {
				if !almostEqual(float64(left[i]), float64(wantL[i]), eps32) ||
					!almostEqual(float64(right[i]), float64(wantR[i]), eps32) {
					t.Fatalf("sample %d mismatch: got (%v,%v), want (%v,%v)", i, left[i], right[i], wantL[i], wantR[i])
				}
			}
		})
	}
}
