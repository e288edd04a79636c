package biquad

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-peq/internal/testutil"
)

func TestMagnitudeSquared_MatchesResponse(t *testing.T) {
	// Verify closed-form MagnitudeSquared matches |Response|^2 across frequencies.
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		h := c.Response(freq, sr)
		fromResponse := real(h)*real(h) + imag(h)*imag(h)
		fromClosed := c.MagnitudeSquared(freq, sr)
		if !almostEqual(fromClosed, fromResponse, 1e-10) {
			t.Errorf("freq=%v: MagnitudeSquared=%.15f, |Response|²=%.15f", freq, fromClosed, fromResponse)
		}
	}
}

func TestMagnitudeDB_MatchesMagnitudeSquared(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	sr := 48000.0

	for _, freq := range []float64{100, 1000, 10000} {
		db := c.MagnitudeDB(freq, sr)
		fromSq := 10 * math.Log10(c.MagnitudeSquared(freq, sr))
		if !almostEqual(db, fromSq, 1e-12) {
			t.Errorf("freq=%v: MagnitudeDB=%.15f, 10*log10(MagSq)=%.15f", freq, db, fromSq)
		}
	}
}

func TestPhase_MatchesResponse(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000} {
		h := c.Response(freq, sr)
		fromResponse := cmplx.Phase(h)
		fromClosed := c.Phase(freq, sr)
		if !almostEqual(fromClosed, fromResponse, 1e-10) {
			t.Errorf("freq=%v: Phase=%.15f, arg(Response)=%.15f", freq, fromClosed, fromResponse)
		}
	}
}

func TestResponse_Passthrough(t *testing.T) {
	// Passthrough (B0=1) should have magnitude 1 and phase 0 at all frequencies.
	c := passthrough()
	sr := 48000.0
	for _, freq := range []float64{0, 100, 1000, 10000, 24000} {
		h := c.Response(freq, sr)
		mag := cmplx.Abs(h)
		if !almostEqual(mag, 1, 1e-12) {
			t.Errorf("freq=%v: |H|=%v, want 1", freq, mag)
		}
	}
}

func TestResponse_Allpass(t *testing.T) {
	// First-order allpass: B0=A2, B1=A1, B2=1, A1=A1, A2=A2
	// |H(f)| = 1 for all f.
	a1, a2 := -0.5, 0.3
	c := Coefficients{B0: a2, B1: a1, B2: 1, A1: a1, A2: a2}
	sr := 48000.0
	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		h := c.Response(freq, sr)
		mag := cmplx.Abs(h)
		if !almostEqual(mag, 1, 1e-10) {
			t.Errorf("freq=%v: |H|=%.15f, want 1", freq, mag)
		}
	}
}

func TestCascadeResponse_ProductOfSections(t *testing.T) {
	coeffs := twoSectionCoeffs()
	sr := 48000.0

	for _, freq := range []float64{100, 1000, 10000} {
		h1 := coeffs[0].Response(freq, sr)
		h2 := coeffs[1].Response(freq, sr)
		ref := h1 * h2
		got := CascadeResponse(coeffs, freq, sr)
		if !almostEqual(real(got), real(ref), 1e-10) || !almostEqual(imag(got), imag(ref), 1e-10) {
			t.Errorf("freq=%v: cascade=%v, product=%v", freq, got, ref)
		}
	}
}

func TestCascadeMagnitudeSquared_MatchesResponse(t *testing.T) {
	coeffs := twoSectionCoeffs()
	sr := 48000.0

	for _, freq := range []float64{20, 100, 1000, 10000, 23999} {
		h := CascadeResponse(coeffs, freq, sr)
		want := real(h)*real(h) + imag(h)*imag(h)
		got := CascadeMagnitudeSquared(coeffs, freq, sr)
		if !almostEqual(got, want, 1e-9*math.Max(1, want)) {
			t.Errorf("freq=%v: CascadeMagnitudeSquared=%.15f, |H|²=%.15f", freq, got, want)
		}
	}
}

func TestCascadeMagnitudeSquared_EmptyIsUnity(t *testing.T) {
	if got := CascadeMagnitudeSquared(nil, 1000, 48000); got != 1 {
		t.Fatalf("empty cascade = %v, want 1", got)
	}
}

func TestCascadeMagnitudeSquared_FloorsDenominator(t *testing.T) {
	// Double pole on the unit circle at DC: |A(e^j0)|² = 0.
	c := []Coefficients{{B0: 1, A1: -2, A2: 1}}
	got := CascadeMagnitudeSquared(c, 0, 48000)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("non-finite magnitude at singular denominator: %v", got)
	}
	if !almostEqual(got, 1e20, 1e8) {
		t.Fatalf("got %g, want 1e20", got)
	}
}

func TestStereo_ImpulseResponse(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	s := NewStereo(c)

	// Process some samples to build state.
	s.ProcessPair(0.5, -0.25)
	s.ProcessPair(0.3, 0.1)
	savedState := s.State()

	irL, irR := s.ImpulseResponse(8)

	// State must be unchanged after ImpulseResponse.
	if s.State() != savedState {
		t.Fatal("ImpulseResponse modified filter state")
	}

	want := []float64{0.25, 0.55, 0.35, 0.048, -0.0044, -0.0028}
	for i, w := range want {
		if !almostEqual(irL[i], w, eps) || !almostEqual(irR[i], w, eps) {
			t.Errorf("ir[%d]: got (%.15f, %.15f), want %.15f", i, irL[i], irR[i], w)
		}
	}
}

func TestStereo_ImpulseResponse_Zero(t *testing.T) {
	s := NewStereo(passthrough())
	if l, r := s.ImpulseResponse(0); l != nil || r != nil {
		t.Errorf("ImpulseResponse(0) should return nil, got %v %v", l, r)
	}
	if l, r := s.ImpulseResponse(-1); l != nil || r != nil {
		t.Errorf("ImpulseResponse(-1) should return nil, got %v %v", l, r)
	}
}

func TestStereo_ImpulseResponse_Passthrough(t *testing.T) {
	s := NewStereo(passthrough())
	irL, irR := s.ImpulseResponse(5)
	want := testutil.Impulse(5, 0)
	testutil.RequireSliceNearlyEqual(t, irL, want, eps)
	testutil.RequireSliceNearlyEqual(t, irR, want, eps)
}
