package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates one term of the discrete-time Fourier transform of the
// samples fed to it since the last Reset.
//
// The frequency does not have to fall on an FFT bin. Power after N samples
// equals |sum x[n] e^(-jwn)|^2 over those N samples, which makes the analyzer
// suited to reading an impulse response at arbitrary frequencies.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel returns an analyzer for frequency, which must lie in
// [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}
	if !(frequency >= 0) || frequency > sampleRate/2 {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1 = 0, 0
}

// ProcessBlock accumulates input.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1, coeff := g.s0, g.s1, g.coeff
	for _, x := range input {
		s0, s1 = x+coeff*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
}

// ProcessBlock32 accumulates float32 input.
func (g *Goertzel) ProcessBlock32(input []float32) {
	s0, s1, coeff := g.s0, g.s1, g.coeff
	for _, x := range input {
		s0, s1 = float64(x)+coeff*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
}

// Power returns the squared magnitude of the component.
func (g *Goertzel) Power() float64 {
	p := g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
	if p < 0 {
		return 0
	}
	return p
}

// Magnitude returns the magnitude of the component.
func (g *Goertzel) Magnitude() float64 {
	return math.Sqrt(g.Power())
}

// Frequency returns the analyzed frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// MultiGoertzel runs one analyzer per frequency over the same input.
type MultiGoertzel struct {
	analyzers []*Goertzel
}

// NewMultiGoertzel returns analyzers for frequencies. It fails on the first
// frequency outside [0, sampleRate/2].
func NewMultiGoertzel(frequencies []float64, sampleRate float64) (*MultiGoertzel, error) {
	analyzers := make([]*Goertzel, len(frequencies))
	for i, f := range frequencies {
		g, err := NewGoertzel(f, sampleRate)
		if err != nil {
			return nil, err
		}
		analyzers[i] = g
	}
	return &MultiGoertzel{analyzers: analyzers}, nil
}

// ProcessBlock32 feeds input to every analyzer.
func (m *MultiGoertzel) ProcessBlock32(input []float32) {
	for _, g := range m.analyzers {
		g.ProcessBlock32(input)
	}
}

// Magnitudes writes the magnitude of every analyzer into dst, which must be
// at least as long as the frequency list, and returns it.
func (m *MultiGoertzel) Magnitudes(dst []float64) []float64 {
	for i, g := range m.analyzers {
		dst[i] = g.Magnitude()
	}
	return dst[:len(m.analyzers)]
}

// Reset clears every analyzer.
func (m *MultiGoertzel) Reset() {
	for _, g := range m.analyzers {
		g.Reset()
	}
}
