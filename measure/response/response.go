package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-peq/dsp/spectrum"
)

const (
	// DefaultFFTSize is used when Config.FFTSize is zero.
	DefaultFFTSize = 8192
	// DefaultBlockSize is used when Config.BlockSize is zero.
	DefaultBlockSize = 512
	// MinFFTSize is the smallest accepted FFT size.
	MinFFTSize = 16
	// FloorDB is the lowest reported level.
	FloorDB = -120.0
)

var (
	ErrNilProcessor      = errors.New("response: nil processor")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive and finite")
	ErrInvalidFFTSize    = errors.New("response: FFT size must be a power of two >= 16")
	ErrInvalidBlockSize  = errors.New("response: block size must be positive")
	ErrInvalidLength     = errors.New("response: impulse length must be positive")
	ErrLengthMismatch    = errors.New("response: curve length mismatch")
	ErrEmpty             = errors.New("response: empty curve")
)

// Processor filters two channels in place, carrying state across calls.
type Processor interface {
	Process(channels [][]float32)
}

// resetter is implemented by processors whose delay state can be cleared
// before a measurement.
type resetter interface {
	Reset()
}

// Config holds measurement parameters.
type Config struct {
	SampleRate float64
	FFTSize    int
	// BlockSize is the number of frames handed to Process per call.
	BlockSize int
	// SmoothingFraction applies 1/N-octave smoothing to the magnitudes when
	// positive.
	SmoothingFraction int
}

// Result holds one measured response. Frequencies, LeftDB and RightDB hold
// FFTSize/2+1 bins from DC to Nyquist.
type Result struct {
	SampleRate  float64
	FFTSize     int
	Frequencies []float64
	LeftDB      []float64
	RightDB     []float64

	// PeakDB is the largest left-channel level and PeakFrequency its bin.
	PeakDB        float64
	PeakFrequency float64
}

func normalizeConfig(cfg Config) (Config, error) {
	if cfg.FFTSize == 0 {
		cfg.FFTSize = DefaultFFTSize
	}
	if cfg.BlockSize == 0 {
		cfg.BlockSize = DefaultBlockSize
	}

	if !(cfg.SampleRate > 0) || math.IsInf(cfg.SampleRate, 0) {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidSampleRate, cfg.SampleRate)
	}
	if cfg.FFTSize < MinFFTSize || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return cfg, fmt.Errorf("%w: %d", ErrInvalidFFTSize, cfg.FFTSize)
	}
	if cfg.BlockSize < 0 {
		return cfg, fmt.Errorf("%w: %d", ErrInvalidBlockSize, cfg.BlockSize)
	}

	return cfg, nil
}

// Measure captures FFTSize samples of the impulse response of p on both
// channels and returns their magnitude spectra. Processors with a Reset
// method are reset first.
func Measure(p Processor, cfg Config) (Result, error) {
	if p == nil {
		return Result{}, ErrNilProcessor
	}
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return Result{}, err
	}

	left, right := capture(p, cfg.FFTSize, cfg.BlockSize)

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return Result{}, fmt.Errorf("response: fft plan: %w", err)
	}

	bins := cfg.FFTSize/2 + 1
	res := Result{
		SampleRate:  cfg.SampleRate,
		FFTSize:     cfg.FFTSize,
		Frequencies: spectrum.BinFrequencies(bins, cfg.FFTSize, cfg.SampleRate),
	}

	in := make([]complex128, cfg.FFTSize)
	out := make([]complex128, cfg.FFTSize)
	for _, ch := range []struct {
		samples []float32
		dst     *[]float64
	}{
		{left, &res.LeftDB},
		{right, &res.RightDB},
	} {
		for i, x := range ch.samples {
			in[i] = complex(float64(x), 0)
		}
		if err := plan.Forward(out, in); err != nil {
			return Result{}, fmt.Errorf("response: fft: %w", err)
		}

		mag := spectrum.Magnitude(out[:bins])
		if cfg.SmoothingFraction > 0 {
			// The DC bin passes through, so the frequency axis stays valid.
			mag, err = spectrum.SmoothFractionalOctave(res.Frequencies, mag, cfg.SmoothingFraction)
			if err != nil {
				return Result{}, err
			}
		}
		for i, m := range mag {
			mag[i] = spectrum.AmplitudeToDB(m, FloorDB)
		}
		*ch.dst = mag
	}

	peak := floats.MaxIdx(res.LeftDB)
	res.PeakDB = res.LeftDB[peak]
	res.PeakFrequency = res.Frequencies[peak]

	return res, nil
}

// MeasureAt captures length samples of the impulse response of p and
// evaluates both channels at freqs, which must lie in [0, sampleRate/2].
func MeasureAt(p Processor, sampleRate float64, freqs []float64, length int) (leftDB, rightDB []float64, err error) {
	if p == nil {
		return nil, nil, ErrNilProcessor
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if length <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	mg, err := spectrum.NewMultiGoertzel(freqs, sampleRate)
	if err != nil {
		return nil, nil, fmt.Errorf("response: %w", err)
	}

	left, right := capture(p, length, DefaultBlockSize)

	mags := make([]float64, len(freqs))
	leftDB = analyze(mg, left, mags)
	mg.Reset()
	rightDB = analyze(mg, right, mags)

	return leftDB, rightDB, nil
}

func analyze(mg *spectrum.MultiGoertzel, samples []float32, scratch []float64) []float64 {
	mg.ProcessBlock32(samples)
	mg.Magnitudes(scratch)
	out := make([]float64, len(scratch))
	for i, m := range scratch {
		out[i] = spectrum.AmplitudeToDB(m, FloorDB)
	}
	return out
}

// capture runs a unit impulse on both channels through p, blockSize frames
// at a time.
func capture(p Processor, length, blockSize int) (left, right []float32) {
	if r, ok := p.(resetter); ok {
		r.Reset()
	}

	left = make([]float32, length)
	right = make([]float32, length)
	left[0], right[0] = 1, 1

	channels := make([][]float32, 2)
	for start := 0; start < length; start += blockSize {
		end := min(start+blockSize, length)
		channels[0], channels[1] = left[start:end], right[start:end]
		p.Process(channels)
	}

	return left, right
}

// At interpolates the left-channel response at freqs.
func (r Result) At(freqs []float64) ([]float64, error) {
	return spectrum.InterpolateLinear(r.Frequencies, r.LeftDB, freqs)
}

// RightAt interpolates the right-channel response at freqs.
func (r Result) RightAt(freqs []float64) ([]float64, error) {
	return spectrum.InterpolateLinear(r.Frequencies, r.RightDB, freqs)
}

// MaxDeviationDB returns the largest absolute difference between two curves
// of equal length.
func MaxDeviationDB(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, ErrEmpty
	}

	diff := make([]float64, len(a))
	floats.SubTo(diff, a, b)

	return floats.Norm(diff, math.Inf(1)), nil
}
