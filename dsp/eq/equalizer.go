package eq

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
	"github.com/cwbudde/algo-peq/dsp/filter/design"
)

// Band identifies one section of the three-band equalizer.
type Band int

const (
	BandLowShelf Band = iota
	BandPeak
	BandHighShelf

	NumBands = 3
)

// Bands lists all bands in declaration order.
var Bands = [NumBands]Band{BandLowShelf, BandPeak, BandHighShelf}

// processingOrder is the series order of the bands.
var processingOrder = [NumBands]Band{BandHighShelf, BandPeak, BandLowShelf}

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandLowShelf:
		return "low"
	case BandPeak:
		return "peak"
	case BandHighShelf:
		return "high"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}

// FilterType returns the fixed section shape of the band.
func (b Band) FilterType() design.FilterType {
	switch b {
	case BandLowShelf:
		return design.LowShelf
	case BandHighShelf:
		return design.HighShelf
	default:
		return design.Peaking
	}
}

func (b Band) valid() bool { return b >= 0 && b < NumBands }

// Range bounds a host parameter.
type Range struct {
	Min, Max, Default float64
}

// Clamp limits v to the range. NaN maps to Default.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Default
	}
	return core.Clamp(v, r.Min, r.Max)
}

// Host parameter ranges.
var (
	FrequencyRange = Range{Min: 20, Max: 20000, Default: DefaultFrequency}
	GainRange      = Range{Min: -24, Max: 24, Default: DefaultGainDB}
	QRange         = Range{Min: 0.1, Max: 10, Default: DefaultQ}
)

// BandSettings are the user parameters of one band. Q is the peaking Q or
// the shelf slope.
type BandSettings struct {
	Frequency float64
	GainDB    float64
	Q         float64
}

// Settings is a snapshot of the equalizer parameters.
type Settings struct {
	Bands  [NumBands]BandSettings
	QMode  design.QMode
	Bypass bool
}

// DefaultSettings returns every band at 1 kHz, 0 dB, Q 0.707.
func DefaultSettings() Settings {
	var s Settings
	for i := range s.Bands {
		s.Bands[i] = BandSettings{
			Frequency: FrequencyRange.Default,
			GainDB:    GainRange.Default,
			Q:         QRange.Default,
		}
	}
	return s
}

// Clamped returns s with every band limited to the host ranges.
func (s Settings) Clamped() Settings {
	for i := range s.Bands {
		b := &s.Bands[i]
		b.Frequency = FrequencyRange.Clamp(b.Frequency)
		b.GainDB = GainRange.Clamp(b.GainDB)
		b.Q = QRange.Clamp(b.Q)
	}
	return s
}

// Option configures an Equalizer at construction.
type Option func(*Settings)

// WithBandDefaults sets the initial frequency and gain of band b.
func WithBandDefaults(b Band, freq, gainDB float64) Option {
	return func(s *Settings) {
		if b.valid() {
			s.Bands[b].Frequency = freq
			s.Bands[b].GainDB = gainDB
		}
	}
}

// WithBandQ sets the initial Q or slope of band b.
func WithBandQ(b Band, q float64) Option {
	return func(s *Settings) {
		if b.valid() {
			s.Bands[b].Q = q
		}
	}
}

// WithQMode sets the initial Q mode.
func WithQMode(mode design.QMode) Option {
	return func(s *Settings) {
		s.QMode = mode
	}
}

// bandParams is the atomic mirror of one BandSettings.
type bandParams struct {
	frequency atomic.Uint32
	gainDB    atomic.Uint32
	q         atomic.Uint32
}

func (p *bandParams) store(s BandSettings) {
	p.frequency.Store(math.Float32bits(float32(s.Frequency)))
	p.gainDB.Store(math.Float32bits(float32(s.GainDB)))
	p.q.Store(math.Float32bits(float32(s.Q)))
}

func (p *bandParams) load() (freq, gainDB, q float32) {
	return math.Float32frombits(p.frequency.Load()),
		math.Float32frombits(p.gainDB.Load()),
		math.Float32frombits(p.q.Load())
}

// Equalizer is a three-band stereo EQ: low shelf, peak and high shelf in
// series, each a smoothed Engine.
//
// The Set* methods and Settings are safe from any goroutine. Prepare,
// Process and Reset belong to the audio goroutine.
type Equalizer struct {
	bands   [NumBands]bandParams
	qMode   atomic.Int32
	bypass  atomic.Bool
	engines [NumBands]*Engine

	sampleRate float64
}

// NewEqualizer returns an unprepared equalizer.
func NewEqualizer(opts ...Option) *Equalizer {
	s := DefaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	s = s.Clamped()

	e := &Equalizer{sampleRate: core.DefaultProcessorConfig().SampleRate}
	for i := range e.engines {
		e.engines[i] = NewEngine()
		e.bands[i].store(s.Bands[i])
	}
	e.qMode.Store(int32(s.QMode))

	return e
}

// Prepare prepares every band for cfg and jumps straight to the current
// settings, so playback does not start with a ramp.
func (e *Equalizer) Prepare(cfg core.ProcessorConfig) {
	e.sampleRate = cfg.SampleRate
	mode := design.QMode(e.qMode.Load())

	for _, b := range Bands {
		eng := e.engines[b]
		eng.PrepareConfig(cfg)

		freq, gain, q := e.bands[b].load()
		eng.SetParametersImmediate(freq, gain, q, b.FilterType(), mode)
	}
}

// SetBand sets the frequency and gain of band b, clamped to the host
// ranges. The change is ramped in during the next blocks.
func (e *Equalizer) SetBand(b Band, freq, gainDB float32) {
	if !b.valid() {
		return
	}
	p := &e.bands[b]
	p.frequency.Store(math.Float32bits(float32(FrequencyRange.Clamp(float64(freq)))))
	p.gainDB.Store(math.Float32bits(float32(GainRange.Clamp(float64(gainDB)))))
}

// SetBandQ sets the Q or slope of band b, clamped to QRange.
func (e *Equalizer) SetBandQ(b Band, q float32) {
	if !b.valid() {
		return
	}
	e.bands[b].q.Store(math.Float32bits(float32(QRange.Clamp(float64(q)))))
}

// SetQMode switches the Q mode of every band.
func (e *Equalizer) SetQMode(mode design.QMode) {
	e.qMode.Store(int32(mode))
}

// SetBypass enables or disables bypass.
func (e *Equalizer) SetBypass(bypass bool) {
	e.bypass.Store(bypass)
}

// Bypassed reports whether bypass is enabled.
func (e *Equalizer) Bypassed() bool {
	return e.bypass.Load()
}

// Settings returns a snapshot of the current parameters.
func (e *Equalizer) Settings() Settings {
	var s Settings
	for i := range e.bands {
		freq, gain, q := e.bands[i].load()
		s.Bands[i] = BandSettings{Frequency: float64(freq), GainDB: float64(gain), Q: float64(q)}
	}
	s.QMode = design.QMode(e.qMode.Load())
	s.Bypass = e.bypass.Load()
	return s
}

// Process filters channels[0] and channels[1] in place through the high
// shelf, the peak and the low shelf.
//
// When bypassed the audio is left untouched and every band's delay state is
// cleared, so re-enabling does not replay stale state.
func (e *Equalizer) Process(channels [][]float32) {
	if e.bypass.Load() {
		e.Reset()
		return
	}

	mode := design.QMode(e.qMode.Load())
	for _, b := range processingOrder {
		freq, gain, q := e.bands[b].load()
		e.engines[b].SetParameters(freq, gain, q, b.FilterType(), mode)
	}

	for _, b := range processingOrder {
		e.engines[b].Process(channels)
	}
}

// Reset clears the delay state of every band.
func (e *Equalizer) Reset() {
	for _, eng := range e.engines {
		eng.Reset()
	}
}

// IsSmoothing reports whether any band is still ramping.
func (e *Equalizer) IsSmoothing() bool {
	for _, eng := range e.engines {
		if eng.IsSmoothing() {
			return true
		}
	}
	return false
}

// Engine returns the engine of band b, or nil for an unknown band.
func (e *Equalizer) Engine(b Band) *Engine {
	if !b.valid() {
		return nil
	}
	return e.engines[b]
}

// Coefficients returns the running coefficients indexed by Band.
func (e *Equalizer) Coefficients() [NumBands]biquad.Coefficients {
	var out [NumBands]biquad.Coefficients
	for _, b := range Bands {
		out[b] = e.engines[b].Coefficients()
	}
	return out
}

// SampleRate returns the rate passed to Prepare, or the default rate before
// the first Prepare.
func (e *Equalizer) SampleRate() float64 { return e.sampleRate }
