package eq

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
	"github.com/cwbudde/algo-peq/dsp/filter/design"
)

// Parameter values an Engine starts from after Prepare.
const (
	DefaultFrequency = 1000.0
	DefaultGainDB    = 0.0
	DefaultQ         = 0.707
)

// Minimum parameter changes that trigger a coefficient redesign while a ramp
// is in progress.
const (
	FrequencyThreshold = 0.01
	GainThreshold      = 0.001
	QThreshold         = 0.0001
)

// DefaultSmoothingTimeMs is the ramp length Prepare uses for a
// non-positive smoothing time.
const DefaultSmoothingTimeMs = core.DefaultSmoothingTimeMs

// Engine is one smoothed parametric section over a stereo signal.
//
// SetParameters may be called from any goroutine at any time. All other
// methods belong to the goroutine that calls ProcessBlock.
//
// Targets are handed over through independent atomics, so a block may latch
// a frequency from one SetParameters call and a gain from the next. Each
// smoother ramps toward whatever it last saw, so such a mix heals within one
// ramp.
type Engine struct {
	pending pendingParams
	latched uint64

	sampleRate   float64
	maxBlockSize int
	prepared     bool

	frequency *Smoother
	gainDB    *Smoother
	q         *Smoother

	lastFrequency float64
	lastGainDB    float64
	lastQ         float64

	filterType  design.FilterType
	qMode       design.QMode
	needsDesign bool

	filter biquad.Stereo
}

// pendingParams is written by control goroutines and read by the audio
// goroutine at block boundaries.
type pendingParams struct {
	frequency atomic.Uint32
	gainDB    atomic.Uint32
	q         atomic.Uint32
	typ       atomic.Int32
	mode      atomic.Int32

	generation atomic.Uint64
}

func (p *pendingParams) store(freq, gainDB, q float32, typ design.FilterType, mode design.QMode) {
	p.frequency.Store(math.Float32bits(freq))
	p.gainDB.Store(math.Float32bits(gainDB))
	p.q.Store(math.Float32bits(q))
	p.typ.Store(int32(typ))
	p.mode.Store(int32(mode))
	p.generation.Add(1)
}

// NewEngine returns an unprepared engine. ProcessBlock is a no-op until
// Prepare is called.
func NewEngine() *Engine {
	return &Engine{
		sampleRate:   48000,
		maxBlockSize: 512,
		frequency:    NewSmoother(SmoothingMultiplicative, DefaultFrequency),
		gainDB:       NewSmoother(SmoothingLinear, DefaultGainDB),
		q:            NewSmoother(SmoothingMultiplicative, DefaultQ),
		filter:       biquad.Stereo{Coefficients: biquad.Identity()},
	}
}

// Prepare sets the sample rate and ramp length, restores the default
// parameters (1 kHz, 0 dB, Q 0.707, peaking, constant Q), clears the filter
// state and designs the initial coefficients. A non-positive smoothingTimeMs
// selects DefaultSmoothingTimeMs.
//
// Targets set through SetParameters before Prepare are picked up by the
// next block and ramped to from the defaults.
func (e *Engine) Prepare(sampleRate float64, maxBlockSize int, smoothingTimeMs float64) {
	if smoothingTimeMs <= 0 {
		smoothingTimeMs = DefaultSmoothingTimeMs
	}
	e.prepare(sampleRate, maxBlockSize, smoothingTimeMs/1000)
}

// PrepareConfig is Prepare driven by a processor config. Unlike Prepare, a
// zero SmoothingTimeMs disables ramping.
func (e *Engine) PrepareConfig(cfg core.ProcessorConfig) {
	e.prepare(cfg.SampleRate, cfg.BlockSize, math.Max(cfg.SmoothingTimeMs, 0)/1000)
}

func (e *Engine) prepare(sampleRate float64, maxBlockSize int, rampSeconds float64) {
	e.sampleRate = sampleRate
	e.maxBlockSize = maxBlockSize

	for _, s := range e.smoothers() {
		s.Reset(sampleRate, rampSeconds)
	}

	e.frequency.SetCurrentAndTarget(DefaultFrequency)
	e.gainDB.SetCurrentAndTarget(DefaultGainDB)
	e.q.SetCurrentAndTarget(DefaultQ)
	e.filterType = design.Peaking
	e.qMode = design.ConstantQ

	e.filter.Reset()
	e.updateCoefficients()
	e.prepared = true
}

// SetParameters sets new targets. It never blocks or allocates and is safe
// to call concurrently with ProcessBlock. The values take effect at the
// start of the next block.
func (e *Engine) SetParameters(freq, gainDB, q float32, typ design.FilterType, mode design.QMode) {
	e.pending.store(freq, gainDB, q, typ, mode)
}

// SetParametersImmediate jumps to the given parameters with no ramp and
// redesigns the coefficients right away.
func (e *Engine) SetParametersImmediate(freq, gainDB, q float32, typ design.FilterType, mode design.QMode) {
	e.pending.store(freq, gainDB, q, typ, mode)
	e.latched = e.pending.generation.Load()

	e.frequency.SetCurrentAndTarget(float64(freq))
	e.gainDB.SetCurrentAndTarget(float64(gainDB))
	e.q.SetCurrentAndTarget(float64(q))
	e.filterType = typ
	e.qMode = mode

	e.updateCoefficients()
}

// ProcessBlock filters the first n frames of left and right in place.
// It is a no-op before Prepare, for n <= 0, or when either channel is
// shorter than n.
//
// While any parameter is ramping the block runs sample by sample and the
// coefficients are redesigned whenever a parameter moves past its
// threshold. Once settled the whole block goes through the vector kernel.
func (e *Engine) ProcessBlock(left, right []float32, n int) {
	if !e.prepared || n <= 0 || len(left) < n || len(right) < n {
		return
	}

	left, right = left[:n], right[:n]

	e.latchPending()

	if e.needsDesign {
		e.updateCoefficients()
	}

	if !e.IsSmoothing() {
		e.filter.ProcessBlock(left, right)
		return
	}

	for i := range left {
		freq := e.frequency.Next()
		gain := e.gainDB.Next()
		q := e.q.Next()

		settled := !e.IsSmoothing()

		if settled {
			if freq != e.lastFrequency || gain != e.lastGainDB || q != e.lastQ {
				e.design(freq, gain, q)
			}
		} else if math.Abs(freq-e.lastFrequency) > FrequencyThreshold ||
			math.Abs(gain-e.lastGainDB) > GainThreshold ||
			math.Abs(q-e.lastQ) > QThreshold {
			e.design(freq, gain, q)
		}

		left[i], right[i] = e.filter.ProcessPair(left[i], right[i])

		if settled {
			e.filter.ProcessBlock(left[i+1:], right[i+1:])
			return
		}
	}
}

// Process filters channels[0] and channels[1] in place. Fewer than two
// channels is a no-op. Extra channels are left untouched.
func (e *Engine) Process(channels [][]float32) {
	if len(channels) < 2 {
		return
	}
	n := min(len(channels[0]), len(channels[1]))
	e.ProcessBlock(channels[0], channels[1], n)
}

// Reset clears the filter delay state. Coefficients, smoothing progress and
// targets are kept.
func (e *Engine) Reset() {
	e.filter.Reset()
}

// IsSmoothing reports whether any parameter is still ramping.
func (e *Engine) IsSmoothing() bool {
	return e.frequency.IsSmoothing() || e.gainDB.IsSmoothing() || e.q.IsSmoothing()
}

// Prepared reports whether Prepare has been called.
func (e *Engine) Prepared() bool { return e.prepared }

// SampleRate returns the rate passed to Prepare.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// MaxBlockSize returns the block size hint passed to Prepare.
func (e *Engine) MaxBlockSize() int { return e.maxBlockSize }

// CurrentFrequency returns the smoothed frequency in Hz.
func (e *Engine) CurrentFrequency() float64 { return e.frequency.Current() }

// CurrentGainDB returns the smoothed gain in dB.
func (e *Engine) CurrentGainDB() float64 { return e.gainDB.Current() }

// CurrentQ returns the smoothed Q or shelf slope.
func (e *Engine) CurrentQ() float64 { return e.q.Current() }

// FilterType returns the latched filter type.
func (e *Engine) FilterType() design.FilterType { return e.filterType }

// QMode returns the latched Q mode.
func (e *Engine) QMode() design.QMode { return e.qMode }

// Coefficients returns the coefficients the filter is running with.
func (e *Engine) Coefficients() biquad.Coefficients { return e.filter.Coefficients }

// latchPending moves targets published by SetParameters into the smoothers.
func (e *Engine) latchPending() {
	gen := e.pending.generation.Load()
	if gen == e.latched {
		return
	}
	e.latched = gen

	e.frequency.SetTarget(float64(math.Float32frombits(e.pending.frequency.Load())))
	e.gainDB.SetTarget(float64(math.Float32frombits(e.pending.gainDB.Load())))
	e.q.SetTarget(float64(math.Float32frombits(e.pending.q.Load())))

	typ := design.FilterType(e.pending.typ.Load())
	mode := design.QMode(e.pending.mode.Load())
	if typ != e.filterType || mode != e.qMode {
		e.filterType = typ
		e.qMode = mode
		e.needsDesign = true
	}

	// Without a ramp the smoothers jump straight to the new targets.
	if !e.IsSmoothing() && (e.frequency.Current() != e.lastFrequency ||
		e.gainDB.Current() != e.lastGainDB || e.q.Current() != e.lastQ) {
		e.needsDesign = true
	}
}

func (e *Engine) updateCoefficients() {
	e.design(e.frequency.Current(), e.gainDB.Current(), e.q.Current())
}

func (e *Engine) design(freq, gain, q float64) {
	e.lastFrequency = freq
	e.lastGainDB = gain
	e.lastQ = q
	e.needsDesign = false

	e.filter.SetCoefficients(design.Parametric(e.sampleRate, freq, gain, q, e.qMode, e.filterType))
}

func (e *Engine) smoothers() [3]*Smoother {
	return [3]*Smoother{e.frequency, e.gainDB, e.q}
}
