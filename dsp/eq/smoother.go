package eq

import "math"

// SmoothingType selects how a Smoother steps toward its target.
type SmoothingType int

const (
	// SmoothingLinear adds a constant step each sample. Used for gain in dB.
	SmoothingLinear SmoothingType = iota

	// SmoothingMultiplicative multiplies by a constant ratio each sample,
	// which is linear on a log axis. Used for frequency and Q.
	SmoothingMultiplicative
)

// minMultiplicativeValue floors multiplicative smoothers so the log-domain
// step stays finite.
const minMultiplicativeValue = 1e-9

// Smoother ramps a control value to its target over a fixed number of
// samples. A new target restarts the full ramp from the current value.
//
// The zero value is a linear smoother with no ramp.
type Smoother struct {
	kind SmoothingType

	current float64
	target  float64
	step    float64

	countdown     int
	stepsToTarget int
}

// NewSmoother returns a settled smoother of the given kind at value.
func NewSmoother(kind SmoothingType, value float64) *Smoother {
	s := &Smoother{kind: kind}
	s.SetCurrentAndTarget(value)
	return s
}

// Type returns the smoothing kind.
func (s *Smoother) Type() SmoothingType { return s.kind }

// Reset sets the ramp length to floor(rampSeconds*sampleRate) samples and
// jumps to the current target. A ramp length of zero disables smoothing.
func (s *Smoother) Reset(sampleRate, rampSeconds float64) {
	steps := 0
	if sampleRate > 0 && rampSeconds > 0 {
		steps = int(math.Floor(rampSeconds * sampleRate))
	}
	s.ResetSteps(steps)
}

// ResetSteps sets the ramp length in samples and jumps to the current target.
func (s *Smoother) ResetSteps(steps int) {
	s.stepsToTarget = max(steps, 0)
	s.SetCurrentAndTarget(s.target)
}

// SetCurrentAndTarget jumps to v with no ramp.
func (s *Smoother) SetCurrentAndTarget(v float64) {
	v = s.sanitize(v)
	s.current = v
	s.target = v
	s.countdown = 0
}

// SetTarget starts a ramp from the current value to v. Setting the same
// target again leaves an in-progress ramp alone.
func (s *Smoother) SetTarget(v float64) {
	v = s.sanitize(v)
	if v == s.target {
		return
	}

	if s.stepsToTarget <= 0 {
		s.SetCurrentAndTarget(v)
		return
	}

	s.target = v
	s.countdown = s.stepsToTarget

	switch s.kind {
	case SmoothingMultiplicative:
		s.step = math.Exp((math.Log(s.target) - math.Log(s.current)) / float64(s.countdown))
	default:
		s.step = (s.target - s.current) / float64(s.countdown)
	}
}

// Next advances one sample and returns the new current value. The last step
// of a ramp lands on the target exactly.
func (s *Smoother) Next() float64 {
	if s.countdown <= 0 {
		return s.target
	}

	s.countdown--

	if s.countdown == 0 {
		s.current = s.target
		return s.current
	}

	if s.kind == SmoothingMultiplicative {
		s.current *= s.step
	} else {
		s.current += s.step
	}

	return s.current
}

// Current returns the most recent value.
func (s *Smoother) Current() float64 { return s.current }

// Target returns the value being ramped to.
func (s *Smoother) Target() float64 { return s.target }

// IsSmoothing reports whether a ramp is in progress.
func (s *Smoother) IsSmoothing() bool { return s.countdown > 0 }

// RemainingSteps returns the number of samples left in the current ramp.
func (s *Smoother) RemainingSteps() int { return s.countdown }

func (s *Smoother) sanitize(v float64) float64 {
	if s.kind == SmoothingMultiplicative && !(v >= minMultiplicativeValue) {
		return minMultiplicativeValue
	}
	return v
}
