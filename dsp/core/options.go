package core

// DefaultSmoothingTimeMs is the parameter ramp length used when none is set.
const DefaultSmoothingTimeMs = 20.0

// ProcessorConfig defines common DSP processing settings.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int

	// SmoothingTimeMs is the length of parameter ramps in milliseconds.
	// Zero disables smoothing.
	SmoothingTimeMs float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns sensible defaults for offline and streaming use.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:      48000,
		BlockSize:       1024,
		SmoothingTimeMs: DefaultSmoothingTimeMs,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithSmoothingTime sets the parameter ramp length in milliseconds.
// Zero disables smoothing; negative values are ignored.
func WithSmoothingTime(ms float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if ms >= 0 {
			cfg.SmoothingTimeMs = ms
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
