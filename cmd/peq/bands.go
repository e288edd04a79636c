package main

import (
	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/dsp/filter/design"
)

// BandFlags are the equalizer settings shared by process and response.
type BandFlags struct {
	LowFreq   float64 `name:"low-freq" default:"100" help:"Low shelf corner frequency in Hz."`
	LowGain   float64 `name:"low-gain" default:"0" help:"Low shelf gain in dB. Pass cuts as --low-gain=-6."`
	LowSlope  float64 `name:"low-slope" default:"0.707" help:"Low shelf slope."`
	PeakFreq  float64 `name:"peak-freq" default:"1000" help:"Peak centre frequency in Hz."`
	PeakGain  float64 `name:"peak-gain" default:"0" help:"Peak gain in dB. Pass cuts as --peak-gain=-6."`
	PeakQ     float64 `name:"peak-q" default:"0.707" help:"Peak Q."`
	HighFreq  float64 `name:"high-freq" default:"10000" help:"High shelf corner frequency in Hz."`
	HighGain  float64 `name:"high-gain" default:"0" help:"High shelf gain in dB. Pass cuts as --high-gain=-6."`
	HighSlope float64 `name:"high-slope" default:"0.707" help:"High shelf slope."`
	QMode     string  `name:"qmode" default:"constant" help:"Q mode: constant or proportional."`
}

func (b BandFlags) options() ([]eq.Option, error) {
	mode, err := design.ParseQMode(b.QMode)
	if err != nil {
		return nil, err
	}

	return []eq.Option{
		eq.WithBandDefaults(eq.BandLowShelf, b.LowFreq, b.LowGain),
		eq.WithBandQ(eq.BandLowShelf, b.LowSlope),
		eq.WithBandDefaults(eq.BandPeak, b.PeakFreq, b.PeakGain),
		eq.WithBandQ(eq.BandPeak, b.PeakQ),
		eq.WithBandDefaults(eq.BandHighShelf, b.HighFreq, b.HighGain),
		eq.WithBandQ(eq.BandHighShelf, b.HighSlope),
		eq.WithQMode(mode),
	}, nil
}

func (b BandFlags) equalizer() (*eq.Equalizer, error) {
	opts, err := b.options()
	if err != nil {
		return nil, err
	}
	return eq.NewEqualizer(opts...), nil
}
