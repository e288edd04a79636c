package main

import (
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/internal/cli"
	"github.com/cwbudde/algo-peq/measure/response"
)

// ResponseCmd tabulates the equalizer response on a log frequency grid.
type ResponseCmd struct {
	BandFlags

	SampleRate float64 `name:"sample-rate" default:"48000" help:"Sample rate in Hz."`
	Points     int     `default:"31" help:"Number of log-spaced frequencies between 20 Hz and 20 kHz."`
	Measured   bool    `help:"Add the response measured from the running equalizer."`
	FFTSize    int     `name:"fft-size" default:"8192" help:"FFT size of the measurement."`
}

// Run executes the command.
func (c *ResponseCmd) Run(g *Globals) error {
	if c.Points <= 0 {
		return fmt.Errorf("points must be positive: %d", c.Points)
	}

	e, err := c.equalizer()
	if err != nil {
		return err
	}
	e.Prepare(core.ApplyProcessorOptions(core.WithSampleRate(c.SampleRate)))

	freqs := eq.LogFrequencies(c.Points, eq.ResponseMinFrequency, min(eq.ResponseMaxFrequency, c.SampleRate/2))
	total := e.ResponseDB(freqs)
	var bands [eq.NumBands][]float64
	for _, b := range eq.Bands {
		bands[b] = e.BandResponseDB(b, freqs)
	}

	headers := []string{"Frequency", "Low", "Peak", "High", "Total"}
	var measured []float64
	if c.Measured {
		res, err := response.Measure(e, response.Config{SampleRate: c.SampleRate, FFTSize: c.FFTSize})
		if err != nil {
			return err
		}
		if measured, err = res.At(freqs); err != nil {
			return err
		}
		headers = append(headers, "Measured")
		g.logger.Printf("measured %d bins, peak %.2f dB at %.1f Hz", len(res.LeftDB), res.PeakDB, res.PeakFrequency)
	}

	rows := make([][]string, len(freqs))
	for i, f := range freqs {
		row := []string{
			cli.FormatHz(f),
			cli.FormatDB(bands[eq.BandLowShelf][i]),
			cli.FormatDB(bands[eq.BandPeak][i]),
			cli.FormatDB(bands[eq.BandHighShelf][i]),
			cli.FormatDB(total[i]),
		}
		if measured != nil {
			row = append(row, cli.FormatDB(measured[i]))
		}
		rows[i] = row
	}

	cli.PrintTitle(g.out, "peq response")
	fmt.Fprintln(g.out, cli.RenderTable(headers, rows))

	if measured != nil {
		dev, err := response.MaxDeviationDB(measured, total)
		if err != nil {
			return err
		}
		cli.PrintKV(g.out, "Max deviation", fmt.Sprintf("%.4f dB", dev))
	}
	return nil
}
