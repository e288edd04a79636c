package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/tphakala/simd/f32"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/internal/cli"
	"github.com/cwbudde/algo-peq/internal/wavio"
)

var errEmptyInput = errors.New("input has no samples")

// progressInterval is the spacing of verbose progress lines in percent.
const progressInterval = 25

// ProcessCmd equalizes a WAV file.
type ProcessCmd struct {
	BandFlags

	Input       string  `arg:"" type:"existingfile" help:"Input WAV file."`
	Output      string  `arg:"" type:"path" help:"Output WAV file."`
	OutputGain  float64 `name:"output-gain" default:"0" help:"Gain applied after the equalizer in dB. Pass cuts as --output-gain=-6."`
	Block       int     `default:"512" help:"Frames per processing block."`
	SmoothingMs float64 `name:"smoothing-ms" default:"20" help:"Parameter ramp time in milliseconds."`
	BitDepth    int     `name:"bit-depth" default:"0" help:"Output bit depth (16, 24, 32). 0 keeps the input depth."`
}

// Run executes the command.
func (c *ProcessCmd) Run(g *Globals) error {
	if c.Block <= 0 {
		return fmt.Errorf("block size must be positive: %d", c.Block)
	}

	start := time.Now()
	audio, err := wavio.ReadFile(c.Input)
	if err != nil {
		return err
	}
	if audio.Frames() == 0 {
		return fmt.Errorf("%s: %w", c.Input, errEmptyInput)
	}
	g.logger.Printf("read %s: %d Hz, %d-bit, %d frames", c.Input, audio.SampleRate, audio.BitDepth, audio.Frames())

	e, err := c.equalizer()
	if err != nil {
		return err
	}
	e.Prepare(core.ApplyProcessorOptions(
		core.WithSampleRate(float64(audio.SampleRate)),
		core.WithBlockSize(c.Block),
		core.WithSmoothingTime(c.SmoothingMs),
	))

	frames := audio.Frames()
	channels := make([][]float32, 2)
	lastProgress := 0
	for pos := 0; pos < frames; pos += c.Block {
		end := min(pos+c.Block, frames)
		channels[0], channels[1] = audio.Left[pos:end], audio.Right[pos:end]
		e.Process(channels)

		if progress := end * 100 / frames; progress >= lastProgress+progressInterval {
			g.logger.Printf("progress: %d%%", progress)
			lastProgress = progress
		}
	}

	if c.OutputGain != 0 {
		gain := float32(core.DBToLinear(c.OutputGain))
		f32.Scale(audio.Left, audio.Left, gain)
		f32.Scale(audio.Right, audio.Right, gain)
	}

	if c.BitDepth != 0 {
		audio.BitDepth = c.BitDepth
	}
	if err := wavio.WriteFile(c.Output, audio); err != nil {
		return err
	}

	elapsed := time.Since(start)
	cli.PrintTitle(g.out, "peq process")
	cli.PrintKV(g.out, "Input", c.Input)
	cli.PrintKV(g.out, "Output", c.Output)
	cli.PrintKV(g.out, "Format", fmt.Sprintf("%d Hz, %d-bit", audio.SampleRate, audio.BitDepth))
	cli.PrintKV(g.out, "Duration", fmt.Sprintf("%.2fs", audio.Duration()))
	if elapsed > 0 {
		cli.PrintKV(g.out, "Speed", fmt.Sprintf("%.1fx realtime", audio.Duration()/elapsed.Seconds()))
	}
	return nil
}
