package main

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/filter/design"
	"github.com/cwbudde/algo-peq/internal/cli"
)

var errProbeFailed = errors.New("shelf probe produced unusable coefficients")

// CheckCmd designs both shelves at one operating point and verifies the
// coefficients are finite. The pole radius is reported for information:
// shelves clamped to the slope limit have their poles on the unit circle.
type CheckCmd struct {
	SampleRate float64 `name:"sample-rate" default:"48000" help:"Sample rate in Hz."`
	Freq       float64 `default:"1000" help:"Corner frequency in Hz."`
	Gain       float64 `default:"24" help:"Shelf gain in dB."`
	Slope      float64 `default:"10" help:"Shelf slope."`
}

// Run executes the command.
func (c *CheckCmd) Run(g *Globals) error {
	cli.PrintTitle(g.out, "peq check")
	cli.PrintKV(g.out, "Sample rate", c.SampleRate)
	cli.PrintKV(g.out, "Frequency", cli.FormatHz(c.Freq))
	cli.PrintKV(g.out, "Gain", cli.FormatDB(c.Gain))
	cli.PrintKV(g.out, "Slope", c.Slope)
	if limit, ok := design.ShelfSlopeLimit(c.Gain); ok {
		cli.PrintKV(g.out, "Slope limit", fmt.Sprintf("%.4f", limit))
	}

	failed := false
	for _, typ := range []design.FilterType{design.LowShelf, design.HighShelf} {
		coeffs := design.Parametric(c.SampleRate, c.Freq, c.Gain, c.Slope, design.ConstantQ, typ)
		finite := coeffs.IsFinite()
		g.logger.Printf("%s: %+v", typ, coeffs)

		cli.PrintStatus(g.out, finite, fmt.Sprintf("%s finite=%t pole radius=%.6f", typ, finite, coeffs.PoleRadius()))
		failed = failed || !finite
	}

	if failed {
		return errProbeFailed
	}
	return nil
}
