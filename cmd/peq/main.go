// Command peq runs the three-band parametric equalizer offline.
//
// Usage:
//
//	peq process [flags] input.wav output.wav
//	peq check [flags]
//	peq response [flags]
//
// Negative values must be joined to their flag with "=", as in
// --peak-gain=-4, or they are read as a short flag.
//
// Examples:
//
//	peq process --peak-freq 2500 --peak-gain=-4 in.wav out.wav
//	peq process --low-gain 3 --high-gain=-2 --qmode proportional in.wav out.wav
//	peq check --freq 1000 --gain 24 --slope 10
//	peq response --peak-gain 6 --peak-q 2 --measured
package main

import (
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-peq/internal/cli"
)

var version = "0.1.0"

// Globals are shared by every sub-command.
type Globals struct {
	Verbose bool `short:"v" help:"Log progress to stderr."`

	out    io.Writer
	logger *log.Logger
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Version  kong.VersionFlag `help:"Show version information."`
	Process  ProcessCmd       `cmd:"" help:"Equalize a WAV file."`
	Check    CheckCmd         `cmd:"" help:"Probe the shelf designs for non-finite coefficients."`
	Response ResponseCmd      `cmd:"" help:"Print the combined magnitude response."`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var c CLI
	parser, err := kong.New(&c,
		kong.Name("peq"),
		kong.Description("Three-band parametric equalizer"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	c.out = stdout
	c.logger = log.New(io.Discard, "peq: ", log.Ltime)
	if c.Verbose {
		c.logger.SetOutput(stderr)
	}

	return ctx.Run(&c.Globals)
}
