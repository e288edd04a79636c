// Package wavio reads and writes stereo PCM WAV files as float32 channels.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f32"
)

const wavFormatPCM = 1

var (
	ErrInvalidFile         = errors.New("wavio: invalid WAV file")
	ErrUnsupportedChannels = errors.New("wavio: only mono and stereo files are supported")
	ErrUnsupportedBitDepth = errors.New("wavio: unsupported bit depth")
	ErrChannelMismatch     = errors.New("wavio: left and right differ in length")
)

// Audio is a decoded stereo signal. Mono files are duplicated onto both
// channels.
type Audio struct {
	SampleRate int
	BitDepth   int
	Left       []float32
	Right      []float32
}

// Frames returns the number of sample frames.
func (a *Audio) Frames() int { return len(a.Left) }

// Duration returns the signal length in seconds.
func (a *Audio) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(a.Frames()) / float64(a.SampleRate)
}

// Channels returns the channels in the layout Process methods take.
func (a *Audio) Channels() [][]float32 { return [][]float32{a.Left, a.Right} }

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return math.Exp2(float64(bitDepth-1)) - 1, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// Read decodes a 16, 24 or 32-bit PCM WAV stream.
func Read(r io.ReadSeeker) (*Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: read samples: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	maxVal, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	channels := int(dec.NumChans)
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, channels)
	}

	frames := len(buf.Data) / channels
	a := &Audio{
		SampleRate: int(dec.SampleRate),
		BitDepth:   bitDepth,
		Left:       make([]float32, frames),
		Right:      make([]float32, frames),
	}

	for i := range frames {
		a.Left[i] = float32(buf.Data[i*channels])
		a.Right[i] = float32(buf.Data[i*channels+channels-1])
	}
	scale := float32(1 / maxVal)
	f32.Scale(a.Left, a.Left, scale)
	f32.Scale(a.Right, a.Right, scale)

	return a, nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavio: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Write encodes a as a stereo PCM WAV stream at a.BitDepth, clipping samples
// to full scale.
func Write(w io.WriteSeeker, a *Audio) error {
	if len(a.Left) != len(a.Right) {
		return fmt.Errorf("%w: %d != %d", ErrChannelMismatch, len(a.Left), len(a.Right))
	}
	maxVal, err := fullScale(a.BitDepth)
	if err != nil {
		return err
	}

	interleaved := make([]float32, 2*len(a.Left))
	f32.Interleave2(interleaved, a.Left, a.Right)

	data := make([]int, len(interleaved))
	for i, x := range interleaved {
		v := math.Round(float64(x) * maxVal)
		data[i] = int(max(-maxVal-1, min(maxVal, v)))
	}

	enc := wav.NewEncoder(w, a.SampleRate, a.BitDepth, 2, wavFormatPCM)
	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: a.SampleRate},
		Data:           data,
		SourceBitDepth: a.BitDepth,
	})
	if err != nil {
		return fmt.Errorf("wavio: write samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: finalize: %w", err)
	}
	return nil
}

// WriteFile encodes a into a new file at path.
func WriteFile(path string, a *Audio) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("wavio: %w", cerr)
		}
	}()

	return Write(f, a)
}
