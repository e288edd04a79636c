package main

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-peq/internal/testutil"
	"github.com/cwbudde/algo-peq/internal/wavio"
)

func runPeq(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), err
}

func writeNoise(t *testing.T, frames int) string {
	t.Helper()
	left, right := testutil.StereoNoise32(11, 0.25, frames)
	path := filepath.Join(t.TempDir(), "in.wav")
	require.NoError(t, wavio.WriteFile(path, &wavio.Audio{SampleRate: 48000, BitDepth: 24, Left: left, Right: right}))
	return path
}

func TestCheckPasses(t *testing.T) {
	out, err := runPeq(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "lowshelf finite=true")
	assert.Contains(t, out, "highshelf finite=true")
	assert.Contains(t, out, "Slope limit")
}

func TestCheckPassesOnClampedShelf(t *testing.T) {
	// S=10 is clamped at 10 dB, leaving the poles on the unit circle.
	out, err := runPeq(t, "check", "--gain", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "lowshelf finite=true pole radius=1.0000")
	assert.Contains(t, out, "highshelf finite=true pole radius=1.0000")
}

func TestCheckFlatGainHasNoSlopeLimit(t *testing.T) {
	out, err := runPeq(t, "check", "--gain", "0", "--slope", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "Slope limit")
}

func TestProcessFlatIsTransparent(t *testing.T) {
	in := writeNoise(t, 3000)
	out := filepath.Join(t.TempDir(), "out.wav")

	stdout, err := runPeq(t, "process", in, out, "--block", "256")
	require.NoError(t, err)
	assert.Contains(t, stdout, "48000 Hz, 24-bit")

	src, err := wavio.ReadFile(in)
	require.NoError(t, err)
	dst, err := wavio.ReadFile(out)
	require.NoError(t, err)

	require.Equal(t, src.Frames(), dst.Frames())
	assert.InDeltaSlice(t, toF64(src.Left), toF64(dst.Left), 1e-6)
	assert.InDeltaSlice(t, toF64(src.Right), toF64(dst.Right), 1e-6)
}

func TestProcessAppliesGain(t *testing.T) {
	in := writeNoise(t, 4800)
	out := filepath.Join(t.TempDir(), "out.wav")

	_, err := runPeq(t, "process", in, out, "--output-gain=-6.0206", "--bit-depth", "16")
	require.NoError(t, err)

	src, err := wavio.ReadFile(in)
	require.NoError(t, err)
	dst, err := wavio.ReadFile(out)
	require.NoError(t, err)

	assert.Equal(t, 16, dst.BitDepth)
	for i := range src.Left {
		require.InDelta(t, src.Left[i]/2, dst.Left[i], 1e-4, "frame %d", i)
	}
}

func TestProcessChangesSignal(t *testing.T) {
	in := writeNoise(t, 4800)
	out := filepath.Join(t.TempDir(), "out.wav")

	_, err := runPeq(t, "process", in, out, "--peak-gain", "12", "--peak-freq", "2000", "--qmode", "proportional")
	require.NoError(t, err)

	src, err := wavio.ReadFile(in)
	require.NoError(t, err)
	dst, err := wavio.ReadFile(out)
	require.NoError(t, err)

	assert.Greater(t, rms(dst.Left), rms(src.Left))
}

func TestProcessNegativeBandGain(t *testing.T) {
	in := writeNoise(t, 4800)
	out := filepath.Join(t.TempDir(), "out.wav")

	_, err := runPeq(t, "process", in, out, "--low-gain=-6", "--peak-gain=-9", "--high-gain=-6")
	require.NoError(t, err)

	src, err := wavio.ReadFile(in)
	require.NoError(t, err)
	dst, err := wavio.ReadFile(out)
	require.NoError(t, err)

	assert.Less(t, rms(dst.Left), rms(src.Left))
	assert.Less(t, rms(dst.Right), rms(src.Right))
}

func TestProcessErrors(t *testing.T) {
	in := writeNoise(t, 64)
	out := filepath.Join(t.TempDir(), "out.wav")

	_, err := runPeq(t, "process", in, out, "--qmode", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown Q mode")

	_, err = runPeq(t, "process", in, out, "--block", "0")
	require.Error(t, err)

	_, err = runPeq(t, "process", filepath.Join(t.TempDir(), "missing.wav"), out)
	require.Error(t, err)
}

func TestResponseTable(t *testing.T) {
	out, err := runPeq(t, "response", "--points", "4", "--peak-gain", "6", "--measured")
	require.NoError(t, err)

	assert.Contains(t, out, "Frequency")
	assert.Contains(t, out, "Measured")
	assert.Contains(t, out, "20.0 Hz")
	assert.Contains(t, out, "20.00 kHz")
	assert.Contains(t, out, "Max deviation")
}

func TestResponseRejectsBadPoints(t *testing.T) {
	_, err := runPeq(t, "response", "--points", "0")
	require.Error(t, err)
}

func toF64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = float64(x)
	}
	return out
}

func rms(x []float32) float64 {
	sum := 0.0
	for _, v := range x {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(x)))
}

func TestVerboseLogsProgress(t *testing.T) {
	in := writeNoise(t, 4800)
	out := filepath.Join(t.TempDir(), "out.wav")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"--verbose", "process", in, out}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "progress: ")

	stderr.Reset()
	require.NoError(t, run([]string{"process", in, out}, &stdout, &stderr))
	assert.Empty(t, stderr.String())
}
