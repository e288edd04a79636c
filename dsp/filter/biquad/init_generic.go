//go:build purego || (!amd64 && !arm64)

package biquad

import (
	_ "github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/generic"
	_ "github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/registry"
)
