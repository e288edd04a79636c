package design

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by the name parsers.
var (
	ErrUnknownFilterType = errors.New("design: unknown filter type")
	ErrUnknownQMode      = errors.New("design: unknown Q mode")
)

// FilterType selects the parametric section shape.
type FilterType int

const (
	// Peaking boosts or cuts a band around the center frequency. The third
	// control parameter is the quality factor Q.
	Peaking FilterType = iota

	// LowShelf boosts or cuts everything below the corner frequency. The
	// third control parameter is the shelf slope S.
	LowShelf

	// HighShelf boosts or cuts everything above the corner frequency. The
	// third control parameter is the shelf slope S.
	HighShelf
)

// String returns the canonical lower-case name.
func (t FilterType) String() string {
	switch t {
	case Peaking:
		return "peaking"
	case LowShelf:
		return "lowshelf"
	case HighShelf:
		return "highshelf"
	default:
		return fmt.Sprintf("FilterType(%d)", int(t))
	}
}

// ParseFilterType maps a case-insensitive name to a FilterType.
func ParseFilterType(name string) (FilterType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "peak", "peaking", "bell":
		return Peaking, nil
	case "lowshelf", "low-shelf", "low_shelf", "ls":
		return LowShelf, nil
	case "highshelf", "high-shelf", "high_shelf", "hs":
		return HighShelf, nil
	default:
		return Peaking, fmt.Errorf("%w: %q", ErrUnknownFilterType, name)
	}
}

// QMode selects how the Q control is interpreted for Peaking sections.
// Shelves ignore it.
type QMode int

const (
	// ConstantQ uses the Q control unmodified.
	ConstantQ QMode = iota

	// ProportionalQ raises the peaking Q, narrowing the band, as |gain|
	// grows; the Q control becomes a multiplier on the gain-derived Q.
	ProportionalQ
)

// String returns the canonical lower-case name.
func (m QMode) String() string {
	switch m {
	case ConstantQ:
		return "constant"
	case ProportionalQ:
		return "proportional"
	default:
		return fmt.Sprintf("QMode(%d)", int(m))
	}
}

// ParseQMode maps a case-insensitive name to a QMode.
func ParseQMode(name string) (QMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "constant", "constant-q", "constant_q", "cq":
		return ConstantQ, nil
	case "proportional", "proportional-q", "proportional_q", "pq":
		return ProportionalQ, nil
	default:
		return ConstantQ, fmt.Errorf("%w: %q", ErrUnknownQMode, name)
	}
}
