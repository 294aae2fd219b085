// Package theme defines the token-set parameter genome, the per-mode search
// space over it, and the deterministic builder that turns parameters into
// design tokens.
package theme

import (
	"fmt"
	"strings"
)

// Mode is the theme polarity.
type Mode string

const (
	// ModeLight is dark text on light layers.
	ModeLight Mode = "light"
	// ModeDark is light text on dark layers.
	ModeDark Mode = "dark"
)

// String returns the string representation of a Mode.
func (m Mode) String() string {
	return string(m)
}

// ParseMode parses "light" or "dark".
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight:
		return ModeLight, nil
	case ModeDark:
		return ModeDark, nil
	default:
		return "", fmt.Errorf("unknown mode %q (must be light or dark)", s)
	}
}

// direction is the sign of a lightness step away from the page background:
// layers and interaction states darken in light mode and lighten in dark mode.
func (m Mode) direction() float64 {
	if m == ModeDark {
		return 1
	}
	return -1
}

// FocusSource selects which brand role the focus ring is derived from.
type FocusSource int

const (
	// FocusPrimary derives the ring from the brand primary.
	FocusPrimary FocusSource = iota
	// FocusSecondary derives the ring from the secondary role.
	FocusSecondary
	// FocusAccent derives the ring from the accent role.
	FocusAccent

	focusSourceCount = 3
)

// String returns the string representation of a FocusSource.
func (f FocusSource) String() string {
	switch f {
	case FocusPrimary:
		return "primary"
	case FocusSecondary:
		return "secondary"
	case FocusAccent:
		return "accent"
	default:
		return "unknown"
	}
}

// Semantic role indices into the Params semantic arrays.
const (
	Success = iota
	Warning
	Danger
	Info

	SemanticCount
)

// SemanticNames are the role names in index order.
var SemanticNames = [SemanticCount]string{"success", "warning", "danger", "info"}

// Params is one point in the search space. It is a plain value: copying a
// Params yields an independent snapshot, so the optimiser can keep a
// best-so-far candidate without defensive copies.
type Params struct {
	// Page background lightness and the two layering steps below/above it.
	BackgroundL   float64
	SurfaceDelta  float64
	Surface2Delta float64

	TextPrimaryL   float64
	TextSecondaryL float64
	TextTertiaryL  float64
	TextChroma     float64

	SecondaryHue    float64
	SecondaryChroma float64
	SecondaryL      float64

	AccentHue    float64
	AccentChroma float64
	AccentL      float64

	// Neutral hue is SeedHue + NeutralHueOffset.
	NeutralHueOffset float64
	NeutralChroma    float64

	SemanticL      [SemanticCount]float64
	SemanticChroma [SemanticCount]float64
	SemanticHue    [SemanticCount]float64

	BorderDelta       float64
	DividerDelta      float64
	BorderChromaScale float64

	FocusSource FocusSource
	FocusBoost  float64
	FocusL      float64

	SeedHue float64
}
