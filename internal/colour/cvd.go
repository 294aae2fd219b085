package colour

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// CVDMode names a colour-vision deficiency simulation.
type CVDMode string

const (
	// CVDNone is normal colour vision (identity).
	CVDNone CVDMode = "none"
	// CVDProtan approximates protanopia.
	CVDProtan CVDMode = "protan"
	// CVDDeutan approximates deuteranopia.
	CVDDeutan CVDMode = "deutan"
	// CVDTritan approximates tritanopia.
	CVDTritan CVDMode = "tritan"
)

// AllCVDModes lists every supported mode, identity first.
func AllCVDModes() []CVDMode {
	return []CVDMode{CVDNone, CVDProtan, CVDDeutan, CVDTritan}
}

// ParseCVDMode accepts the mode names plus the long forms "protanopia",
// "deuteranopia" and "tritanopia".
func ParseCVDMode(s string) (CVDMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return CVDNone, nil
	case "protan", "protanopia":
		return CVDProtan, nil
	case "deutan", "deuteranopia":
		return CVDDeutan, nil
	case "tritan", "tritanopia":
		return CVDTritan, nil
	default:
		return "", fmt.Errorf("unknown CVD mode %q (must be none, protan, deutan or tritan)", s)
	}
}

type matrix3 [3][3]float64

// Linear approximations applied directly to sRGB channel values. They are
// not physiologically exact models. Rows sum to 1 so greys stay grey.
var cvdMatrices = map[CVDMode]matrix3{
	CVDProtan: {
		{0.567, 0.433, 0.000},
		{0.558, 0.442, 0.000},
		{0.000, 0.242, 0.758},
	},
	CVDDeutan: {
		{0.625, 0.375, 0.000},
		{0.700, 0.300, 0.000},
		{0.000, 0.300, 0.700},
	},
	CVDTritan: {
		{0.950, 0.050, 0.000},
		{0.000, 0.433, 0.567},
		{0.000, 0.475, 0.525},
	},
}

// Simulate returns c as seen under mode, clamped to [0,1]. CVDNone and unknown
// modes return c unchanged.
func Simulate(c colorful.Color, mode CVDMode) colorful.Color {
	m, ok := cvdMatrices[mode]
	if !ok {
		return c
	}
	return colorful.Color{
		R: Clamp01(m[0][0]*c.R + m[0][1]*c.G + m[0][2]*c.B),
		G: Clamp01(m[1][0]*c.R + m[1][1]*c.G + m[1][2]*c.B),
		B: Clamp01(m[2][0]*c.R + m[2][1]*c.G + m[2][2]*c.B),
	}
}

// ApplyCVD simulates mode on a hex colour and returns the canonical hex result.
func ApplyCVD(hex string, mode CVDMode) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return FormatHex(Simulate(c, mode)), nil
}
