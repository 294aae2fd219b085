package colour

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Level is a WCAG conformance level.
type Level string

const (
	// LevelAA requires 4.5:1 for normal text and 3:1 for large text.
	LevelAA Level = "AA"
	// LevelAAA requires 7:1 for normal text and 4.5:1 for large text.
	LevelAAA Level = "AAA"
)

// ParseLevel parses "AA" or "AAA" case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToUpper(strings.TrimSpace(s))) {
	case LevelAA:
		return LevelAA, nil
	case LevelAAA:
		return LevelAAA, nil
	default:
		return "", fmt.Errorf("unknown contrast level %q (must be AA or AAA)", s)
	}
}

// TextSize selects which of a level's two thresholds applies to a pair.
type TextSize string

const (
	// TextNormal is body text.
	TextNormal TextSize = "normal"
	// TextLarge is large or bold text, and non-text UI components.
	TextLarge TextSize = "large"
)

// Threshold holds the minimum contrast ratios for a level.
type Threshold struct {
	Normal float64 `json:"normal"`
	Large  float64 `json:"large"`
}

// For returns the minimum ratio for size.
func (t Threshold) For(size TextSize) float64 {
	if size == TextLarge {
		return t.Large
	}
	return t.Normal
}

// Thresholds returns the minimum ratios for level. Unknown levels fall back to AA.
func Thresholds(level Level) Threshold {
	if level == LevelAAA {
		return Threshold{Normal: 7.0, Large: 4.5}
	}
	return Threshold{Normal: 4.5, Large: 3.0}
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.x.
// Returns a value between 0 (darkest) and 1 (lightest).
func Luminance(c colorful.Color) float64 {
	l := ToLinear(c.Clamped())
	return 0.2126*l.R + 0.7152*l.G + 0.0722*l.B
}

// ContrastRatio calculates the WCAG contrast ratio between two colours.
// Returns a value between 1 and 21; the result is symmetric in its arguments.
func ContrastRatio(a, b colorful.Color) float64 {
	l1 := Luminance(a)
	l2 := Luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// ContrastRatioHex is ContrastRatio for hex strings.
func ContrastRatioHex(a, b string) (float64, error) {
	ca, err := ParseHex(a)
	if err != nil {
		return 0, err
	}
	cb, err := ParseHex(b)
	if err != nil {
		return 0, err
	}
	return ContrastRatio(ca, cb), nil
}

// OnColor picks black or white text for a fill: white when the fill's
// luminance is at most 0.5, black otherwise.
func OnColor(fill colorful.Color) colorful.Color {
	if Luminance(fill) <= 0.5 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return colorful.Color{}
}
