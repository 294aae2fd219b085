// Package colour provides the colour-space conversions and accessibility
// measurements used to derive and score token sets.
package colour

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColorFormat is returned when a colour string is not exactly six
// hexadecimal digits with an optional leading '#'.
var ErrInvalidColorFormat = errors.New("invalid color format")

// ParseHex parses "#RRGGBB" or "RRGGBB" into an sRGB colour with channels in [0,1].
func ParseHex(s string) (colorful.Color, error) {
	raw := strings.TrimPrefix(s, "#")
	if len(raw) != 6 {
		return colorful.Color{}, fmt.Errorf("%w: %q: expected 6 hex digits", ErrInvalidColorFormat, s)
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColorFormat, s, err)
	}
	return colorful.Color{
		R: float64((v>>16)&0xff) / 255.0,
		G: float64((v>>8)&0xff) / 255.0,
		B: float64(v&0xff) / 255.0,
	}, nil
}

// FormatHex renders c as upper-case "#RRGGBB", clamping out-of-range channels.
func FormatHex(c colorful.Color) string {
	return strings.ToUpper(c.Clamped().Hex())
}

// NormalizeHex validates s and returns its canonical "#RRGGBB" form.
func NormalizeHex(s string) (string, error) {
	c, err := ParseHex(s)
	if err != nil {
		return "", err
	}
	return FormatHex(c), nil
}

// MustParseHex is ParseHex for compile-time constants. It panics on malformed input.
func MustParseHex(s string) colorful.Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
