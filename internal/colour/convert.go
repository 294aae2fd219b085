package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// gamutEpsilon absorbs floating point noise at the gamut boundary (white
// round-trips to 1.0000000002, for example).
const gamutEpsilon = 1e-6

// Linear is a gamma-decoded RGB triple. Values outside [0,1] are out of gamut.
type Linear struct {
	R, G, B float64
}

// InGamut reports whether every channel lies in [0,1].
func (l Linear) InGamut() bool {
	return inUnit(l.R) && inUnit(l.G) && inUnit(l.B)
}

func inUnit(v float64) bool {
	return v >= -gamutEpsilon && v <= 1+gamutEpsilon
}

// Lab is a colour in the OKLab perceptual space. L is in [0,1]; A and B are
// unbounded opponent axes.
type Lab struct {
	L, A, B float64
}

// LCH is the polar form of Lab. C >= 0 and H is in [0,360).
type LCH struct {
	L, C, H float64
}

// ToLinear gamma-decodes an sRGB colour.
func ToLinear(c colorful.Color) Linear {
	r, g, b := c.LinearRgb()
	return Linear{R: r, G: g, B: b}
}

// FromLinear gamma-encodes a linear triple. The result is not clamped.
func FromLinear(l Linear) colorful.Color {
	return colorful.LinearRgb(l.R, l.G, l.B)
}

// LinearToLab converts linear RGB to OKLab.
func LinearToLab(l Linear) Lab {
	lc := 0.4122214708*l.R + 0.5363325363*l.G + 0.0514459929*l.B
	mc := 0.2119034982*l.R + 0.6806995451*l.G + 0.1073969566*l.B
	sc := 0.0883024619*l.R + 0.2817188376*l.G + 0.6299787005*l.B

	lp := math.Cbrt(lc)
	mp := math.Cbrt(mc)
	sp := math.Cbrt(sc)

	return Lab{
		L: 0.2104542553*lp + 0.7936177850*mp - 0.0040720468*sp,
		A: 1.9779984951*lp - 2.4285922050*mp + 0.4505937099*sp,
		B: 0.0259040371*lp + 0.7827717662*mp - 0.8086757660*sp,
	}
}

// LabToLinear converts OKLab to linear RGB without clamping.
func LabToLinear(c Lab) Linear {
	lp := c.L + 0.3963377774*c.A + 0.2158037573*c.B
	mp := c.L - 0.1055613458*c.A - 0.0638541728*c.B
	sp := c.L - 0.0894841775*c.A - 1.2914855480*c.B

	lc := lp * lp * lp
	mc := mp * mp * mp
	sc := sp * sp * sp

	return Linear{
		R: +4.0767416621*lc - 3.3077115913*mc + 0.2309699292*sc,
		G: -1.2684380046*lc + 2.6097574011*mc - 0.3413193965*sc,
		B: -0.0041960863*lc - 0.7034186147*mc + 1.7076147010*sc,
	}
}

// LabToLCH converts OKLab to its polar form.
func LabToLCH(c Lab) LCH {
	return LCH{
		L: c.L,
		C: math.Hypot(c.A, c.B),
		H: NormalizeHue(math.Atan2(c.B, c.A) * 180.0 / math.Pi),
	}
}

// LCHToLab converts polar OKLCH back to OKLab.
func LCHToLab(c LCH) Lab {
	rad := c.H * math.Pi / 180.0
	return Lab{L: c.L, A: c.C * math.Cos(rad), B: c.C * math.Sin(rad)}
}

// ToLab converts an sRGB colour to OKLab.
func ToLab(c colorful.Color) Lab {
	return LinearToLab(ToLinear(c))
}

// ToLCH converts an sRGB colour to OKLCH.
func ToLCH(c colorful.Color) LCH {
	return LabToLCH(ToLab(c))
}

// FromLCH converts OKLCH to sRGB. The colour is returned unclamped together
// with whether it lies inside the display gamut.
func FromLCH(c LCH) (colorful.Color, bool) {
	lin := LabToLinear(LCHToLab(c))
	return FromLinear(lin), lin.InGamut()
}

// LCHToHex converts OKLCH to "#RRGGBB". Out-of-gamut colours are clamped for
// display; the second return value reports whether clamping was needed, and
// callers that score colours must inspect it.
func LCHToHex(c LCH) (string, bool) {
	rgb, ok := FromLCH(c)
	return FormatHex(rgb), ok
}

// HexToLab parses hex and converts it to OKLab.
func HexToLab(hex string) (Lab, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return Lab{}, err
	}
	return ToLab(c), nil
}

// HexToLCH parses hex and converts it to OKLCH.
func HexToLCH(hex string) (LCH, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return LCH{}, err
	}
	return ToLCH(c), nil
}

// HexToHue returns the OKLCH hue of hex in degrees.
func HexToHue(hex string) (float64, error) {
	lch, err := HexToLCH(hex)
	if err != nil {
		return 0, err
	}
	return lch.H, nil
}

// DeltaE is the Euclidean distance between two colours in OKLab.
func DeltaE(a, b colorful.Color) float64 {
	return DeltaELab(ToLab(a), ToLab(b))
}

// DeltaELab is DeltaE for colours already in OKLab.
func DeltaELab(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}
