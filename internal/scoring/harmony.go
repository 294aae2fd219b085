package scoring

import "math"

// HarmonyClass is the hue relationship between the primary and the accent.
type HarmonyClass string

const (
	HarmonyMono          HarmonyClass = "mono"
	HarmonyAnalogous     HarmonyClass = "analogous"
	HarmonyComplementary HarmonyClass = "complementary"
	HarmonySplit         HarmonyClass = "split"
	HarmonyTriadic       HarmonyClass = "triadic"
	HarmonyOther         HarmonyClass = "other"
)

// harmonyScores is the desirability of each class.
var harmonyScores = map[HarmonyClass]float64{
	HarmonyMono:          0.70,
	HarmonyAnalogous:     0.90,
	HarmonyComplementary: 0.85,
	HarmonySplit:         0.95,
	HarmonyTriadic:       0.80,
	HarmonyOther:         0.30,
}

// Score returns the desirability of c.
func (c HarmonyClass) Score() float64 {
	return harmonyScores[c]
}

// harmonyBands are angular tolerances in degrees. Mono and analogous are
// upper bounds on the distance; the others are tolerances around 180, 150
// and 120 degrees.
type harmonyBands struct {
	mono, analogous, complementary, split, triadic float64
}

var (
	// unseededBands apply when no seed hue was supplied.
	unseededBands = harmonyBands{mono: 12, analogous: 40, complementary: 15, split: 12, triadic: 12}
	// seededBands apply when a seed hue anchors the palette.
	seededBands = harmonyBands{mono: 18, analogous: 50, complementary: 22, split: 15, triadic: 18}
)

// ClassifyHarmony classifies a hue distance in [0,180]. The seeded flag
// selects the looser bands.
func ClassifyHarmony(distance float64, seeded bool) HarmonyClass {
	b := unseededBands
	if seeded {
		b = seededBands
	}
	switch {
	case distance <= b.mono:
		return HarmonyMono
	case distance <= b.analogous:
		return HarmonyAnalogous
	case math.Abs(distance-180) <= b.complementary:
		return HarmonyComplementary
	case math.Abs(distance-150) <= b.split:
		return HarmonySplit
	case math.Abs(distance-120) <= b.triadic:
		return HarmonyTriadic
	default:
		return HarmonyOther
	}
}
