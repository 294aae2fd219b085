package colour

import "math"

// NormalizeHue maps any angle to its canonical representative in [0,360).
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// -1e-15 mod 360 lands on 360 after the shift.
	if h >= 360 {
		h = 0
	}
	return h
}

// HueDistance calculates the angular distance between two hues on the colour wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(NormalizeHue(h1) - NormalizeHue(h2))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// Clamp restricts v to [lo,hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Clamp01 restricts v to [0,1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
