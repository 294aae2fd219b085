package scoring

import (
	"github.com/jmylchreest/tokensmith/internal/colour"
)

// Check is one foreground/background contrast measurement.
type Check struct {
	Name       string          `json:"name"`
	Foreground string          `json:"foreground"`
	Background string          `json:"background"`
	Size       colour.TextSize `json:"size"`
	Ratio      float64         `json:"ratio"`
	Threshold  float64         `json:"threshold"`
	Pass       bool            `json:"pass"`
}

// margin is the ratio as a multiple of its threshold; below 1 fails.
func (c Check) margin() float64 {
	return c.Ratio / c.Threshold
}

// ModeContrast is the contrast pass for one simulated CVD mode.
type ModeContrast struct {
	CVD         colour.CVDMode `json:"cvd"`
	Pass        bool           `json:"pass"`
	WorstCheck  string         `json:"worstCheck"`
	WorstRatio  float64        `json:"worstRatio"`
	WorstMargin float64        `json:"worstMargin"`
	Checks      []Check        `json:"checks"`
}

// ContrastReport aggregates contrast checks over every CVD mode.
type ContrastReport struct {
	PassAll    bool           `json:"passAll"`
	Failures   int            `json:"failures"`
	WorstCheck string         `json:"worstCheck"`
	WorstRatio float64        `json:"worstRatio"`
	Score      float64        `json:"score"`
	Modes      []ModeContrast `json:"modes"`
}

// ToneReport is the rule-based layering check.
type ToneReport struct {
	OK    bool     `json:"ok"`
	Notes []string `json:"notes,omitempty"`
	Score float64  `json:"score"`
}

// EmphasisReport measures how far the primary stands off the surface.
type EmphasisReport struct {
	DeltaL float64 `json:"deltaL"`
	DeltaC float64 `json:"deltaC"`
	DeltaH float64 `json:"deltaH"`
	Score  float64 `json:"score"`
}

// HarmonyReport classifies the primary/accent hue relationship.
type HarmonyReport struct {
	Class        HarmonyClass `json:"class"`
	HueDistance  float64      `json:"hueDistance"`
	Seeded       bool         `json:"seeded"`
	SeedDistance float64      `json:"seedDistance,omitempty"`
	Score        float64      `json:"score"`
}

// CVDDistance is the robustness measurement under one CVD mode.
type CVDDistance struct {
	CVD            colour.CVDMode `json:"cvd"`
	PrimarySurface float64        `json:"primarySurface"`
	Semantic       float64        `json:"semantic"`
}

// CVDReport aggregates distances across every simulated mode.
type CVDReport struct {
	MinPrimarySurface float64       `json:"minPrimarySurface"`
	MinSemantic       float64       `json:"minSemantic"`
	Modes             []CVDDistance `json:"modes"`
	Score             float64       `json:"score"`
}

// SemanticReport is the separation of the four semantic base colours.
type SemanticReport struct {
	MinDistance float64 `json:"minDistance"`
	ClosestPair string  `json:"closestPair"`
	Score       float64 `json:"score"`
}

// GamutReport records out-of-gamut roles.
type GamutReport struct {
	Violations int     `json:"violations"`
	Penalty    float64 `json:"penalty"`
}

// PenaltyReport records the hard penalties applied.
type PenaltyReport struct {
	ContrastFailures int     `json:"contrastFailures"`
	StateFailures    int     `json:"stateFailures"`
	Contrast         float64 `json:"contrast"`
	State            float64 `json:"state"`
}

// Report is the full scoring breakdown of one token set.
type Report struct {
	Total     float64        `json:"total"`
	Contrast  ContrastReport `json:"contrast"`
	State     ContrastReport `json:"state"`
	Tone      ToneReport     `json:"tone"`
	Emphasis  EmphasisReport `json:"emphasis"`
	Harmony   HarmonyReport  `json:"harmony"`
	CVD       CVDReport      `json:"cvd"`
	Semantic  SemanticReport `json:"semantic"`
	Gamut     GamutReport    `json:"gamut"`
	Penalties PenaltyReport  `json:"penalties"`
}
