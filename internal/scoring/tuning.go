// Package scoring evaluates a token set against contrast, layering, emphasis,
// harmony, colour-vision robustness and semantic separation, and folds the
// results into one scalar for the optimiser.
package scoring

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownWeight is returned when a weight override names no sub-score.
var ErrUnknownWeight = errors.New("unknown weight")

// Weights scale each sub-score in the total.
type Weights struct {
	Contrast float64 `json:"contrast"`
	State    float64 `json:"state"`
	Tone     float64 `json:"tone"`
	Emphasis float64 `json:"emphasis"`
	Harmony  float64 `json:"harmony"`
	CVD      float64 `json:"cvd"`
	Semantic float64 `json:"semantic"`
}

// DefaultWeights sum to 1.
func DefaultWeights() Weights {
	return Weights{
		Contrast: 0.30,
		State:    0.10,
		Tone:     0.12,
		Emphasis: 0.12,
		Harmony:  0.10,
		CVD:      0.14,
		Semantic: 0.12,
	}
}

func (w *Weights) field(name string) (*float64, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "contrast":
		return &w.Contrast, true
	case "state":
		return &w.State, true
	case "tone":
		return &w.Tone, true
	case "emphasis":
		return &w.Emphasis, true
	case "harmony":
		return &w.Harmony, true
	case "cvd":
		return &w.CVD, true
	case "semantic":
		return &w.Semantic, true
	default:
		return nil, false
	}
}

// Set overrides one named weight.
func (w *Weights) Set(name string, v float64) error {
	f, ok := w.field(name)
	if !ok {
		return fmt.Errorf("%w %q (known: %s)", ErrUnknownWeight, name, strings.Join(WeightNames(), ", "))
	}
	if v < 0 {
		return fmt.Errorf("weight %q must not be negative, got %v", name, v)
	}
	*f = v
	return nil
}

// Apply overrides every weight named in overrides.
func (w *Weights) Apply(overrides map[string]float64) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := w.Set(name, overrides[name]); err != nil {
			return err
		}
	}
	return nil
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Contrast + w.State + w.Tone + w.Emphasis + w.Harmony + w.CVD + w.Semantic
}

// WeightNames lists the names accepted by Set.
func WeightNames() []string {
	return []string{"contrast", "state", "tone", "emphasis", "harmony", "cvd", "semantic"}
}

// Tuning holds every hand-tuned constant of the scorer.
type Tuning struct {
	Weights Weights `json:"weights"`

	// ContrastPenalty is subtracted once when any contrast check fails in any
	// CVD mode. StatePenalty is the same for interaction-state checks.
	//
	// Each penalty exceeds the full range the weighted sub-scores can span,
	// so a failure outranks any trade in the weighted terms. It does not
	// outrank the other penalties: a contrast failure with everything else
	// perfect can score above a set that passes contrast but fails the state
	// checks with the gamut penalty at its cap.
	ContrastPenalty float64 `json:"contrastPenalty"`
	StatePenalty    float64 `json:"statePenalty"`

	// GamutPenaltyPerViolation scales with out-of-gamut roles up to GamutPenaltyCap.
	GamutPenaltyPerViolation float64 `json:"gamutPenaltyPerViolation"`
	GamutPenaltyCap          float64 `json:"gamutPenaltyCap"`

	// ContrastHeadroom is the margin from threshold, as a fraction of the
	// threshold, at which the contrast sub-score saturates at +1 above and
	// -1 below.
	ContrastHeadroom float64 `json:"contrastHeadroom"`

	ToneFailScore float64 `json:"toneFailScore"`
	MinLayerGap   float64 `json:"minLayerGap"`
	MaxLayerGap   float64 `json:"maxLayerGap"`
	MinTextGap    float64 `json:"minTextGap"`

	EmphasisLightnessSpan float64 `json:"emphasisLightnessSpan"`
	EmphasisChromaSpan    float64 `json:"emphasisChromaSpan"`

	CVDFloor        float64 `json:"cvdFloor"`
	CVDCeiling      float64 `json:"cvdCeiling"`
	CVDPrimaryShare float64 `json:"cvdPrimaryShare"`

	SemanticFloor   float64 `json:"semanticFloor"`
	SemanticCeiling float64 `json:"semanticCeiling"`

	// SeedCoherenceShare is the part of the harmony score given to neutral-hue
	// coherence with the cross-mode seed, when one is supplied.
	SeedCoherenceShare float64 `json:"seedCoherenceShare"`
}

// DefaultTuning returns the stock scorer configuration.
func DefaultTuning() Tuning {
	return Tuning{
		Weights:                  DefaultWeights(),
		ContrastPenalty:          4.0,
		StatePenalty:             2.8,
		GamutPenaltyPerViolation: 0.05,
		GamutPenaltyCap:          0.5,
		ContrastHeadroom:         0.5,
		ToneFailScore:            0.35,
		MinLayerGap:              0.01,
		MaxLayerGap:              0.07,
		MinTextGap:               0.05,
		EmphasisLightnessSpan:    0.4,
		EmphasisChromaSpan:       0.15,
		CVDFloor:                 0.06,
		CVDCeiling:               0.20,
		CVDPrimaryShare:          0.55,
		SemanticFloor:            0.08,
		SemanticCeiling:          0.25,
		SeedCoherenceShare:       0.2,
	}
}

// Validate checks the tuning for values that would make the score meaningless.
func (t Tuning) Validate() error {
	if t.Weights.Sum() <= 0 {
		return errors.New("weights must not all be zero")
	}
	if t.ContrastPenalty < 0 || t.StatePenalty < 0 || t.GamutPenaltyPerViolation < 0 || t.GamutPenaltyCap < 0 {
		return errors.New("penalties must not be negative")
	}
	if t.ContrastHeadroom <= 0 {
		return errors.New("contrast headroom must be positive")
	}
	if t.CVDCeiling <= t.CVDFloor {
		return fmt.Errorf("cvd ceiling %v must exceed floor %v", t.CVDCeiling, t.CVDFloor)
	}
	if t.SemanticCeiling <= t.SemanticFloor {
		return fmt.Errorf("semantic ceiling %v must exceed floor %v", t.SemanticCeiling, t.SemanticFloor)
	}
	if t.CVDPrimaryShare < 0 || t.CVDPrimaryShare > 1 {
		return errors.New("cvd primary share must be in [0,1]")
	}
	if t.SeedCoherenceShare < 0 || t.SeedCoherenceShare > 1 {
		return errors.New("seed coherence share must be in [0,1]")
	}
	if t.EmphasisLightnessSpan <= 0 || t.EmphasisChromaSpan <= 0 {
		return errors.New("emphasis spans must be positive")
	}
	return nil
}
