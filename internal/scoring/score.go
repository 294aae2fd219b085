package scoring

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/tokensmith/internal/colour"
	"github.com/jmylchreest/tokensmith/internal/theme"
)

// Input is everything the scorer needs for one token set.
type Input struct {
	Tokens          theme.TokenSet
	Mode            theme.Mode
	Level           colour.Level
	Tuning          Tuning
	GamutViolations int
	Summary         theme.Summary
	CVDModes        []colour.CVDMode
	// SeedHue is the cross-mode hue seed, nil when none was supplied.
	SeedHue *float64
}

// Score evaluates a token set. Accessibility failures are reported and
// penalised, never returned as errors; the error is only for malformed
// colours in the token set.
func Score(in Input) (Report, error) {
	t := in.Tuning
	modes := withIdentity(in.CVDModes)

	contrastResolved, err := resolve(contrastPairs(in.Tokens))
	if err != nil {
		return Report{}, fmt.Errorf("contrast pairs: %w", err)
	}
	stateResolved, err := resolve(statePairs(in.Tokens))
	if err != nil {
		return Report{}, fmt.Errorf("state pairs: %w", err)
	}
	roles, err := resolveRoles(in.Tokens)
	if err != nil {
		return Report{}, err
	}

	var r Report
	r.Contrast = evaluate(contrastResolved, in.Level, modes, t.ContrastHeadroom)
	r.State = evaluate(stateResolved, in.Level, modes, t.ContrastHeadroom)
	r.Tone = scoreTone(in.Summary, in.Mode, t)
	r.Emphasis = scoreEmphasis(roles, t)
	r.Harmony = scoreHarmony(roles, in.Summary, in.SeedHue, t)
	r.CVD = scoreCVD(roles, modes, t)
	r.Semantic = scoreSemantic(roles, t)

	r.Gamut = GamutReport{
		Violations: in.GamutViolations,
		Penalty:    math.Min(float64(in.GamutViolations)*t.GamutPenaltyPerViolation, t.GamutPenaltyCap),
	}

	r.Penalties = PenaltyReport{
		ContrastFailures: r.Contrast.Failures,
		StateFailures:    r.State.Failures,
	}
	if !r.Contrast.PassAll {
		r.Penalties.Contrast = t.ContrastPenalty
	}
	if !r.State.PassAll {
		r.Penalties.State = t.StatePenalty
	}

	w := t.Weights
	r.Total = w.Contrast*r.Contrast.Score +
		w.State*r.State.Score +
		w.Tone*r.Tone.Score +
		w.Emphasis*r.Emphasis.Score +
		w.Harmony*r.Harmony.Score +
		w.CVD*r.CVD.Score +
		w.Semantic*r.Semantic.Score -
		r.Gamut.Penalty -
		r.Penalties.Contrast -
		r.Penalties.State

	return r, nil
}

// roles are the parsed colours the non-contrast sub-scores look at.
type roles struct {
	primary  colorful.Color
	surface  colorful.Color
	accent   colorful.Color
	semantic [theme.SemanticCount]colorful.Color
}

func resolveRoles(t theme.TokenSet) (roles, error) {
	var r roles
	var err error
	if r.primary, err = colour.ParseHex(t.Primary); err != nil {
		return r, fmt.Errorf("primary: %w", err)
	}
	if r.surface, err = colour.ParseHex(t.Surface); err != nil {
		return r, fmt.Errorf("surface: %w", err)
	}
	if r.accent, err = colour.ParseHex(t.Accent); err != nil {
		return r, fmt.Errorf("accent: %w", err)
	}
	for i, s := range t.Semantics() {
		if r.semantic[i], err = colour.ParseHex(s.Base); err != nil {
			return r, fmt.Errorf("%s: %w", theme.SemanticNames[i], err)
		}
	}
	return r, nil
}

// scoreTone checks the lightness stack rules. Any violation drops the score
// to the fixed fail score rather than zero.
func scoreTone(s theme.Summary, mode theme.Mode, t Tuning) ToneReport {
	var notes []string

	// Signed steps away from the background: positive means the expected direction.
	dir := -1.0
	if mode == theme.ModeDark {
		dir = 1
	}
	layers := []struct {
		name string
		gap  float64
	}{
		{"background->surface", dir * (s.SurfaceL - s.BackgroundL)},
		{"surface->surface2", dir * (s.Surface2L - s.SurfaceL)},
	}
	for _, l := range layers {
		switch {
		case l.gap <= 0:
			notes = append(notes, fmt.Sprintf("%s does not step %s", l.name, stepWord(mode)))
		case l.gap < t.MinLayerGap:
			notes = append(notes, fmt.Sprintf("%s gap %.3f below minimum %.3f", l.name, l.gap, t.MinLayerGap))
		case l.gap > t.MaxLayerGap:
			notes = append(notes, fmt.Sprintf("%s gap %.3f above maximum %.3f", l.name, l.gap, t.MaxLayerGap))
		}
	}

	// Text tiers move toward the background: primary is furthest from it.
	tiers := []struct {
		name string
		gap  float64
	}{
		{"textPrimary->textSecondary", -dir * (s.TextSecondaryL - s.TextPrimaryL)},
		{"textSecondary->textTertiary", -dir * (s.TextTertiaryL - s.TextSecondaryL)},
	}
	for _, tier := range tiers {
		if tier.gap < t.MinTextGap {
			notes = append(notes, fmt.Sprintf("%s gap %.3f below minimum %.3f", tier.name, tier.gap, t.MinTextGap))
		}
	}

	if math.Abs(s.BorderL-s.SurfaceL) <= math.Abs(s.DividerL-s.SurfaceL) {
		notes = append(notes, "divider is as prominent as border")
	}

	if len(notes) > 0 {
		return ToneReport{OK: false, Notes: notes, Score: t.ToneFailScore}
	}
	return ToneReport{OK: true, Score: 1}
}

func stepWord(mode theme.Mode) string {
	if mode == theme.ModeDark {
		return "lighter"
	}
	return "darker"
}

// scoreEmphasis rewards the primary standing off the surface in lightness,
// chroma and hue.
func scoreEmphasis(r roles, t Tuning) EmphasisReport {
	p := colour.ToLCH(r.primary)
	s := colour.ToLCH(r.surface)
	e := EmphasisReport{
		DeltaL: math.Abs(p.L - s.L),
		DeltaC: math.Abs(p.C - s.C),
		DeltaH: colour.HueDistance(p.H, s.H),
	}
	e.Score = colour.Clamp01(
		0.5*math.Min(e.DeltaL/t.EmphasisLightnessSpan, 1) +
			0.3*math.Min(e.DeltaC/t.EmphasisChromaSpan, 1) +
			0.2*e.DeltaH/180,
	)
	return e
}

// scoreHarmony classifies primary against accent. With a seed the looser
// bands apply and part of the score goes to neutral-hue coherence with it.
func scoreHarmony(r roles, s theme.Summary, seed *float64, t Tuning) HarmonyReport {
	p := colour.ToLCH(r.primary)
	a := colour.ToLCH(r.accent)
	h := HarmonyReport{HueDistance: colour.HueDistance(p.H, a.H), Seeded: seed != nil}
	h.Class = ClassifyHarmony(h.HueDistance, h.Seeded)
	h.Score = h.Class.Score()
	if seed != nil {
		h.SeedDistance = colour.HueDistance(s.NeutralHue, *seed)
		coherence := 1 - h.SeedDistance/180
		h.Score = (1-t.SeedCoherenceShare)*h.Score + t.SeedCoherenceShare*coherence
	}
	return h
}

func normalise(d, floor, ceiling float64) float64 {
	return colour.Clamp01((d - floor) / (ceiling - floor))
}

// minPairwise returns the smallest distance among cs and the indices of that pair.
func minPairwise(cs []colour.Lab) (float64, int, int) {
	best, bi, bj := math.Inf(1), 0, 0
	for i := 0; i < len(cs); i++ {
		for j := i + 1; j < len(cs); j++ {
			if d := colour.DeltaELab(cs[i], cs[j]); d < best {
				best, bi, bj = d, i, j
			}
		}
	}
	return best, bi, bj
}

// scoreCVD measures primary/surface and semantic separation under every mode
// and keeps the worst case of each.
func scoreCVD(r roles, modes []colour.CVDMode, t Tuning) CVDReport {
	report := CVDReport{MinPrimarySurface: math.Inf(1), MinSemantic: math.Inf(1)}
	for _, mode := range modes {
		ps := colour.DeltaE(colour.Simulate(r.primary, mode), colour.Simulate(r.surface, mode))
		labs := make([]colour.Lab, theme.SemanticCount)
		for i, c := range r.semantic {
			labs[i] = colour.ToLab(colour.Simulate(c, mode))
		}
		sem, _, _ := minPairwise(labs)

		report.Modes = append(report.Modes, CVDDistance{CVD: mode, PrimarySurface: ps, Semantic: sem})
		report.MinPrimarySurface = math.Min(report.MinPrimarySurface, ps)
		report.MinSemantic = math.Min(report.MinSemantic, sem)
	}
	report.Score = t.CVDPrimaryShare*normalise(report.MinPrimarySurface, t.CVDFloor, t.CVDCeiling) +
		(1-t.CVDPrimaryShare)*normalise(report.MinSemantic, t.CVDFloor, t.CVDCeiling)
	return report
}

// scoreSemantic is the separation of the semantic bases under normal vision.
// Any pair closer than the floor zeroes the score.
func scoreSemantic(r roles, t Tuning) SemanticReport {
	labs := make([]colour.Lab, theme.SemanticCount)
	for i, c := range r.semantic {
		labs[i] = colour.ToLab(c)
	}
	d, i, j := minPairwise(labs)
	rep := SemanticReport{
		MinDistance: d,
		ClosestPair: theme.SemanticNames[i] + "/" + theme.SemanticNames[j],
	}
	if d >= t.SemanticFloor {
		rep.Score = normalise(d, t.SemanticFloor, t.SemanticCeiling)
	}
	return rep
}
