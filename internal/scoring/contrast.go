package scoring

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/tokensmith/internal/colour"
	"github.com/jmylchreest/tokensmith/internal/theme"
)

// pair names a foreground token checked against a background token.
type pair struct {
	name   string
	fg, bg string
	size   colour.TextSize
}

// contrastPairs are the checks whose failure is an accessibility failure.
// Large applies to large text and non-text UI (WCAG 1.4.11).
func contrastPairs(t theme.TokenSet) []pair {
	pairs := []pair{
		{"textPrimary/background", t.TextPrimary, t.Background, colour.TextNormal},
		{"textPrimary/surface", t.TextPrimary, t.Surface, colour.TextNormal},
		{"textPrimary/surface2", t.TextPrimary, t.Surface2, colour.TextNormal},
		{"textSecondary/surface", t.TextSecondary, t.Surface, colour.TextNormal},
		{"textSecondary/surface2", t.TextSecondary, t.Surface2, colour.TextNormal},
		{"textTertiary/surface", t.TextTertiary, t.Surface, colour.TextLarge},
		{"onPrimary/primary", t.OnPrimary, t.Primary, colour.TextNormal},
		{"onSecondary/secondary", t.OnSecondary, t.Secondary, colour.TextNormal},
		{"onAccent/accent", t.OnAccent, t.Accent, colour.TextNormal},
		{"primary/background", t.Primary, t.Background, colour.TextLarge},
		{"focusRing/background", t.FocusRing, t.Background, colour.TextLarge},
	}
	for i, s := range t.Semantics() {
		name := theme.SemanticNames[i]
		pairs = append(pairs, pair{name + ".onBaseText/" + name + ".base", s.OnBaseText, s.Base, colour.TextNormal})
	}
	return pairs
}

// statePairs are the interaction-state checks: button labels on hover and
// pressed fills, and semantic subtle text on subtle backgrounds.
func statePairs(t theme.TokenSet) []pair {
	var pairs []pair
	for _, b := range []struct {
		name string
		tok  theme.ButtonTokens
	}{{"buttonPrimary", t.ButtonPrimary}, {"buttonSecondary", t.ButtonSecondary}} {
		pairs = append(pairs,
			pair{b.name + ".text/hover", b.tok.Text, b.tok.Hover, colour.TextLarge},
			pair{b.name + ".text/pressed", b.tok.Text, b.tok.Pressed, colour.TextLarge},
		)
	}
	for i, s := range t.Semantics() {
		name := theme.SemanticNames[i]
		pairs = append(pairs,
			pair{name + ".onBaseText/hover", s.OnBaseText, s.Hover, colour.TextLarge},
			pair{name + ".onBaseText/pressed", s.OnBaseText, s.Pressed, colour.TextLarge},
			pair{name + ".subtleText/subtleBg", s.SubtleText, s.SubtleBg, colour.TextNormal},
		)
	}
	return pairs
}

// resolvedPair is a pair with its colours parsed.
type resolvedPair struct {
	pair
	fgc, bgc colorful.Color
}

func resolve(pairs []pair) ([]resolvedPair, error) {
	out := make([]resolvedPair, len(pairs))
	for i, p := range pairs {
		fg, err := colour.ParseHex(p.fg)
		if err != nil {
			return nil, err
		}
		bg, err := colour.ParseHex(p.bg)
		if err != nil {
			return nil, err
		}
		out[i] = resolvedPair{pair: p, fgc: fg, bgc: bg}
	}
	return out, nil
}

// withIdentity returns modes with CVDNone first, de-duplicated.
func withIdentity(modes []colour.CVDMode) []colour.CVDMode {
	out := []colour.CVDMode{colour.CVDNone}
	seen := map[colour.CVDMode]bool{colour.CVDNone: true}
	for _, m := range modes {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// evaluate runs every pair under every CVD mode. The score is the mean over
// modes of the worst margin relative to threshold, saturating at +1 at
// headroom and at -1 at headroom below threshold. The negative side keeps
// failing candidates comparable, so the search can climb toward a pass.
func evaluate(pairs []resolvedPair, level colour.Level, modes []colour.CVDMode, headroom float64) ContrastReport {
	th := colour.Thresholds(level)
	report := ContrastReport{PassAll: true, WorstRatio: math.Inf(1)}
	worstMargin := math.Inf(1)
	var total float64

	for _, mode := range modes {
		mc := ModeContrast{CVD: mode, Pass: true, WorstMargin: math.Inf(1), Checks: make([]Check, 0, len(pairs))}
		for _, p := range pairs {
			ratio := colour.ContrastRatio(colour.Simulate(p.fgc, mode), colour.Simulate(p.bgc, mode))
			c := Check{
				Name:       p.name,
				Foreground: p.fg,
				Background: p.bg,
				Size:       p.size,
				Ratio:      ratio,
				Threshold:  th.For(p.size),
			}
			c.Pass = c.Ratio >= c.Threshold
			if !c.Pass {
				mc.Pass = false
				report.Failures++
			}
			if m := c.margin(); m < mc.WorstMargin {
				mc.WorstMargin = m
				mc.WorstRatio = c.Ratio
				mc.WorstCheck = c.Name
			}
			mc.Checks = append(mc.Checks, c)
		}
		if len(pairs) == 0 {
			mc.WorstMargin = 1 + headroom
		}
		if !mc.Pass {
			report.PassAll = false
		}
		if mc.WorstMargin < worstMargin {
			worstMargin = mc.WorstMargin
			report.WorstRatio = mc.WorstRatio
			report.WorstCheck = mc.WorstCheck
		}
		total += colour.Clamp((mc.WorstMargin-1)/headroom, -1, 1)
		report.Modes = append(report.Modes, mc)
	}

	if len(modes) > 0 {
		report.Score = total / float64(len(modes))
	}
	if math.IsInf(report.WorstRatio, 1) {
		report.WorstRatio = 0
	}
	return report
}

// CheckContrast runs only the accessibility pass over tokens: every contrast
// pair under every listed CVD mode (the identity is always included).
func CheckContrast(tokens theme.TokenSet, level colour.Level, modes []colour.CVDMode) (ContrastReport, error) {
	pairs, err := resolve(contrastPairs(tokens))
	if err != nil {
		return ContrastReport{}, err
	}
	return evaluate(pairs, level, withIdentity(modes), DefaultTuning().ContrastHeadroom), nil
}

// CheckStates is CheckContrast for the interaction-state pairs.
func CheckStates(tokens theme.TokenSet, level colour.Level, modes []colour.CVDMode) (ContrastReport, error) {
	pairs, err := resolve(statePairs(tokens))
	if err != nil {
		return ContrastReport{}, err
	}
	return evaluate(pairs, level, withIdentity(modes), DefaultTuning().ContrastHeadroom), nil
}
