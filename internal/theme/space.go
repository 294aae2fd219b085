package theme

import (
	"github.com/jmylchreest/tokensmith/internal/colour"
	"github.com/jmylchreest/tokensmith/internal/seq"
)

// Group names one of the parameter groups a single mutation step touches.
type Group int

const (
	GroupBackground Group = iota
	GroupText
	GroupSecondary
	GroupAccent
	GroupNeutral
	GroupSemanticLightness
	GroupSemanticHue
	GroupBorders
	GroupFocus
	GroupSeed

	groupCount
)

var groupNames = [groupCount]string{
	"background", "text", "secondary", "accent", "neutral",
	"semantic-lightness", "semantic-hue", "borders", "focus", "seed",
}

// String returns the group name.
func (g Group) String() string {
	if g < 0 || g >= groupCount {
		return "unknown"
	}
	return groupNames[g]
}

// Groups returns every mutation group.
func Groups() []Group {
	out := make([]Group, groupCount)
	for i := range out {
		out[i] = Group(i)
	}
	return out
}

const (
	// jitterFraction is the mutation step as a share of a bound's width.
	jitterFraction = 0.18
	// hueJitter is the mutation step for hue fields, in degrees.
	hueJitter = 24.0
	// focusSourceFlip is the chance a focus mutation picks a new source.
	focusSourceFlip = 0.3
	// seedSpan bounds how far the seed hue may drift from the anchor.
	seedSpan = 30.0
	// accentSeedSpan bounds the accent hue around an explicit seed.
	accentSeedSpan = 45.0
	// conventionalSpan bounds semantic hues when conventional hues are requested.
	conventionalSpan = 25.0
)

// ConventionalHues are the OKLCH hues of conventional green, yellow, red and
// blue, in semantic index order.
var ConventionalHues = [SemanticCount]float64{145, 85, 27, 250}

// Bound is a closed scalar range.
type Bound struct {
	Min, Max float64
}

// Clamp restricts v to the bound.
func (b Bound) Clamp(v float64) float64 {
	return colour.Clamp(v, b.Min, b.Max)
}

// Contains reports whether v lies within the bound.
func (b Bound) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

func (b Bound) sample(s *seq.Sequence) float64 {
	return s.Range(b.Min, b.Max)
}

func (b Bound) nudge(v float64, s *seq.Sequence) float64 {
	return b.Clamp(v + s.Jitter((b.Max-b.Min)*jitterFraction))
}

// HueWindow is an arc of hues. A Full window spans the whole wheel.
type HueWindow struct {
	Center float64
	Span   float64
	Full   bool
}

// Clamp wraps h into [0,360) and pulls it back inside the arc.
func (w HueWindow) Clamp(h float64) float64 {
	if w.Full {
		return colour.NormalizeHue(h)
	}
	d := colour.NormalizeHue(h - w.Center)
	if d > 180 {
		d -= 360
	}
	return colour.NormalizeHue(w.Center + colour.Clamp(d, -w.Span, w.Span))
}

// Contains reports whether h lies inside the arc.
func (w HueWindow) Contains(h float64) bool {
	if h < 0 || h >= 360 {
		return false
	}
	return w.Full || colour.HueDistance(h, w.Center) <= w.Span+1e-9
}

func (w HueWindow) sample(s *seq.Sequence) float64 {
	if w.Full {
		return s.Range(0, 360)
	}
	return w.Clamp(w.Center + s.Jitter(w.Span))
}

func (w HueWindow) nudge(h float64, s *seq.Sequence) float64 {
	return w.Clamp(h + s.Jitter(hueJitter))
}

// SpaceOptions shape the search space.
type SpaceOptions struct {
	// PreferVibrant widens the chroma ranges.
	PreferVibrant bool
	// SemanticConventional keeps semantic hues near green/yellow/red/blue.
	SemanticConventional bool
	// AnchorHue is the hue the seed is allowed to drift around.
	AnchorHue float64
	// Seeded marks AnchorHue as coming from an explicit seed colour. The
	// accent hue is then held within accentSeedSpan of it.
	Seeded bool
}

// Space holds the valid range of every Params field for one mode.
type Space struct {
	Mode Mode

	BackgroundL   Bound
	SurfaceDelta  Bound
	Surface2Delta Bound

	TextPrimaryL   Bound
	TextSecondaryL Bound
	TextTertiaryL  Bound
	TextChroma     Bound

	RoleL      Bound
	RoleChroma Bound
	RoleHue    HueWindow
	AccentHue  HueWindow

	NeutralHueOffset Bound
	NeutralChroma    Bound

	SemanticL      Bound
	SemanticChroma Bound
	SemanticHue    [SemanticCount]HueWindow

	BorderDelta       Bound
	DividerDelta      Bound
	BorderChromaScale Bound

	FocusBoost Bound
	FocusL     Bound

	SeedHue HueWindow
}

// NewSpace returns the search space for mode.
func NewSpace(mode Mode, opts SpaceOptions) *Space {
	sp := &Space{
		Mode:              mode,
		TextChroma:        Bound{0, 0.03},
		RoleChroma:        Bound{0.04, 0.16},
		RoleHue:           HueWindow{Full: true},
		AccentHue:         HueWindow{Full: true},
		NeutralHueOffset:  Bound{-25, 25},
		NeutralChroma:     Bound{0, 0.02},
		SemanticChroma:    Bound{0.08, 0.17},
		BorderDelta:       Bound{0.06, 0.16},
		DividerDelta:      Bound{0.03, 0.09},
		BorderChromaScale: Bound{0.1, 0.6},
		FocusBoost:        Bound{1.0, 1.6},
		SeedHue:           HueWindow{Center: colour.NormalizeHue(opts.AnchorHue), Span: seedSpan},
	}

	if mode == ModeDark {
		sp.BackgroundL = Bound{0.13, 0.23}
		sp.SurfaceDelta = Bound{0.02, 0.06}
		sp.Surface2Delta = Bound{0.02, 0.06}
		sp.TextPrimaryL = Bound{0.88, 0.98}
		sp.TextSecondaryL = Bound{0.74, 0.88}
		sp.TextTertiaryL = Bound{0.62, 0.76}
		// Fills either stay dark enough for white labels or go light
		// enough to flip to black ones.
		sp.RoleL = Bound{0.40, 0.82}
		sp.SemanticL = Bound{0.40, 0.84}
		sp.FocusL = Bound{0.62, 0.85}
	} else {
		sp.BackgroundL = Bound{0.955, 0.995}
		sp.SurfaceDelta = Bound{0.012, 0.05}
		sp.Surface2Delta = Bound{0.012, 0.05}
		sp.TextPrimaryL = Bound{0.14, 0.30}
		sp.TextSecondaryL = Bound{0.30, 0.44}
		sp.TextTertiaryL = Bound{0.40, 0.54}
		sp.RoleL = Bound{0.38, 0.62}
		sp.SemanticL = Bound{0.40, 0.62}
		sp.FocusL = Bound{0.40, 0.62}
	}

	if opts.Seeded {
		sp.AccentHue = HueWindow{Center: colour.NormalizeHue(opts.AnchorHue), Span: accentSeedSpan}
	}

	if opts.PreferVibrant {
		sp.RoleChroma = Bound{0.06, 0.24}
		sp.NeutralChroma = Bound{0, 0.035}
		sp.SemanticChroma = Bound{0.10, 0.22}
	}

	for i := range sp.SemanticHue {
		if opts.SemanticConventional {
			sp.SemanticHue[i] = HueWindow{Center: ConventionalHues[i], Span: conventionalSpan}
		} else {
			sp.SemanticHue[i] = HueWindow{Full: true}
		}
	}

	return sp
}

// Sample draws a random point uniformly from the space.
func (sp *Space) Sample(s *seq.Sequence) Params {
	var p Params
	p.BackgroundL = sp.BackgroundL.sample(s)
	p.SurfaceDelta = sp.SurfaceDelta.sample(s)
	p.Surface2Delta = sp.Surface2Delta.sample(s)

	p.TextPrimaryL = sp.TextPrimaryL.sample(s)
	p.TextSecondaryL = sp.TextSecondaryL.sample(s)
	p.TextTertiaryL = sp.TextTertiaryL.sample(s)
	p.TextChroma = sp.TextChroma.sample(s)

	p.SecondaryHue = sp.RoleHue.sample(s)
	p.SecondaryChroma = sp.RoleChroma.sample(s)
	p.SecondaryL = sp.RoleL.sample(s)

	p.AccentHue = sp.AccentHue.sample(s)
	p.AccentChroma = sp.RoleChroma.sample(s)
	p.AccentL = sp.RoleL.sample(s)

	p.NeutralHueOffset = sp.NeutralHueOffset.sample(s)
	p.NeutralChroma = sp.NeutralChroma.sample(s)

	for i := 0; i < SemanticCount; i++ {
		p.SemanticL[i] = sp.SemanticL.sample(s)
		p.SemanticChroma[i] = sp.SemanticChroma.sample(s)
		p.SemanticHue[i] = sp.SemanticHue[i].sample(s)
	}

	p.BorderDelta = sp.BorderDelta.sample(s)
	p.DividerDelta = sp.DividerDelta.sample(s)
	p.BorderChromaScale = sp.BorderChromaScale.sample(s)

	p.FocusSource = FocusSource(s.IntN(focusSourceCount))
	p.FocusBoost = sp.FocusBoost.sample(s)
	p.FocusL = sp.FocusL.sample(s)

	p.SeedHue = sp.SeedHue.sample(s)
	return p
}

// Mutate returns a copy of p with exactly one randomly chosen group jittered.
// Every other field is carried over unchanged.
func (sp *Space) Mutate(p Params, s *seq.Sequence) (Params, Group) {
	g := Group(s.IntN(int(groupCount)))
	return sp.MutateGroup(p, g, s), g
}

// MutateGroup jitters the fields of group g, clamping each to its range.
func (sp *Space) MutateGroup(p Params, g Group, s *seq.Sequence) Params {
	q := p
	switch g {
	case GroupBackground:
		q.BackgroundL = sp.BackgroundL.nudge(q.BackgroundL, s)
		q.SurfaceDelta = sp.SurfaceDelta.nudge(q.SurfaceDelta, s)
		q.Surface2Delta = sp.Surface2Delta.nudge(q.Surface2Delta, s)
	case GroupText:
		q.TextPrimaryL = sp.TextPrimaryL.nudge(q.TextPrimaryL, s)
		q.TextSecondaryL = sp.TextSecondaryL.nudge(q.TextSecondaryL, s)
		q.TextTertiaryL = sp.TextTertiaryL.nudge(q.TextTertiaryL, s)
		q.TextChroma = sp.TextChroma.nudge(q.TextChroma, s)
	case GroupSecondary:
		q.SecondaryHue = sp.RoleHue.nudge(q.SecondaryHue, s)
		q.SecondaryChroma = sp.RoleChroma.nudge(q.SecondaryChroma, s)
		q.SecondaryL = sp.RoleL.nudge(q.SecondaryL, s)
	case GroupAccent:
		q.AccentHue = sp.AccentHue.nudge(q.AccentHue, s)
		q.AccentChroma = sp.RoleChroma.nudge(q.AccentChroma, s)
		q.AccentL = sp.RoleL.nudge(q.AccentL, s)
	case GroupNeutral:
		q.NeutralHueOffset = sp.NeutralHueOffset.nudge(q.NeutralHueOffset, s)
		q.NeutralChroma = sp.NeutralChroma.nudge(q.NeutralChroma, s)
	case GroupSemanticLightness:
		for i := 0; i < SemanticCount; i++ {
			q.SemanticL[i] = sp.SemanticL.nudge(q.SemanticL[i], s)
			q.SemanticChroma[i] = sp.SemanticChroma.nudge(q.SemanticChroma[i], s)
		}
	case GroupSemanticHue:
		for i := 0; i < SemanticCount; i++ {
			q.SemanticHue[i] = sp.SemanticHue[i].nudge(q.SemanticHue[i], s)
		}
	case GroupBorders:
		q.BorderDelta = sp.BorderDelta.nudge(q.BorderDelta, s)
		q.DividerDelta = sp.DividerDelta.nudge(q.DividerDelta, s)
		q.BorderChromaScale = sp.BorderChromaScale.nudge(q.BorderChromaScale, s)
	case GroupFocus:
		if s.Chance(focusSourceFlip) {
			q.FocusSource = FocusSource(s.IntN(focusSourceCount))
		}
		q.FocusBoost = sp.FocusBoost.nudge(q.FocusBoost, s)
		q.FocusL = sp.FocusL.nudge(q.FocusL, s)
	case GroupSeed:
		q.SeedHue = sp.SeedHue.nudge(q.SeedHue, s)
	}
	return q
}

// Contains reports whether every field of p lies inside the space.
func (sp *Space) Contains(p Params) bool {
	ok := sp.BackgroundL.Contains(p.BackgroundL) &&
		sp.SurfaceDelta.Contains(p.SurfaceDelta) &&
		sp.Surface2Delta.Contains(p.Surface2Delta) &&
		sp.TextPrimaryL.Contains(p.TextPrimaryL) &&
		sp.TextSecondaryL.Contains(p.TextSecondaryL) &&
		sp.TextTertiaryL.Contains(p.TextTertiaryL) &&
		sp.TextChroma.Contains(p.TextChroma) &&
		sp.RoleHue.Contains(p.SecondaryHue) &&
		sp.RoleChroma.Contains(p.SecondaryChroma) &&
		sp.RoleL.Contains(p.SecondaryL) &&
		sp.AccentHue.Contains(p.AccentHue) &&
		sp.RoleChroma.Contains(p.AccentChroma) &&
		sp.RoleL.Contains(p.AccentL) &&
		sp.NeutralHueOffset.Contains(p.NeutralHueOffset) &&
		sp.NeutralChroma.Contains(p.NeutralChroma) &&
		sp.BorderDelta.Contains(p.BorderDelta) &&
		sp.DividerDelta.Contains(p.DividerDelta) &&
		sp.BorderChromaScale.Contains(p.BorderChromaScale) &&
		p.FocusSource >= 0 && p.FocusSource < focusSourceCount &&
		sp.FocusBoost.Contains(p.FocusBoost) &&
		sp.FocusL.Contains(p.FocusL) &&
		sp.SeedHue.Contains(p.SeedHue)
	if !ok {
		return false
	}
	for i := 0; i < SemanticCount; i++ {
		if !sp.SemanticL.Contains(p.SemanticL[i]) ||
			!sp.SemanticChroma.Contains(p.SemanticChroma[i]) ||
			!sp.SemanticHue[i].Contains(p.SemanticHue[i]) {
			return false
		}
	}
	return true
}
