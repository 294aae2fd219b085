package theme

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/tokensmith/internal/colour"
)

// Derivation constants shared by every role.
const (
	// HoverShift is the lightness nudge from a base fill to its hover state.
	HoverShift = 0.045
	// PressedShift is the nudge to the pressed state.
	PressedShift = 2 * HoverShift

	// DisabledChromaScale desaturates disabled fills.
	DisabledChromaScale = 0.25
	// DisabledSnap is how far a disabled fill moves toward the mode's
	// disabled lightness, as a fraction of the remaining distance.
	DisabledSnap = 0.65

	// SubtleBgShift offsets subtle semantic backgrounds from the page background.
	SubtleBgShift = 0.035
	// SubtleChromaScale and SubtleChromaMax keep subtle backgrounds quiet.
	SubtleChromaScale = 0.22
	SubtleChromaMax   = 0.045
	// SubtleTextChromaScale keeps subtle text close to the base hue.
	SubtleTextChromaScale = 0.9

	// SemanticBorderMix moves a semantic border from its base toward the background.
	SemanticBorderMix = 0.45
	// SemanticBorderChromaScale softens semantic borders.
	SemanticBorderChromaScale = 0.6

	// DividerChromaScale is applied on top of the border chroma for dividers.
	DividerChromaScale = 0.5
	// DisabledTextChroma is the chroma of disabled labels.
	DisabledTextChroma = 0.01
)

type modeLightness struct {
	light, dark float64
}

func (m modeLightness) of(mode Mode) float64 {
	if mode == ModeDark {
		return m.dark
	}
	return m.light
}

var (
	disabledFillL = modeLightness{light: 0.86, dark: 0.34}
	disabledTextL = modeLightness{light: 0.62, dark: 0.56}
	subtleTextL   = modeLightness{light: 0.42, dark: 0.86}
)

// Builder derives token sets for one mode around a fixed brand colour.
type Builder struct {
	mode       Mode
	primaryHex string
	primary    colorful.Color
	primaryLCH colour.LCH
}

// NewBuilder validates primaryHex once so that Build cannot fail.
func NewBuilder(mode Mode, primaryHex string) (*Builder, error) {
	if mode != ModeLight && mode != ModeDark {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	c, err := colour.ParseHex(primaryHex)
	if err != nil {
		return nil, fmt.Errorf("primary colour: %w", err)
	}
	return &Builder{
		mode:       mode,
		primaryHex: colour.FormatHex(c),
		primary:    c,
		primaryLCH: colour.ToLCH(c),
	}, nil
}

// Mode returns the builder's mode.
func (b *Builder) Mode() Mode {
	return b.mode
}

// PrimaryHex returns the canonical brand colour.
func (b *Builder) PrimaryHex() string {
	return b.primaryHex
}

// Build derives a full token set from p. It is a pure function of p, the mode
// and the brand colour. The second return value counts roles whose colour fell
// outside the display gamut; those roles still hold the clamped colour.
func (b *Builder) Build(p Params) (TokenSet, int, Summary) {
	r := &run{mode: b.mode, dir: b.mode.direction()}
	var t TokenSet

	neutralHue := colour.NormalizeHue(p.SeedHue + p.NeutralHueOffset)

	bgL := colour.Clamp01(p.BackgroundL)
	surfL := colour.Clamp01(bgL + r.dir*p.SurfaceDelta)
	surf2L := colour.Clamp01(surfL + r.dir*p.Surface2Delta)

	t.Background, _ = r.fill(colour.LCH{L: bgL, C: p.NeutralChroma, H: neutralHue})
	t.Surface, _ = r.fill(colour.LCH{L: surfL, C: p.NeutralChroma, H: neutralHue})
	t.Surface2, _ = r.fill(colour.LCH{L: surf2L, C: p.NeutralChroma, H: neutralHue})

	t.TextPrimary, _ = r.fill(colour.LCH{L: p.TextPrimaryL, C: p.TextChroma, H: neutralHue})
	t.TextSecondary, _ = r.fill(colour.LCH{L: p.TextSecondaryL, C: p.TextChroma, H: neutralHue})
	t.TextTertiary, _ = r.fill(colour.LCH{L: p.TextTertiaryL, C: p.TextChroma, H: neutralHue})

	// The brand colour is used verbatim; only its derived states are computed.
	t.Primary = b.primaryHex
	t.OnPrimary = colour.FormatHex(colour.OnColor(b.primary))
	t.ButtonPrimary = r.button(b.primaryHex, b.primary, b.primaryLCH, neutralHue)

	secondaryLCH := colour.LCH{L: p.SecondaryL, C: p.SecondaryChroma, H: p.SecondaryHue}
	secondaryHex, secondary := r.fill(secondaryLCH)
	t.Secondary = secondaryHex
	t.OnSecondary = colour.FormatHex(colour.OnColor(secondary))
	t.ButtonSecondary = r.button(secondaryHex, secondary, secondaryLCH, neutralHue)

	accentLCH := colour.LCH{L: p.AccentL, C: p.AccentChroma, H: p.AccentHue}
	accentHex, accent := r.fill(accentLCH)
	t.Accent = accentHex
	t.OnAccent = colour.FormatHex(colour.OnColor(accent))

	borderChroma := p.NeutralChroma * p.BorderChromaScale
	borderL := colour.Clamp01(surfL + r.dir*p.BorderDelta)
	dividerL := colour.Clamp01(surfL + r.dir*p.DividerDelta)
	t.Border, _ = r.fill(colour.LCH{L: borderL, C: borderChroma, H: neutralHue})
	t.Divider, _ = r.fill(colour.LCH{L: dividerL, C: borderChroma * DividerChromaScale, H: neutralHue})

	var source colour.LCH
	switch p.FocusSource {
	case FocusSecondary:
		source = secondaryLCH
	case FocusAccent:
		source = accentLCH
	default:
		source = b.primaryLCH
	}
	t.FocusRing, _ = r.fill(colour.LCH{L: p.FocusL, C: source.C * p.FocusBoost, H: source.H})

	var semantics [SemanticCount]SemanticTokens
	for i := 0; i < SemanticCount; i++ {
		base := colour.LCH{L: p.SemanticL[i], C: p.SemanticChroma[i], H: p.SemanticHue[i]}
		semantics[i] = r.semantic(base, bgL)
	}
	t.Success = semantics[Success]
	t.Warning = semantics[Warning]
	t.Danger = semantics[Danger]
	t.Info = semantics[Info]

	summary := Summary{
		Mode:           b.mode,
		BackgroundL:    bgL,
		SurfaceL:       surfL,
		Surface2L:      surf2L,
		TextPrimaryL:   p.TextPrimaryL,
		TextSecondaryL: p.TextSecondaryL,
		TextTertiaryL:  p.TextTertiaryL,
		BorderL:        borderL,
		DividerL:       dividerL,
		NeutralHue:     neutralHue,
	}
	return t, r.violations, summary
}

// run carries the per-build gamut counter.
type run struct {
	mode       Mode
	dir        float64
	violations int
}

// fill converts c to a display colour, counting a gamut violation when the
// unclamped colour falls outside sRGB.
func (r *run) fill(c colour.LCH) (string, colorful.Color) {
	c.L = colour.Clamp01(c.L)
	if c.C < 0 {
		c.C = 0
	}
	rgb, ok := colour.FromLCH(c)
	if !ok {
		r.violations++
	}
	rgb = rgb.Clamped()
	return colour.FormatHex(rgb), rgb
}

// states derives hover and pressed from a base fill by nudging lightness away
// from the page background.
func (r *run) states(base colour.LCH) (hover, pressed string) {
	hover, _ = r.fill(colour.LCH{L: base.L + r.dir*HoverShift, C: base.C, H: base.H})
	pressed, _ = r.fill(colour.LCH{L: base.L + r.dir*PressedShift, C: base.C, H: base.H})
	return hover, pressed
}

// disabled desaturates base and snaps its lightness toward the mode's
// disabled lightness.
func (r *run) disabled(base colour.LCH) string {
	target := disabledFillL.of(r.mode)
	hex, _ := r.fill(colour.LCH{
		L: base.L + (target-base.L)*DisabledSnap,
		C: base.C * DisabledChromaScale,
		H: base.H,
	})
	return hex
}

func (r *run) button(baseHex string, base colorful.Color, baseLCH colour.LCH, neutralHue float64) ButtonTokens {
	hover, pressed := r.states(baseLCH)
	disabledText, _ := r.fill(colour.LCH{L: disabledTextL.of(r.mode), C: DisabledTextChroma, H: neutralHue})
	return ButtonTokens{
		Base:         baseHex,
		Hover:        hover,
		Pressed:      pressed,
		Disabled:     r.disabled(baseLCH),
		Text:         colour.FormatHex(colour.OnColor(base)),
		DisabledText: disabledText,
	}
}

// semantic builds a semantic role with the same base-to-states derivation as
// the brand roles. Subtle backgrounds hang off the page background, not the
// base, so they sit next to the background whatever the hue.
func (r *run) semantic(base colour.LCH, bgL float64) SemanticTokens {
	baseHex, baseRGB := r.fill(base)
	hover, pressed := r.states(base)

	subtleBg, _ := r.fill(colour.LCH{
		L: bgL + r.dir*SubtleBgShift,
		C: min(base.C*SubtleChromaScale, SubtleChromaMax),
		H: base.H,
	})
	subtleText, _ := r.fill(colour.LCH{
		L: subtleTextL.of(r.mode),
		C: base.C * SubtleTextChromaScale,
		H: base.H,
	})
	border, _ := r.fill(colour.LCH{
		L: base.L + (bgL-base.L)*SemanticBorderMix,
		C: base.C * SemanticBorderChromaScale,
		H: base.H,
	})

	return SemanticTokens{
		Base:       baseHex,
		OnBaseText: colour.FormatHex(colour.OnColor(baseRGB)),
		SubtleBg:   subtleBg,
		SubtleText: subtleText,
		Border:     border,
		Hover:      hover,
		Pressed:    pressed,
	}
}
