package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/jmylchreest/tokensmith/internal/colour"
	"github.com/jmylchreest/tokensmith/internal/seq"
	"github.com/jmylchreest/tokensmith/internal/theme"
)

// fixtureTokens is a hand-checked light token set that passes AA everywhere.
func fixtureTokens() theme.TokenSet {
	return theme.TokenSet{
		Background:    "#FFFFFF",
		Surface:       "#F5F5F7",
		Surface2:      "#EBEBEF",
		TextPrimary:   "#1A1A1F",
		TextSecondary: "#4A4A55",
		TextTertiary:  "#6E6E7A",
		Primary:       "#5B5FF5",
		OnPrimary:     "#FFFFFF",
		Secondary:     "#2F6F5E",
		OnSecondary:   "#FFFFFF",
		Accent:        "#B3261E",
		OnAccent:      "#FFFFFF",
		Border:        "#C8C8D0",
		Divider:       "#DEDEE4",
		FocusRing:     "#3B3FD0",
		ButtonPrimary: theme.ButtonTokens{
			Base: "#5B5FF5", Hover: "#4B4FE0", Pressed: "#3E42C8",
			Disabled: "#C9CAF0", Text: "#FFFFFF", DisabledText: "#8A8A94",
		},
		ButtonSecondary: theme.ButtonTokens{
			Base: "#2F6F5E", Hover: "#275E50", Pressed: "#1F4E42",
			Disabled: "#C3D4CF", Text: "#FFFFFF", DisabledText: "#8A8A94",
		},
		Success: theme.SemanticTokens{
			Base: "#1E7B34", OnBaseText: "#FFFFFF", SubtleBg: "#E8F5EA", SubtleText: "#1E5E2C",
			Border: "#8CC49A", Hover: "#196A2C", Pressed: "#145A25",
		},
		Warning: theme.SemanticTokens{
			Base: "#8A5A00", OnBaseText: "#FFFFFF", SubtleBg: "#FFF4E0", SubtleText: "#6B4600",
			Border: "#D6B77A", Hover: "#774E00", Pressed: "#654200",
		},
		Danger: theme.SemanticTokens{
			Base: "#C62828", OnBaseText: "#FFFFFF", SubtleBg: "#FDECEC", SubtleText: "#8E1B1B",
			Border: "#E89A9A", Hover: "#AE2222", Pressed: "#961D1D",
		},
		Info: theme.SemanticTokens{
			Base: "#1565C0", OnBaseText: "#FFFFFF", SubtleBg: "#E6F0FB", SubtleText: "#0F4C92",
			Border: "#8DB4E2", Hover: "#1258A8", Pressed: "#0F4B90",
		},
	}
}

func fixtureSummary() theme.Summary {
	return theme.Summary{
		Mode:           theme.ModeLight,
		BackgroundL:    1.0,
		SurfaceL:       0.97,
		Surface2L:      0.94,
		TextPrimaryL:   0.25,
		TextSecondaryL: 0.42,
		TextTertiaryL:  0.55,
		BorderL:        0.85,
		DividerL:       0.90,
		NeutralHue:     280,
	}
}

func fixtureInput() Input {
	return Input{
		Tokens:  fixtureTokens(),
		Mode:    theme.ModeLight,
		Level:   colour.LevelAA,
		Tuning:  DefaultTuning(),
		Summary: fixtureSummary(),
	}
}

func TestScoreFixturePasses(t *testing.T) {
	r, err := Score(fixtureInput())
	if err != nil {
		t.Fatal(err)
	}
	if !r.Contrast.PassAll {
		for _, m := range r.Contrast.Modes {
			for _, c := range m.Checks {
				if !c.Pass {
					t.Errorf("unexpected failure %s: %.2f < %.2f", c.Name, c.Ratio, c.Threshold)
				}
			}
		}
	}
	if !r.State.PassAll {
		t.Errorf("state checks failed, worst %s at %.2f", r.State.WorstCheck, r.State.WorstRatio)
	}
	if !r.Tone.OK {
		t.Errorf("tone rules failed: %v", r.Tone.Notes)
	}
	if r.Penalties.Contrast != 0 || r.Penalties.State != 0 {
		t.Errorf("penalties applied to passing set: %+v", r.Penalties)
	}
	if r.Total <= 0 || r.Total > DefaultWeights().Sum() {
		t.Errorf("total %v outside (0, %v]", r.Total, DefaultWeights().Sum())
	}
}

func TestScoreHardPenaltyDominates(t *testing.T) {
	good, err := Score(fixtureInput())
	if err != nil {
		t.Fatal(err)
	}

	in := fixtureInput()
	in.Tokens.TextPrimary = "#DDDDDD"
	bad, err := Score(in)
	if err != nil {
		t.Fatal(err)
	}

	if bad.Contrast.PassAll {
		t.Fatal("expected contrast failure for light-grey text on white")
	}
	if bad.Penalties.Contrast != DefaultTuning().ContrastPenalty {
		t.Errorf("contrast penalty = %v, want %v", bad.Penalties.Contrast, DefaultTuning().ContrastPenalty)
	}
	if bad.Total >= good.Total {
		t.Errorf("failing set scored %v, not below passing set %v", bad.Total, good.Total)
	}
	// No set of sub-scores can climb back over the penalty.
	if bad.Total > DefaultWeights().Sum()-DefaultTuning().ContrastPenalty {
		t.Errorf("failing total %v exceeds the best possible failing score", bad.Total)
	}
}

func TestContrastScoreRewardsSmallerShortfall(t *testing.T) {
	score := func(text string) float64 {
		in := fixtureInput()
		in.Tokens.TextPrimary = text
		r, err := Score(in)
		if err != nil {
			t.Fatal(err)
		}
		if r.Contrast.PassAll {
			t.Fatalf("%s on light surfaces unexpectedly passes", text)
		}
		return r.Contrast.Score
	}

	far := score("#DDDDDD")
	near := score("#999999")
	if far >= 0 || near >= 0 {
		t.Errorf("failing sets should score below zero, got %v and %v", far, near)
	}
	if near <= far {
		t.Errorf("closer miss scored %v, not above %v", near, far)
	}
	if far < -1 {
		t.Errorf("score %v below the -1 floor", far)
	}
}

func TestScoreStatePenalty(t *testing.T) {
	in := fixtureInput()
	in.Tokens.Danger.SubtleText = "#F6E0E0"
	r, err := Score(in)
	if err != nil {
		t.Fatal(err)
	}
	if r.State.PassAll {
		t.Fatal("expected state failure for pale text on subtle background")
	}
	if r.Penalties.State != DefaultTuning().StatePenalty {
		t.Errorf("state penalty = %v, want %v", r.Penalties.State, DefaultTuning().StatePenalty)
	}
	if !r.Contrast.PassAll {
		t.Error("state failure should not affect the main contrast report")
	}
}

func TestScoreGamutPenaltyCapped(t *testing.T) {
	in := fixtureInput()
	in.GamutViolations = 3
	r, _ := Score(in)
	if math.Abs(r.Gamut.Penalty-0.15) > 1e-9 {
		t.Errorf("gamut penalty = %v, want 0.15", r.Gamut.Penalty)
	}

	in.GamutViolations = 100
	r, _ = Score(in)
	if r.Gamut.Penalty != DefaultTuning().GamutPenaltyCap {
		t.Errorf("gamut penalty = %v, want cap %v", r.Gamut.Penalty, DefaultTuning().GamutPenaltyCap)
	}
}

func TestScoreCVDModesIncludeIdentity(t *testing.T) {
	in := fixtureInput()
	in.CVDModes = []colour.CVDMode{colour.CVDProtan, colour.CVDDeutan, colour.CVDProtan}
	r, err := Score(in)
	if err != nil {
		t.Fatal(err)
	}
	want := []colour.CVDMode{colour.CVDNone, colour.CVDProtan, colour.CVDDeutan}
	if len(r.Contrast.Modes) != len(want) {
		t.Fatalf("contrast evaluated %d modes, want %d", len(r.Contrast.Modes), len(want))
	}
	for i, m := range r.Contrast.Modes {
		if m.CVD != want[i] {
			t.Errorf("mode %d = %s, want %s", i, m.CVD, want[i])
		}
	}
	if len(r.CVD.Modes) != len(want) {
		t.Errorf("cvd robustness evaluated %d modes, want %d", len(r.CVD.Modes), len(want))
	}
	if r.CVD.Score < 0 || r.CVD.Score > 1 {
		t.Errorf("cvd score %v outside [0,1]", r.CVD.Score)
	}
}

func TestScoreSemanticFloor(t *testing.T) {
	in := fixtureInput()
	in.Tokens.Warning.Base = in.Tokens.Danger.Base
	r, _ := Score(in)
	if r.Semantic.Score != 0 {
		t.Errorf("semantic score = %v, want 0 for identical bases", r.Semantic.Score)
	}
	if r.Semantic.ClosestPair != "warning/danger" {
		t.Errorf("closest pair = %s, want warning/danger", r.Semantic.ClosestPair)
	}
}

func TestScoreTone(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*theme.Summary)
		wantOK bool
	}{
		{name: "valid stack", mutate: func(*theme.Summary) {}, wantOK: true},
		{name: "surface lighter than background", mutate: func(s *theme.Summary) { s.SurfaceL = 1.02 }},
		{name: "layer gap too large", mutate: func(s *theme.Summary) { s.Surface2L = 0.8 }},
		{name: "text tiers too close", mutate: func(s *theme.Summary) { s.TextSecondaryL = 0.27 }},
		{name: "text tiers inverted", mutate: func(s *theme.Summary) { s.TextTertiaryL = 0.3 }},
		{name: "divider louder than border", mutate: func(s *theme.Summary) { s.DividerL = 0.8 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fixtureSummary()
			tt.mutate(&s)
			r := scoreTone(s, theme.ModeLight, DefaultTuning())
			if r.OK != tt.wantOK {
				t.Errorf("OK = %v, want %v (notes %v)", r.OK, tt.wantOK, r.Notes)
			}
			if !r.OK && r.Score != DefaultTuning().ToneFailScore {
				t.Errorf("fail score = %v, want %v", r.Score, DefaultTuning().ToneFailScore)
			}
		})
	}
}

func TestScoreToneDark(t *testing.T) {
	s := theme.Summary{
		Mode:           theme.ModeDark,
		BackgroundL:    0.18,
		SurfaceL:       0.22,
		Surface2L:      0.26,
		TextPrimaryL:   0.94,
		TextSecondaryL: 0.8,
		TextTertiaryL:  0.68,
		BorderL:        0.34,
		DividerL:       0.28,
	}
	if r := scoreTone(s, theme.ModeDark, DefaultTuning()); !r.OK {
		t.Errorf("valid dark stack rejected: %v", r.Notes)
	}
	s.Surface2L = 0.2
	if r := scoreTone(s, theme.ModeDark, DefaultTuning()); r.OK {
		t.Error("dark stack stepping darker should fail")
	}
}

func TestClassifyHarmony(t *testing.T) {
	tests := []struct {
		distance float64
		seeded   bool
		want     HarmonyClass
	}{
		{5, false, HarmonyMono},
		{15, false, HarmonyAnalogous},
		{15, true, HarmonyMono},
		{45, false, HarmonyOther},
		{45, true, HarmonyAnalogous},
		{175, false, HarmonyComplementary},
		{162, false, HarmonySplit},
		{162, true, HarmonyComplementary},
		{150, false, HarmonySplit},
		{120, false, HarmonyTriadic},
		{135, false, HarmonyOther},
		{135, true, HarmonySplit},
		{90, true, HarmonyOther},
	}
	for _, tt := range tests {
		if got := ClassifyHarmony(tt.distance, tt.seeded); got != tt.want {
			t.Errorf("ClassifyHarmony(%v, %v) = %s, want %s", tt.distance, tt.seeded, got, tt.want)
		}
	}
}

func TestScoreHarmonySeed(t *testing.T) {
	in := fixtureInput()
	unseeded, _ := Score(in)
	if unseeded.Harmony.Seeded {
		t.Error("harmony should be unseeded without a seed hue")
	}

	seed := 280.0
	in.SeedHue = &seed
	seeded, _ := Score(in)
	if !seeded.Harmony.Seeded {
		t.Fatal("harmony should be seeded")
	}
	if seeded.Harmony.SeedDistance != 0 {
		t.Errorf("seed distance = %v, want 0 for neutral hue equal to seed", seeded.Harmony.SeedDistance)
	}
}

func TestScoreRejectsInvalidHex(t *testing.T) {
	in := fixtureInput()
	in.Tokens.Surface = "#12"
	if _, err := Score(in); !errors.Is(err, colour.ErrInvalidColorFormat) {
		t.Errorf("Score error = %v, want ErrInvalidColorFormat", err)
	}
	if _, err := CheckContrast(in.Tokens, colour.LevelAA, nil); !errors.Is(err, colour.ErrInvalidColorFormat) {
		t.Errorf("CheckContrast error = %v, want ErrInvalidColorFormat", err)
	}
}

func TestCheckContrastAAA(t *testing.T) {
	tokens := fixtureTokens()
	aa, err := CheckContrast(tokens, colour.LevelAA, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !aa.PassAll {
		t.Fatalf("fixture should pass AA, worst %s %.2f", aa.WorstCheck, aa.WorstRatio)
	}

	aaa, err := CheckContrast(tokens, colour.LevelAAA, nil)
	if err != nil {
		t.Fatal(err)
	}
	if aaa.PassAll {
		t.Fatal("fixture should not pass AAA")
	}
	for _, c := range aaa.Modes[0].Checks {
		if c.Size == colour.TextNormal && c.Ratio < 7.0 && c.Pass {
			t.Errorf("%s at %.2f passed AAA normal text", c.Name, c.Ratio)
		}
	}
}

func TestScoreBuiltTokens(t *testing.T) {
	for _, mode := range []theme.Mode{theme.ModeLight, theme.ModeDark} {
		b, err := theme.NewBuilder(mode, "#5B5FF5")
		if err != nil {
			t.Fatal(err)
		}
		sp := theme.NewSpace(mode, theme.SpaceOptions{AnchorHue: 276, SemanticConventional: true})
		s := seq.New(1)
		for i := 0; i < 20; i++ {
			tokens, violations, summary := b.Build(sp.Sample(s))
			r, err := Score(Input{
				Tokens:          tokens,
				Mode:            mode,
				Level:           colour.LevelAA,
				Tuning:          DefaultTuning(),
				GamutViolations: violations,
				Summary:         summary,
				CVDModes:        colour.AllCVDModes(),
			})
			if err != nil {
				t.Fatalf("%s: %v", mode, err)
			}
			if math.IsNaN(r.Total) || math.IsInf(r.Total, 0) {
				t.Fatalf("%s: total is %v", mode, r.Total)
			}
		}
	}
}

func TestWeights(t *testing.T) {
	w := DefaultWeights()
	if math.Abs(w.Sum()-1) > 1e-9 {
		t.Errorf("default weights sum to %v, want 1", w.Sum())
	}
	if err := w.Apply(map[string]float64{"contrast": 0.5, "CVD": 0.2}); err != nil {
		t.Fatal(err)
	}
	if w.Contrast != 0.5 || w.CVD != 0.2 {
		t.Errorf("overrides not applied: %+v", w)
	}
	if err := w.Set("beauty", 1); !errors.Is(err, ErrUnknownWeight) {
		t.Errorf("Set(beauty) error = %v, want ErrUnknownWeight", err)
	}
	if err := w.Set("tone", -1); err == nil {
		t.Error("negative weight should be rejected")
	}
}

func TestTuningValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Tuning)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Tuning) {}},
		{name: "zero weights", mutate: func(t *Tuning) { t.Weights = Weights{} }, wantErr: true},
		{name: "negative penalty", mutate: func(t *Tuning) { t.ContrastPenalty = -1 }, wantErr: true},
		{name: "inverted cvd bounds", mutate: func(t *Tuning) { t.CVDCeiling = 0.01 }, wantErr: true},
		{name: "share above one", mutate: func(t *Tuning) { t.CVDPrimaryShare = 1.5 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tu := DefaultTuning()
			tt.mutate(&tu)
			if err := tu.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPenaltiesExceedWeightedRange(t *testing.T) {
	tu := DefaultTuning()
	w := tu.Weights
	// Contrast and state sub-scores reach -1 when failing; the rest stay in [0,1].
	span := w.Sum() + w.Contrast + w.State

	for name, penalty := range map[string]float64{
		"contrast": tu.ContrastPenalty,
		"state":    tu.StatePenalty,
	} {
		if penalty <= span {
			t.Errorf("%s penalty %v does not exceed weighted range %v", name, penalty, span)
		}
	}
	if tu.ContrastPenalty <= tu.StatePenalty {
		t.Errorf("contrast penalty %v should exceed state penalty %v", tu.ContrastPenalty, tu.StatePenalty)
	}
}
