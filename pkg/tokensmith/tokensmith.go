// Package tokensmith recommends accessible light and dark design-token sets
// for a fixed brand colour. Each mode is searched by simulated annealing over
// a theme parameter space; every candidate is rendered to tokens and scored
// for contrast, layering, emphasis, harmony, colour-vision robustness and
// semantic separation.
//
// External callers use three entry points: Recommend, Export and ValidateTokens.
package tokensmith

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/tokensmith/internal/anneal"
	"github.com/jmylchreest/tokensmith/internal/colour"
	"github.com/jmylchreest/tokensmith/internal/scoring"
	"github.com/jmylchreest/tokensmith/internal/seq"
	"github.com/jmylchreest/tokensmith/internal/theme"
)

type (
	// TokenSet is a rendered set of design tokens.
	TokenSet = theme.TokenSet
	// Params is the theme parameter vector the optimiser searches over.
	Params = theme.Params
	// Mode is light or dark.
	Mode = theme.Mode
	// Report is the full scoring breakdown of a token set.
	Report = scoring.Report
	// Tuning is the scorer configuration.
	Tuning = scoring.Tuning
	// Check is one contrast measurement.
	Check = scoring.Check
	// Level is a WCAG conformance level.
	Level = colour.Level
	// CVDMode is a simulated colour-vision deficiency.
	CVDMode = colour.CVDMode
	// Step is one optimiser iteration, as seen by an Observer.
	Step = anneal.Step
	// Observer receives optimiser steps.
	Observer = anneal.Observer
)

const (
	ModeLight = theme.ModeLight
	ModeDark  = theme.ModeDark
	LevelAA   = colour.LevelAA
	LevelAAA  = colour.LevelAAA
)

// ModeResult is the best token set found for one mode.
type ModeResult struct {
	Mode     Mode     `json:"mode"`
	Tokens   TokenSet `json:"tokens"`
	Score    float64  `json:"score"`
	Report   Report   `json:"report"`
	Params   Params   `json:"params"`
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`
	// Trace is the best score after each iteration.
	Trace []float64 `json:"-"`
}

// Meta describes the inputs of a run, enough to repeat it.
type Meta struct {
	PrimaryHex           string    `json:"primaryHex"`
	PrimaryDarkHex       string    `json:"primaryDarkHex"`
	SeedHex              string    `json:"seedHex,omitempty"`
	SeedHue              *float64  `json:"seedHue,omitempty"`
	ContrastTarget       Level     `json:"contrastTarget"`
	Iterations           int       `json:"iterations"`
	RandomSeed           uint64    `json:"randomSeed"`
	CVDModes             []CVDMode `json:"cvdModes"`
	PreferVibrant        bool      `json:"preferVibrant"`
	SemanticConventional bool      `json:"semanticConventional"`
}

// DualResult holds the light and dark results of one run.
type DualResult struct {
	Meta  Meta       `json:"meta"`
	Light ModeResult `json:"light"`
	Dark  ModeResult `json:"dark"`
}

// Mode returns the result for m.
func (r *DualResult) Mode(m Mode) *ModeResult {
	if m == ModeDark {
		return &r.Dark
	}
	return &r.Light
}

// RecommendTokensDual is Recommend without a context.
func RecommendTokensDual(cfg Config) (*DualResult, error) {
	return Recommend(context.Background(), cfg)
}

// Recommend searches light and dark token sets for cfg.PrimaryHex.
// It fails only on missing or malformed input; accessibility shortfalls
// are reported in each mode's Report.
func Recommend(ctx context.Context, cfg Config) (*DualResult, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tuning, err := cfg.tuning()
	if err != nil {
		return nil, err
	}

	primary, err := colour.NormalizeHex(cfg.PrimaryHex)
	if err != nil {
		return nil, fmt.Errorf("primaryHex: %w", err)
	}
	primaryDark, err := colour.NormalizeHex(cfg.PrimaryDarkHex)
	if err != nil {
		return nil, fmt.Errorf("primaryDarkHex: %w", err)
	}

	anchor, err := colour.HexToHue(primary)
	if err != nil {
		return nil, err
	}
	var seedHue *float64
	if cfg.SeedHex != "" {
		h, err := colour.HexToHue(cfg.SeedHex)
		if err != nil {
			return nil, fmt.Errorf("seedHex: %w", err)
		}
		seedHue = &h
		anchor = h
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = seq.RandomSeed()
	}

	// Both child streams are taken before either run so parallel and serial
	// execution draw identical sequences.
	root := seq.New(seed)
	streams := map[Mode]*seq.Sequence{
		ModeLight: root.Split(),
		ModeDark:  root.Split(),
	}

	result := &DualResult{
		Meta: Meta{
			PrimaryHex:           primary,
			PrimaryDarkHex:       primaryDark,
			SeedHex:              cfg.SeedHex,
			SeedHue:              seedHue,
			ContrastTarget:       cfg.ContrastTarget,
			Iterations:           cfg.Iterations,
			RandomSeed:           seed,
			CVDModes:             cfg.CVDModes,
			PreferVibrant:        cfg.PreferVibrant,
			SemanticConventional: cfg.SemanticConventional,
		},
	}

	jobs := []struct {
		mode    Mode
		primary string
	}{
		{ModeLight, primary},
		{ModeDark, primaryDark},
	}

	runJob := func(ctx context.Context, mode Mode, primaryHex string) error {
		r := runner{
			cfg:     cfg,
			tuning:  tuning,
			mode:    mode,
			primary: primaryHex,
			anchor:  anchor,
			seedHue: seedHue,
		}
		res, err := r.run(ctx, streams[mode])
		if err != nil {
			return fmt.Errorf("%s mode: %w", mode, err)
		}
		*result.Mode(mode) = *res
		return nil
	}

	if cfg.Serial {
		for _, j := range jobs {
			if err := runJob(ctx, j.mode, j.primary); err != nil {
				return nil, err
			}
		}
		return result, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		g.Go(func() error {
			return runJob(gctx, j.mode, j.primary)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// runner is one mode's search.
type runner struct {
	cfg     Config
	tuning  Tuning
	mode    Mode
	primary string
	anchor  float64
	seedHue *float64
}

func (r runner) run(ctx context.Context, s *seq.Sequence) (*ModeResult, error) {
	builder, err := theme.NewBuilder(r.mode, r.primary)
	if err != nil {
		return nil, err
	}
	logger := r.cfg.Logger.Named(string(r.mode))

	p := &problem{
		space: theme.NewSpace(r.mode, theme.SpaceOptions{
			PreferVibrant:        r.cfg.PreferVibrant,
			SemanticConventional: r.cfg.SemanticConventional,
			AnchorHue:            r.anchor,
			Seeded:               r.seedHue != nil,
		}),
		builder: builder,
		input: scoring.Input{
			Mode:     r.mode,
			Level:    r.cfg.ContrastTarget,
			Tuning:   r.tuning,
			CVDModes: r.cfg.CVDModes,
			SeedHue:  r.seedHue,
		},
	}

	opts := r.cfg.annealOptions()
	opts.Logger = logger
	if r.cfg.ObserverFor != nil {
		opts.Observer = r.cfg.ObserverFor(r.mode)
	}
	a, err := anneal.New[theme.Params, evaluation](p, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := a.Run(ctx, s)
	if err != nil {
		return nil, err
	}

	best := res.BestReport
	logger.Info("search complete",
		"score", res.BestScore,
		"pass_all", best.Report.Contrast.PassAll,
		"worst_ratio", best.Report.Contrast.WorstRatio,
		"worst_check", best.Report.Contrast.WorstCheck,
		"duration", time.Since(start))

	return &ModeResult{
		Mode:     r.mode,
		Tokens:   best.Tokens,
		Score:    res.BestScore,
		Report:   best.Report,
		Params:   res.Best,
		Accepted: res.Accepted,
		Rejected: res.Rejected,
		Trace:    res.Trace,
	}, nil
}

// evaluation is what the optimiser keeps alongside each score.
type evaluation struct {
	Tokens TokenSet
	Report Report
}

// problem adapts the theme space, builder and scorer to the optimiser.
type problem struct {
	space   *theme.Space
	builder *theme.Builder
	input   scoring.Input
}

func (p *problem) Init(s *seq.Sequence) theme.Params {
	return p.space.Sample(s)
}

func (p *problem) Mutate(params theme.Params, s *seq.Sequence) theme.Params {
	next, _ := p.space.Mutate(params, s)
	return next
}

func (p *problem) Evaluate(params theme.Params) (float64, evaluation, error) {
	tokens, violations, summary := p.builder.Build(params)
	in := p.input
	in.Tokens = tokens
	in.GamutViolations = violations
	in.Summary = summary
	report, err := scoring.Score(in)
	if err != nil {
		return 0, evaluation{}, err
	}
	return report.Total, evaluation{Tokens: tokens, Report: report}, nil
}
