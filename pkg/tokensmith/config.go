package tokensmith

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tokensmith/internal/anneal"
	"github.com/jmylchreest/tokensmith/internal/colour"
	"github.com/jmylchreest/tokensmith/internal/scoring"
)

// Default configuration values.
const (
	DefaultIterations     = 3500
	DefaultContrastTarget = colour.LevelAA
	DefaultTemperature    = anneal.DefaultTemperature
	DefaultCooling        = anneal.DefaultCooling
	DefaultReheatEvery    = anneal.DefaultReheatEvery
	DefaultReheatFactor   = anneal.DefaultReheatFactor
)

var (
	// ErrMissingRequiredInput is returned when no primary colour is given.
	ErrMissingRequiredInput = errors.New("missing required input")

	// ErrInvalidConfig is returned when an option is out of range.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrInvalidColorFormat is returned for malformed hex colours.
	ErrInvalidColorFormat = colour.ErrInvalidColorFormat
)

// DefaultCVDModes are the colour-vision modes scored when none are given.
func DefaultCVDModes() []CVDMode {
	return []CVDMode{colour.CVDNone, colour.CVDProtan, colour.CVDDeutan}
}

// Config holds every option of a recommendation run. Zero values take the
// documented default.
type Config struct {
	// PrimaryHex is the brand colour. Required.
	PrimaryHex string
	// PrimaryDarkHex is the brand colour for dark mode. Default PrimaryHex.
	PrimaryDarkHex string
	// SeedHex anchors the neutral, accent and harmony hues. Default none,
	// in which case the primary hue anchors the search and harmony uses the
	// tighter bands.
	SeedHex string

	// ContrastTarget is AA or AAA. Default AA.
	ContrastTarget Level

	// Iterations is the annealing budget per mode. Default 3500.
	Iterations int
	// Temperature is the initial annealing temperature. Default 0.08.
	Temperature float64
	// Cooling is the per-iteration decay factor. Default 0.9985.
	Cooling float64
	// ReheatEvery is the reheat period. Default 900.
	ReheatEvery int
	// ReheatFactor is the reheat multiplier, capped at Temperature. Default 3.
	ReheatFactor float64

	// PreferVibrant widens the chroma ranges.
	PreferVibrant bool
	// SemanticConventional keeps semantic hues near green, yellow, red and blue.
	SemanticConventional bool

	// CVDModes are scored in addition to normal vision. Default none, protan, deutan.
	CVDModes []CVDMode

	// Weights overrides named sub-score weights.
	Weights map[string]float64
	// Tuning replaces the whole scorer configuration. Weights still apply on top.
	Tuning *Tuning

	// RandomSeed makes a run reproducible. Zero picks a random seed, which is
	// reported in the result.
	RandomSeed uint64

	// Serial runs the two modes one after the other instead of in parallel.
	// Results are identical either way.
	Serial bool

	// Logger receives progress logs. Default discards.
	Logger hclog.Logger
	// ObserverFor, if set, supplies an observer for each mode's run.
	ObserverFor func(mode Mode) Observer
}

// withDefaults returns a copy of c with zero values replaced by defaults.
func (c Config) withDefaults() Config {
	c.PrimaryHex = strings.TrimSpace(c.PrimaryHex)
	c.PrimaryDarkHex = strings.TrimSpace(c.PrimaryDarkHex)
	c.SeedHex = strings.TrimSpace(c.SeedHex)
	if c.PrimaryDarkHex == "" {
		c.PrimaryDarkHex = c.PrimaryHex
	}
	if c.ContrastTarget == "" {
		c.ContrastTarget = DefaultContrastTarget
	} else if l, err := colour.ParseLevel(string(c.ContrastTarget)); err == nil {
		c.ContrastTarget = l
	}
	if c.Iterations == 0 {
		c.Iterations = DefaultIterations
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.Cooling == 0 {
		c.Cooling = DefaultCooling
	}
	if c.ReheatEvery == 0 {
		c.ReheatEvery = DefaultReheatEvery
	}
	if c.ReheatFactor == 0 {
		c.ReheatFactor = DefaultReheatFactor
	}
	if len(c.CVDModes) == 0 {
		c.CVDModes = DefaultCVDModes()
	} else {
		modes := make([]CVDMode, len(c.CVDModes))
		for i, m := range c.CVDModes {
			modes[i] = m
			if parsed, err := colour.ParseCVDMode(string(m)); err == nil {
				modes[i] = parsed
			}
		}
		c.CVDModes = modes
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
	return c
}

// Validate checks the configuration after defaults are applied.
func (c Config) Validate() error {
	if c.PrimaryHex == "" {
		return fmt.Errorf("%w: primaryHex", ErrMissingRequiredInput)
	}
	hexes := []struct{ name, value string }{
		{"primaryHex", c.PrimaryHex},
		{"primaryDarkHex", c.PrimaryDarkHex},
		{"seedHex", c.SeedHex},
	}
	for _, h := range hexes {
		if h.value == "" {
			continue
		}
		if _, err := colour.ParseHex(h.value); err != nil {
			return fmt.Errorf("%s: %w", h.name, err)
		}
	}
	if _, err := colour.ParseLevel(string(c.ContrastTarget)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for _, m := range c.CVDModes {
		if _, err := colour.ParseCVDMode(string(m)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if err := c.annealOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.tuning(); err != nil {
		return err
	}
	return nil
}

func (c Config) annealOptions() anneal.Options {
	return anneal.Options{
		Iterations:   c.Iterations,
		Temperature:  c.Temperature,
		Cooling:      c.Cooling,
		ReheatEvery:  c.ReheatEvery,
		ReheatFactor: c.ReheatFactor,
	}
}

// tuning resolves the scorer configuration with weight overrides applied.
func (c Config) tuning() (scoring.Tuning, error) {
	t := scoring.DefaultTuning()
	if c.Tuning != nil {
		t = *c.Tuning
	}
	if err := t.Weights.Apply(c.Weights); err != nil {
		return t, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return t, nil
}
