package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tokensmith/internal/colour"
	"github.com/jmylchreest/tokensmith/internal/metrics"
	"github.com/jmylchreest/tokensmith/internal/render"
	"github.com/jmylchreest/tokensmith/pkg/tokensmith"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Search light and dark token sets for a brand colour",
		Long: `Generate runs one annealing search per mode and prints the best token sets.

The primary colour is kept verbatim in both modes; everything else is derived
from the searched parameters. The same --random-seed reproduces a run exactly.`,
		Example: `  tokensmith generate --primary "#5B5FF5"
  tokensmith generate --primary 5B5FF5 --contrast AAA --cvd protan,deutan,tritan -f css -o tokens.css
  TOKENSMITH_PRIMARY=#5B5FF5 tokensmith generate --preview`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringP("primary", "p", "", "brand colour as #RRGGBB (required)")
	flags.String("primary-dark", "", "brand colour for dark mode (default: --primary)")
	flags.String("seed-hex", "", "colour whose hue anchors neutrals, accent and harmony")
	flags.StringP("contrast", "c", string(tokensmith.DefaultContrastTarget), "contrast target (AA, AAA)")
	flags.IntP("iterations", "n", tokensmith.DefaultIterations, "annealing iterations per mode")
	flags.Float64("temperature", tokensmith.DefaultTemperature, "initial annealing temperature")
	flags.Float64("cooling", tokensmith.DefaultCooling, "per-iteration cooling factor")
	flags.Bool("vibrant", false, "widen chroma ranges")
	flags.Bool("conventional", false, "keep semantic hues near green, yellow, red and blue")
	flags.StringSlice("cvd", []string{"none", "protan", "deutan"}, "colour-vision modes to score (none, protan, deutan, tritan)")
	flags.StringToString("weight", nil, "override a sub-score weight, e.g. --weight contrast=0.4")
	flags.Uint64("random-seed", 0, "seed for a reproducible run (0 picks one)")
	flags.Bool("serial", false, "run the two modes one after the other")
	flags.StringP("format", "f", string(render.FormatJSON), "output format (json, css)")
	flags.StringP("output", "o", "", "write output to file instead of stdout")
	flags.Bool("preview", false, "print a swatch summary to stderr")
	flags.String("metrics-file", "", "write optimiser metrics in Prometheus text format")

	return cmd
}

// generateConfig turns the bound settings into a tokensmith configuration.
func (a *app) generateConfig() (tokensmith.Config, error) {
	v := a.v
	cfg := tokensmith.Config{
		PrimaryHex:           v.GetString("primary"),
		PrimaryDarkHex:       v.GetString("primary-dark"),
		SeedHex:              v.GetString("seed-hex"),
		Iterations:           v.GetInt("iterations"),
		Temperature:          v.GetFloat64("temperature"),
		Cooling:              v.GetFloat64("cooling"),
		PreferVibrant:        v.GetBool("vibrant"),
		SemanticConventional: v.GetBool("conventional"),
		RandomSeed:           v.GetUint64("random-seed"),
		Serial:               v.GetBool("serial"),
		Logger:               a.logger,
	}

	level, err := colour.ParseLevel(v.GetString("contrast"))
	if err != nil {
		return cfg, err
	}
	cfg.ContrastTarget = level

	modes, err := parseCVDModes(v.GetStringSlice("cvd"))
	if err != nil {
		return cfg, err
	}
	cfg.CVDModes = modes

	if raw := v.GetStringMapString("weight"); len(raw) > 0 {
		cfg.Weights = make(map[string]float64, len(raw))
		for name, s := range raw {
			w, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return cfg, fmt.Errorf("weight %s: %w", name, err)
			}
			cfg.Weights[name] = w
		}
	}
	return cfg, nil
}

func (a *app) runGenerate(cmd *cobra.Command) error {
	cfg, err := a.generateConfig()
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(a.v.GetString("format"))
	if err != nil {
		return err
	}

	var recorder *metrics.Recorder
	if a.v.GetString("metrics-file") != "" {
		recorder = metrics.NewRecorder()
		cfg.ObserverFor = func(mode tokensmith.Mode) tokensmith.Observer {
			return recorder.Observer(string(mode))
		}
	}

	a.logger.Debug("starting search",
		"primary", cfg.PrimaryHex,
		"iterations", cfg.Iterations,
		"contrast", cfg.ContrastTarget)

	result, err := tokensmith.Recommend(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	a.logger.Info("search finished", "random_seed", result.Meta.RandomSeed)

	out, err := render.Render(result, format)
	if err != nil {
		return err
	}

	if path := a.v.GetString("output"); path != "" {
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		a.logger.Info("wrote tokens", "path", path)
	} else {
		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return err
		}
		if format == render.FormatJSON {
			fmt.Fprintln(cmd.OutOrStdout())
		}
	}

	if path := a.v.GetString("metrics-file"); path != "" {
		if err := recorder.WriteFile(path); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		a.logger.Info("wrote metrics", "path", path)
	}

	if a.v.GetBool("preview") && !a.v.GetBool("quiet") {
		fmt.Fprint(cmd.ErrOrStderr(), newPreview(cmd.ErrOrStderr()).Render(result))
	}
	return nil
}

// parseCVDModes accepts flag entries as well as a single comma-separated
// environment value.
func parseCVDModes(entries []string) ([]tokensmith.CVDMode, error) {
	var modes []tokensmith.CVDMode
	for _, entry := range entries {
		for _, s := range strings.Split(entry, ",") {
			if s = strings.TrimSpace(s); s == "" {
				continue
			}
			m, err := colour.ParseCVDMode(s)
			if err != nil {
				return nil, err
			}
			modes = append(modes, m)
		}
	}
	return modes, nil
}
