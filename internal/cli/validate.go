package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tokensmith/internal/colour"
	"github.com/jmylchreest/tokensmith/internal/security"
	"github.com/jmylchreest/tokensmith/pkg/tokensmith"
)

// ErrValidationFailed is returned when a token set misses its contrast target.
var ErrValidationFailed = errors.New("validation failed")

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check an exported token file against a contrast target",
		Long: `Validate re-runs the contrast checks on the tokens in a file written by
"tokensmith generate" and exits non-zero if any check fails.`,
		Example: `  tokensmith validate tokens.json --contrast AAA
  tokensmith validate tokens.json --mode dark --cvd protan,deutan`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringP("contrast", "c", string(tokensmith.DefaultContrastTarget), "contrast target (AA, AAA)")
	flags.StringP("mode", "m", "both", "mode to check (light, dark, both)")
	flags.StringSlice("cvd", []string{"none"}, "colour-vision modes to check (none, protan, deutan, tritan)")
	flags.Bool("failures-only", false, "list failing checks only")

	return cmd
}

func (a *app) runValidate(cmd *cobra.Command, path string) error {
	data, err := security.ReadFile(path, security.MaxDocumentSize)
	if err != nil {
		return fmt.Errorf("failed to read token document: %w", err)
	}
	doc, err := tokensmith.ParseDocument(data)
	if err != nil {
		return err
	}

	level, err := colour.ParseLevel(a.v.GetString("contrast"))
	if err != nil {
		return err
	}
	modes, err := parseCVDModes(a.v.GetStringSlice("cvd"))
	if err != nil {
		return err
	}

	targets, err := selectModes(doc, a.v.GetString("mode"))
	if err != nil {
		return err
	}

	failuresOnly := a.v.GetBool("failures-only")
	quiet := a.v.GetBool("quiet")
	out := cmd.OutOrStdout()
	failed := 0

	for _, t := range targets {
		v, err := tokensmith.ValidateTokensCVD(t.tokens, level, modes)
		if err != nil {
			return fmt.Errorf("%s: %w", t.mode, err)
		}
		a.logger.Debug("validated", "mode", t.mode, "pass", v.Pass, "worst_ratio", v.WorstRatio)
		if !v.Pass {
			failed++
		}
		if quiet {
			continue
		}

		status := "pass"
		if !v.Pass {
			status = fmt.Sprintf("FAIL (%d checks)", v.Failures)
		}
		fmt.Fprintf(out, "%s %s: %s, worst %.2f (%s)\n", t.mode, level, status, v.WorstRatio, v.WorstCheck)

		table := NewTable("Check", "Size", "Ratio", "Needs", "Result")
		for _, c := range v.Checks {
			if failuresOnly && c.Pass {
				continue
			}
			result := "pass"
			if !c.Pass {
				result = "FAIL"
			}
			table.AddRow(c.Name, string(c.Size), fmt.Sprintf("%.2f", c.Ratio), fmt.Sprintf("%.1f", c.Threshold), result)
		}
		fmt.Fprintln(out, table.Render())
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d modes below %s", ErrValidationFailed, failed, len(targets), level)
	}
	return nil
}

type modeTokens struct {
	mode   tokensmith.Mode
	tokens tokensmith.TokenSet
}

func selectModes(doc *tokensmith.Document, mode string) ([]modeTokens, error) {
	light := modeTokens{tokensmith.ModeLight, doc.Light.Tokens}
	dark := modeTokens{tokensmith.ModeDark, doc.Dark.Tokens}
	switch mode {
	case "both", "":
		return []modeTokens{light, dark}, nil
	case string(tokensmith.ModeLight):
		return []modeTokens{light}, nil
	case string(tokensmith.ModeDark):
		return []modeTokens{dark}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q (must be light, dark or both)", mode)
	}
}
