package tokensmith

import (
	"fmt"

	"github.com/jmylchreest/tokensmith/internal/colour"
	"github.com/jmylchreest/tokensmith/internal/scoring"
)

// Validation is the accessibility verdict for an existing token set.
type Validation struct {
	Level      Level   `json:"level"`
	Pass       bool    `json:"pass"`
	Failures   int     `json:"failures"`
	WorstRatio float64 `json:"worstRatio"`
	WorstCheck string  `json:"worstCheck"`
	Checks     []Check `json:"checks"`
}

// ValidateTokens re-runs only the contrast checks on tokens under normal
// vision. Malformed colours in tokens are reported as ErrInvalidColorFormat.
func ValidateTokens(tokens TokenSet, level Level) (Validation, error) {
	return ValidateTokensCVD(tokens, level, nil)
}

// ValidateTokensCVD is ValidateTokens with additional simulated CVD modes.
// A check appears once per mode.
func ValidateTokensCVD(tokens TokenSet, level Level, modes []CVDMode) (Validation, error) {
	l, err := colour.ParseLevel(string(level))
	if err != nil {
		return Validation{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	report, err := scoring.CheckContrast(tokens, l, modes)
	if err != nil {
		return Validation{}, err
	}
	v := Validation{
		Level:      l,
		Pass:       report.PassAll,
		Failures:   report.Failures,
		WorstRatio: report.WorstRatio,
		WorstCheck: report.WorstCheck,
	}
	for _, m := range report.Modes {
		v.Checks = append(v.Checks, m.Checks...)
	}
	return v, nil
}
