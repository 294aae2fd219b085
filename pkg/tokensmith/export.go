package tokensmith

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ModeSummary is the exported view of one mode.
type ModeSummary struct {
	Score          float64  `json:"score"`
	PassAll        bool     `json:"passAll"`
	StatePassAll   bool     `json:"statePassAll"`
	ToneOK         bool     `json:"toneOk"`
	WorstRatio     float64  `json:"worstRatio"`
	WorstCheck     string   `json:"worstCheck"`
	StateWorst     float64  `json:"stateWorstRatio"`
	Harmony        string   `json:"harmony"`
	GamutViolation int      `json:"gamutViolations"`
	Notes          []string `json:"notes,omitempty"`
	Tokens         TokenSet `json:"tokens"`
}

// Document is the exported form of a DualResult.
type Document struct {
	Meta  Meta        `json:"meta"`
	Light ModeSummary `json:"light"`
	Dark  ModeSummary `json:"dark"`
}

// Summarize reduces a mode result to its exported summary.
func Summarize(r ModeResult) ModeSummary {
	return ModeSummary{
		Score:          r.Score,
		PassAll:        r.Report.Contrast.PassAll,
		StatePassAll:   r.Report.State.PassAll,
		ToneOK:         r.Report.Tone.OK,
		WorstRatio:     r.Report.Contrast.WorstRatio,
		WorstCheck:     r.Report.Contrast.WorstCheck,
		StateWorst:     r.Report.State.WorstRatio,
		Harmony:        string(r.Report.Harmony.Class),
		GamutViolation: r.Report.Gamut.Violations,
		Notes:          r.Report.Tone.Notes,
		Tokens:         r.Tokens,
	}
}

// NewDocument builds the export document for result.
func NewDocument(result *DualResult) Document {
	return Document{
		Meta:  result.Meta,
		Light: Summarize(result.Light),
		Dark:  Summarize(result.Dark),
	}
}

// Export serialises meta and both mode summaries as indented JSON.
func Export(result *DualResult) ([]byte, error) {
	if result == nil {
		return nil, errors.New("nil result")
	}
	data, err := json.MarshalIndent(NewDocument(result), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return data, nil
}

// ParseDocument reads a document written by Export.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &doc, nil
}
