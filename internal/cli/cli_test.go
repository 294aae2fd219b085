package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/tokensmith/internal/cli"
	"github.com/jmylchreest/tokensmith/internal/theme"
	"github.com/jmylchreest/tokensmith/pkg/tokensmith"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	rootCmd := cli.NewRootCmd()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "tokensmith version") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestGenerateJSON(t *testing.T) {
	out, _, err := execute(t, "generate", "--primary", "#5B5FF5", "--iterations", "40", "--random-seed", "3")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	doc, err := tokensmith.ParseDocument([]byte(out))
	if err != nil {
		t.Fatalf("output is not an export document: %v", err)
	}
	if doc.Meta.RandomSeed != 3 || doc.Meta.Iterations != 40 {
		t.Errorf("meta = %+v", doc.Meta)
	}
	if doc.Light.Tokens.Primary != "#5B5FF5" || doc.Dark.Tokens.Primary != "#5B5FF5" {
		t.Errorf("primary not kept verbatim: %s/%s", doc.Light.Tokens.Primary, doc.Dark.Tokens.Primary)
	}
}

func TestGenerateCSSToFile(t *testing.T) {
	dir := t.TempDir()
	cssPath := filepath.Join(dir, "tokens.css")
	promPath := filepath.Join(dir, "tokensmith.prom")

	out, _, err := execute(t, "generate",
		"--primary", "5b5ff5",
		"--iterations", "30",
		"--random-seed", "8",
		"--format", "css",
		"--output", cssPath,
		"--metrics-file", promPath)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty when writing to a file, got %q", out)
	}

	css, err := os.ReadFile(cssPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(css), "--color-primary: #5B5FF5;") {
		t.Error("css output missing primary")
	}

	prom, err := os.ReadFile(promPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(prom), `tokensmith_anneal_iterations_total{mode="dark"} 30`) {
		t.Errorf("metrics file missing dark iteration counter:\n%s", prom)
	}
}

func TestGeneratePreview(t *testing.T) {
	_, stderr, err := execute(t, "generate", "--primary", "#5B5FF5", "--iterations", "10", "--random-seed", "1", "--preview")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for _, want := range []string{"Mode", "light", "dark", "buttonPrimary.hover", "#5B5FF5"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("preview missing %q", want)
		}
	}
	// A buffer is not a terminal, so no escape sequences.
	if strings.Contains(stderr, "\x1b[") {
		t.Error("preview should not colour non-terminal output")
	}
}

func TestGenerateFromEnvironment(t *testing.T) {
	t.Setenv("TOKENSMITH_PRIMARY", "#2F6F5E")
	t.Setenv("TOKENSMITH_ITERATIONS", "20")
	t.Setenv("TOKENSMITH_RANDOM_SEED", "4")

	out, _, err := execute(t, "generate")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	doc, err := tokensmith.ParseDocument([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Meta.PrimaryHex != "#2F6F5E" || doc.Meta.Iterations != 20 || doc.Meta.RandomSeed != 4 {
		t.Errorf("environment not applied: %+v", doc.Meta)
	}
}

func TestGenerateFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokensmith.yaml")
	config := "primary: \"#B3261E\"\niterations: 15\nrandom-seed: 6\ncontrast: AAA\n"
	if err := os.WriteFile(path, []byte(config), 0o600); err != nil {
		t.Fatal(err)
	}

	// The flag overrides the file.
	out, _, err := execute(t, "generate", "--config", path, "--iterations", "12")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	doc, err := tokensmith.ParseDocument([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Meta.PrimaryHex != "#B3261E" || doc.Meta.ContrastTarget != tokensmith.LevelAAA {
		t.Errorf("config file not applied: %+v", doc.Meta)
	}
	if doc.Meta.Iterations != 12 {
		t.Errorf("iterations = %d, want flag value 12", doc.Meta.Iterations)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"missing primary", []string{"generate"}, tokensmith.ErrMissingRequiredInput},
		{"invalid primary", []string{"generate", "--primary", "#12"}, tokensmith.ErrInvalidColorFormat},
		{"unknown weight", []string{"generate", "--primary", "#5B5FF5", "--weight", "beauty=1"}, tokensmith.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	for _, args := range [][]string{
		{"generate", "--primary", "#5B5FF5", "--contrast", "AAAA"},
		{"generate", "--primary", "#5B5FF5", "--cvd", "achroma"},
		{"generate", "--primary", "#5B5FF5", "--format", "scss"},
		{"generate", "--primary", "#5B5FF5", "--weight", "contrast=lots"},
	} {
		if _, _, err := execute(t, args...); err == nil {
			t.Errorf("%v should fail", args)
		}
	}
}

// passingTokens is a hand-checked light set that meets AA but not AAA.
func passingTokens() tokensmith.TokenSet {
	return tokensmith.TokenSet{
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
		Success:       semantic("#1E7B34"),
		Warning:       semantic("#8A5A00"),
		Danger:        semantic("#C62828"),
		Info:          semantic("#1565C0"),
	}
}

func semantic(base string) theme.SemanticTokens {
	return theme.SemanticTokens{
		Base:       base,
		OnBaseText: "#FFFFFF",
		SubtleBg:   "#F4F4F6",
		SubtleText: "#1A1A1F",
		Border:     base,
		Hover:      base,
		Pressed:    base,
	}
}

func writeDocument(t *testing.T, light, dark tokensmith.TokenSet) string {
	t.Helper()
	doc := tokensmith.Document{
		Meta:  tokensmith.Meta{PrimaryHex: light.Primary},
		Light: tokensmith.ModeSummary{Tokens: light},
		Dark:  tokensmith.ModeSummary{Tokens: dark},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "tokens.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateCommand(t *testing.T) {
	good := passingTokens()
	bad := passingTokens()
	bad.TextPrimary = "#DDDDDD"

	tests := []struct {
		name    string
		light   tokensmith.TokenSet
		dark    tokensmith.TokenSet
		args    []string
		wantErr bool
		wantOut string
	}{
		{"both pass AA", good, good, nil, false, "light AA: pass"},
		{"AAA fails", good, good, []string{"--contrast", "AAA"}, true, "light AAA: FAIL"},
		{"dark failure", good, bad, nil, true, "dark AA: FAIL"},
		{"dark failure ignored for light", good, bad, []string{"--mode", "light"}, false, "light AA: pass"},
		{"failures only", good, bad, []string{"--mode", "dark", "--failures-only"}, true, "textPrimary/background"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDocument(t, tt.light, tt.dark)
			out, _, err := execute(t, append([]string{"validate", path}, tt.args...)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, cli.ErrValidationFailed) {
				t.Errorf("error = %v, want ErrValidationFailed", err)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output missing %q:\n%s", tt.wantOut, out)
			}
		})
	}
}

func TestValidateCommandErrors(t *testing.T) {
	if _, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
	path := writeDocument(t, passingTokens(), passingTokens())
	if _, _, err := execute(t, "validate", path, "--mode", "dusk"); err == nil {
		t.Error("unknown mode should fail")
	}
	if _, _, err := execute(t, "validate"); err == nil {
		t.Error("missing argument should fail")
	}
}
