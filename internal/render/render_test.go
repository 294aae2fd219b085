package render

import (
	"strings"
	"testing"

	"github.com/jmylchreest/tokensmith/pkg/tokensmith"
)

func sampleResult(t *testing.T) *tokensmith.DualResult {
	t.Helper()
	res, err := tokensmith.RecommendTokensDual(tokensmith.Config{
		PrimaryHex: "#5B5FF5",
		Iterations: 40,
		RandomSeed: 11,
	})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestCSSVar(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"background", "--color-background"},
		{"surface2", "--color-surface2"},
		{"textPrimary", "--color-text-primary"},
		{"buttonPrimary.hover", "--color-button-primary-hover"},
		{"danger.subtleBg", "--color-danger-subtle-bg"},
	}
	for _, tt := range tests {
		if got := CSSVar(tt.in); got != tt.want {
			t.Errorf("CSSVar(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCSS(t *testing.T) {
	res := sampleResult(t)
	out, err := CSS(res)
	if err != nil {
		t.Fatalf("CSS() error = %v", err)
	}
	css := string(out)

	for _, want := range []string{
		":root {",
		`[data-theme="dark"] {`,
		"@media (prefers-color-scheme: dark)",
		"--color-primary: #5B5FF5;",
		"--color-background: " + res.Light.Tokens.Background + ";",
		"--color-background: " + res.Dark.Tokens.Background + ";",
		"--color-info-pressed: " + res.Dark.Tokens.Info.Pressed + ";",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("css missing %q", want)
		}
	}

	root := css[strings.Index(css, ":root {"):strings.Index(css, `[data-theme="dark"]`)]
	if !strings.Contains(root, "color-scheme: light;") {
		t.Error("light block does not declare its colour scheme")
	}
	if n := strings.Count(css, "--color-focus-ring:"); n != 3 {
		t.Errorf("focus ring declared %d times, want 3", n)
	}
}

func TestRender(t *testing.T) {
	res := sampleResult(t)
	js, err := Render(res, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(js)), "{") {
		t.Error("json output is not an object")
	}
	if _, err := Render(res, "yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, " css ": FormatCSS} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("scss"); err == nil {
		t.Error("expected error for scss")
	}
}
