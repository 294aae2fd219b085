// Package render turns recommended token sets into consumable files.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/jmylchreest/tokensmith/internal/theme"
	"github.com/jmylchreest/tokensmith/internal/version"
	"github.com/jmylchreest/tokensmith/pkg/tokensmith"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Format is an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSS  Format = "css"
)

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatCSS:
		return FormatCSS, nil
	default:
		return "", fmt.Errorf("unknown format %q (must be json or css)", s)
	}
}

// cssData is the template input.
type cssData struct {
	Version string
	Meta    tokensmith.Meta
	Light   []theme.Field
	Dark    []theme.Field
}

// Render writes result in the given format.
func Render(result *tokensmith.DualResult, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return tokensmith.Export(result)
	case FormatCSS:
		return CSS(result)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// CSS renders both modes as custom properties. Light values go on :root;
// dark values apply under [data-theme="dark"] and, unless light is forced,
// when the system prefers a dark scheme.
func CSS(result *tokensmith.DualResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nil result")
	}
	tmplContent, err := templates.ReadFile("templates/tokens.css.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read css template: %w", err)
	}

	tmpl, err := template.New("css").Funcs(template.FuncMap{
		"cssVar": CSSVar,
	}).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse css template: %w", err)
	}

	data := cssData{
		Version: version.Short(),
		Meta:    result.Meta,
		Light:   result.Light.Tokens.Fields(),
		Dark:    result.Dark.Tokens.Fields(),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute css template: %w", err)
	}
	return buf.Bytes(), nil
}

// CSSVar maps a token field name such as "buttonPrimary.hover" to its custom
// property name, "--color-button-primary-hover".
func CSSVar(name string) string {
	var b strings.Builder
	b.WriteString("--color-")
	for i, r := range name {
		switch {
		case r == '.':
			b.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
