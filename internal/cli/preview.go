package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/jmylchreest/tokensmith/internal/colour"
	"github.com/jmylchreest/tokensmith/pkg/tokensmith"
)

// preview prints token swatches side by side for both modes.
type preview struct {
	colour bool
}

// newPreview enables swatches only when w is a terminal and colour is not
// disabled via NO_COLOR.
func newPreview(w io.Writer) *preview {
	f, ok := w.(*os.File)
	return &preview{colour: ok && term.IsTerminal(int(f.Fd())) && !color.NoColor}
}

// swatch renders hex as a coloured block followed by the hex value.
func (p *preview) swatch(hex string) string {
	if !p.colour {
		return hex
	}
	c, err := colour.ParseHex(hex)
	if err != nil {
		return hex
	}
	r, g, b := c.RGB255()
	block := color.BgRGB(int(r), int(g), int(b))
	block.EnableColor()
	return block.Sprint("   ") + " " + hex
}

func (p *preview) verdict(ok bool) string {
	if !p.colour {
		if ok {
			return "pass"
		}
		return "FAIL"
	}
	if ok {
		return color.New(color.FgGreen).Sprint("pass")
	}
	return color.New(color.FgRed, color.Bold).Sprint("FAIL")
}

// Render returns the summary and token tables.
func (p *preview) Render(result *tokensmith.DualResult) string {
	var b strings.Builder

	summary := NewTable("Mode", "Score", "Contrast", "Worst", "States", "Tone", "Harmony")
	for _, m := range []*tokensmith.ModeResult{&result.Light, &result.Dark} {
		r := m.Report
		summary.AddRow(
			string(m.Mode),
			fmt.Sprintf("%.3f", m.Score),
			p.verdict(r.Contrast.PassAll),
			fmt.Sprintf("%.2f %s", r.Contrast.WorstRatio, r.Contrast.WorstCheck),
			p.verdict(r.State.PassAll),
			p.verdict(r.Tone.OK),
			string(r.Harmony.Class),
		)
	}
	fmt.Fprintf(&b, "seed %d, target %s\n\n", result.Meta.RandomSeed, result.Meta.ContrastTarget)
	b.WriteString(summary.Render())
	b.WriteString("\n")

	tokens := NewTable("Token", "Light", "Dark")
	light := result.Light.Tokens.Fields()
	dark := result.Dark.Tokens.Fields()
	for i := range light {
		tokens.AddRow(light[i].Name, p.swatch(light[i].Value), p.swatch(dark[i].Value))
	}
	b.WriteString(tokens.Render())
	return b.String()
}
