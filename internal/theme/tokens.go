package theme

// ButtonTokens are the interaction states of one button role.
type ButtonTokens struct {
	Base         string `json:"base"`
	Hover        string `json:"hover"`
	Pressed      string `json:"pressed"`
	Disabled     string `json:"disabled"`
	Text         string `json:"text"`
	DisabledText string `json:"disabledText"`
}

// SemanticTokens are the colours of one semantic role (success, warning, ...).
type SemanticTokens struct {
	Base       string `json:"base"`
	OnBaseText string `json:"onBaseText"`
	SubtleBg   string `json:"subtleBg"`
	SubtleText string `json:"subtleText"`
	Border     string `json:"border"`
	Hover      string `json:"hover"`
	Pressed    string `json:"pressed"`
}

// TokenSet is the rendered set of design tokens for one mode. Every colour is
// an upper-case "#RRGGBB" string.
type TokenSet struct {
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Surface2   string `json:"surface2"`

	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
	TextTertiary  string `json:"textTertiary"`

	Primary     string `json:"primary"`
	OnPrimary   string `json:"onPrimary"`
	Secondary   string `json:"secondary"`
	OnSecondary string `json:"onSecondary"`
	Accent      string `json:"accent"`
	OnAccent    string `json:"onAccent"`

	Border    string `json:"border"`
	Divider   string `json:"divider"`
	FocusRing string `json:"focusRing"`

	ButtonPrimary   ButtonTokens `json:"buttonPrimary"`
	ButtonSecondary ButtonTokens `json:"buttonSecondary"`

	Success SemanticTokens `json:"success"`
	Warning SemanticTokens `json:"warning"`
	Danger  SemanticTokens `json:"danger"`
	Info    SemanticTokens `json:"info"`
}

// Semantics returns the four semantic groups in index order.
func (t TokenSet) Semantics() [SemanticCount]SemanticTokens {
	return [SemanticCount]SemanticTokens{t.Success, t.Warning, t.Danger, t.Info}
}

// Field is one named colour of a token set.
type Field struct {
	Name  string
	Value string
}

// Fields flattens the token set into named colours, in a stable order. Nested
// groups use dotted names such as "buttonPrimary.hover".
func (t TokenSet) Fields() []Field {
	fields := []Field{
		{"background", t.Background},
		{"surface", t.Surface},
		{"surface2", t.Surface2},
		{"textPrimary", t.TextPrimary},
		{"textSecondary", t.TextSecondary},
		{"textTertiary", t.TextTertiary},
		{"primary", t.Primary},
		{"onPrimary", t.OnPrimary},
		{"secondary", t.Secondary},
		{"onSecondary", t.OnSecondary},
		{"accent", t.Accent},
		{"onAccent", t.OnAccent},
		{"border", t.Border},
		{"divider", t.Divider},
		{"focusRing", t.FocusRing},
	}
	for _, b := range []struct {
		name string
		tok  ButtonTokens
	}{{"buttonPrimary", t.ButtonPrimary}, {"buttonSecondary", t.ButtonSecondary}} {
		fields = append(fields,
			Field{b.name + ".base", b.tok.Base},
			Field{b.name + ".hover", b.tok.Hover},
			Field{b.name + ".pressed", b.tok.Pressed},
			Field{b.name + ".disabled", b.tok.Disabled},
			Field{b.name + ".text", b.tok.Text},
			Field{b.name + ".disabledText", b.tok.DisabledText},
		)
	}
	for i, s := range t.Semantics() {
		name := SemanticNames[i]
		fields = append(fields,
			Field{name + ".base", s.Base},
			Field{name + ".onBaseText", s.OnBaseText},
			Field{name + ".subtleBg", s.SubtleBg},
			Field{name + ".subtleText", s.SubtleText},
			Field{name + ".border", s.Border},
			Field{name + ".hover", s.Hover},
			Field{name + ".pressed", s.Pressed},
		)
	}
	return fields
}

// Summary records the lightness stack the builder produced, for the tone
// rules in scoring.
type Summary struct {
	Mode           Mode    `json:"mode"`
	BackgroundL    float64 `json:"backgroundL"`
	SurfaceL       float64 `json:"surfaceL"`
	Surface2L      float64 `json:"surface2L"`
	TextPrimaryL   float64 `json:"textPrimaryL"`
	TextSecondaryL float64 `json:"textSecondaryL"`
	TextTertiaryL  float64 `json:"textTertiaryL"`
	BorderL        float64 `json:"borderL"`
	DividerL       float64 `json:"dividerL"`
	NeutralHue     float64 `json:"neutralHue"`
}
