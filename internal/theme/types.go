// Package theme holds the design-token model, its structural validation,
// mode resolution and dark-palette derivation.
package theme

// Palette is one complete colour set. Link falls back to Primary and Overlay
// is optional.
type Palette struct {
	Bg              string `json:"bg" yaml:"bg"`
	Surface         string `json:"surface" yaml:"surface"`
	Text            string `json:"text" yaml:"text"`
	TextMuted       string `json:"textMuted" yaml:"textMuted"`
	Primary         string `json:"primary" yaml:"primary"`
	PrimaryContrast string `json:"primaryContrast" yaml:"primaryContrast"`
	Border          string `json:"border" yaml:"border"`
	Link            string `json:"link,omitempty" yaml:"link,omitempty"`
	Overlay         string `json:"overlay,omitempty" yaml:"overlay,omitempty"`
}

// LinkColor returns Link, or Primary when no link colour was authored.
func (p Palette) LinkColor() string {
	if p.Link != "" {
		return p.Link
	}
	return p.Primary
}

// Font carries typography tokens. Size fields are CSS expressions such as
// "16px" or "clamp(14px, 1.05vw, 16px)".
type Font struct {
	Family        string   `json:"family" yaml:"family"`
	WeightRegular float64  `json:"weightRegular" yaml:"weightRegular"`
	WeightMedium  float64  `json:"weightMedium" yaml:"weightMedium"`
	WeightBold    float64  `json:"weightBold" yaml:"weightBold"`
	SizeBody      string   `json:"sizeBody" yaml:"sizeBody"`
	SizeH1        string   `json:"sizeH1" yaml:"sizeH1"`
	SizeH2        string   `json:"sizeH2" yaml:"sizeH2"`
	SizeH3        string   `json:"sizeH3" yaml:"sizeH3"`
	LineHeight    float64  `json:"lineHeight" yaml:"lineHeight"`
	LetterSpacing *float64 `json:"letterSpacing,omitempty" yaml:"letterSpacing,omitempty"`
}

func (f Font) clone() Font {
	if f.LetterSpacing != nil {
		v := *f.LetterSpacing
		f.LetterSpacing = &v
	}
	return f
}

// Shadows are the optional elevation expressions.
type Shadows struct {
	Sm string `json:"shadowSm,omitempty" yaml:"shadowSm,omitempty"`
	Md string `json:"shadowMd,omitempty" yaml:"shadowMd,omitempty"`
	Lg string `json:"shadowLg,omitempty" yaml:"shadowLg,omitempty"`
}

// merge returns s with every empty field filled from fallback.
func (s Shadows) merge(fallback Shadows) Shadows {
	if s.Sm == "" {
		s.Sm = fallback.Sm
	}
	if s.Md == "" {
		s.Md = fallback.Md
	}
	if s.Lg == "" {
		s.Lg = fallback.Lg
	}
	return s
}

// Base holds the mode-independent fields shared by authored and resolved
// themes.
type Base struct {
	Name    string  `json:"name" yaml:"name"`
	Font    Font    `json:"font" yaml:"font"`
	Radius  string  `json:"radius" yaml:"radius"`
	Spacing float64 `json:"spacing" yaml:"spacing"`
	Shadows `yaml:",inline"`
}

// ModeTokens is the per-mode part of a multi-mode theme.
type ModeTokens struct {
	Colors  Palette `json:"colors" yaml:"colors"`
	Shadows `yaml:",inline"`
}

// Modes carries independent light and dark entries.
type Modes struct {
	Light ModeTokens `json:"light" yaml:"light"`
	Dark  ModeTokens `json:"dark" yaml:"dark"`
}

// Get returns the entry for mode.
func (m Modes) Get(mode Mode) ModeTokens {
	if mode == ModeDark {
		return m.Dark
	}
	return m.Light
}

// Variant discriminates the two authored token shapes.
type Variant int

const (
	// VariantSingle themes ship one palette used for every mode.
	VariantSingle Variant = iota
	// VariantMulti themes ship independent light and dark palettes.
	VariantMulti
)

func (v Variant) String() string {
	if v == VariantMulti {
		return "multi"
	}
	return "single"
}

// Tokens is an authored theme. Exactly one of Colors and Modes is set on a
// value produced by Parse; Modes decides the variant. Registered tokens are
// treated as immutable.
type Tokens struct {
	Base   `yaml:",inline"`
	Colors *Palette `json:"colors,omitempty" yaml:"colors,omitempty"`
	Modes  *Modes   `json:"modes,omitempty" yaml:"modes,omitempty"`
}

// Variant reports whether t is a single- or multi-mode theme.
func (t Tokens) Variant() Variant {
	if t.Modes != nil {
		return VariantMulti
	}
	return VariantSingle
}

// LightPalette returns the palette used for light rendering.
func (t Tokens) LightPalette() Palette {
	if t.Modes != nil {
		return t.Modes.Light.Colors
	}
	if t.Colors != nil {
		return *t.Colors
	}
	return Palette{}
}

// Resolved is the runtime form of a theme: shared fields plus exactly one
// palette and the shadows for the chosen mode.
type Resolved struct {
	Base   `yaml:",inline"`
	Colors Palette `json:"colors" yaml:"colors"`
}

// Clone returns a deep copy of r.
func (r Resolved) Clone() Resolved {
	r.Font = r.Font.clone()
	return r
}

// Clone returns a deep copy of t.
func (t Tokens) Clone() Tokens {
	t.Font = t.Font.clone()
	if t.Colors != nil {
		colors := *t.Colors
		t.Colors = &colors
	}
	if t.Modes != nil {
		modes := *t.Modes
		t.Modes = &modes
	}
	return t
}
