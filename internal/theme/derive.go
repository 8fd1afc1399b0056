package theme

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	darkBgDelta      = 30
	darkSurfaceDelta = 26
	darkBorderDelta  = 30

	darkTextLightness      = 96
	darkTextMutedLightness = 75

	defaultPrimaryContrast = "#ffffff"
	defaultLightBorder     = "#e5e5ea"
)

// DeriveDarkPalette synthesises a dark palette from a light one. Background,
// surface and border are darkened in HSL space without desaturation, text
// becomes near-white and muted text light gray. Brand colours (primary,
// link) are kept. The result is deterministic for a given input.
func DeriveDarkPalette(light Palette) Palette {
	border := light.Border
	if border == "" {
		border = defaultLightBorder
	}
	contrast := light.PrimaryContrast
	if contrast == "" {
		contrast = defaultPrimaryContrast
	}

	return Palette{
		Bg:              Darken(light.Bg, darkBgDelta, 0),
		Surface:         Darken(light.Surface, darkSurfaceDelta, 0),
		Text:            HSLToHex(0, 0, darkTextLightness),
		TextMuted:       HSLToHex(0, 0, darkTextMutedLightness),
		Primary:         light.Primary,
		PrimaryContrast: contrast,
		Border:          Darken(border, darkBorderDelta, 0),
		Link:            light.LinkColor(),
		Overlay:         light.Overlay,
	}
}

// Darken lowers the HSL lightness of hex by amount and its saturation by
// desat, both in percentage points clamped to [0, 100]. Inputs that are not
// hex colours are returned unchanged.
func Darken(hex string, amount, desat float64) string {
	h, s, l, ok := HexToHSL(hex)
	if !ok {
		return hex
	}
	return HSLToHex(h, clampPercent(s-desat), clampPercent(l-amount))
}

// HexToHSL parses #rgb or #rrggbb into hue in degrees and saturation and
// lightness in percent.
func HexToHSL(hex string) (h, s, l float64, ok bool) {
	c, err := colorful.Hex(normalizeHex(hex))
	if err != nil {
		return 0, 0, 0, false
	}
	h, s, l = c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return h, s * 100, l * 100, true
}

// HSLToHex renders hue in degrees and saturation/lightness in percent as a
// lowercase #rrggbb string.
func HSLToHex(h, s, l float64) string {
	return colorful.Hsl(h, clampPercent(s)/100, clampPercent(l)/100).Clamped().Hex()
}

// Lightness returns the HSL lightness of hex in percent.
func Lightness(hex string) (float64, bool) {
	_, _, l, ok := HexToHSL(hex)
	return l, ok
}

func normalizeHex(hex string) string {
	if len(hex) > 0 && hex[0] != '#' {
		return "#" + hex
	}
	return hex
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
