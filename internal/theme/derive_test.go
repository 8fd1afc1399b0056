package theme

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lightPalette() Palette {
	return Palette{
		Bg:              "#ffffff",
		Surface:         "#f5f5f7",
		Text:            "#111111",
		TextMuted:       "#666666",
		Primary:         "#0071e3",
		PrimaryContrast: "#ffffff",
		Border:          "#e0e0e0",
	}
}

func TestDeriveDarkPaletteIsDeterministic(t *testing.T) {
	t.Parallel()

	first := DeriveDarkPalette(lightPalette())
	second := DeriveDarkPalette(lightPalette())
	require.Equal(t, first, second)
}

func TestDeriveDarkPaletteValues(t *testing.T) {
	t.Parallel()

	dark := DeriveDarkPalette(lightPalette())

	require.Equal(t, "#b3b3b3", dark.Bg)
	require.Equal(t, "#f5f5f5", dark.Text)
	require.Equal(t, "#bfbfbf", dark.TextMuted)
	require.Equal(t, "#0071e3", dark.Primary)
	require.Equal(t, "#0071e3", dark.Link)
	require.Equal(t, "#ffffff", dark.PrimaryContrast)

	inL, ok := Lightness("#ffffff")
	require.True(t, ok)
	outL, ok := Lightness(dark.Bg)
	require.True(t, ok)
	require.Less(t, outL, inL)

	surfaceIn, _ := Lightness("#f5f5f7")
	surfaceOut, _ := Lightness(dark.Surface)
	require.InDelta(t, surfaceIn-26, surfaceOut, 0.5)
}

func TestDeriveDarkPaletteDefaults(t *testing.T) {
	t.Parallel()

	light := lightPalette()
	light.PrimaryContrast = ""
	light.Border = ""
	light.Link = "#3366ff"

	dark := DeriveDarkPalette(light)
	require.Equal(t, "#ffffff", dark.PrimaryContrast)
	require.Equal(t, Darken("#e5e5ea", 30, 0), dark.Border)
	require.Equal(t, "#3366ff", dark.Link)
}

func TestDarkenClampsAndPassesThroughUnknown(t *testing.T) {
	t.Parallel()

	require.Equal(t, "#000000", Darken("#222", 90, 0))
	require.Equal(t, "var(--brand)", Darken("var(--brand)", 30, 0))
	require.Equal(t, Darken("#ffffff", 30, 0), Darken("ffffff", 30, 0))
}

func TestHexHSLRoundTrip(t *testing.T) {
	t.Parallel()

	for _, hex := range []string{"#0071e3", "#f5f5f7", "#e0e0e0", "#6750a4", "#000000", "#ffffff"} {
		h, s, l, ok := HexToHSL(hex)
		require.True(t, ok, hex)
		require.Equal(t, hex, HSLToHex(h, s, l), hex)
	}
}
