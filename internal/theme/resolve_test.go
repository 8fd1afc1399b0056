package theme

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, doc string) Tokens {
	t.Helper()
	tokens, err := Parse([]byte(doc))
	require.NoError(t, err)
	return tokens
}

func TestResolveMultiModeSelectsPalette(t *testing.T) {
	t.Parallel()

	tokens := mustParse(t, materialJSON)

	light := Resolve(tokens, ModeLight)
	dark := Resolve(tokens, ModeDark)

	require.NotEqual(t, light.Colors, dark.Colors)
	require.Equal(t, "#fffbfe", light.Colors.Bg)
	require.Equal(t, "#1c1b1f", dark.Colors.Bg)

	require.Equal(t, tokens.Font, light.Font)
	require.Equal(t, tokens.Font, dark.Font)
	require.Equal(t, tokens.Radius, dark.Radius)
	require.Equal(t, tokens.Spacing, dark.Spacing)
	require.Equal(t, "material", dark.Name)
}

func TestResolveMultiModeShadowFallback(t *testing.T) {
	t.Parallel()

	tokens := mustParse(t, materialJSON)

	dark := Resolve(tokens, ModeDark)
	require.Equal(t, "dark-sm", dark.Shadows.Sm)
	require.Equal(t, "base-md", dark.Shadows.Md)
	require.Equal(t, "", dark.Shadows.Lg)

	light := Resolve(tokens, ModeLight)
	require.Equal(t, "base-sm", light.Shadows.Sm)
}

func TestResolveSingleModeIgnoresMode(t *testing.T) {
	t.Parallel()

	tokens := mustParse(t, appleJSON)

	light := Resolve(tokens, ModeLight)
	dark := Resolve(tokens, ModeDark)
	require.Equal(t, light, dark)
	require.Equal(t, *tokens.Colors, dark.Colors)
}

func TestResolveDoesNotAliasLetterSpacing(t *testing.T) {
	t.Parallel()

	tokens := mustParse(t, materialJSON)
	resolved := Resolve(tokens, ModeLight)

	*resolved.Font.LetterSpacing = 9
	require.Equal(t, 0.1, *tokens.Font.LetterSpacing)
}

func TestResolveDerivedDarkensSingleMode(t *testing.T) {
	t.Parallel()

	tokens := mustParse(t, appleJSON)

	light := ResolveDerived(tokens, ModeLight)
	require.Equal(t, "#ffffff", light.Colors.Bg)

	dark := ResolveDerived(tokens, ModeDark)
	require.Equal(t, DeriveDarkPalette(*tokens.Colors), dark.Colors)
	require.Equal(t, "#0071e3", dark.Colors.Primary)
}

func TestResolveDerivedKeepsAuthoredDark(t *testing.T) {
	t.Parallel()

	tokens := mustParse(t, materialJSON)
	require.Equal(t, Resolve(tokens, ModeDark), ResolveDerived(tokens, ModeDark))
}

func TestParseModeAndEffective(t *testing.T) {
	t.Parallel()

	mode, err := ParseMode(" Dark ")
	require.NoError(t, err)
	require.Equal(t, RequestDark, mode)

	_, err = ParseMode("dim")
	require.Error(t, err)

	require.Equal(t, ModeLight, RequestSystem.Effective(nil))
	require.Equal(t, ModeDark, RequestSystem.Effective(fixedMode(ModeDark)))
	require.Equal(t, ModeLight, RequestSystem.Effective(fixedMode("")))
	require.Equal(t, ModeDark, RequestDark.Effective(fixedMode(ModeLight)))
	require.Equal(t, ModeLight, RequestLight.Effective(fixedMode(ModeDark)))
}

type fixedMode Mode

func (f fixedMode) SystemMode() Mode { return Mode(f) }
