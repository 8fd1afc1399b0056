package picker

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/themer/internal/theme"
)

type fakeApplier struct {
	themes []string
	modes  []theme.RequestedMode
	found  bool
	err    error
}

func (f *fakeApplier) SetTheme(_ context.Context, name string) (bool, error) {
	f.themes = append(f.themes, name)
	return f.found, f.err
}

func (f *fakeApplier) SetMode(_ context.Context, mode theme.RequestedMode) (bool, error) {
	f.modes = append(f.modes, mode)
	return f.found, f.err
}

func sampleThemes() []theme.Tokens {
	palette := theme.Palette{
		Bg: "#ffffff", Surface: "#f5f5f7", Text: "#111111", TextMuted: "#666666",
		Primary: "#0071e3", PrimaryContrast: "#ffffff", Border: "#e0e0e0",
	}
	dark := palette
	dark.Bg = "#000000"

	return []theme.Tokens{
		{Base: theme.Base{Name: "apple", Font: theme.Font{Family: "Inter"}}, Colors: &palette},
		{Base: theme.Base{Name: "material", Font: theme.Font{Family: "Roboto"}}, Modes: &theme.Modes{
			Light: theme.ModeTokens{Colors: palette},
			Dark:  theme.ModeTokens{Colors: dark},
		}},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestNewModelStartsOnActiveTheme(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), Options{Themes: sampleThemes(), Active: "material"})

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "material", selected.Name)
	assert.Equal(t, theme.RequestLight, m.Mode())
}

func TestCursorStaysInBounds(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), Options{Themes: sampleThemes()})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	selected, _ := m.Selected()
	assert.Equal(t, "apple", selected.Name)

	m, _ = update(t, m, keyRunes("j"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	selected, _ = m.Selected()
	assert.Equal(t, "material", selected.Name)
}

func TestApplyRunsApplier(t *testing.T) {
	t.Parallel()

	applier := &fakeApplier{found: true}
	m := NewModel(context.Background(), Options{Themes: sampleThemes(), Applier: applier})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.applying)

	msg := applyThemeCmd(context.Background(), applier, "material")()
	m, _ = update(t, m, msg)

	assert.False(t, m.applying)
	assert.Equal(t, "material", m.Active())
	assert.Empty(t, m.errMsg)
	assert.Equal(t, []string{"material"}, applier.themes)
}

func TestApplyReportsMissingTheme(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), Options{Themes: sampleThemes(), Active: "apple"})

	m, _ = update(t, m, ThemeAppliedMsg{Name: "material", Applied: false})
	assert.Equal(t, "apple", m.Active())
	assert.Contains(t, m.errMsg, `"material" is not available`)

	m, _ = update(t, m, ThemeAppliedMsg{Name: "material", Err: errors.New("boom")})
	assert.Contains(t, m.errMsg, "boom")
}

func TestModeCyclesThroughSystem(t *testing.T) {
	t.Parallel()

	applier := &fakeApplier{found: true}
	m := NewModel(context.Background(), Options{Themes: sampleThemes(), Applier: applier})

	m, cmd := update(t, m, keyRunes("m"))
	require.NotNil(t, cmd)

	msg := applyModeCmd(context.Background(), applier, nextMode(m.Mode()))()
	m, _ = update(t, m, msg)
	assert.Equal(t, theme.RequestDark, m.Mode())

	assert.Equal(t, theme.RequestSystem, nextMode(theme.RequestDark))
	assert.Equal(t, theme.RequestLight, nextMode(theme.RequestSystem))
}

func TestBusyPickerIgnoresApply(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), Options{Themes: sampleThemes(), Applier: &fakeApplier{}})
	m.applying = true

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestViewPreviewsSelectedThemeInMode(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), Options{Themes: sampleThemes(), Active: "material", Mode: theme.RequestDark})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Themer")
	assert.Contains(t, view, "mode dark")
	assert.Contains(t, view, "#000000")
	assert.Contains(t, view, "apple")
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), Options{Themes: sampleThemes()})
	_, cmd := update(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
