// Package picker is an interactive terminal theme picker built on
// bubbletea. Moving the cursor previews a theme; applying it runs the
// orchestrator.
package picker

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/themer/internal/theme"
)

// ResolveFunc resolves tokens for a mode, as loader.Loader.Resolve does.
type ResolveFunc func(tokens theme.Tokens, mode theme.Mode) theme.Resolved

// Model is the picker state.
type Model struct {
	ctx     context.Context
	themes  []theme.Tokens
	applier Applier
	resolve ResolveFunc
	system  theme.SystemModeSource

	cursor    int
	active    string
	requested theme.RequestedMode

	applying bool
	errMsg   string
	showHelp bool

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int
}

// Options seed a Model.
type Options struct {
	Themes  []theme.Tokens
	Applier Applier
	Resolve ResolveFunc
	System  theme.SystemModeSource
	Active  string
	Mode    theme.RequestedMode
}

// NewModel creates a picker with the cursor on the active theme.
func NewModel(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	resolve := opts.Resolve
	if resolve == nil {
		resolve = theme.Resolve
	}
	mode := opts.Mode
	if mode == "" {
		mode = theme.RequestLight
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)

	m := Model{
		ctx:       ctx,
		themes:    opts.Themes,
		applier:   opts.Applier,
		resolve:   resolve,
		system:    opts.System,
		active:    opts.Active,
		requested: mode,
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   s,
		width:     80,
		height:    24,
	}
	for i, t := range m.themes {
		if t.Name == opts.Active {
			m.cursor = i
			break
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Selected returns the theme under the cursor.
func (m Model) Selected() (theme.Tokens, bool) {
	if m.cursor < 0 || m.cursor >= len(m.themes) {
		return theme.Tokens{}, false
	}
	return m.themes[m.cursor], true
}

// Active returns the last theme applied from the picker.
func (m Model) Active() string {
	return m.active
}

// Mode returns the requested mode.
func (m Model) Mode() theme.RequestedMode {
	return m.requested
}

// effectiveMode resolves the requested mode for previews.
func (m Model) effectiveMode() theme.Mode {
	return m.requested.Effective(m.system)
}

func (m *Model) moveCursor(delta int) {
	if len(m.themes) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.themes) {
		m.cursor = len(m.themes) - 1
	}
}
