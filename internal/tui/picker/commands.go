package picker

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/themer/internal/theme"
)

// Applier is the part of the orchestrator the picker drives.
type Applier interface {
	SetTheme(ctx context.Context, name string) (bool, error)
	SetMode(ctx context.Context, mode theme.RequestedMode) (bool, error)
}

func applyThemeCmd(ctx context.Context, applier Applier, name string) tea.Cmd {
	return func() tea.Msg {
		applied, err := applier.SetTheme(ctx, name)
		return ThemeAppliedMsg{Name: name, Applied: applied, Err: err}
	}
}

func applyModeCmd(ctx context.Context, applier Applier, mode theme.RequestedMode) tea.Cmd {
	return func() tea.Msg {
		applied, err := applier.SetMode(ctx, mode)
		return ModeChangedMsg{Mode: mode, Applied: applied, Err: err}
	}
}

// nextMode cycles light, dark, system.
func nextMode(mode theme.RequestedMode) theme.RequestedMode {
	switch mode {
	case theme.RequestLight:
		return theme.RequestDark
	case theme.RequestDark:
		return theme.RequestSystem
	default:
		return theme.RequestLight
	}
}
