package picker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if !m.applying {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ThemeAppliedMsg:
		m.applying = false
		switch {
		case msg.Err != nil:
			m.errMsg = fmt.Sprintf("Apply failed: %v", msg.Err)
		case !msg.Applied:
			m.errMsg = fmt.Sprintf("Theme %q is not available", msg.Name)
		default:
			m.errMsg = ""
			m.active = msg.Name
		}
		return m, nil

	case ModeChangedMsg:
		m.applying = false
		if msg.Err != nil {
			m.errMsg = fmt.Sprintf("Mode change failed: %v", msg.Err)
			return m, nil
		}
		m.errMsg = ""
		m.requested = msg.Mode
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		selected, ok := m.Selected()
		if !ok || m.applying || m.applier == nil {
			return m, nil
		}
		m.applying = true
		return m, tea.Batch(m.spinner.Tick, applyThemeCmd(m.ctx, m.applier, selected.Name))

	case key.Matches(msg, m.keys.Mode):
		if m.applying || m.applier == nil {
			return m, nil
		}
		m.applying = true
		return m, tea.Batch(m.spinner.Tick, applyModeCmd(m.ctx, m.applier, nextMode(m.requested)))
	}

	return m, nil
}
