package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/themer/internal/preview"
)

// View implements tea.Model.
func (m Model) View() string {
	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n")

	if m.errMsg != "" {
		content.WriteString(errorStyle.Render(m.errMsg))
		content.WriteString("\n\n")
	}

	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderList(), "  ", m.renderPreview()))
	content.WriteString("\n\n")
	content.WriteString(itemStyle.Render(m.help.View(m.keys)))

	return content.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("Themer")

	status := fmt.Sprintf("mode %s", m.requested)
	if m.requested == "system" {
		status = fmt.Sprintf("mode system (%s)", m.effectiveMode())
	}
	if m.active != "" {
		status += fmt.Sprintf("  applied %s", m.active)
	}
	if m.applying {
		status += "  " + m.spinner.View() + " applying"
	}

	return headerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, itemStyle.Render(mutedStyle.Render(status))))
}

func (m Model) renderList() string {
	if len(m.themes) == 0 {
		return itemStyle.Render(mutedStyle.Render("No themes loaded."))
	}

	items := make([]string, 0, len(m.themes))
	for i, t := range m.themes {
		marker := "  "
		if t.Name == m.active {
			marker = "* "
		}
		line := fmt.Sprintf("%s%s %s", marker, preview.Swatches(t.LightPalette()), t.Name)
		if i == m.cursor {
			items = append(items, selectedItemStyle.Render(line))
			continue
		}
		items = append(items, itemStyle.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m Model) renderPreview() string {
	selected, ok := m.Selected()
	if !ok {
		return ""
	}
	mode := m.effectiveMode()
	resolved := m.resolve(selected, mode)

	width := m.width / 2
	if width < 40 {
		width = 40
	}
	return preview.NewCard(resolved, mode).
		WithWidth(width).
		WithMetadata("variant", selected.Variant().String()).
		View()
}
