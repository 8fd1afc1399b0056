// Package preview renders resolved themes for the terminal with lipgloss.
package preview

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/themer/internal/theme"
)

// swatchBlock is the glyph painted in each palette colour.
const swatchBlock = "██"

// CardStyle defines the visual appearance of a Card.
type CardStyle struct {
	// BorderStyle applies to the card's outer border
	BorderStyle lipgloss.Style
	// TitleStyle applies to the theme name
	TitleStyle lipgloss.Style
	// LabelStyle applies to metadata keys
	LabelStyle lipgloss.Style
	// ContentStyle applies to metadata values
	ContentStyle lipgloss.Style
	Width        int
}

// StyleFor builds a card style painted with the theme's own palette.
func StyleFor(t theme.Resolved) CardStyle {
	c := t.Colors
	return CardStyle{
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Border)).
			Padding(0, 1),
		TitleStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Primary)),
		LabelStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color(c.TextMuted)),
		ContentStyle: lipgloss.NewStyle(),
		Width:        60,
	}
}

// Card summarises one resolved theme.
type Card struct {
	theme theme.Resolved
	mode  theme.Mode
	style CardStyle
	extra map[string]string
}

// NewCard creates a card for t rendered in mode.
func NewCard(t theme.Resolved, mode theme.Mode) *Card {
	return &Card{theme: t, mode: mode, style: StyleFor(t)}
}

// WithStyle replaces the card style.
func (c *Card) WithStyle(style CardStyle) *Card {
	c.style = style
	return c
}

// WithWidth sets the card width.
func (c *Card) WithWidth(width int) *Card {
	c.style.Width = width
	return c
}

// WithMetadata adds extra key/value lines, rendered after the tokens.
func (c *Card) WithMetadata(key, value string) *Card {
	if c.extra == nil {
		c.extra = make(map[string]string)
	}
	c.extra[key] = value
	return c
}

// View renders the card.
func (c *Card) View() string {
	t := c.theme
	content := []string{
		c.style.TitleStyle.Render(fmt.Sprintf("%s (%s)", t.Name, c.mode)),
		Swatches(t.Colors),
		"",
	}

	rows := [][2]string{
		{"bg", t.Colors.Bg},
		{"surface", t.Colors.Surface},
		{"text", t.Colors.Text},
		{"textMuted", t.Colors.TextMuted},
		{"primary", t.Colors.Primary},
		{"primaryContrast", t.Colors.PrimaryContrast},
		{"border", t.Colors.Border},
		{"link", t.Colors.LinkColor()},
		{"font", t.Font.Family},
		{"sizes", strings.Join([]string{t.Font.SizeBody, t.Font.SizeH1, t.Font.SizeH2, t.Font.SizeH3}, " / ")},
		{"weights", strings.Join([]string{formatNumber(t.Font.WeightRegular), formatNumber(t.Font.WeightMedium), formatNumber(t.Font.WeightBold)}, " / ")},
		{"radius", t.Radius},
		{"spacing", formatNumber(t.Spacing) + "px"},
	}
	if t.Colors.Overlay != "" {
		rows = append(rows, [2]string{"overlay", t.Colors.Overlay})
	}
	for _, row := range rows {
		content = append(content, c.line(row[0], row[1]))
	}

	if len(c.extra) > 0 {
		content = append(content, "")
		keys := make([]string, 0, len(c.extra))
		for k := range c.extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			content = append(content, c.line(key, c.extra[key]))
		}
	}

	style := c.style.BorderStyle
	if c.style.Width > 0 {
		style = style.Width(c.style.Width)
	}
	return style.Render(strings.Join(content, "\n"))
}

func (c *Card) line(key, value string) string {
	return c.style.LabelStyle.Render(fmt.Sprintf("%-16s", key)) + c.style.ContentStyle.Render(value)
}

// Swatches renders one colour block per palette entry, bg first.
func Swatches(p theme.Palette) string {
	colors := []string{p.Bg, p.Surface, p.Text, p.TextMuted, p.Primary, p.PrimaryContrast, p.Border, p.LinkColor()}
	parts := make([]string, 0, len(colors))
	for _, color := range colors {
		parts = append(parts, Swatch(color))
	}
	return strings.Join(parts, " ")
}

// Swatch paints a block in hex.
func Swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(swatchBlock)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
