package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/plusminus/internal/core"
)

// colorStyles maps the semantic core.Color roles to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorTile:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorTaken:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorLegal:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorPlayer:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("57")).Bold(true),
	core.ColorCursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
	core.ColorPlus:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorMinus:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorDimmed:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorFinished:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, height := 0, s.Height(); y < height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
