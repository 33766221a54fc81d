package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleNumber = lipgloss.NewStyle().Foreground(colorCyan)
)

// title renders a heading underlined to its own width
func title(s string) string {
	return styleTitle.Render(s) + "\n" + styleDim.Render(strings.Repeat("=", len(s))) + "\n"
}

