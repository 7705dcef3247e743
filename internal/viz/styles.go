package viz

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/possn/stress-strain-vni/internal/scenario"
)

var (
	panelStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	safeValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	dangerValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	noteStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

func hexColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func badgeStyle(bg color.NRGBA) lipgloss.Style {
	return lipgloss.NewStyle().Background(hexColor(bg)).Foreground(lipgloss.Color("235")).Padding(0, 1).Bold(true)
}

// StrainBar renders a fixed-width meter with the safe limit marked.
func StrainBar(strain, safe, axisMax float64, width int) string {
	if width < 3 {
		width = 3
	}
	frac := scenario.Clamp01(strain / axisMax)
	safeFrac := scenario.Clamp01(safe / axisMax)
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	mark := int(safeFrac * float64(width))
	if mark >= width {
		mark = width - 1
	}

	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < width; i++ {
		switch {
		case i == mark:
			b.WriteByte('|')
		case i < filled:
			b.WriteByte('=')
		default:
			b.WriteByte('-')
		}
	}
	b.WriteByte(']')
	return b.String()
}
