package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/BonnyAD9/stick-ants/internal/rod"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(8)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	StatusDone    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))

	// rod cells: white rod, black plain ants, magenta Molly
	emptyCellStyle = lipgloss.NewStyle().Background(lipgloss.Color("7"))
	antCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("7"))
	mollyCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Background(lipgloss.Color("7")).Bold(true)
)

// RenderCells turns a rasterized cell row into one styled rod line.
func RenderCells(cells []rod.Kind) string {
	var b strings.Builder
	for _, c := range cells {
		switch c {
		case rod.Molly:
			b.WriteString(mollyCellStyle.Render("●"))
		case rod.Plain:
			b.WriteString(antCellStyle.Render("●"))
		default:
			b.WriteString(emptyCellStyle.Render(" "))
		}
	}
	return b.String()
}
