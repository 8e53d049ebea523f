package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/reducebench/internal/orchestration"
	"github.com/agbru/reducebench/internal/ui"
)

// Style variables for the dashboard, rebuilt from the ui palette by
// initTUIStyles.
var (
	panelStyle       lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	dimStyle         lipgloss.Style
	elapsedStyle     lipgloss.Style
	metricLabelStyle lipgloss.Style
	metricValueStyle lipgloss.Style
	cpuSparkStyle    lipgloss.Style
	memSparkStyle    lipgloss.Style
	okStyle          lipgloss.Style
	warnStyle        lipgloss.Style
	errorStyle       lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds every style from the current palette. Run calls it
// again after the theme has been chosen.
func initTUIStyles() {
	p := ui.CurrentPalette()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Foreground(p.Text)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(p.Dim)
	elapsedStyle = lipgloss.NewStyle().Foreground(p.Accent)
	metricLabelStyle = lipgloss.NewStyle().Foreground(p.Dim)
	metricValueStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	cpuSparkStyle = lipgloss.NewStyle().Foreground(p.Accent)
	memSparkStyle = lipgloss.NewStyle().Foreground(p.Warning)
	okStyle = lipgloss.NewStyle().Foreground(p.Success).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
}

// statusStyle picks the style of a finished sweep's summary line.
func statusStyle(report *orchestration.Report) lipgloss.Style {
	switch {
	case report == nil:
		return dimStyle
	case !report.Agreement || report.Count(orchestration.StatusFailed) > 0:
		return errorStyle
	case report.Count(orchestration.StatusTimedOut) > 0:
		return warnStyle
	}
	return okStyle
}
