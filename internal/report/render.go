package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - keeping it minimal and accessible.
var (
	colorPrimary = lipgloss.Color("39")  // Blue
	colorWarning = lipgloss.Color("214") // Orange
	colorMuted   = lipgloss.Color("240") // Dark gray
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginTop(1)

	metricNameStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(28)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorWarning)
)

// Render lays out the battery results as a terminal report.
func Render(results []CategoryResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Data Quality Report"))
	b.WriteString("\n")

	for _, category := range results {
		b.WriteString(categoryStyle.Render(category.Name))
		b.WriteString("\n")
		for _, metric := range category.Metrics {
			b.WriteString("  ")
			b.WriteString(metricNameStyle.Render(metric.Name))
			if metric.Err != "" {
				b.WriteString(errorStyle.Render("error: " + metric.Err))
			} else {
				b.WriteString(valueStyle.Render(metric.Value))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
