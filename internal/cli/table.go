package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

// RenderTable renders rows under headers with right-aligned cells.
func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	return t.String()
}

// FormatHz formats a frequency with a kHz suffix above 1 kHz.
func FormatHz(f float64) string {
	if f >= 1000 {
		return fmt.Sprintf("%.2f kHz", f/1000)
	}
	return fmt.Sprintf("%.1f Hz", f)
}

// FormatDB formats a level in dB with an explicit sign.
func FormatDB(db float64) string {
	return fmt.Sprintf("%+.2f dB", db)
}
