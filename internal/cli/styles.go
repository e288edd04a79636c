// Package cli holds the terminal presentation of the peq command.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#0087D7")
	warnColor    = lipgloss.Color("#D70000")
	okColor      = lipgloss.Color("#00AA00")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warnColor)

	OKStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(okColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// PrintTitle writes a title line.
func PrintTitle(w io.Writer, title string) {
	fmt.Fprintln(w, TitleStyle.Render(title))
}

// PrintKV writes an aligned key/value line.
func PrintKV(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render(fmt.Sprintf("%-14s", key+":")), ValueStyle.Render(fmt.Sprint(value)))
}

// PrintStatus writes a pass/fail line.
func PrintStatus(w io.Writer, ok bool, message string) {
	label := OKStyle.Render("OK")
	if !ok {
		label = ErrorStyle.Render("FAIL")
	}
	fmt.Fprintf(w, "%s %s\n", label, message)
}

// PrintError writes an error message.
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), message)
}
