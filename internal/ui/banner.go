package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true).
			Padding(0, 1)

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// PrintBanner writes the startup banner to w.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprintln(w, bannerStyle.Render("Forjex "+version))
	fmt.Fprintln(w, taglineStyle.Render("scaffold, commit and ship in one step"))
}
