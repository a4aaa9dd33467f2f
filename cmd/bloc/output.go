package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/martian56/bloc/pkg/repo"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// printOutcome writes the outcome lines to stdout. Soft failures are
// rendered in the warning colour; they still exit 0.
func printOutcome(cmd *cobra.Command, out repo.Outcome) {
	w := cmd.OutOrStdout()
	for _, line := range out.Lines {
		switch {
		case !out.OK() && line != "":
			line = warnStyle.Render(line)
		case strings.HasPrefix(line, "* "):
			line = currentStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}
