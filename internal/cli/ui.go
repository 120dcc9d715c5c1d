package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")  // teal - primary values
	colorGreen = lipgloss.Color("35")  // green - success
	colorRed   = lipgloss.Color("167") // soft red - errors
)

// StyleHighlight for emphasized values in result lines.
var StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
)

// successLine formats a check-marked completion message for stdout.
func successLine(format string, args ...any) string {
	return styleIconSuccess.Render("✓") + " " + fmt.Sprintf(format, args...)
}

// errorLine formats a cross-marked failure message for stderr.
func errorLine(format string, args ...any) string {
	return styleIconError.Render("✗") + " " + fmt.Sprintf(format, args...)
}
