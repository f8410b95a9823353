// Package output prints install progress and reports for the fluidspec CLI.
// Colors come from fatih/color, which disables itself when stdout is not a
// terminal or NO_COLOR is set.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// PrintSuccess prints a green checkmark followed by message.
func PrintSuccess(out io.Writer, message string) {
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintHeading prints a section heading preceded by a blank line.
func PrintHeading(out io.Writer, heading string) {
	fmt.Fprintf(out, "\n%s\n", bold(heading))
}

// PrintDetail prints an indented detail line.
func PrintDetail(out io.Writer, format string, args ...any) {
	fmt.Fprintf(out, "  "+format+"\n", args...)
}

// PrintTip prints an indented hint.
func PrintTip(out io.Writer, tip string) {
	fmt.Fprintf(out, "  %s %s\n", yellow("Tip:"), tip)
}

// PrintPath prints a label and a highlighted path.
func PrintPath(out io.Writer, label, path string) {
	fmt.Fprintf(out, "%s %s\n", label, cyan(path))
}
