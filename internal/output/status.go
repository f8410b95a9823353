package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/digital-fluid/fluidspec/internal/commands"
)

func stateLabel(s commands.State) string {
	switch s {
	case commands.StateCurrent:
		return green(string(s))
	case commands.StateOutdated, commands.StateMissing:
		return yellow(string(s))
	default:
		return cyan(string(s))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// PrintCommandStatus prints a table of installed command versions.
func PrintCommandStatus(out io.Writer, statuses []commands.CommandStatus) {
	if len(statuses) == 0 {
		fmt.Fprintln(out, "No command templates found.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COMMAND\tINSTALLED\tAVAILABLE\tSTATE")
	needsInstall := 0
	for _, s := range statuses {
		fmt.Fprintf(tw, "/%s\t%s\t%s\t%s\n", s.Name, orDash(s.InstalledVersion), orDash(s.SourceVersion), stateLabel(s.State))
		if s.State == commands.StateMissing || s.State == commands.StateOutdated {
			needsInstall++
		}
	}
	tw.Flush()

	if needsInstall > 0 {
		fmt.Fprintln(out)
		PrintTip(out, fmt.Sprintf("%d command(s) can be updated with 'fluidspec commands install --force'", needsInstall))
	}
}
