package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/digital-fluid/fluidspec/internal/build"
	"github.com/digital-fluid/fluidspec/internal/pkgroot"
	"github.com/digital-fluid/fluidspec/internal/source"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display the fluidspec version, build details and the template package in use",
	Example: `  # Show version info
  fluidspec version

  # Plain output (for scripts)
  fluidspec version --plain`,
	GroupID: GroupConfiguration,
	Args:    noArgs,
	Run: func(cmd *cobra.Command, args []string) {
		templates := describeTemplates(cmd)
		if versionPlain {
			printPlainVersion(cmd.OutOrStdout(), templates)
		} else {
			printPrettyVersion(cmd.OutOrStdout(), templates)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "plain output without formatting")
}

// describeTemplates names the template source the current configuration
// resolves to. Failures are reported inline; version never fails.
func describeTemplates(cmd *cobra.Command) string {
	env, err := loadEnv(cmd)
	if err != nil {
		return "unavailable (" + err.Error() + ")"
	}
	src, err := env.resolveSource()
	if err != nil {
		return "unavailable (" + err.Error() + ")"
	}
	if src.Kind != source.KindPackage {
		return src.String()
	}
	m, err := pkgroot.ReadManifest(src.Fs, src.Root)
	if err != nil || m.Version == "" {
		return src.Root
	}
	return fmt.Sprintf("%s@%s (%s)", m.Name, m.Version, src.Root)
}

func printPlainVersion(out io.Writer, templates string) {
	fmt.Fprintf(out, "fluidspec %s\n", build.Version)
	fmt.Fprintf(out, "commit: %s\n", build.Commit)
	fmt.Fprintf(out, "built: %s\n", build.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "templates: %s\n", templates)
}

func printPrettyVersion(out io.Writer, templates string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(out, "%s %s\n", cyan("fluidspec"), build.Version)
	if build.IsDevBuild() {
		fmt.Fprintf(out, "%s\n", dim("development build"))
	}
	fmt.Fprintf(out, "  %-10s %s\n", dim("commit"), build.Commit)
	fmt.Fprintf(out, "  %-10s %s\n", dim("built"), build.BuildDate)
	fmt.Fprintf(out, "  %-10s %s %s/%s\n", dim("go"), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "  %-10s %s\n", dim("templates"), templates)
}
