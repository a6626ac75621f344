package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build information, set from main via SetVersion.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion records build information injected through ldflags.
func SetVersion(v, c, d string) {
	version, commit, date = v, c, d
}

func versionTemplate() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(c.Out, "%s version %s\n", appName, version)
			fmt.Fprintf(c.Out, "  commit: %s\n", commit)
			fmt.Fprintf(c.Out, "  built:  %s\n", date)
		},
	}
}
