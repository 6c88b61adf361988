package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"prcheck/internal/rules"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version, commit, date := BuildInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "prcheck %s\ncommit: %s\nbuilt:  %s\ngo:     %s\nrules:  %d\n",
			version, commit, date, runtime.Version(), len(rules.List()))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
