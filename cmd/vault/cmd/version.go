package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Build version: %s\n", orNA(build.BuildVersion()))
		fmt.Fprintf(w, "Build date: %s\n", orNA(build.BuildDate()))
		fmt.Fprintf(w, "Build commit: %s\n", orNA(build.BuildCommit()))
	},
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
