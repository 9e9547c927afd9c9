package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var reconcileDryRun bool

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Delete file blobs no item refers to",
	Long: `Scan the stored file blobs and delete the ones no item refers to.
Every group has to be unlocked first, so passphrases are prompted for until
all groups are open.`,
	Args:    cobra.NoArgs,
	PreRunE: requireAdmin,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if err := unlockUntil(cmd.Context(), w, allUnlocked); err != nil {
			return err
		}

		report, err := app.Reconcile(cmd.Context(), reconcileDryRun)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "scanned %d file blobs, %d orphaned\n", report.Scanned, len(report.Orphans))
		for _, path := range report.Deleted {
			fmt.Fprintf(w, "deleted %s\n", path)
		}
		if reconcileDryRun {
			for _, path := range report.Orphans {
				fmt.Fprintf(w, "would delete %s\n", path)
			}
		}

		failed := make([]string, 0, len(report.Failures))
		for path := range report.Failures {
			failed = append(failed, path)
		}
		sort.Strings(failed)
		for _, path := range failed {
			fmt.Fprintf(w, "failed %s: %s\n", path, report.Failures[path])
		}
		return nil
	},
}

func init() {
	reconcileCmd.Flags().BoolVar(&reconcileDryRun, "dry-run", false, "only list orphaned blobs")
	rootCmd.AddCommand(reconcileCmd)
}
