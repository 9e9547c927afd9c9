package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/group-vault/internal/crypto"
	"github.com/MKhiriev/group-vault/models"
)

var statusUnlock bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List the groups of the vault",
	Long: `List every group with its unlock status. Item counts are shown for
unlocked groups only.

Examples:
  vault status
  vault status --unlock`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if statusUnlock {
			p, err := passphrase("Passphrase: ")
			if err != nil {
				return err
			}
			_, err = app.Unlock(cmd.Context(), p)
			crypto.ClearBytes(p)
			if err != nil {
				return err
			}
		}

		w := cmd.OutOrStdout()
		role := "reader"
		if app.IsAdmin() {
			role = "admin"
		}
		fmt.Fprintf(w, "access: %s\n", role)
		if app.Uninitialized() {
			fmt.Fprintln(w, "vault is empty, log in as admin to initialize it")
			return nil
		}

		groups := app.Groups()
		if len(groups) == 0 {
			fmt.Fprintln(w, "no groups")
			return nil
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tITEMS\tMODIFIED")
		for _, g := range groups {
			items := "-"
			if g.Items >= 0 {
				items = fmt.Sprint(g.Items)
			}
			status := string(g.Status)
			if g.Status == models.StatusPending {
				status = "locked"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", g.ID, g.Name, status, items, g.Modified.Format(time.DateTime))
		}
		return tw.Flush()
	},
}

func init() {
	statusCmd.Flags().BoolVarP(&statusUnlock, "unlock", "u", false, "prompt for a passphrase first")
	rootCmd.AddCommand(statusCmd)
}
