package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/group-vault/internal/crypto"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Create or delete groups",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a group protected by a new passphrase",
	Long: `Create an empty group. The passphrase is asked twice and is the only
way to open the group later.

Examples:
  vault group create "Kids"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAdmin,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readNewPassphrase()
		if err != nil {
			return err
		}
		defer crypto.ClearBytes(p)

		id, err := app.CreateGroup(cmd.Context(), args[0], p)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created group %s (%s)\n", args[0], id)
		return nil
	},
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete <group>",
	Short: "Delete a group and its files",
	Long: `Delete a group by id or name. Its file blobs are removed too unless
the vault keeps blobs for reconcile.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAdmin,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := app.ResolveGroup(args[0])
		if err != nil {
			return err
		}
		label := groupLabel(id)
		if err = app.DeleteGroup(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted group %s\n", label)
		return nil
	},
}

func init() {
	groupCmd.AddCommand(groupCreateCmd, groupDeleteCmd)
	rootCmd.AddCommand(groupCmd)
}
