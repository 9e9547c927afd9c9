package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/group-vault/internal/crypto"
	"github.com/MKhiriev/group-vault/models"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Try a passphrase against every locked group",
	Long: `Try a passphrase against every locked group and report which
groups it opens. Groups stay unlocked only for this run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := passphrase("Passphrase: ")
		if err != nil {
			return err
		}
		defer crypto.ClearBytes(p)

		report, err := app.Unlock(cmd.Context(), p)
		if err != nil {
			return err
		}
		printUnlockReport(cmd.OutOrStdout(), report)
		return nil
	},
}

func passphrase(prompt string) ([]byte, error) {
	if p := envSecret(passphraseEnv); p != nil {
		return p, nil
	}
	return readSecret(prompt)
}

func printUnlockReport(w io.Writer, report models.UnlockReport) {
	if len(report.Attempted) == 0 {
		fmt.Fprintln(w, "no locked groups")
		return
	}
	for _, id := range report.Unlocked {
		fmt.Fprintf(w, "unlocked %s\n", groupLabel(id))
	}
	if len(report.Unlocked) == 0 {
		fmt.Fprintln(w, "passphrase did not open any group")
	}
}

// unlockUntil prompts for passphrases until done reports true or an empty
// passphrase is entered. A passphrase from the environment is tried once.
func unlockUntil(ctx context.Context, w io.Writer, done func() bool) error {
	if done() {
		return nil
	}

	if p := envSecret(passphraseEnv); p != nil {
		defer crypto.ClearBytes(p)
		if _, err := app.Unlock(ctx, p); err != nil {
			return err
		}
		return nil
	}

	for !done() {
		p, err := readSecret("Passphrase (empty to stop): ")
		if err != nil {
			return err
		}
		if len(p) == 0 {
			return nil
		}
		report, err := app.Unlock(ctx, p)
		crypto.ClearBytes(p)
		if err != nil {
			return err
		}
		printUnlockReport(w, report)
	}
	return nil
}

func groupUnlocked(groupID string) func() bool {
	return func() bool {
		_, ok := app.Group(groupID)
		return ok
	}
}

func allUnlocked() bool {
	for _, g := range app.Groups() {
		if g.Status != models.StatusSuccess {
			return false
		}
	}
	return true
}

func groupLabel(id string) string {
	for _, g := range app.Groups() {
		if g.ID == id {
			return fmt.Sprintf("%s (%s)", g.Name, g.ID)
		}
	}
	return id
}

func init() {
	rootCmd.AddCommand(unlockCmd)
}
