package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	loginNoRemember bool
	logoutForget    bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Activate an admin token",
	Long: `Activate an admin token for this vault. The token is checked against
the blob server and, unless --no-remember is given, kept in the OS keyring
for later runs. The token is read from VAULT_TOKEN or prompted for.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := string(envSecret(tokenEnv))
		if token == "" {
			raw, err := readSecret("Admin token: ")
			if err != nil {
				return err
			}
			token = strings.TrimSpace(string(raw))
		}

		if err := app.Login(cmd.Context(), token, !loginNoRemember); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "logged in as admin")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop decrypted state and, optionally, the remembered token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Logout(logoutForget); err != nil {
			return err
		}
		if logoutForget {
			fmt.Fprintln(cmd.OutOrStdout(), "admin token forgotten")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().BoolVar(&loginNoRemember, "no-remember", false, "do not keep the token in the keyring")
	logoutCmd.Flags().BoolVar(&logoutForget, "forget-token", false, "remove the remembered admin token")
	rootCmd.AddCommand(loginCmd, logoutCmd)
}
