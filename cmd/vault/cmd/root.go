package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/group-vault/internal/client"
	"github.com/MKhiriev/group-vault/internal/config"
	"github.com/MKhiriev/group-vault/internal/keyring"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/models"
)

var (
	configPath string
	overrides  = &config.StructuredConfig{}

	build = models.NewAppBuildInfo("", "", "")
	app   *client.App
)

var rootCmd = &cobra.Command{
	Use:   "vault",
	Short: "Family vault client",
	Long: `vault reads and edits a shared encrypted vault.

Groups are protected by their own passphrase. Anyone can list groups and
unlock the ones they know the passphrase of. Changing the vault needs an
admin token issued by the blob server (see "vault login").

Passphrases are prompted for without echo, or taken from VAULT_PASSPHRASE.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsVault(cmd) {
			return nil
		}

		cfg, err := config.GetClientConfig(configPath, overrides)
		if err != nil {
			return err
		}

		log := logger.NewClientLogger("group-vault-client", cfg.App.LogFile)
		level := cfg.App.LogLevel
		if cfg.App.LogFile == "" && overrides.App.LogLevel == "" {
			// stderr is shared with prompts
			level = "warn"
		}
		if err = logger.SetLevel(level); err != nil {
			log.Warn().Err(err).Msg("unknown log level, keeping default")
		}

		app, err = client.NewApp(cfg, keyring.New(), log)
		if err != nil {
			return err
		}
		return app.Start(cmd.Context())
	},
}

// needsVault reports whether cmd talks to the vault at all.
func needsVault(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "version", "vault":
		return false
	}
	return true
}

// requireAdmin stops a mutating command up front, since the vault ignores
// changes from sessions without an admin token.
func requireAdmin(cmd *cobra.Command, args []string) error {
	if !app.IsAdmin() {
		return fmt.Errorf("%w, run \"vault login\" first", client.ErrNotAdmin)
	}
	return nil
}

// SetBuildInfo records the linker-provided build metadata.
func SetBuildInfo(version, date, commit string) {
	build = models.NewAppBuildInfo(version, date, commit)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if app != nil {
		if cerr := app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "path to a JSON config file")
	flags.StringVarP(&overrides.Vault.Name, "vault", "n", "", "vault name, keys the remembered admin token")
	flags.StringVar(&overrides.Vault.Backend, "backend", "", "blob store: http, bolt or memory")
	flags.StringVar(&overrides.Vault.BoltPath, "bolt-path", "", "vault file of the bolt backend")
	flags.StringVarP(&overrides.Adapter.HTTPAddress, "server", "s", "", "blob server address")
	flags.StringVar(&overrides.App.LogLevel, "log-level", "", "log level")
	flags.StringVar(&overrides.App.LogFile, "log-file", "", "log file, stderr when empty")
}
