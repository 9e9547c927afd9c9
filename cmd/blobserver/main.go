package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/group-vault/internal/config"
	handler "github.com/MKhiriev/group-vault/internal/handler/http"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/internal/server"
	"github.com/MKhiriev/group-vault/internal/store"
	"github.com/MKhiriev/group-vault/internal/utils"
	"github.com/MKhiriev/group-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const issueTokenCommand = "issue-token"

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == issueTokenCommand {
		if err := issueToken(args[1:]); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	printBuildInfo()

	log := logger.NewLogger("group-vault-blobserver")
	cfg, err := config.GetServerConfig(args)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Warn().Err(err).Msg("unknown log level, keeping default")
	}

	db, err := store.NewConnect(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	blobs := store.NewBlobRepository(db, utils.NewUUIDGenerator(), log)
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	h := handler.NewHandler(blobs, cfg.App, build, log)

	srv, err := server.NewServer(h, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// issueToken prints a signed admin token for the subject given as the
// first argument. The remaining arguments are the usual server flags.
func issueToken(args []string) error {
	if len(args) == 0 || args[0] == "" || args[0][0] == '-' {
		return errors.New("usage: blobserver issue-token <subject> [flags]")
	}
	subject := args[0]

	cfg, err := config.GetStructuredConfig(args[1:])
	if err != nil {
		return err
	}
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", config.ErrInvalidAppConfigs)
	}

	token, err := utils.GenerateJWTToken(cfg.App.TokenIssuer, subject, cfg.App.TokenDuration, cfg.App.TokenSignKey)
	if err != nil {
		return err
	}
	fmt.Println(token.SignedString)
	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
