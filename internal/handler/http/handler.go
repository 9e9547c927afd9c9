package http

import (
	"github.com/MKhiriev/group-vault/internal/config"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/internal/store"
	"github.com/MKhiriev/group-vault/models"
)

type Handler struct {
	store store.BlobStore
	app   config.App
	build models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(st store.BlobStore, app config.App, build models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		store:  st,
		app:    app,
		build:  build,
		logger: logger,
	}
}
