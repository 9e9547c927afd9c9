package http

import (
	"net/http"

	"github.com/MKhiriev/group-vault/internal/utils"
	"github.com/MKhiriev/group-vault/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.app.Version
	if version == "" {
		version = h.build.BuildVersion()
	}

	_, _ = utils.WriteJSON(w, models.VersionResponse{
		Version: version,
		Date:    h.build.BuildDate(),
		Commit:  h.build.BuildCommit(),
	}, http.StatusOK)
}
