package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/internal/store"
	"github.com/MKhiriev/group-vault/internal/utils"
	"github.com/MKhiriev/group-vault/models"
)

// maxBodySize bounds a single PUT body. File blobs are base64 inside JSON,
// so this sits well above the client's upload limit.
const maxBodySize = 64 << 20

// blobPath returns the unescaped object path captured by the route
// wildcard.
func blobPath(r *http.Request) (string, error) {
	path, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil || path == "" {
		return "", store.ErrInvalidPath
	}
	return path, nil
}

func (h *Handler) getBlob(w http.ResponseWriter, r *http.Request) {
	path, err := blobPath(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	blob, err := h.store.GetBlob(r.Context(), path)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, blob, http.StatusOK)
}

func (h *Handler) putBlob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	path, err := blobPath(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.PutBlobRequest
	if err = json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidBody, err))
		return
	}

	tag, err := h.store.PutBlob(r.Context(), path, req.Content, req.VersionTag)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().
		Str("func", "*Handler.putBlob").
		Str("path", path).
		Bool("create", req.VersionTag == "").
		Msg("blob written")
	_, _ = utils.WriteJSON(w, models.PutBlobResponse{VersionTag: tag}, http.StatusOK)
}

func (h *Handler) deleteBlob(w http.ResponseWriter, r *http.Request) {
	path, err := blobPath(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.store.DeleteBlob(r.Context(), path, r.URL.Query().Get("version_tag")); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listBlobs(w http.ResponseWriter, r *http.Request) {
	infos, err := h.store.ListBlobs(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if infos == nil {
		infos = []models.BlobInfo{}
	}

	_, _ = utils.WriteJSON(w, infos, http.StatusOK)
}

// writeError answers with the status mapped from err. Expected outcomes
// such as conflicts are logged at debug level.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	switch {
	case status >= http.StatusInternalServerError:
		log.Err(err).Str("func", "*Handler.writeError").Msg("request failed")
	case errors.Is(err, store.ErrVersionConflict), errors.Is(err, store.ErrBlobNotFound):
		log.Debug().Err(err).Str("func", "*Handler.writeError").Send()
	default:
		log.Warn().Err(err).Str("func", "*Handler.writeError").Int("status", status).Send()
	}

	msg := errorMessage(err, status)
	if traceID, ok := utils.GetTraceIDFromContext(r.Context()); ok && status >= http.StatusInternalServerError {
		msg += " (trace " + traceID + ")"
	}
	utils.WriteError(w, msg, status)
}
