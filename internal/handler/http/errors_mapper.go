package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/group-vault/internal/store"
)

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrInvalidToken:               http.StatusUnauthorized,
	ErrNotAdmin:                   http.StatusForbidden,
	ErrInvalidBody:                http.StatusBadRequest,

	store.ErrBlobNotFound:     http.StatusNotFound,
	store.ErrVersionConflict:  http.StatusConflict,
	store.ErrInvalidPath:      http.StatusBadRequest,
	store.ErrUnauthorized:     http.StatusUnauthorized,
	store.ErrPermissionDenied: http.StatusForbidden,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorMessage hides internal failures from callers.
func errorMessage(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
