package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/group-vault/internal/store"
	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", store.ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", store.ErrPermissionDenied, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", store.ErrBlobNotFound, body)
	case http.StatusConflict, http.StatusPreconditionFailed:
		return fmt.Errorf("%w: %s", store.ErrVersionConflict, body)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", store.ErrInvalidPath, body)
	default:
		return fmt.Errorf("%w: http %d: %s", store.ErrTransport, resp.StatusCode(), body)
	}
}
