package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/group-vault/internal/config"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/internal/store"
	"github.com/MKhiriev/group-vault/internal/utils"
	"github.com/MKhiriev/group-vault/models"
	"github.com/go-resty/resty/v2"
)

const blobsRoute = "/api/blobs"

type httpBlobStore struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPBlobStore constructs a [store.BlobStore] backed by the blob server
// at cfg.HTTPAddress. A non-empty token is sent as a bearer credential on
// every request, reads included, so a rejected credential surfaces on the
// first call.
func NewHTTPBlobStore(cfg config.Adapter, token string, log *logger.Logger) (store.BlobStore, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpBlobStore{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		token:  strings.TrimSpace(token),
		logger: log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// blobURL escapes each segment of path so "files/<id>.enc" keeps its
// slash on the wire.
func blobURL(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return blobsRoute + "/" + strings.Join(segments, "/")
}

func (h *httpBlobStore) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	return req
}

func (h *httpBlobStore) GetBlob(ctx context.Context, path string) (models.Blob, error) {
	if path == "" {
		return models.Blob{}, store.ErrInvalidPath
	}

	var blob models.Blob
	resp, err := h.request(ctx).
		SetResult(&blob).
		Get(blobURL(path))
	if err != nil {
		return models.Blob{}, fmt.Errorf("%w: get %s: %w", store.ErrTransport, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Blob{}, err
	}

	blob.Path = path
	return blob, nil
}

func (h *httpBlobStore) PutBlob(ctx context.Context, path string, content []byte, versionTag string) (string, error) {
	if path == "" {
		return "", store.ErrInvalidPath
	}

	var out models.PutBlobResponse
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.PutBlobRequest{Content: content, VersionTag: versionTag}).
		SetResult(&out).
		Put(blobURL(path))
	if err != nil {
		return "", fmt.Errorf("%w: put %s: %w", store.ErrTransport, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().
			Str("func", "httpBlobStore.PutBlob").
			Str("path", path).
			Int("status", resp.StatusCode()).
			Msg("conditional write rejected")
		return "", err
	}
	if out.VersionTag == "" {
		return "", fmt.Errorf("%w: put %s: response carries no version tag", store.ErrTransport, path)
	}

	return out.VersionTag, nil
}

func (h *httpBlobStore) DeleteBlob(ctx context.Context, path string, versionTag string) error {
	if path == "" {
		return store.ErrInvalidPath
	}

	resp, err := h.request(ctx).
		SetQueryParam("version_tag", versionTag).
		Delete(blobURL(path))
	if err != nil {
		return fmt.Errorf("%w: delete %s: %w", store.ErrTransport, path, err)
	}

	return mapHTTPError(resp)
}

func (h *httpBlobStore) ListBlobs(ctx context.Context, prefix string) ([]models.BlobInfo, error) {
	var infos []models.BlobInfo
	resp, err := h.request(ctx).
		SetQueryParam("prefix", prefix).
		SetResult(&infos).
		Get(blobsRoute)
	if err != nil {
		return nil, fmt.Errorf("%w: list %q: %w", store.ErrTransport, prefix, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if infos == nil {
		infos = []models.BlobInfo{}
	}
	return infos, nil
}
