package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/group-vault/internal/mock"
	"github.com/MKhiriev/group-vault/internal/store"
	"github.com/MKhiriev/group-vault/internal/utils"
	"github.com/MKhiriev/group-vault/models"
)

func putBlob(t *testing.T, h http.Handler, token, path string, content []byte, tag string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, h, http.MethodPut, "/api/blobs/"+path, token, models.PutBlobRequest{Content: content, VersionTag: tag})
}

func decodeTag(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var out models.PutBlobResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	require.NotEmpty(t, out.VersionTag)
	return out.VersionTag
}

func TestBlobs_PutGetDelete(t *testing.T) {
	router := newTestHandler().Init()
	token := adminToken(t)

	rr := putBlob(t, router, token, "files/a.enc", []byte("payload"), "")
	require.Equal(t, http.StatusOK, rr.Code)
	tag := decodeTag(t, rr)

	rr = doRequest(t, router, http.MethodGet, "/api/blobs/files/a.enc", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var blob models.Blob
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&blob))
	assert.Equal(t, "files/a.enc", blob.Path)
	assert.Equal(t, []byte("payload"), blob.Content)
	assert.Equal(t, tag, blob.VersionTag)

	rr = doRequest(t, router, http.MethodDelete, "/api/blobs/files/a.enc?version_tag="+tag, token, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = doRequest(t, router, http.MethodGet, "/api/blobs/files/a.enc", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBlobs_ConditionalWrites(t *testing.T) {
	router := newTestHandler().Init()
	token := adminToken(t)

	rr := putBlob(t, router, token, "vault-index.json", []byte("v1"), "")
	require.Equal(t, http.StatusOK, rr.Code)
	v1 := decodeTag(t, rr)

	tests := []struct {
		name       string
		tag        string
		wantStatus int
	}{
		{name: "create over existing path", tag: "", wantStatus: http.StatusConflict},
		{name: "unknown tag", tag: "not-a-tag", wantStatus: http.StatusConflict},
		{name: "current tag", tag: v1, wantStatus: http.StatusOK},
		{name: "tag already consumed", tag: v1, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := putBlob(t, router, token, "vault-index.json", []byte("v2"), tt.tag)
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				var body utils.ErrorResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.NotEmpty(t, body.Error)
			}
		})
	}
}

func TestBlobs_DeleteErrors(t *testing.T) {
	router := newTestHandler().Init()
	token := adminToken(t)

	rr := doRequest(t, router, http.MethodDelete, "/api/blobs/files/missing.enc?version_tag=x", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	require.Equal(t, http.StatusOK, putBlob(t, router, token, "files/a.enc", []byte("x"), "").Code)
	rr = doRequest(t, router, http.MethodDelete, "/api/blobs/files/a.enc?version_tag=stale", token, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestBlobs_List(t *testing.T) {
	router := newTestHandler().Init()
	token := adminToken(t)

	rr := doRequest(t, router, http.MethodGet, "/api/blobs?prefix=files/", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	for _, p := range []string{"files/b.enc", "files/a.enc", "vault-index.json"} {
		require.Equal(t, http.StatusOK, putBlob(t, router, token, p, []byte("x"), "").Code)
	}

	rr = doRequest(t, router, http.MethodGet, "/api/blobs?prefix=files/", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var infos []models.BlobInfo
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "files/a.enc", infos[0].Path)
	assert.Equal(t, "files/b.enc", infos[1].Path)
	assert.Equal(t, int64(1), infos[0].Size)
}

func TestBlobs_BadRequests(t *testing.T) {
	router := newTestHandler().Init()
	token := adminToken(t)

	tests := []struct {
		name   string
		method string
		target string
		body   any
	}{
		{name: "parent segment", method: http.MethodGet, target: "/api/blobs/files/../secret"},
		{name: "empty wildcard", method: http.MethodGet, target: "/api/blobs/"},
		{name: "body is not an object", method: http.MethodPut, target: "/api/blobs/files/a.enc", body: []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, tt.method, tt.target, token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestBlobs_EscapedPath(t *testing.T) {
	router := newTestHandler().Init()
	token := adminToken(t)

	rr := putBlob(t, router, token, "files/with%20space.enc", []byte("x"), "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/blobs?prefix=files/", "", nil)
	assert.Contains(t, rr.Body.String(), `"files/with space.enc"`)
}

func TestVersion(t *testing.T) {
	rr := doRequest(t, newTestHandler().Init(), http.MethodGet, "/api/version", "", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"version":"1.2.3","date":"2026-01-01","commit":"abc123"}`, rr.Body.String())
}

func TestBlobs_StoreFailureHidesCause(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mock.NewMockBlobStore(ctrl)
	st.EXPECT().GetBlob(gomock.Any(), "vault-index.json").
		Return(models.Blob{}, fmt.Errorf("%w: connection reset", store.ErrExecutingQuery))

	h := newTestHandler()
	h.store = st

	req := httptest.NewRequest(http.MethodGet, "/api/blobs/vault-index.json", nil)
	req.Header.Set("X-Trace-ID", "trace-42")
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var out utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.Equal(t, "Internal Server Error (trace trace-42)", out.Error)
	assert.NotContains(t, out.Error, "connection reset")
}
