package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/group-vault/internal/config"
	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/internal/store"
	"github.com/MKhiriev/group-vault/internal/utils"
	"github.com/MKhiriev/group-vault/models"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "group-vault-test"
)

func testAppConfig() config.App {
	return config.App{TokenSignKey: testSignKey, TokenIssuer: testIssuer, Version: "1.2.3"}
}

// newTestHandler builds a Handler over an empty memory store.
func newTestHandler() *Handler {
	return &Handler{
		store:  store.NewMemoryStore(utils.NewUUIDGenerator()),
		app:    testAppConfig(),
		build:  models.NewAppBuildInfo("N/A", "2026-01-01", "abc123"),
		logger: logger.Nop(),
	}
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(testIssuer, "owner", time.Hour, testSignKey)
	require.NoError(t, err)
	return token.SignedString
}

func doRequest(t *testing.T, h http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rdr)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
