package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/group-vault/internal/utils"
	"github.com/MKhiriev/group-vault/models"
)

func signClaims(t *testing.T, claims models.AdminClaims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func claimsFor(scope string, expires time.Time) models.AdminClaims {
	return models.AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "owner",
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Scope: scope,
	}
}

func TestRequireAdmin(t *testing.T) {
	valid := adminToken(t)
	readOnly := signClaims(t, claimsFor("vault:read", time.Now().Add(time.Hour)), testSignKey)
	expired := signClaims(t, claimsFor(models.AdminScope, time.Now().Add(-time.Hour)), testSignKey)
	foreign := signClaims(t, claimsFor(models.AdminScope, time.Now().Add(time.Hour)), "other-key")

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantSubject string
	}{
		{name: "valid admin token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantSubject: "owner"},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK, wantSubject: "owner"},
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "scheme only", header: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "basic scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "signed with another key", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
		{name: "missing admin scope", header: "Bearer " + readOnly, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()
			var gotSubject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSubject, _ = utils.GetSubjectFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPut, "/api/blobs/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.requireAdmin(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantSubject, gotSubject)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	h := newTestHandler()
	called := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous passes", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.optionalAuth(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("bad token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rr := httptest.NewRecorder()
		h.optionalAuth(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	assert.Equal(t, 1, called)
}

func TestRoutes_WritesRequireAdmin(t *testing.T) {
	router := newTestHandler().Init()

	rr := putBlob(t, router, "", "files/a.enc", []byte("x"), "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doRequest(t, router, http.MethodDelete, "/api/blobs/files/a.enc?version_tag=t", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/blobs/vault-index.json", "bad-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "a read with a bad token must fail")
}
