// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteMatches(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/api/version", "/api/version", true},
		{"/api/version", "/api/version/", false},
		{"/api/blobs/*", "/api/blobs/files/a.enc", true},
		{"/api/blobs/*", "/api/blobs", false},
		{"/api/blobs", "/api/blobs/x", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, routeMatches(tt.pattern, tt.path))
		})
	}
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	router := newTestHandler().Init()
	token := adminToken(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "POST on version", method: http.MethodPost, path: "/api/version"},
		{name: "PATCH on blob", method: http.MethodPatch, path: "/api/blobs/files/a.enc"},
		{name: "POST on blob", method: http.MethodPost, path: "/api/blobs/vault-index.json"},
		{name: "DELETE on listing", method: http.MethodDelete, path: "/api/blobs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, tt.method, tt.path, token, nil)
			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}

func TestInit_UnknownRoutesReturn404(t *testing.T) {
	router := newTestHandler().Init()

	for _, path := range []string{"/api/nonexistent", "/totally/wrong", "/api/version/extra"} {
		rr := doRequest(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}
