// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while checking the "Authorization" header.
var (
	// ErrEmptyAuthorizationHeader is returned when a write arrives without
	// an "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not of
	// the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidToken is returned when the token fails signature, issuer or
	// expiry checks.
	ErrInvalidToken = errors.New("invalid admin token")

	// ErrNotAdmin is returned when a valid token lacks the admin scope.
	ErrNotAdmin = errors.New("token lacks admin scope")
)

// ErrInvalidBody is returned when a write body is not a valid
// PutBlobRequest.
var ErrInvalidBody = errors.New("invalid request body")
