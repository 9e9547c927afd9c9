// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the vault client's transport to a remote blob server.
//
// [NewHTTPBlobStore] returns a [store.BlobStore] speaking the REST routes
// served by cmd/blobserver. HTTP statuses are translated by mapHTTPError into
// the store sentinels, so the service layer never sees a status code.
package adapter

import "errors"

// ErrInvalidAddress is returned by [NewHTTPBlobStore] for an empty or
// unparsable server address.
var ErrInvalidAddress = errors.New("invalid blob server address")
