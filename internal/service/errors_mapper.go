// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/group-vault/internal/store"
)

// mapStoreError translates a blob store sentinel into the service error
// kind the client reacts to. The original error stays in the chain.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrVersionConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, store.ErrUnauthorized), errors.Is(err, store.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	case errors.Is(err, store.ErrBlobNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, store.ErrTransport):
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return err
}
