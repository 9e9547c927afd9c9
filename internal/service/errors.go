package service

import "errors"

var (
	// ErrAuthentication is returned when the store rejects the admin
	// credential. The caller should ask for a new one.
	ErrAuthentication = errors.New("authentication failed")

	// ErrConflict is returned when the index kept changing underneath a
	// commit until the attempt budget ran out.
	ErrConflict = errors.New("vault index changed concurrently")

	// ErrNotFound is returned when a required blob is missing.
	ErrNotFound = errors.New("blob not found")

	// ErrTransport is returned for network and store failures. These are
	// never retried automatically.
	ErrTransport = errors.New("blob store unavailable")

	// ErrCorruptIndex is returned when the stored index cannot be decoded.
	ErrCorruptIndex = errors.New("vault index is corrupt")

	// ErrCorruptBlob is returned when a file blob cannot be decoded or
	// opened with its group key.
	ErrCorruptBlob = errors.New("file blob is corrupt")

	ErrGroupNotFound       = errors.New("group not found")
	ErrGroupLocked         = errors.New("group must be unlocked first")
	ErrItemNotFound        = errors.New("item not found")
	ErrNoPassphrase        = errors.New("no passphrase entered")
	ErrReconcileIncomplete = errors.New("every group must be unlocked before reconciling")
	ErrInvalidTransition   = errors.New("invalid group status transition")
)
