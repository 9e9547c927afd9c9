// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the vault client's business logic: loading and
// committing the vault index, unlocking groups and the admin mutations.
//
// Every operation takes an explicit [*Session] carrying the store handle,
// the credential and the decrypted state, so no component keeps ambient
// per-user state of its own.
package service

import (
	"context"

	"github.com/MKhiriev/group-vault/internal/store"
	"github.com/MKhiriev/group-vault/internal/workers"
	"github.com/MKhiriev/group-vault/models"
)

// Mutation edits a private copy of the index for one commit attempt.
//
// groups returns the decrypted state of an unlocked group as of this
// attempt. After a conflict the mutation runs again against the reloaded
// index, so it must derive everything it writes from its arguments.
type Mutation func(index *models.VaultIndex, groups GroupLookup) error

// GroupLookup returns a copy of an unlocked group.
type GroupLookup func(groupID string) (models.DecryptedGroup, bool)

// IndexService loads and conditionally writes the vault index.
type IndexService interface {
	// Load fetches the index and adopts it with its version tag. A missing
	// index yields the bootstrap index and marks the session uninitialized.
	// Cached groups are re-decrypted from the fetched ciphertext.
	Load(ctx context.Context, sess *Session) error

	// Save writes index conditioned on the tag the session last observed.
	Save(ctx context.Context, sess *Session, index models.VaultIndex) error

	// Commit applies m and saves, reloading and reapplying on conflict up
	// to the configured number of attempts.
	Commit(ctx context.Context, sess *Session, m Mutation) error
}

// UnlockService runs unlock batches.
type UnlockService interface {
	// Unlock tries the session's entered passphrase against every group
	// not yet unlocked, one at a time. Wrong passphrases only show up as
	// failed statuses in the report.
	Unlock(ctx context.Context, sess *Session) (models.UnlockReport, error)
}

// AdminService performs the admin mutations. Mutations are no-ops unless
// the session holds an admin credential.
type AdminService interface {
	Authenticate(ctx context.Context, sess *Session, token string) error
	CreateGroup(ctx context.Context, sess *Session, name string, passphrase []byte) (string, error)
	DeleteGroup(ctx context.Context, sess *Session, groupID string) error
	AddItem(ctx context.Context, sess *Session, groupID string, draft models.ItemDraft, upload *models.FileUpload) (models.GroupItem, error)
	DeleteItem(ctx context.Context, sess *Session, groupID, itemID string) error
	OpenItem(ctx context.Context, sess *Session, groupID, itemID string) (models.ItemContent, error)
	Reconcile(ctx context.Context, sess *Session, dryRun bool) (models.ReconcileReport, error)
	Logout(sess *Session)
	ForgetCredential(sess *Session)
}

// StoreOpener builds a blob store handle acting under credential. An empty
// credential yields an anonymous read-only handle.
type StoreOpener interface {
	Open(credential string) (store.BlobStore, error)
}

// JobQueue runs unlock batches one at a time.
type JobQueue interface {
	Submit(ctx context.Context, job workers.Job) (<-chan struct{}, error)
}

// IDGenerator mints group and item ids.
type IDGenerator interface {
	Generate() string
}
