package store

import (
	"context"

	"github.com/MKhiriev/group-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/blob_store_mock.go -package=mock

// BlobStore is a path-addressed object store with per-object version tags.
//
// Every successful write mints a fresh tag that is never reused for the same
// path, so a writer holding an old tag can never overwrite newer content.
type BlobStore interface {
	// GetBlob returns the content and current tag stored at path, or
	// [ErrBlobNotFound].
	GetBlob(ctx context.Context, path string) (models.Blob, error)

	// PutBlob writes content to path and returns the new tag.
	//
	// An empty versionTag means create-only: the write fails with
	// [ErrVersionConflict] if path already exists. A non-empty versionTag
	// must equal the current tag of path, otherwise [ErrVersionConflict].
	PutBlob(ctx context.Context, path string, content []byte, versionTag string) (string, error)

	// DeleteBlob removes path if its current tag equals versionTag.
	DeleteBlob(ctx context.Context, path string, versionTag string) error

	// ListBlobs returns every object whose path starts with prefix, ordered
	// by path.
	ListBlobs(ctx context.Context, prefix string) ([]models.BlobInfo, error)
}

// TagGenerator mints version tags.
type TagGenerator interface {
	Generate() string
}

// ErrorClassificator decides whether a failed database call is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
