package store

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/MKhiriev/group-vault/models"
)

var _ BlobStore = &CachedStore{}

// CachedStore is a read-through LRU decorator. Only paths under
// cachePrefix are cached: file blobs are written once and never change,
// while the index must always be read fresh for CAS to mean anything.
type CachedStore struct {
	c           *lru.Cache // path -> models.Blob
	s           BlobStore
	cachePrefix string
}

// NewCachedStore wraps s with an LRU holding up to size blobs whose path
// starts with cachePrefix.
func NewCachedStore(s BlobStore, size int, cachePrefix string) (*CachedStore, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CachedStore{c: c, s: s, cachePrefix: cachePrefix}, nil
}

func (s *CachedStore) cacheable(path string) bool {
	return strings.HasPrefix(path, s.cachePrefix)
}

func (s *CachedStore) GetBlob(ctx context.Context, path string) (models.Blob, error) {
	if got, ok := s.c.Get(path); ok {
		blob := got.(models.Blob)
		blob.Content = append([]byte(nil), blob.Content...)
		return blob, nil
	}
	got, err := s.s.GetBlob(ctx, path)
	if err != nil {
		return models.Blob{}, err
	}
	if s.cacheable(path) {
		cached := got
		cached.Content = append([]byte(nil), got.Content...)
		s.c.Add(path, cached)
	}
	return got, nil
}

func (s *CachedStore) PutBlob(ctx context.Context, path string, content []byte, versionTag string) (string, error) {
	s.c.Remove(path)
	tag, err := s.s.PutBlob(ctx, path, content, versionTag)
	if err != nil {
		return "", err
	}
	if s.cacheable(path) {
		s.c.Add(path, models.Blob{Path: path, Content: append([]byte(nil), content...), VersionTag: tag})
	}
	return tag, nil
}

func (s *CachedStore) DeleteBlob(ctx context.Context, path string, versionTag string) error {
	s.c.Remove(path)
	return s.s.DeleteBlob(ctx, path, versionTag)
}

func (s *CachedStore) ListBlobs(ctx context.Context, prefix string) ([]models.BlobInfo, error) {
	return s.s.ListBlobs(ctx, prefix)
}

// Len reports how many blobs are cached.
func (s *CachedStore) Len() int {
	return s.c.Len()
}
