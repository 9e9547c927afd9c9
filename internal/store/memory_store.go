package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/group-vault/models"
)

type memoryEntry struct {
	content   []byte
	tag       string
	updatedAt time.Time
}

// memoryStore is a process-local [BlobStore]. All CAS checks run under one
// mutex.
type memoryStore struct {
	mu      sync.Mutex
	objects map[string]memoryEntry
	tags    TagGenerator
}

// NewMemoryStore returns an empty in-memory [BlobStore].
func NewMemoryStore(tags TagGenerator) BlobStore {
	return &memoryStore{
		objects: make(map[string]memoryEntry),
		tags:    tags,
	}
}

func (m *memoryStore) GetBlob(_ context.Context, path string) (models.Blob, error) {
	if err := validatePath(path); err != nil {
		return models.Blob{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.objects[path]
	if !ok {
		return models.Blob{}, ErrBlobNotFound
	}
	return models.Blob{
		Path:       path,
		Content:    append([]byte(nil), entry.content...),
		VersionTag: entry.tag,
	}, nil
}

func (m *memoryStore) PutBlob(_ context.Context, path string, content []byte, versionTag string) (string, error) {
	if err := validatePath(path); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.objects[path]
	if err := checkTag(exists, current.tag, versionTag); err != nil {
		return "", err
	}

	tag := m.tags.Generate()
	m.objects[path] = memoryEntry{
		content:   append([]byte(nil), content...),
		tag:       tag,
		updatedAt: time.Now().UTC(),
	}
	return tag, nil
}

func (m *memoryStore) DeleteBlob(_ context.Context, path string, versionTag string) error {
	if err := validatePath(path); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.objects[path]
	if !exists {
		return ErrBlobNotFound
	}
	if current.tag != versionTag {
		return ErrVersionConflict
	}
	delete(m.objects, path)
	return nil
}

func (m *memoryStore) ListBlobs(_ context.Context, prefix string) ([]models.BlobInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]models.BlobInfo, 0)
	for path, entry := range m.objects {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		infos = append(infos, models.BlobInfo{
			Path:       path,
			VersionTag: entry.tag,
			Size:       int64(len(entry.content)),
			UpdatedAt:  entry.updatedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })
	return infos, nil
}

// checkTag applies the conditional-write rule shared by every backend.
func checkTag(exists bool, currentTag, presentedTag string) error {
	switch {
	case presentedTag == "" && exists:
		return ErrVersionConflict
	case presentedTag != "" && !exists:
		return ErrVersionConflict
	case presentedTag != "" && currentTag != presentedTag:
		return ErrVersionConflict
	}
	return nil
}

func validatePath(path string) error {
	if path == "" || strings.HasPrefix(path, "/") || strings.Contains(path, "..") || strings.ContainsRune(path, '\\') {
		return ErrInvalidPath
	}
	return nil
}
