package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/models"
	bolt "go.etcd.io/bbolt"
)

var (
	// blobsBucket holds object content keyed by path.
	blobsBucket = []byte("blobs")
	// metaBucket holds boltMeta records keyed by path.
	metaBucket = []byte("meta")
)

type boltMeta struct {
	Tag       string    `json:"tag"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// boltStore keeps a whole vault in a single bbolt file. Each call is one
// bolt transaction, so the tag check and the write are atomic.
type boltStore struct {
	db     *bolt.DB
	tags   TagGenerator
	logger *logger.Logger
}

// BoltStore is a [BlobStore] that owns an open database file.
type BoltStore interface {
	BlobStore
	Close() error
}

// NewBoltStore opens (or creates) the bbolt file at path.
func NewBoltStore(path string, tags TagGenerator, log *logger.Logger) (BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		log.Err(err).Str("func", "NewBoltStore").Str("path", path).Msg("failed to open bolt database")
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{blobsBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Debug().Str("func", "NewBoltStore").Str("path", path).Msg("bolt store opened")
	return &boltStore{db: db, tags: tags, logger: log}, nil
}

func (s *boltStore) Close() error {
	return s.db.Close()
}

func (s *boltStore) GetBlob(ctx context.Context, path string) (models.Blob, error) {
	if err := validatePath(path); err != nil {
		return models.Blob{}, err
	}

	blob := models.Blob{Path: path}
	err := s.db.View(func(tx *bolt.Tx) error {
		meta, err := readMeta(tx, path)
		if err != nil {
			return err
		}
		// the slice is only valid during the transaction
		blob.Content = append([]byte(nil), tx.Bucket(blobsBucket).Get([]byte(path))...)
		blob.VersionTag = meta.Tag
		return nil
	})
	if err != nil {
		return models.Blob{}, err
	}
	return blob, nil
}

func (s *boltStore) PutBlob(ctx context.Context, path string, content []byte, versionTag string) (string, error) {
	if err := validatePath(path); err != nil {
		return "", err
	}

	tag := s.tags.Generate()
	err := s.db.Update(func(tx *bolt.Tx) error {
		current, err := readMeta(tx, path)
		exists := err == nil
		if err != nil && !errors.Is(err, ErrBlobNotFound) {
			return err
		}
		if err := checkTag(exists, current.Tag, versionTag); err != nil {
			return err
		}

		raw, err := json.Marshal(boltMeta{Tag: tag, Size: int64(len(content)), UpdatedAt: time.Now().UTC()})
		if err != nil {
			return fmt.Errorf("marshal blob meta: %w", err)
		}
		if err := tx.Bucket(blobsBucket).Put([]byte(path), content); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Put([]byte(path), raw)
	})
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "boltStore.PutBlob").Str("path", path).Msg("conditional write rejected")
		return "", err
	}
	return tag, nil
}

func (s *boltStore) DeleteBlob(ctx context.Context, path string, versionTag string) error {
	if err := validatePath(path); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		current, err := readMeta(tx, path)
		if err != nil {
			return err
		}
		if current.Tag != versionTag {
			return ErrVersionConflict
		}
		if err := tx.Bucket(blobsBucket).Delete([]byte(path)); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Delete([]byte(path))
	})
}

func (s *boltStore) ListBlobs(ctx context.Context, prefix string) ([]models.BlobInfo, error) {
	infos := make([]models.BlobInfo, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(metaBucket).Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = c.Next() {
			var meta boltMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return fmt.Errorf("decode blob meta %s: %w", k, err)
			}
			infos = append(infos, models.BlobInfo{
				Path:       string(k),
				VersionTag: meta.Tag,
				Size:       meta.Size,
				UpdatedAt:  meta.UpdatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

func readMeta(tx *bolt.Tx, path string) (boltMeta, error) {
	raw := tx.Bucket(metaBucket).Get([]byte(path))
	if raw == nil {
		return boltMeta{}, ErrBlobNotFound
	}
	var meta boltMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return boltMeta{}, fmt.Errorf("decode blob meta %s: %w", path, err)
	}
	return meta, nil
}
