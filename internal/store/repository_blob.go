package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/models"
	"github.com/sethvargo/go-retry"
)

// sqlBlobStore is the relational [BlobStore] behind the blob server. All
// conditional writes are single statements, so the database row lock is the
// only CAS arbiter.
type sqlBlobStore struct {
	*DB
	tags    TagGenerator
	backoff func() retry.Backoff
	logger  *logger.Logger
}

// NewBlobRepository constructs a [BlobStore] over db. Transient database
// errors are retried up to three times with exponential backoff.
func NewBlobRepository(db *DB, tags TagGenerator, log *logger.Logger) BlobStore {
	return &sqlBlobStore{
		DB:   db,
		tags: tags,
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(3, retry.NewExponential(50*time.Millisecond))
		},
		logger: log,
	}
}

// withRetry runs fn again while the classifier reports a transient failure.
func (s *sqlBlobStore) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && s.errorClassificator != nil && s.errorClassificator.Classify(err) == Retryable {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (s *sqlBlobStore) GetBlob(ctx context.Context, path string) (models.Blob, error) {
	log := logger.FromContext(ctx)
	if err := validatePath(path); err != nil {
		return models.Blob{}, err
	}

	query, args, err := s.buildGetBlobQuery(path)
	if err != nil {
		return models.Blob{}, err
	}

	blob := models.Blob{Path: path}
	err = s.withRetry(ctx, func(ctx context.Context) error {
		return s.DB.QueryRowContext(ctx, query, args...).Scan(&blob.Content, &blob.VersionTag)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Blob{}, ErrBlobNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqlBlobStore.GetBlob").
			Str("path", path).
			Str("pg_code", postgresErrorCode(err)).
			Msg("failed to read blob")
		return models.Blob{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return blob, nil
}

func (s *sqlBlobStore) PutBlob(ctx context.Context, path string, content []byte, versionTag string) (string, error) {
	log := logger.FromContext(ctx)
	if err := validatePath(path); err != nil {
		return "", err
	}
	if content == nil {
		content = []byte{}
	}

	newTag := s.tags.Generate()
	now := time.Now().UTC()

	var (
		query string
		args  []any
		err   error
	)
	if versionTag == "" {
		query, args, err = s.buildCreateBlobQuery(path, content, newTag, now)
	} else {
		query, args, err = s.buildSwapBlobQuery(path, content, versionTag, newTag, now)
	}
	if err != nil {
		return "", err
	}

	var (
		affected int64
		attempts int
	)
	err = s.withRetry(ctx, func(ctx context.Context) error {
		attempts++
		res, err := s.DB.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "sqlBlobStore.PutBlob").
			Str("path", path).
			Str("pg_code", postgresErrorCode(err)).
			Msg("failed to write blob")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 && attempts > 1 {
		// an earlier attempt may have committed before its error came back
		landed, err := s.holdsTag(ctx, path, newTag)
		if err != nil {
			return "", err
		}
		if landed {
			return newTag, nil
		}
	}
	if affected == 0 {
		log.Debug().
			Str("func", "sqlBlobStore.PutBlob").
			Str("path", path).
			Str("presented_tag", versionTag).
			Msg("optimistic lock failed: version mismatch on write")
		return "", ErrVersionConflict
	}
	return newTag, nil
}

// holdsTag reports whether the row at path currently carries tag.
func (s *sqlBlobStore) holdsTag(ctx context.Context, path, tag string) (bool, error) {
	query, args, err := s.buildExistsQuery(path)
	if err != nil {
		return false, err
	}
	var current string
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return current == tag, nil
}

// DeleteBlob removes the row only while it carries versionTag. When nothing
// was deleted a follow-up read tells "missing" from "stale tag".
func (s *sqlBlobStore) DeleteBlob(ctx context.Context, path string, versionTag string) error {
	log := logger.FromContext(ctx)
	if err := validatePath(path); err != nil {
		return err
	}

	query, args, err := s.buildDeleteBlobQuery(path, versionTag)
	if err != nil {
		return err
	}

	var affected int64
	err = s.withRetry(ctx, func(ctx context.Context) error {
		res, err := s.DB.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "sqlBlobStore.DeleteBlob").
			Str("path", path).
			Msg("failed to delete blob")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected > 0 {
		return nil
	}

	existsQuery, existsArgs, err := s.buildExistsQuery(path)
	if err != nil {
		return err
	}
	var currentTag string
	err = s.DB.QueryRowContext(ctx, existsQuery, existsArgs...).Scan(&currentTag)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrBlobNotFound
	case err != nil:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Debug().
		Str("func", "sqlBlobStore.DeleteBlob").
		Str("path", path).
		Str("db_tag", currentTag).
		Str("presented_tag", versionTag).
		Msg("optimistic lock failed: version mismatch on delete")
	return ErrVersionConflict
}

func (s *sqlBlobStore) ListBlobs(ctx context.Context, prefix string) ([]models.BlobInfo, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.buildListBlobsQuery(prefix)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqlBlobStore.ListBlobs").
			Str("prefix", prefix).
			Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	infos := make([]models.BlobInfo, 0, 16)
	for rows.Next() {
		var info models.BlobInfo
		if err := rows.Scan(&info.Path, &info.VersionTag, &info.Size, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if strings.HasPrefix(info.Path, prefix) {
			infos = append(infos, info)
		}
	}
	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "sqlBlobStore.ListBlobs").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return infos, nil
}
