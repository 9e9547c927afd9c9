package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const blobsTable = "blobs"

func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.placeholder)
}

func (db *DB) buildGetBlobQuery(path string) (string, []any, error) {
	query, args, err := db.builder().
		Select("content", "version_tag").
		From(blobsTable).
		Where(sq.Eq{"path": path}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func (db *DB) buildExistsQuery(path string) (string, []any, error) {
	query, args, err := db.builder().
		Select("version_tag").
		From(blobsTable).
		Where(sq.Eq{"path": path}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildCreateBlobQuery inserts a row unless the path is taken. Zero
// affected rows means the create-only write lost.
func (db *DB) buildCreateBlobQuery(path string, content []byte, tag string, now time.Time) (string, []any, error) {
	query, args, err := db.builder().
		Insert(blobsTable).
		Columns("path", "content", "version_tag", "size", "updated_at").
		Values(path, content, tag, int64(len(content)), now).
		Suffix("ON CONFLICT (path) DO NOTHING").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildSwapBlobQuery rewrites a row only while it still carries oldTag.
func (db *DB) buildSwapBlobQuery(path string, content []byte, oldTag, newTag string, now time.Time) (string, []any, error) {
	query, args, err := db.builder().
		Update(blobsTable).
		Set("content", content).
		Set("version_tag", newTag).
		Set("size", int64(len(content))).
		Set("updated_at", now).
		Where(sq.Eq{"path": path, "version_tag": oldTag}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func (db *DB) buildDeleteBlobQuery(path, tag string) (string, []any, error) {
	query, args, err := db.builder().
		Delete(blobsTable).
		Where(sq.Eq{"path": path, "version_tag": tag}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func (db *DB) buildListBlobsQuery(prefix string) (string, []any, error) {
	q := db.builder().
		Select("path", "version_tag", "size", "updated_at").
		From(blobsTable).
		OrderBy("path")
	if prefix != "" {
		// wildcards in prefix only widen the match; ListBlobs filters exactly
		q = q.Where(sq.Like{"path": prefix + "%"})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
