package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"keyguardian/wallet/pkg/wallet"
)

// ListGrouped returns owner's secrets bucketed by category. Buckets are
// ordered by name, case-insensitively ascending, with the implicit
// Uncategorized bucket last; secrets within a bucket are ordered by label
// the same way. Buckets with no members are omitted. Two categories may
// share a display name, so buckets are keyed by category id, not name.
//
// A filter narrows the listing to a single category bucket or to the
// Uncategorized bucket. Filtering can never surface another owner's
// secrets; the owner scope applies before the filter.
//
// Only metadata is returned; ciphertext stays in the database.
func (s *Store) ListGrouped(ctx context.Context, owner string, filter *wallet.GroupFilter) (buckets []*wallet.Bucket, err error) {
	defer func() { s.record("list_grouped", err) }()

	query := strings.Builder{}
	query.WriteString(
		`SELECT s.id, s.label, s.category_id, s.created_at, c.name
		 FROM secrets s
		 LEFT JOIN categories c ON s.category_id = c.id
		 WHERE s.owner_id = ?`)
	args := []any{owner}

	if filter != nil {
		switch {
		case filter.Uncategorized:
			query.WriteString(" AND s.category_id IS NULL")
		case filter.CategoryID != "":
			query.WriteString(" AND s.category_id = ?")
			args = append(args, filter.CategoryID)
		}
	}

	// Category buckets by name then id (stable under duplicate names),
	// Uncategorized last, labels case-insensitive within each bucket.
	query.WriteString(`
		 ORDER BY CASE WHEN s.category_id IS NULL THEN 1 ELSE 0 END,
		          c.name COLLATE NOCASE ASC,
		          s.category_id ASC,
		          s.label COLLATE NOCASE ASC`)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, wallet.NewStorageError("list_grouped", err)
	}
	defer rows.Close()

	buckets = []*wallet.Bucket{}
	var current *wallet.Bucket

	for rows.Next() {
		var (
			secret       wallet.Secret
			categoryID   sql.NullString
			categoryName sql.NullString
			createdAt    int64
		)
		if err = rows.Scan(&secret.ID, &secret.Label, &categoryID, &createdAt, &categoryName); err != nil {
			return nil, wallet.NewStorageError("list_grouped", err)
		}

		secret.Owner = owner
		secret.CreatedAt = time.Unix(createdAt, 0).UTC()

		bucketID := ""
		bucketName := wallet.UncategorizedBucket
		if categoryID.Valid {
			secret.CategoryID = categoryID.String
			bucketID = categoryID.String
			bucketName = categoryName.String
		}

		if current == nil || current.CategoryID != bucketID {
			current = &wallet.Bucket{
				CategoryID: bucketID,
				Name:       bucketName,
			}
			buckets = append(buckets, current)
		}
		current.Secrets = append(current.Secrets, &secret)
	}
	if err = rows.Err(); err != nil {
		return nil, wallet.NewStorageError("list_grouped", err)
	}

	return buckets, nil
}
