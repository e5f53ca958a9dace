package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"keyguardian/wallet/pkg/wallet"
)

// validateCategoryName checks a category name against its field constraints.
func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return wallet.NewValidationError("name", "must not be empty")
	}
	if len(name) > wallet.MaxCategoryNameLength {
		return wallet.NewValidationError("name", "exceeds maximum length")
	}
	return nil
}

// checkCategoryOwnership resolves a category reference within the caller's
// transaction. Absent and foreign-owned both yield ErrCategoryNotFound.
func (s *Store) checkCategoryOwnership(ctx context.Context, q queryer, owner, categoryID string) error {
	var categoryOwner string
	err := q.QueryRowContext(ctx,
		`SELECT owner_id FROM categories WHERE id = ?`, categoryID,
	).Scan(&categoryOwner)
	if err == sql.ErrNoRows {
		return wallet.ErrCategoryNotFound
	}
	if err != nil {
		return wallet.NewStorageError("check_category", err)
	}
	if !s.guard.Authorize(owner, categoryOwner) {
		return wallet.ErrCategoryNotFound
	}
	return nil
}

// fetchCategory loads a category row and applies the ownership check.
func (s *Store) fetchCategory(ctx context.Context, q queryer, owner, id string) (*wallet.Category, error) {
	var category wallet.Category
	err := q.QueryRowContext(ctx,
		`SELECT id, owner_id, name FROM categories WHERE id = ?`, id,
	).Scan(&category.ID, &category.Owner, &category.Name)
	if err == sql.ErrNoRows {
		return nil, wallet.ErrNotFound
	}
	if err != nil {
		return nil, wallet.NewStorageError("get_category", err)
	}
	if !s.guard.Authorize(owner, category.Owner) {
		return nil, wallet.ErrNotFound
	}
	return &category, nil
}

// CreateCategory persists a new category owned by owner. Names are not
// required to be unique per owner; grouped listings key buckets by id.
func (s *Store) CreateCategory(ctx context.Context, owner, name string) (category *wallet.Category, err error) {
	defer func() { s.record("create_category", err) }()

	if err = validateCategoryName(name); err != nil {
		return nil, err
	}

	category = &wallet.Category{
		ID:    uuid.NewString(),
		Owner: owner,
		Name:  name,
	}

	if _, err = s.db.ExecContext(ctx,
		`INSERT INTO categories (id, owner_id, name) VALUES (?, ?, ?)`,
		category.ID, category.Owner, category.Name,
	); err != nil {
		return nil, wallet.NewStorageError("create_category", err)
	}

	s.logger.Info("category created", "category_id", category.ID, "owner", owner)
	return category, nil
}

// RenameCategory updates a category's display name.
func (s *Store) RenameCategory(ctx context.Context, owner, id, newName string) (category *wallet.Category, err error) {
	defer func() { s.record("rename_category", err) }()

	if err = validateCategoryName(newName); err != nil {
		return nil, err
	}

	err = s.withTx(ctx, "rename_category", func(tx *sql.Tx) error {
		fetched, ferr := s.fetchCategory(ctx, tx, owner, id)
		if ferr != nil {
			return ferr
		}

		if _, execErr := tx.ExecContext(ctx,
			`UPDATE categories SET name = ? WHERE id = ?`, newName, id,
		); execErr != nil {
			return wallet.NewStorageError("rename_category", execErr)
		}

		fetched.Name = newName
		category = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category and clears the reference of every
// secret pointing at it, in one transaction. Secrets are never deleted and
// never left referencing a vanished category: a concurrent create or
// recategorize naming this category resolves its reference inside its own
// transaction, so it either lands before this delete (and is nullified
// here) or observes the category as gone and fails.
func (s *Store) DeleteCategory(ctx context.Context, owner, id string) (err error) {
	defer func() { s.record("delete_category", err) }()

	var nullified int64
	err = s.withTx(ctx, "delete_category", func(tx *sql.Tx) error {
		if _, ferr := s.fetchCategory(ctx, tx, owner, id); ferr != nil {
			return ferr
		}

		res, execErr := tx.ExecContext(ctx,
			`UPDATE secrets SET category_id = NULL WHERE category_id = ?`, id,
		)
		if execErr != nil {
			return wallet.NewStorageError("delete_category", execErr)
		}
		nullified, _ = res.RowsAffected()

		if _, execErr := tx.ExecContext(ctx,
			`DELETE FROM categories WHERE id = ?`, id,
		); execErr != nil {
			return wallet.NewStorageError("delete_category", execErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("category deleted",
		"category_id", id,
		"owner", owner,
		"secrets_uncategorized", nullified,
	)
	return nil
}

// ListCategories returns all of owner's categories ordered by name,
// case-insensitively ascending. Categories with zero secrets are included;
// only grouped listings omit empty buckets.
func (s *Store) ListCategories(ctx context.Context, owner string) (categories []*wallet.Category, err error) {
	defer func() { s.record("list_categories", err) }()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, name FROM categories
		 WHERE owner_id = ?
		 ORDER BY name COLLATE NOCASE ASC, id ASC`, owner,
	)
	if err != nil {
		return nil, wallet.NewStorageError("list_categories", err)
	}
	defer rows.Close()

	categories = []*wallet.Category{}
	for rows.Next() {
		var category wallet.Category
		if err = rows.Scan(&category.ID, &category.Owner, &category.Name); err != nil {
			return nil, wallet.NewStorageError("list_categories", err)
		}
		categories = append(categories, &category)
	}
	if err = rows.Err(); err != nil {
		return nil, wallet.NewStorageError("list_categories", err)
	}

	return categories, nil
}
