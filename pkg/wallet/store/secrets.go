package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"keyguardian/wallet/pkg/wallet"
)

// validateLabel checks a secret label against its field constraints.
func validateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return wallet.NewValidationError("label", "must not be empty")
	}
	if len(label) > wallet.MaxLabelLength {
		return wallet.NewValidationError("label", "exceeds maximum length")
	}
	return nil
}

// CreateSecret seals plaintext and persists a new secret owned by owner.
// A non-empty categoryID must reference a category owned by the same
// identity; the reference is resolved inside the insert transaction so a
// concurrent category delete cannot leave the new secret dangling.
func (s *Store) CreateSecret(ctx context.Context, owner, label, plaintext, categoryID string) (secret *wallet.Secret, err error) {
	defer func() { s.record("create_secret", err) }()

	if err = validateLabel(label); err != nil {
		return nil, err
	}

	ciphertext, err := s.box.SealString(plaintext)
	if err != nil {
		return nil, err
	}

	secret = &wallet.Secret{
		ID:         uuid.NewString(),
		Owner:      owner,
		Label:      label,
		Ciphertext: ciphertext,
		CategoryID: categoryID,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}

	err = s.withTx(ctx, "create_secret", func(tx *sql.Tx) error {
		if categoryID != "" {
			if err := s.checkCategoryOwnership(ctx, tx, owner, categoryID); err != nil {
				return err
			}
		}

		_, execErr := tx.ExecContext(ctx,
			`INSERT INTO secrets (id, owner_id, label, ciphertext, category_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			secret.ID, secret.Owner, secret.Label, secret.Ciphertext,
			nullable(secret.CategoryID), secret.CreatedAt.Unix(),
		)
		if execErr != nil {
			return wallet.NewStorageError("create_secret", execErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("secret created",
		"secret_id", secret.ID,
		"owner", owner,
		"categorized", categoryID != "",
	)
	return secret, nil
}

// GetSecret returns a secret's metadata without decrypting its payload. An
// absent record and a record owned by someone else are the same ErrNotFound.
func (s *Store) GetSecret(ctx context.Context, owner, id string) (secret *wallet.Secret, err error) {
	defer func() { s.record("get_secret", err) }()
	return s.fetchSecret(ctx, s.db, owner, id)
}

// queryer abstracts *sql.DB and *sql.Tx for reads that run either inside
// or outside a transaction.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// fetchSecret loads a secret row and applies the ownership check through
// the guard. Both failure modes collapse to ErrNotFound.
func (s *Store) fetchSecret(ctx context.Context, q queryer, owner, id string) (*wallet.Secret, error) {
	var (
		secret    wallet.Secret
		category  sql.NullString
		createdAt int64
	)

	err := q.QueryRowContext(ctx,
		`SELECT id, owner_id, label, ciphertext, category_id, created_at
		 FROM secrets WHERE id = ?`, id,
	).Scan(&secret.ID, &secret.Owner, &secret.Label, &secret.Ciphertext, &category, &createdAt)
	if err == sql.ErrNoRows {
		return nil, wallet.ErrNotFound
	}
	if err != nil {
		return nil, wallet.NewStorageError("get_secret", err)
	}

	if !s.guard.Authorize(owner, secret.Owner) {
		return nil, wallet.ErrNotFound
	}

	if category.Valid {
		secret.CategoryID = category.String
	}
	secret.CreatedAt = time.Unix(createdAt, 0).UTC()

	return &secret, nil
}

// RevealSecret authorizes the caller and opens the stored payload. Returns
// ErrNotFound under the leak-resistant rule and ErrInvalidCiphertext when
// the payload fails authentication: the record exists but its ciphertext is
// corrupted or was sealed under a different key.
func (s *Store) RevealSecret(ctx context.Context, owner, id string) (plaintext string, err error) {
	defer func() { s.record("reveal_secret", err) }()

	secret, err := s.fetchSecret(ctx, s.db, owner, id)
	if err != nil {
		return "", err
	}

	plaintext, err = s.box.OpenString(secret.Ciphertext)
	if err != nil {
		s.logger.Error("stored ciphertext failed authentication",
			"secret_id", id,
			"owner", owner,
		)
		return "", err
	}

	s.logger.Debug("secret revealed", "secret_id", id, "owner", owner)
	return plaintext, nil
}

// RenameSecret updates a secret's label. The payload is not re-encrypted.
func (s *Store) RenameSecret(ctx context.Context, owner, id, newLabel string) (secret *wallet.Secret, err error) {
	defer func() { s.record("rename_secret", err) }()

	if err = validateLabel(newLabel); err != nil {
		return nil, err
	}

	err = s.withTx(ctx, "rename_secret", func(tx *sql.Tx) error {
		fetched, ferr := s.fetchSecret(ctx, tx, owner, id)
		if ferr != nil {
			return ferr
		}

		if _, execErr := tx.ExecContext(ctx,
			`UPDATE secrets SET label = ? WHERE id = ?`, newLabel, id,
		); execErr != nil {
			return wallet.NewStorageError("rename_secret", execErr)
		}

		fetched.Label = newLabel
		secret = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}

	return secret, nil
}

// RecategorizeSecret moves a secret into another category, or clears the
// reference (the Uncategorized state) when categoryID is empty. The target
// category must belong to the same owner; the check runs inside the update
// transaction.
func (s *Store) RecategorizeSecret(ctx context.Context, owner, id, categoryID string) (secret *wallet.Secret, err error) {
	defer func() { s.record("recategorize_secret", err) }()

	err = s.withTx(ctx, "recategorize_secret", func(tx *sql.Tx) error {
		fetched, ferr := s.fetchSecret(ctx, tx, owner, id)
		if ferr != nil {
			return ferr
		}

		if categoryID != "" {
			if cerr := s.checkCategoryOwnership(ctx, tx, owner, categoryID); cerr != nil {
				return cerr
			}
		}

		if _, execErr := tx.ExecContext(ctx,
			`UPDATE secrets SET category_id = ? WHERE id = ?`, nullable(categoryID), id,
		); execErr != nil {
			return wallet.NewStorageError("recategorize_secret", execErr)
		}

		fetched.CategoryID = categoryID
		secret = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("secret recategorized",
		"secret_id", id,
		"owner", owner,
		"categorized", categoryID != "",
	)
	return secret, nil
}

// DeleteSecret removes a secret permanently.
func (s *Store) DeleteSecret(ctx context.Context, owner, id string) (err error) {
	defer func() { s.record("delete_secret", err) }()

	err = s.withTx(ctx, "delete_secret", func(tx *sql.Tx) error {
		if _, ferr := s.fetchSecret(ctx, tx, owner, id); ferr != nil {
			return ferr
		}
		if _, execErr := tx.ExecContext(ctx, `DELETE FROM secrets WHERE id = ?`, id); execErr != nil {
			return wallet.NewStorageError("delete_secret", execErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("secret deleted", "secret_id", id, "owner", owner)
	return nil
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
