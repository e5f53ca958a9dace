package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"keyguardian/wallet/pkg/wallet"
)

// CreateIdentity registers a new principal. Login credentials are managed
// by the authentication layer outside this core; the store only tracks the
// ownership handle. The admin flag defaults to false and is informational.
func (s *Store) CreateIdentity(ctx context.Context, email string) (identity *wallet.Identity, err error) {
	defer func() { s.record("create_identity", err) }()

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, wallet.NewValidationError("email", "must not be empty")
	}
	if len(email) > 120 {
		return nil, wallet.NewValidationError("email", "exceeds maximum length")
	}

	identity = &wallet.Identity{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	if _, err = s.db.ExecContext(ctx,
		`INSERT INTO identities (id, email, is_admin, created_at) VALUES (?, ?, 0, ?)`,
		identity.ID, identity.Email, identity.CreatedAt.Unix(),
	); err != nil {
		return nil, wallet.NewStorageError("create_identity", err)
	}

	s.logger.Info("identity created", "identity_id", identity.ID)
	return identity, nil
}

// GetIdentity loads a principal by id.
func (s *Store) GetIdentity(ctx context.Context, id string) (identity *wallet.Identity, err error) {
	defer func() { s.record("get_identity", err) }()

	var (
		loaded    wallet.Identity
		isAdmin   int
		createdAt int64
	)
	err = s.db.QueryRowContext(ctx,
		`SELECT id, email, is_admin, created_at FROM identities WHERE id = ?`, id,
	).Scan(&loaded.ID, &loaded.Email, &isAdmin, &createdAt)
	if err == sql.ErrNoRows {
		return nil, wallet.ErrNotFound
	}
	if err != nil {
		return nil, wallet.NewStorageError("get_identity", err)
	}

	loaded.Admin = isAdmin != 0
	loaded.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &loaded, nil
}
