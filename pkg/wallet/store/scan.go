package store

import (
	"context"

	"keyguardian/wallet/pkg/wallet"
)

// CipherRow is one stored ciphertext with just enough identity for
// maintenance reporting. It bypasses the ownership guard on purpose:
// integrity sweeps run as the system, not as a user, and never decode
// plaintext into caller-visible results.
type CipherRow struct {
	ID         string
	Owner      string
	Ciphertext string
}

// ScanCiphertexts returns up to limit stored ciphertexts with an id greater
// than afterID, ordered by id. Pass an empty afterID to start from the
// beginning; a short (or empty) result means the scan is complete. Keyset
// pagination keeps each batch cheap regardless of table size.
func (s *Store) ScanCiphertexts(ctx context.Context, afterID string, limit int) ([]CipherRow, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, ciphertext
		FROM secrets
		WHERE id > ?
		ORDER BY id ASC
		LIMIT ?`,
		afterID, limit,
	)
	if err != nil {
		return nil, wallet.NewStorageError("scan_ciphertexts", err)
	}
	defer rows.Close()

	var batch []CipherRow
	for rows.Next() {
		var row CipherRow
		if err := rows.Scan(&row.ID, &row.Owner, &row.Ciphertext); err != nil {
			return nil, wallet.NewStorageError("scan_ciphertexts", err)
		}
		batch = append(batch, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wallet.NewStorageError("scan_ciphertexts", err)
	}

	return batch, nil
}
