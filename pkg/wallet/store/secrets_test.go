package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"keyguardian/wallet/pkg/wallet"
)

func TestSecret_CreateAndReveal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestIdentity(t, s, "alice@example.com")

	secret, err := s.CreateSecret(ctx, alice, "GitHub", "ghp_123", "")
	if err != nil {
		t.Fatalf("CreateSecret() failed: %v", err)
	}
	if secret.Owner != alice {
		t.Errorf("Expected owner %q, got %q", alice, secret.Owner)
	}
	if secret.Ciphertext == "" || strings.Contains(secret.Ciphertext, "ghp_123") {
		t.Error("Ciphertext missing or contains plaintext")
	}

	plaintext, err := s.RevealSecret(ctx, alice, secret.ID)
	if err != nil {
		t.Fatalf("RevealSecret() failed: %v", err)
	}
	if plaintext != "ghp_123" {
		t.Errorf("Expected %q, got %q", "ghp_123", plaintext)
	}
}

func TestSecret_GetReturnsMetadataOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestIdentity(t, s, "alice@example.com")

	created, err := s.CreateSecret(ctx, alice, "GitHub", "ghp_123", "")
	if err != nil {
		t.Fatalf("CreateSecret() failed: %v", err)
	}

	loaded, err := s.GetSecret(ctx, alice, created.ID)
	if err != nil {
		t.Fatalf("GetSecret() failed: %v", err)
	}
	if loaded.Label != "GitHub" {
		t.Errorf("Expected label %q, got %q", "GitHub", loaded.Label)
	}
	// The sealed payload round-trips through the row but must never be the
	// plaintext.
	if strings.Contains(loaded.Ciphertext, "ghp_123") {
		t.Error("Stored ciphertext contains plaintext")
	}
	if !loaded.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt mismatch: %v vs %v", loaded.CreatedAt, created.CreatedAt)
	}
}

func TestSecret_LabelValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestIdentity(t, s, "alice@example.com")

	tests := []struct {
		name  string
		label string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too long", strings.Repeat("x", wallet.MaxLabelLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.CreateSecret(ctx, alice, tt.label, "v", ""); !errors.Is(err, wallet.ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestSecret_CreateWithUnknownCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestIdentity(t, s, "alice@example.com")

	_, err := s.CreateSecret(ctx, alice, "GitHub", "ghp_123", "no-such-category")
	if !errors.Is(err, wallet.ErrCategoryNotFound) {
		t.Fatalf("Expected ErrCategoryNotFound, got %v", err)
	}

	// The failed create must leave no partial state behind.
	buckets, err := s.ListGrouped(ctx, alice, nil)
	if err != nil {
		t.Fatalf("ListGrouped() failed: %v", err)
	}
	if len(buckets) != 0 {
		t.Errorf("Expected no secrets after failed create, got %d buckets", len(buckets))
	}
}

func TestSecret_CreateWithForeignCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestIdentity(t, s, "alice@example.com")
	bob := newTestIdentity(t, s, "bob@example.com")

	bobsCategory, err := s.CreateCategory(ctx, bob, "Work")
	if err != nil {
		t.Fatalf("CreateCategory() failed: %v", err)
	}

	// A category owned by someone else is indistinguishable from a
	// nonexistent one.
	_, err = s.CreateSecret(ctx, alice, "GitHub", "ghp_123", bobsCategory.ID)
	if !errors.Is(err, wallet.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestSecret_OwnershipIsolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestIdentity(t, s, "alice@example.com")
	bob := newTestIdentity(t, s, "bob@example.com")

	secret, err := s.CreateSecret(ctx, alice, "GitHub", "ghp_123", "")
	if err != nil {
		t.Fatalf("CreateSecret() failed: %v", err)
	}

	// Every operation by bob on alice's secret must fail exactly like an
	// operation on a nonexistent id.
	if _, err := s.GetSecret(ctx, bob, secret.ID); !errors.Is(err, wallet.ErrNotFound) {
		t.Errorf("GetSecret as bob: expected ErrNotFound, got %v", err)
	}
	if _, err := s.RevealSecret(ctx, bob, secret.ID); !errors.Is(err, wallet.ErrNotFound) {
		t.Errorf("RevealSecret as bob: expected ErrNotFound, got %v", err)
	}
	if _, err := s.RenameSecret(ctx, bob, secret.ID, "Stolen"); !errors.Is(err, wallet.ErrNotFound) {
		t.Errorf("RenameSecret as bob: expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteSecret(ctx, bob, secret.ID); !errors.Is(err, wallet.ErrNotFound) {
		t.Errorf("DeleteSecret as bob: expected ErrNotFound, got %v", err)
	}

	// Same signal for a genuinely nonexistent id.
	if _, err := s.GetSecret(ctx, bob, "no-such-id"); !errors.Is(err, wallet.ErrNotFound) {
		t.Errorf("GetSecret on nonexistent id: expected ErrNotFound, got %v", err)
	}

	// Alice is unaffected.
	if plaintext, err := s.RevealSecret(ctx, alice, secret.ID); err != nil || plaintext != "ghp_123" {
		t.Errorf("RevealSecret as owner: got (%q, %v)", plaintext, err)
	}
}

func TestSecret_RevealCorruptedCiphertext(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestIdentity(t, s, "alice@example.com")

	secret, err := s.CreateSecret(ctx, alice, "GitHub", "ghp_123", "")
	if err != nil {
		t.Fatalf("CreateSecret() failed: %v", err)
	}

	// Corrupt the persisted payload behind the store's back.
	if _, err := s.db.Exec(
		`UPDATE secrets SET ciphertext = ? WHERE id = ?`, "bm90IGEgdmFsaWQgcGF5bG9hZA==", secret.ID,
	); err != nil {
		t.Fatalf("Failed to corrupt row: %v", err)
	}

	// Corruption is distinct from not-found: the record exists.
	_, err = s.RevealSecret(ctx, alice, secret.ID)
	if !errors.Is(err, wallet.ErrInvalidCiphertext) {
		t.Errorf("Expected ErrInvalidCiphertext, got %v", err)
	}
	if errors.Is(err, wallet.ErrNotFound) {
		t.Error("Corruption must not masquerade as not-found")
	}
	if _, err := s.GetSecret(ctx, alice, secret.ID); err != nil {
		t.Errorf("Metadata access must still work, got %v", err)
	}
}

func TestSecret_Rename(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestIdentity(t, s, "alice@example.com")

	secret, err := s.CreateSecret(ctx, alice, "GitHub", "ghp_123", "")
	if err != nil {
		t.Fatalf("CreateSecret() failed: %v", err)
	}
	before := secret.Ciphertext

	renamed, err := s.RenameSecret(ctx, alice, secret.ID, "GitHub (personal)")
	if err != nil {
		t.Fatalf("RenameSecret() failed: %v", err)
	}
	if renamed.Label != "GitHub (personal)" {
		t.Errorf("Expected new label, got %q", renamed.Label)
	}

	// No re-encryption on rename.
	loaded, err := s.GetSecret(ctx, alice, secret.ID)
	if err != nil {
		t.Fatalf("GetSecret() failed: %v", err)
	}
	if loaded.Ciphertext != before {
		t.Error("Rename must not touch the ciphertext")
	}

	if _, err := s.RenameSecret(ctx, alice, secret.ID, ""); !errors.Is(err, wallet.ErrValidation) {
		t.Errorf("Expected ErrValidation for empty label, got %v", err)
	}
}

func TestSecret_Recategorize(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestIdentity(t, s, "alice@example.com")
	bob := newTestIdentity(t, s, "bob@example.com")

	work, err := s.CreateCategory(ctx, alice, "Work")
	if err != nil {
		t.Fatalf("CreateCategory() failed: %v", err)
	}
	bobs, err := s.CreateCategory(ctx, bob, "Work")
	if err != nil {
		t.Fatalf("CreateCategory() failed: %v", err)
	}

	secret, err := s.CreateSecret(ctx, alice, "GitHub", "ghp_123", "")
	if err != nil {
		t.Fatalf("CreateSecret() failed: %v", err)
	}

	// Into a category.
	moved, err := s.RecategorizeSecret(ctx, alice, secret.ID, work.ID)
	if err != nil {
		t.Fatalf("RecategorizeSecret() failed: %v", err)
	}
	if moved.CategoryID != work.ID {
		t.Errorf("Expected category %q, got %q", work.ID, moved.CategoryID)
	}

	// Another owner's category is not a valid target.
	if _, err := s.RecategorizeSecret(ctx, alice, secret.ID, bobs.ID); !errors.Is(err, wallet.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}

	// Back to Uncategorized with the empty sentinel.
	cleared, err := s.RecategorizeSecret(ctx, alice, secret.ID, "")
	if err != nil {
		t.Fatalf("RecategorizeSecret() to uncategorized failed: %v", err)
	}
	if cleared.CategoryID != "" {
		t.Errorf("Expected cleared category, got %q", cleared.CategoryID)
	}
}

func TestSecret_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestIdentity(t, s, "alice@example.com")

	secret, err := s.CreateSecret(ctx, alice, "GitHub", "ghp_123", "")
	if err != nil {
		t.Fatalf("CreateSecret() failed: %v", err)
	}

	if err := s.DeleteSecret(ctx, alice, secret.ID); err != nil {
		t.Fatalf("DeleteSecret() failed: %v", err)
	}

	if _, err := s.GetSecret(ctx, alice, secret.ID); !errors.Is(err, wallet.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteSecret(ctx, alice, secret.ID); !errors.Is(err, wallet.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on double delete, got %v", err)
	}
}
