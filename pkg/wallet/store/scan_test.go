package store

import (
	"context"
	"fmt"
	"testing"
)

func TestScanCiphertexts_CoversAllOwners(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newTestIdentity(t, s, "alice@example.com")
	bob := newTestIdentity(t, s, "bob@example.com")

	want := map[string]string{}
	for i := 0; i < 3; i++ {
		secret, err := s.CreateSecret(ctx, alice, fmt.Sprintf("alice key %d", i), "sk-a", "")
		if err != nil {
			t.Fatalf("CreateSecret failed: %v", err)
		}
		want[secret.ID] = alice
	}
	secret, err := s.CreateSecret(ctx, bob, "bob key", "sk-b", "")
	if err != nil {
		t.Fatalf("CreateSecret failed: %v", err)
	}
	want[secret.ID] = bob

	rows, err := s.ScanCiphertexts(ctx, "", 100)
	if err != nil {
		t.Fatalf("ScanCiphertexts failed: %v", err)
	}
	if len(rows) != len(want) {
		t.Fatalf("Scanned %d rows, want %d", len(rows), len(want))
	}
	for _, row := range rows {
		owner, ok := want[row.ID]
		if !ok {
			t.Errorf("Unexpected row id %q", row.ID)
			continue
		}
		if row.Owner != owner {
			t.Errorf("Row %q owner = %q, want %q", row.ID, row.Owner, owner)
		}
		if row.Ciphertext == "" {
			t.Errorf("Row %q has empty ciphertext", row.ID)
		}
		if _, err := s.box.OpenString(row.Ciphertext); err != nil {
			t.Errorf("Row %q ciphertext does not open: %v", row.ID, err)
		}
	}
}

func TestScanCiphertexts_KeysetPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newTestIdentity(t, s, "alice@example.com")
	for i := 0; i < 7; i++ {
		if _, err := s.CreateSecret(ctx, alice, fmt.Sprintf("key %d", i), "sk", ""); err != nil {
			t.Fatalf("CreateSecret failed: %v", err)
		}
	}

	seen := map[string]bool{}
	afterID := ""
	batches := 0
	for {
		batch, err := s.ScanCiphertexts(ctx, afterID, 3)
		if err != nil {
			t.Fatalf("ScanCiphertexts failed: %v", err)
		}
		if len(batch) == 0 {
			break
		}
		batches++
		for _, row := range batch {
			if row.ID <= afterID {
				t.Errorf("Row %q out of keyset order after %q", row.ID, afterID)
			}
			if seen[row.ID] {
				t.Errorf("Row %q returned twice", row.ID)
			}
			seen[row.ID] = true
		}
		afterID = batch[len(batch)-1].ID
		if len(batch) < 3 {
			break
		}
	}

	if len(seen) != 7 {
		t.Errorf("Pagination visited %d rows, want 7", len(seen))
	}
	if batches != 3 {
		t.Errorf("Pagination used %d batches, want 3", batches)
	}
}

func TestScanCiphertexts_EmptyStore(t *testing.T) {
	s := newTestStore(t)

	rows, err := s.ScanCiphertexts(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("ScanCiphertexts failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no rows, got %d", len(rows))
	}
}
