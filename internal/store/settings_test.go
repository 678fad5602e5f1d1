package store

import (
	"context"
	"testing"

	"github.com/erazemk/omara/internal/db"
)

func TestGetJWTSecret_GeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	secret1, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	secret2, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestPasscodeHash(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	hash, err := GetPasscodeHash(ctx, database)
	if err != nil {
		t.Fatalf("GetPasscodeHash: %v", err)
	}
	if hash != "" {
		t.Fatalf("expected no passcode on a fresh database, got %q", hash)
	}

	if err := SetPasscodeHash(ctx, database, "first"); err != nil {
		t.Fatalf("SetPasscodeHash: %v", err)
	}
	if err := SetPasscodeHash(ctx, database, "second"); err != nil {
		t.Fatalf("SetPasscodeHash overwrite: %v", err)
	}

	hash, _ = GetPasscodeHash(ctx, database)
	if hash != "second" {
		t.Errorf("expected 'second', got %q", hash)
	}
}
