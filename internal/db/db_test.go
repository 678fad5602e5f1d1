package db

import (
	"path/filepath"
	"slices"
	"testing"
)

func TestMigrateIsIdempotent(t *testing.T) {
	database := NewTestDB(t)

	if err := Migrate(database); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "omara.sqlite3")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	if err := Migrate(database); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	var mode string
	if err := database.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("reading journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected journal mode 'wal', got %q", mode)
	}
}

func TestOutfitColumns(t *testing.T) {
	database := NewTestDB(t)

	rows, err := database.Query("SELECT name FROM pragma_table_info('outfits') ORDER BY cid")
	if err != nil {
		t.Fatalf("reading table info: %v", err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scanning column: %v", err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterating columns: %v", err)
	}

	want := []string{"position", "section_name", "category", "time_of_day"}
	if !slices.Equal(cols, want) {
		t.Errorf("outfits columns = %v, want %v", cols, want)
	}
}
