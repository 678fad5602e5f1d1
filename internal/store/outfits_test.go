package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/erazemk/omara/internal/db"
	"github.com/erazemk/omara/internal/model"
)

func sampleOutfits() []model.Outfit {
	return []model.Outfit{
		model.NewOutfit("Work", "Formal", "Morning", []model.WearItem{
			model.NewWearItem("Blazer", "wool", []byte("fake jpeg")),
			model.NewWearItem("Shirt", "cotton", nil),
		}),
		model.NewOutfit("Gym", "Sport", "Evening", []model.WearItem{
			model.NewWearItem("", "", []byte("photo only")),
		}),
	}
}

// gateways returns one of each gateway implementation on fresh storage.
func gateways(t *testing.T) map[string]Gateway {
	t.Helper()
	return map[string]Gateway{
		"sqlite": NewSQLite(db.NewTestDB(t)),
		"file":   NewFile(filepath.Join(t.TempDir(), "outfits.omr")),
	}
}

func TestGatewayRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, gw := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			in := sampleOutfits()
			if err := gw.Save(ctx, in); err != nil {
				t.Fatalf("Save: %v", err)
			}

			out, err := gw.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(in, out) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", out, in)
			}
		})
	}
}

func TestGatewayLoadWithoutSave(t *testing.T) {
	ctx := context.Background()

	for name, gw := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			out, err := gw.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(out) != 0 {
				t.Errorf("expected no outfits, got %d", len(out))
			}
		})
	}
}

func TestGatewaySaveReplaces(t *testing.T) {
	ctx := context.Background()

	for name, gw := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			if err := gw.Save(ctx, sampleOutfits()); err != nil {
				t.Fatalf("first Save: %v", err)
			}
			only := sampleOutfits()[1:]
			if err := gw.Save(ctx, only); err != nil {
				t.Fatalf("second Save: %v", err)
			}

			out, err := gw.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(only, out) {
				t.Errorf("expected only the second save, got %+v", out)
			}

			if err := gw.Save(ctx, nil); err != nil {
				t.Fatalf("empty Save: %v", err)
			}
			out, _ = gw.Load(ctx)
			if len(out) != 0 {
				t.Errorf("expected empty after saving nothing, got %d", len(out))
			}
		})
	}
}

func TestSQLiteFailedSaveKeepsPriorContent(t *testing.T) {
	database := db.NewTestDB(t)
	gw := NewSQLite(database)
	ctx := context.Background()

	if err := gw.Save(ctx, sampleOutfits()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A canceled context aborts the transaction before commit.
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	err := gw.Save(canceled, sampleOutfits()[:1])
	if !errors.Is(err, ErrPersist) {
		t.Fatalf("expected ErrPersist, got %v", err)
	}

	out, err := gw.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected prior 2 outfits to survive, got %d", len(out))
	}
}

func TestFileFailedSaveKeepsPriorContent(t *testing.T) {
	dir := t.TempDir()
	gw := NewFile(filepath.Join(dir, "outfits.omr"))
	ctx := context.Background()

	if err := gw.Save(ctx, sampleOutfits()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Point a second gateway at a path whose parent is a regular file.
	broken := NewFile(filepath.Join(dir, "outfits.omr", "nested"))
	err := broken.Save(ctx, nil)
	var perr *PersistError
	if !errors.As(err, &perr) || perr.Op != "saving" {
		t.Fatalf("expected saving PersistError, got %v", err)
	}

	out, err := gw.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected prior 2 outfits to survive, got %d", len(out))
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp.*"))
	if len(matches) != 0 {
		t.Errorf("expected no leftover temp files, got %v", matches)
	}
}

func TestFileLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outfits.omr")
	if err := writeFileAtomic(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFile(path).Load(context.Background())
	if !errors.Is(err, ErrPersist) {
		t.Fatalf("expected ErrPersist, got %v", err)
	}
}
