package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/erazemk/omara/internal/db"
	"github.com/erazemk/omara/internal/store"
)

func TestParseFlagsDefaults(t *testing.T) {
	o, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if o.dbPath != "omara.sqlite3" || o.addr != ":8080" || o.outfits != 12 || o.wears != 6 {
		t.Errorf("unexpected defaults: %+v", o)
	}
	if o.filePath != "" || o.dev {
		t.Errorf("file gateway and dev mode should be off by default: %+v", o)
	}
}

func TestParseFlagsAliases(t *testing.T) {
	o, err := parseFlags([]string{"-n", "3", "-wears", "2", "-f", "outfits.bin", "-dev"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if o.outfits != 3 || o.wears != 2 || o.filePath != "outfits.bin" || !o.dev {
		t.Errorf("unexpected options: %+v", o)
	}
}

func TestParseFlagsRejects(t *testing.T) {
	for _, args := range [][]string{{"-n", "0"}, {"-k", "-1"}, {"extra"}} {
		if _, err := parseFlags(args); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestLevelRouterSplitsByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(&levelRouter{
		level:  slog.LevelInfo,
		stdout: slog.NewTextHandler(&stdout, nil),
		stderr: slog.NewTextHandler(&stderr, nil),
	})

	logger.Debug("hidden")
	logger.Warn("outfit dropped", "slot", 3)
	logger.Error("failed to save outfits")

	if strings.Contains(stdout.String(), "hidden") {
		t.Error("debug record should be filtered")
	}
	if !strings.Contains(stdout.String(), "outfit dropped") || strings.Contains(stdout.String(), "failed to save") {
		t.Errorf("unexpected stdout: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "failed to save outfits") {
		t.Errorf("unexpected stderr: %q", stderr.String())
	}
}

func TestEnsurePasscodeOnlyOnce(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := ensurePasscode(ctx, database); err != nil {
		t.Fatalf("ensurePasscode: %v", err)
	}
	first, _ := store.GetPasscodeHash(ctx, database)
	if first == "" {
		t.Fatal("expected passcode to be set")
	}

	if err := ensurePasscode(ctx, database); err != nil {
		t.Fatalf("ensurePasscode: %v", err)
	}
	if second, _ := store.GetPasscodeHash(ctx, database); second != first {
		t.Error("passcode should not change on later runs")
	}
}
