// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"strings"
	"testing"
)

func TestOpenAppliesPragmas(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open election store: %v", err)
	}
	defer store.Close()

	var fk int
	if err := store.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("Failed to read foreign_keys pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("Expected foreign_keys on, got %d", fk)
	}

	var mode string
	if err := store.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("Failed to read journal_mode pragma: %v", err)
	}
	if !strings.EqualFold(mode, "wal") {
		t.Errorf("Expected WAL journal mode, got %q", mode)
	}
}

func TestCreateSchemaIsIdempotent(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open election store: %v", err)
	}
	defer store.Close()

	if err := CreateSchema(store); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if err := CreateSchema(store); err != nil {
		t.Errorf("Second schema creation should be a no-op, got %v", err)
	}
}
