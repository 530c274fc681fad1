//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{"empty is null", "", nil},
		{"NULL literal", "NULL", nil},
		{"integer", "42", int64(42)},
		{"negative integer", "-3", int64(-3)},
		{"float", "99.99", 99.99},
		{"date", "2023-03-01", time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"text", "Trek", "Trek"},
		{"phone stays text", "(555) 555-0100", "(555) 555-0100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCell(tt.in); got != tt.want {
				t.Errorf("ParseCell(%q) = %v (%T), want %v (%T)",
					tt.in, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "brands.csv", "brand_id,brand_name\n1,Trek\n2,\n")

	tbl, err := ReadFile(filepath.Join(dir, "brands.csv"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if tbl.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", tbl.NumRows())
	}
	if id, _ := tbl.Value(0, "brand_id"); id != int64(1) {
		t.Errorf("brand_id = %v, want 1", id)
	}
	if name, _ := tbl.Value(1, "brand_name"); name != nil {
		t.Errorf("Empty field = %v, want nil", name)
	}
}

func TestReadFileEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.csv", "")
	if _, err := ReadFile(filepath.Join(dir, "empty.csv")); err == nil {
		t.Error("Expected error for empty file")
	}
}

func TestReadDirSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "brands.csv", "brand_id,brand_name\n1,Trek\n")
	writeFile(t, dir, "categories.csv", "category_id,category_name\n1,Road Bikes\n")

	raw, err := ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(raw) != 2 {
		t.Fatalf("Read %d tables, want 2", len(raw))
	}
	if _, ok := raw["brands"]; !ok {
		t.Error("brands not read")
	}
	if _, ok := raw["orders"]; ok {
		t.Error("orders should be absent")
	}
}

func TestReadDirFailsOnMalformedFile(t *testing.T) {
	dir := t.TempDir()
	// Second record has the wrong field count
	writeFile(t, dir, "brands.csv", "brand_id,brand_name\n1,Trek,extra\n")

	if _, err := ReadDir(dir); err == nil {
		t.Error("Expected error for malformed CSV")
	}
}
