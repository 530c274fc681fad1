//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bikestores/warehouse-etl/internal/schema"
	"github.com/bikestores/warehouse-etl/internal/table"
)

func tempStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "wh", "warehouse.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func brandsTable(ts time.Time, rows ...[2]any) *table.Table {
	t := table.New("brand_id", "brand_name", "created_at", "updated_at")
	for _, r := range rows {
		t.Append([]any{r[0], r[1], ts, ts})
	}
	return t
}

func TestOpenSQLiteCreatesParentDirs(t *testing.T) {
	// tempStore points at a nested path that does not exist yet
	store := tempStore(t)
	if err := store.Exec(context.Background(), "SELECT 1"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
}

func TestLoadTableStrict(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)
	loader, err := NewLoader(store, ModeStrict)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}

	def, _ := schema.Lookup("dim_brands")
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	snapshot := brandsTable(ts, [2]any{int64(1), "Electra"}, [2]any{int64(2), "Trek"})
	if err := loader.LoadTable(ctx, def, snapshot); err != nil {
		t.Fatalf("LoadTable: %v", err)
	}

	got, err := store.Query(ctx, "SELECT brand_id, brand_name FROM dim_brands ORDER BY brand_id")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if got.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", got.NumRows())
	}
	if name, _ := got.Value(1, "brand_name"); name != "Trek" {
		t.Errorf("brand_name = %v, want Trek", name)
	}

	// Staging table cleaned up
	staging, err := store.Query(ctx,
		"SELECT name FROM sqlite_master WHERE name LIKE 'staging_%'")
	if err != nil {
		t.Fatalf("Query sqlite_master: %v", err)
	}
	if staging.NumRows() != 0 {
		t.Errorf("Staging tables left behind: %d", staging.NumRows())
	}
}

func TestLoadTableReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)
	loader, _ := NewLoader(store, ModeStrict)
	def, _ := schema.Lookup("dim_brands")
	ts := time.Now().UTC()

	first := brandsTable(ts,
		[2]any{int64(1), "Electra"}, [2]any{int64(2), "Trek"}, [2]any{int64(3), "Surly"})
	if err := loader.LoadTable(ctx, def, first); err != nil {
		t.Fatalf("First load: %v", err)
	}

	// A smaller second snapshot fully replaces the first
	second := brandsTable(ts, [2]any{int64(9), "Haro"})
	if err := loader.LoadTable(ctx, def, second); err != nil {
		t.Fatalf("Second load: %v", err)
	}

	got, _ := store.Query(ctx, "SELECT brand_id FROM dim_brands")
	if got.NumRows() != 1 {
		t.Fatalf("NumRows = %d, want 1 after replace", got.NumRows())
	}
	if id, _ := got.Value(0, "brand_id"); id != int64(9) {
		t.Errorf("brand_id = %v, want 9", id)
	}
}

func TestLoadTableStrictRejectsWrongShape(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)
	loader, _ := NewLoader(store, ModeStrict)
	def, _ := schema.Lookup("dim_brands")

	bad := table.New("brand_id", "name")
	bad.Append([]any{int64(1), "Trek"})
	if err := loader.LoadTable(ctx, def, bad); err == nil {
		t.Fatal("Expected shape error in strict mode")
	}
}

func TestLoadTablePermissiveAcceptsExtraColumns(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)
	loader, _ := NewLoader(store, ModePermissive)
	def, _ := schema.Lookup("dim_brands")

	wide := table.New("brand_id", "brand_name", "extra")
	wide.Append([]any{int64(1), "Trek", "x"})
	if err := loader.LoadTable(ctx, def, wide); err != nil {
		t.Fatalf("LoadTable: %v", err)
	}

	got, err := store.Query(ctx, "SELECT extra FROM dim_brands")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if v, _ := got.Value(0, "extra"); v != "x" {
		t.Errorf("extra = %v, want x", v)
	}
}

func TestLoadAllPartialFailure(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)
	loader, _ := NewLoader(store, ModeStrict)
	ts := time.Now().UTC()

	bad := table.New("brand_id")
	bad.Append([]any{int64(1)})

	tables := map[string]*table.Table{
		"dim_brands":     brandsTable(ts, [2]any{int64(1), "Trek"}),
		"dim_categories": bad,
	}
	report := loader.LoadAll(ctx, tables)

	if report.Total != 2 || report.Loaded != 1 {
		t.Fatalf("Report = %d/%d, want 1/2", report.Loaded, report.Total)
	}
	if report.Success() != 0.5 {
		t.Errorf("Success = %v, want 0.5", report.Success())
	}

	// The good table still landed
	got, err := store.Query(ctx, "SELECT COUNT(*) AS n FROM dim_brands")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if n, _ := got.Value(0, "n"); n != int64(1) {
		t.Errorf("dim_brands count = %v, want 1", n)
	}
}

func TestCreateSchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)
	loader, _ := NewLoader(store, ModeStrict)

	if err := loader.CreateSchema(ctx); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	if err := loader.CreateSchema(ctx); err != nil {
		t.Fatalf("Second CreateSchema: %v", err)
	}

	// Every declared table exists and is empty
	for _, name := range []string{"dim_date", "dim_brands", "fact_sales", "fact_inventory"} {
		got, err := store.Query(ctx, "SELECT COUNT(*) AS n FROM "+name)
		if err != nil {
			t.Fatalf("Query %s: %v", name, err)
		}
		if n, _ := got.Value(0, "n"); n != int64(0) {
			t.Errorf("%s = %v rows, want 0", name, n)
		}
	}
}

func TestLoadAllIncludesExtraTables(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)
	loader, _ := NewLoader(store, ModeStrict)
	ts := time.Now().UTC()

	extra := table.New("note_id", "note")
	extra.Append([]any{int64(1), "hand-curated"})

	tables := map[string]*table.Table{
		"dim_brands": brandsTable(ts, [2]any{int64(1), "Trek"}),
		"aux_notes":  extra,
	}
	report := loader.LoadAll(ctx, tables)

	if !report.OK() || report.Total != 2 {
		t.Fatalf("Report = %d/%d OK=%v, want 2/2 true",
			report.Loaded, report.Total, report.OK())
	}
	// Declared tables load first, extras after
	if report.Results[0].Table != "dim_brands" || report.Results[1].Table != "aux_notes" {
		t.Errorf("Load order = %v", report.Results)
	}

	got, err := store.Query(ctx, "SELECT note FROM aux_notes")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if v, _ := got.Value(0, "note"); v != "hand-curated" {
		t.Errorf("note = %v", v)
	}
}

func TestLoadAllEmptyRun(t *testing.T) {
	store := tempStore(t)
	loader, _ := NewLoader(store, ModeStrict)
	report := loader.LoadAll(context.Background(), nil)
	if report.Total != 0 {
		t.Errorf("Total = %d, want 0", report.Total)
	}
	if report.Success() != 1.0 {
		t.Errorf("Success = %v, want 1.0", report.Success())
	}
}

func TestNewLoaderRejectsUnknownMode(t *testing.T) {
	store := tempStore(t)
	if _, err := NewLoader(store, "lenient"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}

func TestEncodeCell(t *testing.T) {
	midnight := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	afternoon := time.Date(2023, 3, 1, 14, 30, 5, 0, time.UTC)

	tests := []struct {
		name    string
		in      any
		logical string
		want    any
	}{
		{"declared date", midnight, schema.Date, "2023-03-01"},
		{"declared timestamp", afternoon, schema.Timestamp, "2023-03-01 14:30:05"},
		// A run timestamp that lands exactly on midnight still keeps
		// its clock when the column is declared as a timestamp
		{"midnight timestamp", midnight, schema.Timestamp, "2023-03-01 00:00:00"},
		{"untyped midnight", midnight, "", "2023-03-01"},
		{"untyped with clock", afternoon, "", "2023-03-01 14:30:05"},
		{"true", true, "", int64(1)},
		{"false", false, "", int64(0)},
		{"int passthrough", int64(7), "", int64(7)},
		{"nil passthrough", nil, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeCell(tt.in, tt.logical); got != tt.want {
				t.Errorf("encodeCell(%v, %q) = %v, want %v", tt.in, tt.logical, got, tt.want)
			}
		})
	}
}

func TestLoadTableStagesTimestampsAsDeclared(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)
	loader, _ := NewLoader(store, ModeStrict)
	def, _ := schema.Lookup("dim_brands")

	// Run timestamp exactly at midnight UTC
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := loader.LoadTable(ctx, def, brandsTable(ts, [2]any{int64(1), "Trek"})); err != nil {
		t.Fatalf("LoadTable: %v", err)
	}

	got, err := store.Query(ctx, "SELECT created_at FROM dim_brands")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if v, _ := got.Value(0, "created_at"); v != "2024-06-01 00:00:00" {
		t.Errorf("created_at = %v, want full timestamp form", v)
	}
}
