//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package transform

import (
	"errors"
	"testing"

	"github.com/bikestores/warehouse-etl/internal/table"
)

func rawCustomers() *table.Table {
	t := table.New("customer_id", "first_name", "last_name", "phone",
		"email", "street", "city", "state", "zip_code")
	t.Append([]any{int64(2), "Bob", "Stone", nil, "bob@example.com",
		"2 Oak St", "Austin", "TX", "78701"})
	t.Append([]any{nil, "Ghost", "Row", nil, nil, nil, nil, nil, nil})
	t.Append([]any{int64(1), "Ann", "Field", "555-0100", "ann@example.com",
		"1 Elm St", "Dallas", "TX", "75001"})
	return t
}

func TestCustomers(t *testing.T) {
	run := testRun(t, DefaultFiscalStartMonth)
	out, err := Customers(run, rawCustomers())
	if err != nil {
		t.Fatalf("Customers: %v", err)
	}

	// Null key dropped, remainder sorted by customer_id
	if out.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", out.NumRows())
	}
	if id, _ := out.Value(0, "customer_id"); id != int64(1) {
		t.Errorf("Row 0 customer_id = %v, want 1", id)
	}

	if full, _ := out.Value(0, "customer_fullname"); full != "Ann Field" {
		t.Errorf("customer_fullname = %v, want Ann Field", full)
	}
	if phone, _ := out.Value(1, "customer_phone"); phone != nil {
		t.Errorf("customer_phone = %v, want nil", phone)
	}
	if ts, _ := out.Value(0, "created_at"); ts != run.Timestamp {
		t.Errorf("created_at = %v, want run timestamp", ts)
	}
}

func TestCustomersNormalizesHeaders(t *testing.T) {
	src := table.New("Customer ID", "First Name", "Last Name", "Phone",
		"Email", "Street", "City", "State", "Zip-Code")
	src.Append([]any{int64(1), "Ann", "Field", nil, nil, nil, nil, nil, nil})

	out, err := Customers(testRun(t, DefaultFiscalStartMonth), src)
	if err != nil {
		t.Fatalf("Customers: %v", err)
	}
	if out.NumRows() != 1 {
		t.Errorf("NumRows = %d, want 1", out.NumRows())
	}
}

func TestCustomersMissingColumn(t *testing.T) {
	src := table.New("customer_id", "first_name")
	src.Append([]any{int64(1), "Ann"})

	_, err := Customers(testRun(t, DefaultFiscalStartMonth), src)
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingColumnError, got %v", err)
	}
	if missing.Table != "customers" || missing.Column != "last_name" {
		t.Errorf("Error names %s.%s", missing.Table, missing.Column)
	}
}

func TestFullNameNullPropagation(t *testing.T) {
	if got := fullName("Ann", nil); got != nil {
		t.Errorf("fullName(Ann, nil) = %v, want nil", got)
	}
	if got := fullName(nil, "Field"); got != nil {
		t.Errorf("fullName(nil, Field) = %v, want nil", got)
	}
	if got := fullName("Ann", "Field"); got != "Ann Field" {
		t.Errorf("fullName = %v", got)
	}
}

func TestMustAppendPanicsOnShapeMismatch(t *testing.T) {
	out := table.New("a", "b")
	mustAppend(out, []any{int64(1), "x"})
	if out.NumRows() != 1 {
		t.Fatalf("NumRows = %d, want 1", out.NumRows())
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on short row")
		}
	}()
	mustAppend(out, []any{int64(2)})
}

func TestBrandsDropsNullKeyAndSorts(t *testing.T) {
	src := table.New("brand_id", "brand_name")
	src.Append([]any{int64(3), "Trek"})
	src.Append([]any{nil, "Phantom"})
	src.Append([]any{int64(1), "Electra"})

	out, err := Brands(testRun(t, DefaultFiscalStartMonth), src)
	if err != nil {
		t.Fatalf("Brands: %v", err)
	}
	if out.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", out.NumRows())
	}
	if id, _ := out.Value(0, "brand_id"); id != int64(1) {
		t.Errorf("Row 0 brand_id = %v, want 1", id)
	}
	want := []string{"brand_id", "brand_name", "created_at", "updated_at"}
	for i, c := range out.Columns() {
		if c != want[i] {
			t.Errorf("Column %d = %q, want %q", i, c, want[i])
		}
	}
}

func TestStaffsKeepsNullManager(t *testing.T) {
	src := table.New("staff_id", "first_name", "last_name", "email",
		"phone", "active", "store_id", "manager_id")
	src.Append([]any{int64(1), "Fay", "Boss", "fay@example.com", nil,
		int64(1), int64(1), nil})
	src.Append([]any{int64(2), "Gil", "Clerk", "gil@example.com", nil,
		int64(1), int64(1), int64(1)})

	out, err := Staffs(testRun(t, DefaultFiscalStartMonth), src)
	if err != nil {
		t.Fatalf("Staffs: %v", err)
	}
	if mgr, _ := out.Value(0, "manager_id"); mgr != nil {
		t.Errorf("Top staff manager_id = %v, want nil", mgr)
	}
	if mgr, _ := out.Value(1, "manager_id"); mgr != int64(1) {
		t.Errorf("manager_id = %v, want 1", mgr)
	}
	if full, _ := out.Value(0, "staff_fullname"); full != "Fay Boss" {
		t.Errorf("staff_fullname = %v", full)
	}
}

func TestOrderStatusIsStatic(t *testing.T) {
	out := OrderStatus(nil)
	if out.NumRows() != 4 {
		t.Fatalf("NumRows = %d, want 4", out.NumRows())
	}
	names := []string{"Pending", "Processing", "Rejected", "Completed"}
	for i, want := range names {
		id, _ := out.Value(i, "order_status_id")
		name, _ := out.Value(i, "order_status_name")
		if id != int64(i+1) || name != want {
			t.Errorf("Row %d = (%v, %v), want (%d, %s)", i, id, name, i+1, want)
		}
	}
}

func TestAllIsolatesFailures(t *testing.T) {
	// customers is malformed, brands is fine
	badCustomers := table.New("customer_id")
	badCustomers.Append([]any{int64(1)})
	brands := table.New("brand_id", "brand_name")
	brands.Append([]any{int64(1), "Trek"})

	raw := map[string]*table.Table{
		"customers": badCustomers,
		"brands":    brands,
	}

	out, results := All(testRun(t, DefaultFiscalStartMonth), raw)

	if _, ok := out["dim_customers"]; ok {
		t.Error("dim_customers should have failed")
	}
	if _, ok := out["dim_brands"]; !ok {
		t.Error("dim_brands should have succeeded")
	}
	// Sourceless transformers always run
	if _, ok := out["dim_date"]; !ok {
		t.Error("dim_date should always be produced")
	}
	if _, ok := out["dim_order_status"]; !ok {
		t.Error("dim_order_status should always be produced")
	}
	// orders/order_items/stocks absent: facts skipped entirely
	if _, ok := out["fact_sales"]; ok {
		t.Error("fact_sales should be skipped without sources")
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			if r.Target != "dim_customers" {
				t.Errorf("Unexpected failure for %s: %v", r.Target, r.Err)
			}
		}
	}
	if failed != 1 {
		t.Errorf("Failed transforms = %d, want 1", failed)
	}
}
