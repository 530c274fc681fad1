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
	"github.com/bikestores/warehouse-etl/internal/table"
)

// Customers builds dim_customers from the raw customers table. Rows with
// a NULL customer_id are dropped and the output is sorted by customer_id.
func Customers(run *Run, src *table.Table) (*table.Table, error) {
	t := table.NormalizeColumns(src)
	idx, err := requireColumns(t, "customers",
		"customer_id", "first_name", "last_name", "phone", "email",
		"street", "city", "state", "zip_code")
	if err != nil {
		return nil, err
	}

	out := table.New(
		"customer_id", "customer_firstname", "customer_lastname",
		"customer_fullname", "customer_phone", "customer_email",
		"customer_street", "customer_city", "customer_state",
		"customer_zipcode", "created_at", "updated_at")
	for _, r := range t.Rows() {
		if r[idx[0]] == nil {
			continue
		}
		mustAppend(out, []any{
			r[idx[0]],
			r[idx[1]],
			r[idx[2]],
			fullName(r[idx[1]], r[idx[2]]),
			r[idx[3]],
			r[idx[4]],
			r[idx[5]],
			r[idx[6]],
			r[idx[7]],
			r[idx[8]],
			run.Timestamp,
			run.Timestamp,
		})
	}
	return out.SortBy("customer_id"), nil
}

// Brands builds dim_brands from the raw brands table.
func Brands(run *Run, src *table.Table) (*table.Table, error) {
	return simpleLookup(run, src, "brands", "brand_id", "brand_name")
}

// Categories builds dim_categories from the raw categories table.
func Categories(run *Run, src *table.Table) (*table.Table, error) {
	return simpleLookup(run, src, "categories", "category_id", "category_name")
}

// simpleLookup covers the two-column id/name dimensions.
func simpleLookup(run *Run, src *table.Table, srcName, idCol, nameCol string) (*table.Table, error) {
	t := table.NormalizeColumns(src)
	idx, err := requireColumns(t, srcName, idCol, nameCol)
	if err != nil {
		return nil, err
	}

	out := table.New(idCol, nameCol, "created_at", "updated_at")
	for _, r := range t.Rows() {
		if r[idx[0]] == nil {
			continue
		}
		mustAppend(out, []any{r[idx[0]], r[idx[1]], run.Timestamp, run.Timestamp})
	}
	return out.SortBy(idCol), nil
}

// Products builds dim_products from the raw products table.
func Products(run *Run, src *table.Table) (*table.Table, error) {
	t := table.NormalizeColumns(src)
	idx, err := requireColumns(t, "products",
		"product_id", "product_name", "brand_id", "category_id",
		"model_year", "list_price")
	if err != nil {
		return nil, err
	}

	out := table.New(
		"product_id", "product_name", "brand_id", "category_id",
		"model_year", "list_price", "created_at", "updated_at")
	for _, r := range t.Rows() {
		if r[idx[0]] == nil {
			continue
		}
		mustAppend(out, []any{
			r[idx[0]], r[idx[1]], r[idx[2]], r[idx[3]],
			r[idx[4]], r[idx[5]], run.Timestamp, run.Timestamp,
		})
	}
	return out.SortBy("product_id"), nil
}

// Stores builds dim_stores from the raw stores table.
func Stores(run *Run, src *table.Table) (*table.Table, error) {
	t := table.NormalizeColumns(src)
	idx, err := requireColumns(t, "stores",
		"store_id", "store_name", "phone", "email",
		"street", "city", "state", "zip_code")
	if err != nil {
		return nil, err
	}

	out := table.New(
		"store_id", "store_name", "store_phone", "store_email",
		"store_street", "store_city", "store_state", "store_zip_code",
		"created_at", "updated_at")
	for _, r := range t.Rows() {
		if r[idx[0]] == nil {
			continue
		}
		mustAppend(out, []any{
			r[idx[0]], r[idx[1]], r[idx[2]], r[idx[3]],
			r[idx[4]], r[idx[5]], r[idx[6]], r[idx[7]],
			run.Timestamp, run.Timestamp,
		})
	}
	return out.SortBy("store_id"), nil
}

// Staffs builds dim_staffs from the raw staffs table. manager_id stays
// NULL for top-level staff.
func Staffs(run *Run, src *table.Table) (*table.Table, error) {
	t := table.NormalizeColumns(src)
	idx, err := requireColumns(t, "staffs",
		"staff_id", "first_name", "last_name", "email", "phone",
		"active", "store_id", "manager_id")
	if err != nil {
		return nil, err
	}

	out := table.New(
		"staff_id", "staff_firstname", "staff_lastname", "staff_fullname",
		"staff_email", "staff_phone", "staff_active", "store_id",
		"manager_id", "created_at", "updated_at")
	for _, r := range t.Rows() {
		if r[idx[0]] == nil {
			continue
		}
		mustAppend(out, []any{
			r[idx[0]],
			r[idx[1]],
			r[idx[2]],
			fullName(r[idx[1]], r[idx[2]]),
			r[idx[3]],
			r[idx[4]],
			r[idx[5]],
			r[idx[6]],
			r[idx[7]],
			run.Timestamp,
			run.Timestamp,
		})
	}
	return out.SortBy("staff_id"), nil
}

// OrderStatus builds the static order status lookup. The four statuses
// come from the source system and never change.
func OrderStatus(_ *Run) *table.Table {
	out := table.New("order_status_id", "order_status_name")
	mustAppend(out, []any{int64(1), "Pending"})
	mustAppend(out, []any{int64(2), "Processing"})
	mustAppend(out, []any{int64(3), "Rejected"})
	mustAppend(out, []any{int64(4), "Completed"})
	return out
}
