//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package schema declares the warehouse star schema: eight dimension
// tables and two fact tables, plus the run metadata table. The loader
// renders these definitions into dialect-specific DDL and validates
// transformed tables against them in strict mode.
package schema

// Column types are logical; each store dialect maps them to its own DDL
// type names.
const (
	Integer   = "integer"
	Real      = "real"
	Decimal   = "decimal"
	Text      = "text"
	Bool      = "bool"
	Date      = "date"
	Timestamp = "timestamp"
)

// Column is a named, typed warehouse column.
type Column struct {
	Name string
	Type string
}

// TableDef declares one warehouse table.
type TableDef struct {
	Name       string
	Columns    []Column
	PrimaryKey []string
	Fact       bool
}

// ColumnNames returns the declared column names in order.
func (d TableDef) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// MetadataTable is the key/value table recording load run metadata. It
// is owned by the loader and survives across runs (upsert, not replace).
const MetadataTable = "etl_metadata"

var dimensions = []TableDef{
	{
		Name: "dim_date",
		Columns: []Column{
			{"date_key", Date},
			{"date", Date},
			{"year", Integer},
			{"quarter", Integer},
			{"month", Integer},
			{"month_name", Text},
			{"day", Integer},
			{"day_of_week", Integer}, // Monday=0 ... Sunday=6
			{"day_name", Text},
			{"week_of_year", Integer},
			{"is_weekend", Bool},
			{"fiscal_quarter", Integer},
		},
		PrimaryKey: []string{"date_key"},
	},
	{
		Name: "dim_customers",
		Columns: []Column{
			{"customer_id", Integer},
			{"customer_firstname", Text},
			{"customer_lastname", Text},
			{"customer_fullname", Text},
			{"customer_phone", Text},
			{"customer_email", Text},
			{"customer_street", Text},
			{"customer_city", Text},
			{"customer_state", Text},
			{"customer_zipcode", Text},
			{"created_at", Timestamp},
			{"updated_at", Timestamp},
		},
		PrimaryKey: []string{"customer_id"},
	},
	{
		Name: "dim_brands",
		Columns: []Column{
			{"brand_id", Integer},
			{"brand_name", Text},
			{"created_at", Timestamp},
			{"updated_at", Timestamp},
		},
		PrimaryKey: []string{"brand_id"},
	},
	{
		Name: "dim_categories",
		Columns: []Column{
			{"category_id", Integer},
			{"category_name", Text},
			{"created_at", Timestamp},
			{"updated_at", Timestamp},
		},
		PrimaryKey: []string{"category_id"},
	},
	{
		Name: "dim_products",
		Columns: []Column{
			{"product_id", Integer},
			{"product_name", Text},
			{"brand_id", Integer},
			{"category_id", Integer},
			{"model_year", Integer},
			{"list_price", Decimal},
			{"created_at", Timestamp},
			{"updated_at", Timestamp},
		},
		PrimaryKey: []string{"product_id"},
	},
	{
		Name: "dim_stores",
		Columns: []Column{
			{"store_id", Integer},
			{"store_name", Text},
			{"store_phone", Text},
			{"store_email", Text},
			{"store_street", Text},
			{"store_city", Text},
			{"store_state", Text},
			{"store_zip_code", Text},
			{"created_at", Timestamp},
			{"updated_at", Timestamp},
		},
		PrimaryKey: []string{"store_id"},
	},
	{
		Name: "dim_staffs",
		Columns: []Column{
			{"staff_id", Integer},
			{"staff_firstname", Text},
			{"staff_lastname", Text},
			{"staff_fullname", Text},
			{"staff_email", Text},
			{"staff_phone", Text},
			{"staff_active", Bool},
			{"store_id", Integer},
			{"manager_id", Integer}, // nullable self reference, not validated for cycles
			{"created_at", Timestamp},
			{"updated_at", Timestamp},
		},
		PrimaryKey: []string{"staff_id"},
	},
	{
		Name: "dim_order_status",
		Columns: []Column{
			{"order_status_id", Integer},
			{"order_status_name", Text},
		},
		PrimaryKey: []string{"order_status_id"},
	},
}

var facts = []TableDef{
	{
		Name: "fact_sales",
		Columns: []Column{
			{"order_id", Integer},
			{"item_id", Integer},
			{"customer_id", Integer},
			{"store_id", Integer},
			{"staff_id", Integer},
			{"product_id", Integer},
			{"order_status_id", Integer},
			{"order_date_key", Date},
			{"required_date_key", Date},
			{"shipped_date_key", Date},
			{"quantity", Integer},
			{"list_price", Decimal},
			{"discount", Decimal}, // fraction 0..1
			{"gross_amount", Decimal},
			{"discount_amount", Decimal},
			{"net_amount", Decimal},
			{"order_to_ship_days", Integer},
			{"shipped_on_time", Bool},
			{"discount_pct", Decimal}, // 0..100
			{"discount_bucket", Text},
			{"created_at", Timestamp},
			{"updated_at", Timestamp},
		},
		PrimaryKey: []string{"order_id", "item_id"},
		Fact:       true,
	},
	{
		Name: "fact_inventory",
		Columns: []Column{
			{"store_id", Integer},
			{"product_id", Integer},
			{"quantity_on_hand", Integer},
			{"created_at", Timestamp},
			{"updated_at", Timestamp},
		},
		PrimaryKey: []string{"store_id", "product_id"},
		Fact:       true,
	},
}

// Dimensions returns the dimension table definitions in load order.
func Dimensions() []TableDef {
	return dimensions
}

// Facts returns the fact table definitions in load order.
func Facts() []TableDef {
	return facts
}

// All returns every warehouse table definition, dimensions first.
func All() []TableDef {
	out := make([]TableDef, 0, len(dimensions)+len(facts))
	out = append(out, dimensions...)
	out = append(out, facts...)
	return out
}

// Lookup returns the definition for the named table.
func Lookup(name string) (TableDef, bool) {
	for _, d := range All() {
		if d.Name == name {
			return d, true
		}
	}
	return TableDef{}, false
}
