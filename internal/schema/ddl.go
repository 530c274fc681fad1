//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package schema

import (
	"fmt"
	"strings"
)

// Dialect names understood by the DDL renderer.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// TypeName maps a logical column type to the dialect's DDL type.
func TypeName(dialect, logical string) string {
	switch dialect {
	case DialectPostgres:
		switch logical {
		case Integer:
			return "INTEGER"
		case Real:
			return "DOUBLE PRECISION"
		case Decimal:
			return "NUMERIC(18,4)"
		case Text:
			return "TEXT"
		case Bool:
			return "BOOLEAN"
		case Date:
			return "DATE"
		case Timestamp:
			return "TIMESTAMP"
		}
	default: // sqlite
		switch logical {
		case Integer:
			return "INTEGER"
		case Real, Decimal:
			return "REAL"
		case Text:
			return "TEXT"
		case Bool:
			return "INTEGER"
		case Date, Timestamp:
			return "TEXT"
		}
	}
	return "TEXT"
}

// CreateDDL renders the CREATE TABLE statement for a table definition.
// Neither supported dialect has CREATE OR REPLACE TABLE, so replace
// semantics are a DROP followed by this statement (see DropDDL).
func CreateDDL(dialect string, def TableDef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", def.Name)
	for _, c := range def.Columns {
		fmt.Fprintf(&b, "    %s %s,\n", c.Name, TypeName(dialect, c.Type))
	}
	fmt.Fprintf(&b, "    PRIMARY KEY (%s)\n)", strings.Join(def.PrimaryKey, ", "))
	return b.String()
}

// DropDDL renders the DROP TABLE statement for a table definition.
func DropDDL(def TableDef) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", def.Name)
}

// MetadataDDL renders the create statement for the run metadata table.
// Unlike warehouse tables it is created once and upserted into.
func MetadataDDL() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`, MetadataTable)
}
