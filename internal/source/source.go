//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package source reads the raw retail extract: one CSV file per source
// table, header row first, empty fields meaning NULL.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bikestores/warehouse-etl/internal/logging"
	"github.com/bikestores/warehouse-etl/internal/table"
)

// Tables lists the raw extract tables in the order they are read.
var Tables = []string{
	"brands",
	"categories",
	"customers",
	"orders",
	"order_items",
	"products",
	"staffs",
	"stocks",
	"stores",
}

// ReadDir loads every <table>.csv present under dir. Missing files are
// skipped so partial extracts still transform; an unreadable or
// malformed file fails the whole read.
func ReadDir(dir string) (map[string]*table.Table, error) {
	out := make(map[string]*table.Table, len(Tables))
	for _, name := range Tables {
		path := filepath.Join(dir, name+".csv")
		t, err := ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				logging.Debug().
					Str("table", name).
					Str("path", path).
					Msg("Source file not present, skipping")
				continue
			}
			return nil, fmt.Errorf("source: reading %s: %w", path, err)
		}
		logging.Info().
			Str("table", name).
			Int("rows", t.NumRows()).
			Msg("Read source table")
		out[name] = t
	}
	return out, nil
}

// ReadFile parses one CSV file into a table. The first record is the
// header; every cell is typed by ParseCell.
func ReadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	if err != nil {
		return nil, err
	}

	t := table.New(header...)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]any, len(rec))
		for i, field := range rec {
			row[i] = ParseCell(field)
		}
		if err := t.Append(row); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return t, nil
}

// ParseCell infers a cell value from its CSV text: empty or NULL means
// SQL NULL, then integer, float, ISO date, and finally plain text.
func ParseCell(field string) any {
	if field == "" || field == "NULL" {
		return nil
	}
	if i, err := strconv.ParseInt(field, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(field, 64); err == nil {
		return f
	}
	if d, err := time.Parse("2006-01-02", field); err == nil {
		return d
	}
	return field
}
