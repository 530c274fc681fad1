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
	"testing"
	"time"
)

func testRun(t *testing.T, fiscalStart int) *Run {
	t.Helper()
	run, err := NewRun(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), fiscalStart)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	return run
}

func TestDateDimensionCoverage(t *testing.T) {
	d := DateDimension(testRun(t, DefaultFiscalStartMonth))

	// 11 years, three of them leap (2016, 2020, 2024)
	if d.NumRows() != 4018 {
		t.Errorf("NumRows = %d, want 4018", d.NumRows())
	}

	seen := make(map[time.Time]bool, d.NumRows())
	for i := 0; i < d.NumRows(); i++ {
		v, _ := d.Value(i, "date_key")
		key := v.(time.Time)
		if seen[key] {
			t.Fatalf("Duplicate date_key %v", key)
		}
		seen[key] = true
	}

	first, _ := d.Value(0, "date_key")
	if !first.(time.Time).Equal(DateStart) {
		t.Errorf("First key = %v, want %v", first, DateStart)
	}
	last, _ := d.Value(d.NumRows()-1, "date_key")
	if !last.(time.Time).Equal(DateEnd) {
		t.Errorf("Last key = %v, want %v", last, DateEnd)
	}
}

func TestDateDimensionAttributes(t *testing.T) {
	d := DateDimension(testRun(t, DefaultFiscalStartMonth))

	// 2015-01-01 was a Thursday
	row := d.Row(0)
	cols := d.Columns()
	get := func(name string) any {
		for i, c := range cols {
			if c == name {
				return row[i]
			}
		}
		t.Fatalf("No column %s", name)
		return nil
	}

	if got := get("day_of_week"); got != int64(3) {
		t.Errorf("day_of_week = %v, want 3 (Thursday, Monday=0)", got)
	}
	if got := get("day_name"); got != "Thursday" {
		t.Errorf("day_name = %v", got)
	}
	if got := get("is_weekend"); got != false {
		t.Errorf("is_weekend = %v, want false", got)
	}
	if got := get("quarter"); got != int64(1) {
		t.Errorf("quarter = %v, want 1", got)
	}
	// ISO week 1 of 2015 starts Monday 2014-12-29
	if got := get("week_of_year"); got != int64(1) {
		t.Errorf("week_of_year = %v, want 1", got)
	}
	// January is fiscal Q2 of a fiscal year starting in October
	if got := get("fiscal_quarter"); got != int64(2) {
		t.Errorf("fiscal_quarter = %v, want 2", got)
	}
}

func TestDateDimensionWeekend(t *testing.T) {
	d := DateDimension(testRun(t, DefaultFiscalStartMonth))

	weekends := 0
	for i := 0; i < d.NumRows(); i++ {
		isWeekend, _ := d.Value(i, "is_weekend")
		dow, _ := d.Value(i, "day_of_week")
		if (dow.(int64) >= 5) != isWeekend.(bool) {
			t.Fatalf("Row %d: day_of_week %v disagrees with is_weekend %v", i, dow, isWeekend)
		}
		if isWeekend.(bool) {
			weekends++
		}
	}
	if weekends == 0 {
		t.Error("No weekend days flagged")
	}
}

func TestFiscalQuarter(t *testing.T) {
	tests := []struct {
		month, start, want int
	}{
		{10, 10, 1},
		{12, 10, 1},
		{1, 10, 2},
		{4, 10, 3},
		{9, 10, 4},
		{1, 1, 1},
		{12, 1, 4},
		{7, 4, 2},
	}
	for _, tt := range tests {
		if got := FiscalQuarter(tt.month, tt.start); got != tt.want {
			t.Errorf("FiscalQuarter(%d, %d) = %d, want %d",
				tt.month, tt.start, got, tt.want)
		}
	}
}

func TestNewRunRejectsBadFiscalMonth(t *testing.T) {
	for _, m := range []int{0, 13, -1} {
		if _, err := NewRun(time.Now(), m); err == nil {
			t.Errorf("NewRun(%d) expected error", m)
		}
	}
}
