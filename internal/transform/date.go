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
	"time"

	"github.com/bikestores/warehouse-etl/internal/table"
)

// Date dimension coverage. The range brackets every order date the
// source system can produce.
var (
	DateStart = time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)
	DateEnd   = time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// DateDimension generates one row per calendar day in [DateStart,
// DateEnd]. Weeks follow ISO 8601; day_of_week is Monday=0 through
// Sunday=6.
func DateDimension(run *Run) *table.Table {
	out := table.New(
		"date_key", "date", "year", "quarter", "month", "month_name",
		"day", "day_of_week", "day_name", "week_of_year", "is_weekend",
		"fiscal_quarter")

	for d := DateStart; !d.After(DateEnd); d = d.AddDate(0, 0, 1) {
		dow := int64((int(d.Weekday()) + 6) % 7)
		_, week := d.ISOWeek()
		mustAppend(out, []any{
			d,
			d,
			int64(d.Year()),
			int64((int(d.Month())-1)/3 + 1),
			int64(d.Month()),
			d.Month().String(),
			int64(d.Day()),
			dow,
			d.Weekday().String(),
			int64(week),
			dow >= 5,
			int64(FiscalQuarter(int(d.Month()), run.FiscalStartMonth)),
		})
	}
	return out
}

// FiscalQuarter maps a calendar month to its quarter in a fiscal year
// starting at startMonth. With the default October start, October is the
// first month of fiscal Q1.
func FiscalQuarter(month, startMonth int) int {
	return ((month-startMonth+12)%12)/3 + 1
}
