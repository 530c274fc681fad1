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
	"github.com/bikestores/warehouse-etl/internal/logging"
	"github.com/bikestores/warehouse-etl/internal/table"
)

// SalesFact builds fact_sales at order line grain: an inner join of
// orders and order_items on order_id, so line items without a matching
// order header (and vice versa) are excluded.
func SalesFact(run *Run, orders, items *table.Table) (*table.Table, error) {
	o := table.NormalizeColumns(orders)
	oidx, err := requireColumns(o, "orders",
		"order_id", "customer_id", "store_id", "staff_id", "order_status",
		"order_date", "required_date", "shipped_date")
	if err != nil {
		return nil, err
	}

	it := table.NormalizeColumns(items)
	iidx, err := requireColumns(it, "order_items",
		"order_id", "item_id", "product_id", "quantity", "list_price", "discount")
	if err != nil {
		return nil, err
	}

	// Order headers are unique on order_id in the source system; keep
	// the first occurrence if not.
	headers := make(map[int64][]any, o.NumRows())
	for _, r := range o.Rows() {
		id, ok := asInt64(r[oidx[0]])
		if !ok {
			continue
		}
		if _, dup := headers[id]; !dup {
			headers[id] = r
		}
	}

	out := table.New(
		"order_id", "item_id", "customer_id", "store_id", "staff_id",
		"product_id", "order_status_id", "order_date_key",
		"required_date_key", "shipped_date_key", "quantity", "list_price",
		"discount", "gross_amount", "discount_amount", "net_amount",
		"order_to_ship_days", "shipped_on_time", "discount_pct",
		"discount_bucket", "created_at", "updated_at")

	for _, r := range it.Rows() {
		orderID, ok := asInt64(r[iidx[0]])
		if !ok {
			continue
		}
		hdr, ok := headers[orderID]
		if !ok {
			continue
		}

		qty, _ := asFloat64(r[iidx[3]])
		price, _ := asFloat64(r[iidx[4]])
		disc, _ := asFloat64(r[iidx[5]])
		if disc < 0 || disc >= 1 {
			logging.Warn().
				Int64("order_id", orderID).
				Float64("discount", disc).
				Msg("Discount outside expected [0,1) range")
		}

		gross := qty * price
		discountAmount := gross * disc
		net := gross * (1 - disc)

		orderDate, hasOrder := asTime(hdr[oidx[5]])
		requiredDate, hasRequired := asTime(hdr[oidx[6]])
		shippedDate, hasShipped := asTime(hdr[oidx[7]])

		var shipDays any
		if hasOrder && hasShipped {
			shipDays = int64(shippedDate.Sub(orderDate).Hours() / 24)
		}
		onTime := hasShipped && hasRequired && !shippedDate.After(requiredDate)

		mustAppend(out, []any{
			r[iidx[0]],
			r[iidx[1]],
			hdr[oidx[1]],
			hdr[oidx[2]],
			hdr[oidx[3]],
			r[iidx[2]],
			hdr[oidx[4]],
			hdr[oidx[5]],
			hdr[oidx[6]],
			hdr[oidx[7]],
			r[iidx[3]],
			r[iidx[4]],
			r[iidx[5]],
			gross,
			discountAmount,
			net,
			shipDays,
			onTime,
			disc * 100,
			DiscountBucket(disc),
			run.Timestamp,
			run.Timestamp,
		})
	}
	return out.SortBy("order_id", "item_id"), nil
}

// DiscountBucket labels a fractional discount for reporting.
func DiscountBucket(d float64) string {
	switch {
	case d <= 0:
		return "none"
	case d <= 0.10:
		return "1-10%"
	case d <= 0.20:
		return "11-20%"
	default:
		return "20%+"
	}
}

// InventoryFact builds fact_inventory from the raw stocks table. Rows
// missing either half of the (store_id, product_id) key are dropped.
func InventoryFact(run *Run, stocks *table.Table) (*table.Table, error) {
	t := table.NormalizeColumns(stocks)
	idx, err := requireColumns(t, "stocks", "store_id", "product_id", "quantity")
	if err != nil {
		return nil, err
	}

	out := table.New(
		"store_id", "product_id", "quantity_on_hand",
		"created_at", "updated_at")
	for _, r := range t.Rows() {
		if r[idx[0]] == nil || r[idx[1]] == nil {
			continue
		}
		if q, ok := asInt64(r[idx[2]]); ok && q < 0 {
			logging.Warn().
				Any("store_id", r[idx[0]]).
				Any("product_id", r[idx[1]]).
				Int64("quantity", q).
				Msg("Negative stock quantity")
		}
		mustAppend(out, []any{
			r[idx[0]], r[idx[1]], r[idx[2]], run.Timestamp, run.Timestamp,
		})
	}
	return out.SortBy("store_id", "product_id"), nil
}
