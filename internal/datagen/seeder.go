//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bikestores/warehouse-etl/internal/logging"
)

// SeedConfig controls the synthetic extract size and shape.
type SeedConfig struct {
	Seed      uint64
	Customers int
	Products  int
	Orders    int
	Stores    int
	StartDate time.Time
	EndDate   time.Time
}

// DefaultSeedConfig returns a small but joinable extract.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Seed:      1,
		Customers: 200,
		Products:  80,
		Orders:    500,
		Stores:    3,
		StartDate: time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

var brandNames = []string{
	"Electra", "Haro", "Heller", "Pure Cycles", "Ritchey",
	"Strider", "Sun Bicycles", "Surly", "Trek",
}

var categoryNames = []string{
	"Children Bicycles", "Comfort Bicycles", "Cruisers Bicycles",
	"Cyclocross Bicycles", "Electric Bikes", "Mountain Bikes", "Road Bikes",
}

// Seeder writes a referentially consistent raw extract: every foreign
// key in orders, order_items, and stocks points at a generated row.
type Seeder struct {
	cfg   SeedConfig
	faker *Faker
}

// NewSeeder creates a seeder. The same config always produces the same
// extract.
func NewSeeder(cfg SeedConfig) *Seeder {
	return &Seeder{cfg: cfg, faker: NewFakerWithSeed(cfg.Seed)}
}

// Seed writes the nine extract CSV files under dir, creating it if
// needed.
func (s *Seeder) Seed(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("datagen: creating %s: %w", dir, err)
	}

	prices := make([]float64, s.cfg.Products)
	staffPerStore := 3
	numStaff := s.cfg.Stores * staffPerStore

	writers := []struct {
		name string
		fn   func() ([]string, [][]string)
	}{
		{"brands", s.brands},
		{"categories", s.categories},
		{"customers", s.customers},
		{"stores", s.stores},
		{"staffs", func() ([]string, [][]string) { return s.staffs(staffPerStore) }},
		{"products", func() ([]string, [][]string) { return s.products(prices) }},
		{"orders", func() ([]string, [][]string) { return s.orders(numStaff) }},
		{"order_items", func() ([]string, [][]string) { return s.orderItems(prices) }},
		{"stocks", s.stocks},
	}

	for _, w := range writers {
		header, rows := w.fn()
		if err := writeCSV(dir, w.name, header, rows); err != nil {
			return err
		}
		logging.Info().
			Str("table", w.name).
			Int("rows", len(rows)).
			Msg("Seeded source table")
	}
	return nil
}

func (s *Seeder) brands() ([]string, [][]string) {
	rows := make([][]string, len(brandNames))
	for i, name := range brandNames {
		rows[i] = []string{itoa(i + 1), name}
	}
	return []string{"brand_id", "brand_name"}, rows
}

func (s *Seeder) categories() ([]string, [][]string) {
	rows := make([][]string, len(categoryNames))
	for i, name := range categoryNames {
		rows[i] = []string{itoa(i + 1), name}
	}
	return []string{"category_id", "category_name"}, rows
}

func (s *Seeder) customers() ([]string, [][]string) {
	rows := make([][]string, s.cfg.Customers)
	for i := range rows {
		phone := s.faker.Phone()
		// Roughly a quarter of source customers have no phone on file.
		if s.faker.Int(1, 4) == 1 {
			phone = ""
		}
		rows[i] = []string{
			itoa(i + 1),
			s.faker.FirstName(),
			s.faker.LastName(),
			phone,
			s.faker.Email(),
			s.faker.Street(),
			s.faker.City(),
			s.faker.State(),
			s.faker.Zip(),
		}
	}
	return []string{
		"customer_id", "first_name", "last_name", "phone", "email",
		"street", "city", "state", "zip_code",
	}, rows
}

func (s *Seeder) stores() ([]string, [][]string) {
	rows := make([][]string, s.cfg.Stores)
	for i := range rows {
		rows[i] = []string{
			itoa(i + 1),
			s.faker.City() + " Bikes",
			s.faker.Phone(),
			s.faker.Email(),
			s.faker.Street(),
			s.faker.City(),
			s.faker.State(),
			s.faker.Zip(),
		}
	}
	return []string{
		"store_id", "store_name", "phone", "email",
		"street", "city", "state", "zip_code",
	}, rows
}

// staffs emits perStore staff for each store. The first staff member of
// a store is its manager and has no manager_id; the rest report to them.
func (s *Seeder) staffs(perStore int) ([]string, [][]string) {
	var rows [][]string
	id := 0
	for store := 1; store <= s.cfg.Stores; store++ {
		managerID := ""
		for j := 0; j < perStore; j++ {
			id++
			rows = append(rows, []string{
				itoa(id),
				s.faker.FirstName(),
				s.faker.LastName(),
				s.faker.Email(),
				s.faker.Phone(),
				"1",
				itoa(store),
				managerID,
			})
			if j == 0 {
				managerID = itoa(id)
			}
		}
	}
	return []string{
		"staff_id", "first_name", "last_name", "email", "phone",
		"active", "store_id", "manager_id",
	}, rows
}

func (s *Seeder) products(prices []float64) ([]string, [][]string) {
	rows := make([][]string, s.cfg.Products)
	for i := range rows {
		prices[i] = s.faker.Price(150, 6000)
		rows[i] = []string{
			itoa(i + 1),
			s.faker.ProductName(),
			itoa(s.faker.Int(1, len(brandNames))),
			itoa(s.faker.Int(1, len(categoryNames))),
			itoa(s.faker.Int(2016, 2025)),
			ftoa(prices[i]),
		}
	}
	return []string{
		"product_id", "product_name", "brand_id", "category_id",
		"model_year", "list_price",
	}, rows
}

func (s *Seeder) orders(numStaff int) ([]string, [][]string) {
	rows := make([][]string, s.cfg.Orders)
	for i := range rows {
		status := ChooseWeighted(s.faker,
			[]int{1, 2, 3, 4}, []int{5, 10, 5, 80})
		orderDate := s.faker.DateRange(s.cfg.StartDate, s.cfg.EndDate)
		requiredDate := orderDate.AddDate(0, 0, s.faker.Int(2, 10))

		shipped := ""
		if status == 4 {
			shipped = orderDate.AddDate(0, 0, s.faker.Int(1, 7)).Format("2006-01-02")
		}

		storeID := s.faker.Int(1, s.cfg.Stores)
		rows[i] = []string{
			itoa(i + 1),
			itoa(s.faker.Int(1, s.cfg.Customers)),
			itoa(status),
			orderDate.Format("2006-01-02"),
			requiredDate.Format("2006-01-02"),
			shipped,
			itoa(storeID),
			itoa(s.faker.Int(1, numStaff)),
		}
	}
	return []string{
		"order_id", "customer_id", "order_status", "order_date",
		"required_date", "shipped_date", "store_id", "staff_id",
	}, rows
}

var discounts = []float64{0, 0.05, 0.07, 0.10, 0.20, 0.30}

func (s *Seeder) orderItems(prices []float64) ([]string, [][]string) {
	var rows [][]string
	for order := 1; order <= s.cfg.Orders; order++ {
		items := s.faker.Int(1, 4)
		for item := 1; item <= items; item++ {
			product := s.faker.Int(1, s.cfg.Products)
			rows = append(rows, []string{
				itoa(order),
				itoa(item),
				itoa(product),
				itoa(s.faker.Int(1, 3)),
				ftoa(prices[product-1]),
				ftoa(Choose(s.faker, discounts)),
			})
		}
	}
	return []string{
		"order_id", "item_id", "product_id", "quantity",
		"list_price", "discount",
	}, rows
}

func (s *Seeder) stocks() ([]string, [][]string) {
	var rows [][]string
	for store := 1; store <= s.cfg.Stores; store++ {
		for product := 1; product <= s.cfg.Products; product++ {
			rows = append(rows, []string{
				itoa(store),
				itoa(product),
				itoa(s.faker.Int(0, 30)),
			})
		}
	}
	return []string{"store_id", "product_id", "quantity"}, rows
}

func writeCSV(dir, name string, header []string, rows [][]string) error {
	path := filepath.Join(dir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("datagen: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
