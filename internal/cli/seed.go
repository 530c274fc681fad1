//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/bikestores/warehouse-etl/internal/datagen"
)

var (
	seedSeed      uint64
	seedCustomers int
	seedProducts  int
	seedOrders    int
	seedStores    int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a synthetic raw extract",
	Long: `Generate a referentially consistent synthetic extract (one CSV per
source table) into the source directory. The same seed always produces
the same extract.

Example:
  warehouse-etl seed --source-dir data/raw --orders 1000 --seed 42`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().Uint64Var(&seedSeed, "seed", 0,
		"random seed for reproducible generation")
	seedCmd.Flags().IntVar(&seedCustomers, "customers", 0,
		"number of customers to generate")
	seedCmd.Flags().IntVar(&seedProducts, "products", 0,
		"number of products to generate")
	seedCmd.Flags().IntVar(&seedOrders, "orders", 0,
		"number of orders to generate")
	seedCmd.Flags().IntVar(&seedStores, "stores", 0,
		"number of stores to generate")
}

func runSeed(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if seedSeed > 0 {
		cfg.Seed.Seed = seedSeed
	}
	if seedCustomers > 0 {
		cfg.Seed.Customers = seedCustomers
	}
	if seedProducts > 0 {
		cfg.Seed.Products = seedProducts
	}
	if seedOrders > 0 {
		cfg.Seed.Orders = seedOrders
	}
	if seedStores > 0 {
		cfg.Seed.Stores = seedStores
	}

	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	start, _ := time.Parse("2006-01-02", cfg.Seed.StartDate)
	end, _ := time.Parse("2006-01-02", cfg.Seed.EndDate)

	seeder := datagen.NewSeeder(datagen.SeedConfig{
		Seed:      cfg.Seed.Seed,
		Customers: cfg.Seed.Customers,
		Products:  cfg.Seed.Products,
		Orders:    cfg.Seed.Orders,
		Stores:    cfg.Seed.Stores,
		StartDate: start,
		EndDate:   end,
	})
	if err := seeder.Seed(cfg.Source.Dir); err != nil {
		return err
	}

	cmd.Printf("seeded extract in %s\n", cfg.Source.Dir)
	return nil
}
