//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for warehouse-etl.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for warehouse-etl.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Source holds raw extract configuration.
	Source SourceConfig `mapstructure:"source"`

	// Warehouse holds analytical store configuration.
	Warehouse WarehouseConfig `mapstructure:"warehouse"`

	// Transform holds reshaping configuration.
	Transform TransformConfig `mapstructure:"transform"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`
}

// SourceConfig locates the raw extract.
type SourceConfig struct {
	// Dir is the directory holding one CSV per source table.
	Dir string `mapstructure:"dir"`
}

// WarehouseConfig describes the analytical store.
type WarehouseConfig struct {
	// Driver selects the backend: "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`

	// Path is the database file path (sqlite only).
	Path string `mapstructure:"path"`

	// Connection is the PostgreSQL connection string (postgres only).
	Connection string `mapstructure:"connection"`

	// SchemaMode is "strict" (validate against the declared schema)
	// or "permissive" (load whatever shape the transform produced).
	SchemaMode string `mapstructure:"schema_mode"`
}

// TransformConfig tunes the reshaping step.
type TransformConfig struct {
	// FiscalStartMonth is the first month of the fiscal year (1-12).
	FiscalStartMonth int `mapstructure:"fiscal_start_month"`
}

// SeedConfig holds configuration for synthetic extract generation.
type SeedConfig struct {
	// Seed makes generation reproducible.
	Seed uint64 `mapstructure:"seed"`

	// Customers is the number of customers to generate.
	Customers int `mapstructure:"customers"`

	// Products is the number of products to generate.
	Products int `mapstructure:"products"`

	// Orders is the number of orders to generate.
	Orders int `mapstructure:"orders"`

	// Stores is the number of stores to generate.
	Stores int `mapstructure:"stores"`

	// StartDate and EndDate bound generated order dates (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Source: SourceConfig{
			Dir: "data/raw",
		},
		Warehouse: WarehouseConfig{
			Driver:     "sqlite",
			Path:       "data/warehouse.db",
			SchemaMode: "strict",
		},
		Transform: TransformConfig{
			FiscalStartMonth: 10,
		},
		Seed: SeedConfig{
			Seed:      1,
			Customers: 200,
			Products:  80,
			Orders:    500,
			Stores:    3,
			StartDate: "2022-01-01",
			EndDate:   "2024-12-31",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./warehouse-etl.yaml
// 3. ~/.config/warehouse-etl/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("warehouse-etl")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "warehouse-etl"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	switch c.Warehouse.Driver {
	case "sqlite":
		if c.Warehouse.Path == "" {
			return fmt.Errorf("warehouse path is required for the sqlite driver")
		}
	case "postgres":
		if c.Warehouse.Connection == "" {
			return fmt.Errorf("connection string is required for the postgres driver")
		}
	default:
		return fmt.Errorf("warehouse driver must be 'sqlite' or 'postgres'")
	}

	if c.Warehouse.SchemaMode != "strict" && c.Warehouse.SchemaMode != "permissive" {
		return fmt.Errorf("schema_mode must be 'strict' or 'permissive'")
	}
	if c.Transform.FiscalStartMonth < 1 || c.Transform.FiscalStartMonth > 12 {
		return fmt.Errorf("fiscal_start_month must be between 1 and 12")
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Source.Dir == "" {
		return fmt.Errorf("source dir is required for load")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if c.Source.Dir == "" {
		return fmt.Errorf("source dir is required for seed")
	}
	if c.Seed.Customers < 1 || c.Seed.Products < 1 || c.Seed.Orders < 1 || c.Seed.Stores < 1 {
		return fmt.Errorf("seed row counts must be at least 1")
	}
	start, err := time.Parse("2006-01-02", c.Seed.StartDate)
	if err != nil {
		return fmt.Errorf("seed start_date must be YYYY-MM-DD: %w", err)
	}
	end, err := time.Parse("2006-01-02", c.Seed.EndDate)
	if err != nil {
		return fmt.Errorf("seed end_date must be YYYY-MM-DD: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("seed end_date must not be before start_date")
	}
	return nil
}

// DSN returns the backend connection value for the configured driver.
func (c *Config) DSN() string {
	if c.Warehouse.Driver == "postgres" {
		return c.Warehouse.Connection
	}
	return c.Warehouse.Path
}
