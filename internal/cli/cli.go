//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for warehouse-etl.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/bikestores/warehouse-etl/internal/config"
	"github.com/bikestores/warehouse-etl/internal/logging"
	"github.com/bikestores/warehouse-etl/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	sourceDir  string
	driver     string
	dbPath     string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "warehouse-etl",
		Short: "Star-schema ETL for the BikeStores retail extract",
		Long: `warehouse-etl reads a flat retail extract (one CSV per source table),
reshapes it into a dimensional star schema, and snapshots the result into
an analytical store (SQLite file or PostgreSQL database).

Every load run fully replaces the warehouse tables: dimensions first,
then facts, with per-table failure isolation and a run audit trail in
the etl_metadata table.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./warehouse-etl.yaml)")
	rootCmd.PersistentFlags().StringVar(&sourceDir, "source-dir", "",
		"directory holding the raw extract CSV files")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "",
		"warehouse backend (sqlite, postgres)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "",
		"warehouse database file path (sqlite driver)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string (postgres driver)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statusCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if sourceDir != "" {
		cfg.Source.Dir = sourceDir
	}
	if driver != "" {
		cfg.Warehouse.Driver = driver
	}
	if dbPath != "" {
		cfg.Warehouse.Path = dbPath
	}
	if connection != "" {
		cfg.Warehouse.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
