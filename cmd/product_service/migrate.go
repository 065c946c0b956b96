package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/abgdnv/productsvc/internal/config"
	"github.com/abgdnv/productsvc/migrations"
	"github.com/abgdnv/productsvc/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/productsvc/pkg/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the products database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadForMigrate()
		if err != nil {
			return err
		}
		return bootstrap.MigrateUp(migrations.FS, cfg.Database.URL, logger)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadForMigrate()
		if err != nil {
			return err
		}
		m, err := bootstrap.NewMigrator(migrations.FS, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer bootstrap.CloseMigrator(m, logger)
		if err := m.Steps(-1); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		logger.Info("Rolled back one migration")
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadForMigrate()
		if err != nil {
			return err
		}
		m, err := bootstrap.NewMigrator(migrations.FS, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer bootstrap.CloseMigrator(m, logger)
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			cmd.Println("no migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		cmd.Printf("version %d (dirty: %t)\n", version, dirty)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func loadForMigrate() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Database.Driver != pkgconfig.DriverPostgres {
		return nil, nil, fmt.Errorf("migrations need the %s driver, got %s", pkgconfig.DriverPostgres, cfg.Database.Driver)
	}
	return cfg, bootstrap.NewLogger(cfg.Log), nil
}
