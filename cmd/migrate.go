/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/pressly/goose/v3"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/lablens/db"
)

var CmdMigrate = &cli.Command{
	Name:  "migrate",
	Usage: "Database migration commands",
	Flags: []cli.Flag{
		databaseURLFlag(),
	},
	Commands: []*cli.Command{
		{
			Name:   "up",
			Usage:  "Run all pending migrations",
			Action: migrateUp,
		},
		{
			Name:   "down",
			Usage:  "Roll back the last migration",
			Action: migrateDown,
		},
		{
			Name:   "status",
			Usage:  "Show migration status",
			Action: migrateStatus,
		},
		{
			Name:   "create",
			Usage:  "Create a new SQL migration file <name>",
			Action: migrateCreate,
		},
		{
			Name:   "version",
			Usage:  "Print the current version of the database",
			Action: migrateVersion,
		},
	},
}

func openMigrations(ctx context.Context, cmd *cli.Command) (*sql.DB, error) {
	databaseURL := cmd.String("database-url")
	if databaseURL == "" {
		return nil, errDatabaseURLRequired
	}

	sqlDB, err := db.OpenMigrationDB(databaseURL)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqlDB, nil
}

func migrateUp(ctx context.Context, cmd *cli.Command) error {
	sqlDB, err := openMigrations(ctx, cmd)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	appLogger.Info("Migrations completed successfully")

	return nil
}

func migrateDown(ctx context.Context, cmd *cli.Command) error {
	sqlDB, err := openMigrations(ctx, cmd)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := goose.DownContext(ctx, sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	appLogger.Info("Migration rolled back successfully")

	return nil
}

func migrateStatus(ctx context.Context, cmd *cli.Command) error {
	sqlDB, err := openMigrations(ctx, cmd)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := goose.StatusContext(ctx, sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	return nil
}

func migrateVersion(ctx context.Context, cmd *cli.Command) error {
	sqlDB, err := openMigrations(ctx, cmd)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get database version: %w", err)
	}

	fmt.Fprintf(commandWriter(cmd), "Database version: %d\n", version)

	return nil
}

func migrateCreate(_ context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return errMigrationNameRequired
	}

	// Needs a source checkout; the embedded copy is read-only.
	migrationsDir := "db/" + db.MigrationsDir
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create migrations directory: %w", err)
	}

	if err := goose.Create(nil, migrationsDir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	appLogger.Info("Created new migration", "dir", migrationsDir, "name", name)

	return nil
}
