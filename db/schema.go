/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/humaidq/lablens/analysis"

	// Register pgx with database/sql for goose migrations.
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// MigrationsDir is the directory inside the embedded filesystem.
const MigrationsDir = "migrations"

// GetEmbeddedMigrations returns the embedded migrations filesystem for use by CLI commands
func GetEmbeddedMigrations() embed.FS {
	return embedMigrations
}

// OpenMigrationDB opens a database/sql handle configured for goose.
func OpenMigrationDB(databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, ErrDatabaseURLRequired
	}

	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database for migrations: %w", err)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to set dialect: %w", err)
	}

	return sqlDB, nil
}

// Migrate applies pending migrations without touching table contents.
func Migrate(ctx context.Context, databaseURL string) error {
	sqlDB, err := OpenMigrationDB(databaseURL)
	if err != nil {
		return err
	}

	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close migration connection", "error", err)
		}
	}()

	if err := goose.UpContext(ctx, sqlDB, MigrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// SyncSchema migrates the database and seeds any missing reference ranges
// from the compiled-in table.
func SyncSchema(ctx context.Context, databaseURL string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if err := Migrate(ctx, databaseURL); err != nil {
		return err
	}

	if _, err := SyncReferenceRanges(ctx, analysis.DefaultRanges(), false); err != nil {
		return fmt.Errorf("failed to sync reference ranges: %w", err)
	}

	return nil
}
