/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/lablens/analysis"
)

// ReferenceRangeRow is one stored reference range.
type ReferenceRangeRow struct {
	ID           uuid.UUID
	MarkerName   string
	Unit         string
	RefLow       float64
	RefHigh      float64
	CriticalLow  *float64
	CriticalHigh *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func rowFromRange(name string, rr analysis.ReferenceRange) ReferenceRangeRow {
	canonical, _ := analysis.CanonicalName(name)

	return ReferenceRangeRow{
		ID:           uuid.New(),
		MarkerName:   canonical,
		Unit:         rr.Unit,
		RefLow:       rr.Low,
		RefHigh:      rr.High,
		CriticalLow:  rr.CriticalLow,
		CriticalHigh: rr.CriticalHigh,
	}
}

// Range converts the row back into an analysis entry.
func (r ReferenceRangeRow) Range() analysis.ReferenceRange {
	return analysis.ReferenceRange{
		Low:          r.RefLow,
		High:         r.RefHigh,
		Unit:         r.Unit,
		CriticalLow:  r.CriticalLow,
		CriticalHigh: r.CriticalHigh,
	}
}

// rowsToTable builds a validated table, keyed by canonical marker name.
func rowsToTable(rows []ReferenceRangeRow) (analysis.RangeTable, error) {
	stored := make(analysis.RangeTable, len(rows))
	for _, row := range rows {
		stored[row.MarkerName] = row.Range()
	}

	if err := stored.Validate(); err != nil {
		return nil, fmt.Errorf("stored reference ranges: %w", err)
	}

	return analysis.RangeTable{}.Merge(stored), nil
}

// SyncReferenceRanges writes a table to the database and returns the number
// of rows written. Existing rows are kept unless overwrite is set, so ranges
// edited in the database survive restarts.
func SyncReferenceRanges(ctx context.Context, table analysis.RangeTable, overwrite bool) (int, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	if err := table.Validate(); err != nil {
		return 0, err
	}

	query := `
		INSERT INTO reference_ranges (id, marker_name, unit, ref_low, ref_high, critical_low, critical_high)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (marker_name) DO NOTHING
	`
	if overwrite {
		query = `
			INSERT INTO reference_ranges (id, marker_name, unit, ref_low, ref_high, critical_low, critical_high)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (marker_name)
			DO UPDATE SET
				unit = EXCLUDED.unit,
				ref_low = EXCLUDED.ref_low,
				ref_high = EXCLUDED.ref_high,
				critical_low = EXCLUDED.critical_low,
				critical_high = EXCLUDED.critical_high,
				updated_at = now()
		`
	}

	logger.Infof("Syncing %d reference range definitions to database...", len(table))

	written := 0

	for _, name := range table.Names() {
		row := rowFromRange(name, table[name])

		tag, err := pool.Exec(ctx, query,
			row.ID, row.MarkerName, row.Unit,
			row.RefLow, row.RefHigh,
			row.CriticalLow, row.CriticalHigh,
		)
		if err != nil {
			return written, fmt.Errorf("failed to sync reference range for %s: %w", row.MarkerName, err)
		}

		written += int(tag.RowsAffected())
	}

	logger.Info("Synced reference ranges", "written", written, "overwrite", overwrite)

	return written, nil
}

// ListReferenceRanges returns every stored row ordered by marker name.
func ListReferenceRanges(ctx context.Context) ([]ReferenceRangeRow, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	rows, err := pool.Query(ctx, `
		SELECT id, marker_name, unit, ref_low, ref_high, critical_low, critical_high, created_at, updated_at
		FROM reference_ranges
		ORDER BY marker_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reference ranges: %w", err)
	}
	defer rows.Close()

	var out []ReferenceRangeRow

	for rows.Next() {
		var row ReferenceRangeRow
		if err := rows.Scan(
			&row.ID, &row.MarkerName, &row.Unit,
			&row.RefLow, &row.RefHigh,
			&row.CriticalLow, &row.CriticalHigh,
			&row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reference range: %w", err)
		}

		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reference ranges: %w", err)
	}

	return out, nil
}

// LoadReferenceRanges returns the stored ranges as a table.
func LoadReferenceRanges(ctx context.Context) (analysis.RangeTable, error) {
	rows, err := ListReferenceRanges(ctx)
	if err != nil {
		return nil, err
	}

	return rowsToTable(rows)
}
