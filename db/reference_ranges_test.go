// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/humaidq/lablens/analysis"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func TestRowFromRangeCanonicalizes(t *testing.T) {
	t.Parallel()

	rr := analysis.ReferenceRange{Low: 30, High: 100, Unit: "ng/mL"}
	row := rowFromRange("vitamin d", rr)

	if row.MarkerName != analysis.MarkerVitaminD {
		t.Fatalf("expected canonical name %q, got %q", analysis.MarkerVitaminD, row.MarkerName)
	}

	if row.ID == uuid.Nil {
		t.Fatal("expected a generated row id")
	}

	if diff := cmp.Diff(rr, row.Range()); diff != "" {
		t.Fatalf("range round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRowsToTable(t *testing.T) {
	t.Parallel()

	rows := []ReferenceRangeRow{
		{MarkerName: "Hemoglobin", Unit: "g/dL", RefLow: 12, RefHigh: 16, CriticalLow: float64Ptr(7)},
		{MarkerName: "ldl cholesterol", Unit: "mg/dL", RefLow: 0, RefHigh: 100},
	}

	table, err := rowsToTable(rows)
	if err != nil {
		t.Fatalf("rowsToTable failed: %v", err)
	}

	want := analysis.RangeTable{
		"Hemoglobin": {Low: 12, High: 16, Unit: "g/dL", CriticalLow: float64Ptr(7)},
		"LDL":        {Low: 0, High: 100, Unit: "mg/dL"},
	}

	if diff := cmp.Diff(want, table); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestRowsToTableRejectsInvalidRow(t *testing.T) {
	t.Parallel()

	_, err := rowsToTable([]ReferenceRangeRow{{MarkerName: "WBC", RefLow: 11, RefHigh: 4}})
	if !errors.Is(err, analysis.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestRowsToTableRejectsCaseDuplicates(t *testing.T) {
	t.Parallel()

	rows := []ReferenceRangeRow{
		{MarkerName: "Lipase", RefLow: 0, RefHigh: 60},
		{MarkerName: "lipase", RefLow: 0, RefHigh: 10},
	}

	if _, err := rowsToTable(rows); !errors.Is(err, analysis.ErrDuplicateMarker) {
		t.Fatalf("expected ErrDuplicateMarker, got %v", err)
	}
}

func TestQueriesRequirePool(t *testing.T) {
	t.Parallel()

	if pool != nil {
		t.Skip("pool initialized by integration setup")
	}

	ctx := context.Background()

	if _, err := SyncReferenceRanges(ctx, analysis.DefaultRanges(), false); !errors.Is(err, ErrDatabaseConnectionNotInitialized) {
		t.Fatalf("expected ErrDatabaseConnectionNotInitialized, got %v", err)
	}

	if _, err := LoadReferenceRanges(ctx); !errors.Is(err, ErrDatabaseConnectionNotInitialized) {
		t.Fatalf("expected ErrDatabaseConnectionNotInitialized, got %v", err)
	}

	if Ready() {
		t.Fatal("expected Ready to be false without a pool")
	}
}

func TestInitRequiresURL(t *testing.T) {
	t.Parallel()

	if err := Init(context.Background(), "  "); !errors.Is(err, ErrDatabaseURLRequired) {
		t.Fatalf("expected ErrDatabaseURLRequired, got %v", err)
	}
}
