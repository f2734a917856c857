// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/humaidq/lablens/analysis"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func TestDecodeRangesCanonicalizesNames(t *testing.T) {
	t.Parallel()

	doc := `
ranges:
  haemoglobin:
    low: 13
    high: 17
    unit: g/dL
    critical_low: 7
  Ferritin Plus:
    low: 1
    high: 2
    unit: ng/mL
`

	table, err := decodeRanges(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decodeRanges failed: %v", err)
	}

	want := analysis.RangeTable{
		"Hemoglobin":    {Low: 13, High: 17, Unit: "g/dL", CriticalLow: float64Ptr(7)},
		"Ferritin Plus": {Low: 1, High: 2, Unit: "ng/mL"},
	}

	if diff := cmp.Diff(want, table); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRangesRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{name: "empty", doc: "", wantErr: errEmptyRangesFile},
		{name: "no entries", doc: "ranges: {}\n", wantErr: errEmptyRangesFile},
		{name: "inverted", doc: "ranges:\n  WBC: {low: 11, high: 4}\n", wantErr: analysis.ErrInvalidRange},
		{name: "case duplicate", doc: "ranges:\n  Lipase: {low: 0, high: 60}\n  lipase: {low: 0, high: 10}\n", wantErr: analysis.ErrDuplicateMarker},
		{name: "critical inside", doc: "ranges:\n  WBC: {low: 4, high: 11, critical_high: 10}\n", wantErr: analysis.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := decodeRanges(strings.NewReader(tt.doc)); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := decodeRanges(strings.NewReader("ranges:\n  WBC: {low: 4, hi: 11}\n")); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestLoadRangeTableAppliesOverrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ranges.yaml")
	if err := os.WriteFile(path, []byte("ranges:\n  vitamin d:\n    low: 20\n    high: 80\n    unit: ng/mL\n"), 0o600); err != nil {
		t.Fatalf("failed to write ranges file: %v", err)
	}

	table, err := loadRangeTable(context.Background(), "", path)
	if err != nil {
		t.Fatalf("loadRangeTable failed: %v", err)
	}

	if got := table[analysis.MarkerVitaminD]; got.Low != 20 || got.High != 80 {
		t.Fatalf("override not applied: %+v", got)
	}

	if len(table) != len(analysis.DefaultRanges()) {
		t.Fatalf("override must replace, not add: got %d entries", len(table))
	}
}

func TestLoadRangeTableDefaults(t *testing.T) {
	t.Parallel()

	table, err := loadRangeTable(context.Background(), "", "")
	if err != nil {
		t.Fatalf("loadRangeTable failed: %v", err)
	}

	if diff := cmp.Diff(analysis.DefaultRanges(), table); diff != "" {
		t.Fatalf("default table mismatch (-want +got):\n%s", diff)
	}
}

func TestExportedRangesReload(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := encodeRanges(&buf, analysis.DefaultRanges()); err != nil {
		t.Fatalf("encodeRanges failed: %v", err)
	}

	table, err := decodeRanges(&buf)
	if err != nil {
		t.Fatalf("exported file does not load: %v", err)
	}

	if diff := cmp.Diff(analysis.DefaultRanges(), table); diff != "" {
		t.Fatalf("exported table mismatch (-want +got):\n%s", diff)
	}
}
