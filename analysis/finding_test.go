// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package analysis

import "testing"

func TestAnalyzeMarkerUsesTable(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	f := e.analyzeMarker(Marker{Name: "Hemoglobin", Value: 13.5, Unit: "g/dL"})

	if f.Status != StatusNormal {
		t.Fatalf("expected NORMAL, got %s", f.Status)
	}

	if f.RefLow != 12 || f.RefHigh != 16 {
		t.Fatalf("unexpected bounds %v-%v", f.RefLow, f.RefHigh)
	}

	if f.RangeSource != RangeSourceTable {
		t.Fatalf("expected table source, got %s", f.RangeSource)
	}

	if f.Note != "Within normal range (12-16 g/dL)" {
		t.Fatalf("unexpected note %q", f.Note)
	}
}

func TestAnalyzeMarkerOverrideWins(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	f := e.analyzeMarker(Marker{Name: "Glucose", Value: 105, Unit: "mg/dL", RefLow: ptr(65), RefHigh: ptr(110)})

	if f.Status != StatusNormal {
		t.Fatalf("expected NORMAL with override, got %s", f.Status)
	}

	if f.RefLow != 65 || f.RefHigh != 110 || f.RangeSource != RangeSourceOverride {
		t.Fatalf("override not applied: %+v", f)
	}

	// Critical bounds still come from the table.
	f = e.analyzeMarker(Marker{Name: "Glucose", Value: 35, Unit: "mg/dL", RefLow: ptr(10), RefHigh: ptr(110)})
	if f.Status != StatusCriticalLow {
		t.Fatalf("expected CRITICAL_LOW from table critical bound, got %s", f.Status)
	}
}

func TestAnalyzeMarkerPartialOverride(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	f := e.analyzeMarker(Marker{Name: "Sodium", Value: 147, Unit: "mmol/L", RefHigh: ptr(148)})

	if f.RefLow != 135 || f.RefHigh != 148 {
		t.Fatalf("expected table low and override high, got %v-%v", f.RefLow, f.RefHigh)
	}

	if f.Status != StatusNormal {
		t.Fatalf("expected NORMAL, got %s", f.Status)
	}
}

func TestAnalyzeMarkerUnknownFallsBackToDefault(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	f := e.analyzeMarker(Marker{Name: "Mystery Enzyme", Value: 4200, Unit: "U/L"})

	if f.Status != StatusNormal {
		t.Fatalf("expected NORMAL for unknown marker, got %s", f.Status)
	}

	if f.RefLow != DefaultRefLow || f.RefHigh != DefaultRefHigh {
		t.Fatalf("unexpected default bounds %v-%v", f.RefLow, f.RefHigh)
	}

	if f.RangeSource != RangeSourceDefault {
		t.Fatalf("expected default source, got %s", f.RangeSource)
	}

	if f.Note != "Within normal range (0-999999 U/L)" {
		t.Fatalf("unexpected note %q", f.Note)
	}

	f = e.analyzeMarker(Marker{Name: "Mystery Enzyme", Value: 1e7})
	if f.Status != StatusHigh {
		t.Fatalf("expected HIGH above the sentinel, got %s", f.Status)
	}
}

func TestAnalyzeMarkerResolvesAliases(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)

	tests := []struct {
		name    string
		refLow  float64
		refHigh float64
	}{
		{name: "FT4", refLow: 0.8, refHigh: 1.8},
		{name: "free t4", refLow: 0.8, refHigh: 1.8},
		{name: "Hemoglobin A1c", refLow: 4.8, refHigh: 5.6},
		{name: "Transferrin Sat", refLow: 20, refHigh: 50},
		{name: "  Vitamin   D ", refLow: 30, refHigh: 100},
		{name: "Alkaline Phosphatase", refLow: 44, refHigh: 147},
		{name: "Bicarbonate", refLow: 22, refHigh: 29},
	}

	for _, tt := range tests {
		f := e.analyzeMarker(Marker{Name: tt.name, Value: 1})
		if f.RefLow != tt.refLow || f.RefHigh != tt.refHigh {
			t.Fatalf("%q resolved to %v-%v, want %v-%v", tt.name, f.RefLow, f.RefHigh, tt.refLow, tt.refHigh)
		}

		if f.Marker != tt.name {
			t.Fatalf("finding must keep the submitted name, got %q", f.Marker)
		}
	}
}

func TestFindingNoteTemplates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		unit   string
		want   string
	}{
		{StatusCriticalLow, "g/dL", "Critically low - significantly below reference range (12-16 g/dL)"},
		{StatusLow, "g/dL", "Below reference range (12-16 g/dL)"},
		{StatusNormal, "g/dL", "Within normal range (12-16 g/dL)"},
		{StatusHigh, "g/dL", "Above reference range (12-16 g/dL)"},
		{StatusCriticalHigh, "g/dL", "Critically high - significantly above reference range (12-16 g/dL)"},
		{StatusNormal, "", "Within normal range (12-16)"},
	}

	for _, tt := range tests {
		if got := findingNote(tt.status, 12, 16, tt.unit); got != tt.want {
			t.Fatalf("findingNote(%s) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{
		12:     "12",
		0.6:    "0.6",
		999999: "999999",
		-1.25:  "-1.25",
		0.01:   "0.01",
	}

	for in, want := range tests {
		if got := formatNumber(in); got != want {
			t.Fatalf("formatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestAnalyzeMarkerZeroLiverEnzymesAreNormal(t *testing.T) {
	t.Parallel()

	table := DefaultRanges()
	e := NewEngine(nil)

	for _, name := range []string{"ALT", "AST"} {
		if table[name].CriticalLow != nil {
			t.Fatalf("%s must not carry a critical low", name)
		}

		f := e.analyzeMarker(Marker{Name: name, Value: 0, Unit: "U/L"})

		if f.Status != StatusNormal {
			t.Fatalf("%s=0: expected NORMAL, got %s", name, f.Status)
		}

		if f.RangeSource != RangeSourceTable {
			t.Fatalf("%s=0: expected table source, got %s", name, f.RangeSource)
		}
	}
}
