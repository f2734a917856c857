/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import (
	"fmt"
	"sort"
)

// Bounds used when a marker has neither an override nor a table entry.
const (
	DefaultRefLow  = 0
	DefaultRefHigh = 999999
)

// ReferenceRange represents the normal interval of a marker and its optional
// critical bounds
type ReferenceRange struct {
	Low          float64  `json:"low" yaml:"low"`
	High         float64  `json:"high" yaml:"high"`
	Unit         string   `json:"unit" yaml:"unit"`
	CriticalLow  *float64 `json:"criticalLow,omitempty" yaml:"critical_low,omitempty"`
	CriticalHigh *float64 `json:"criticalHigh,omitempty" yaml:"critical_high,omitempty"`
}

// Validate checks criticalLow < low <= high < criticalHigh.
func (r ReferenceRange) Validate() error {
	if r.Low > r.High {
		return fmt.Errorf("%w: low %v is above high %v", ErrInvalidRange, r.Low, r.High)
	}

	if r.CriticalLow != nil && *r.CriticalLow >= r.Low {
		return fmt.Errorf("%w: critical low %v must be below low %v", ErrInvalidRange, *r.CriticalLow, r.Low)
	}

	if r.CriticalHigh != nil && *r.CriticalHigh <= r.High {
		return fmt.Errorf("%w: critical high %v must be above high %v", ErrInvalidRange, *r.CriticalHigh, r.High)
	}

	return nil
}

// RangeTable maps canonical marker names to reference ranges. Tables are
// treated as read-only once handed to an Engine.
type RangeTable map[string]ReferenceRange

// Lookup resolves aliases and returns the entry for a marker name.
func (t RangeTable) Lookup(name string) (ReferenceRange, bool) {
	canonical, _ := CanonicalName(name)
	if rr, ok := t[canonical]; ok {
		return rr, true
	}

	// Entries added from outside the binary have no alias index. Sorted
	// order keeps the answer stable even for an unvalidated table.
	folded := foldName(canonical)
	for _, key := range t.Names() {
		if foldName(key) == folded {
			return t[key], true
		}
	}

	return ReferenceRange{}, false
}

// Validate checks every entry of the table and rejects keys that resolve
// to the same marker, such as "Lipase" and "lipase".
func (t RangeTable) Validate() error {
	seen := make(map[string]string, len(t))

	for _, name := range t.Names() {
		if err := t[name].Validate(); err != nil {
			return fmt.Errorf("reference range %q: %w", name, err)
		}

		canonical, _ := CanonicalName(name)
		folded := foldName(canonical)

		if prev, ok := seen[folded]; ok {
			return fmt.Errorf("%w: %q and %q", ErrDuplicateMarker, prev, name)
		}

		seen[folded] = name
	}

	return nil
}

// Names returns the table keys in sorted order.
func (t RangeTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Merge returns a new table holding t with every entry of other applied on
// top. Keys of other are canonicalized first and replace any entry whose
// name differs only in case or spacing.
func (t RangeTable) Merge(other RangeTable) RangeTable {
	merged := make(RangeTable, len(t)+len(other))
	for name, rr := range t {
		merged[name] = rr
	}

	// Existing spellings of the same marker are replaced, not kept
	// alongside. Names of other are applied in sorted order.
	for _, name := range other.Names() {
		canonical, _ := CanonicalName(name)
		folded := foldName(canonical)

		for key := range merged {
			if key != canonical && foldName(key) == folded {
				delete(merged, key)
			}
		}

		merged[canonical] = other[name]
	}

	return merged
}

// ptr is a helper to create pointers to float64 literals
func ptr(f float64) *float64 {
	return &f
}

// DefaultRanges returns a fresh copy of the compiled-in reference table.
// Adult, sex-agnostic intervals in conventional US units.
func DefaultRanges() RangeTable {
	return RangeTable{
		// ===== COMPLETE BLOOD COUNT =====
		"Hemoglobin": {Low: 12.0, High: 16.0, Unit: "g/dL", CriticalLow: ptr(7.0), CriticalHigh: ptr(20.0)},
		"Hematocrit": {Low: 36, High: 48, Unit: "%", CriticalLow: ptr(20), CriticalHigh: ptr(60)},
		"WBC":        {Low: 4.0, High: 11.0, Unit: "×10^3/µL", CriticalLow: ptr(2.0), CriticalHigh: ptr(30.0)},
		"Platelets":  {Low: 150, High: 400, Unit: "×10^3/µL", CriticalLow: ptr(50), CriticalHigh: ptr(1000)},

		// ===== COMPREHENSIVE METABOLIC PANEL =====
		"Sodium":     {Low: 135, High: 145, Unit: "mmol/L", CriticalLow: ptr(120), CriticalHigh: ptr(160)},
		"Potassium":  {Low: 3.5, High: 5.1, Unit: "mmol/L", CriticalLow: ptr(2.5), CriticalHigh: ptr(6.5)},
		"Chloride":   {Low: 98, High: 107, Unit: "mmol/L", CriticalLow: ptr(80), CriticalHigh: ptr(120)},
		"CO2":        {Low: 22, High: 29, Unit: "mmol/L", CriticalLow: ptr(15), CriticalHigh: ptr(40)},
		"BUN":        {Low: 7, High: 20, Unit: "mg/dL", CriticalLow: ptr(0), CriticalHigh: ptr(100)},
		"Creatinine": {Low: 0.6, High: 1.3, Unit: "mg/dL", CriticalLow: ptr(0), CriticalHigh: ptr(10)},
		"Glucose":    {Low: 70, High: 99, Unit: "mg/dL", CriticalLow: ptr(40), CriticalHigh: ptr(400)},
		"Calcium":    {Low: 8.6, High: 10.2, Unit: "mg/dL", CriticalLow: ptr(6.0), CriticalHigh: ptr(14.0)},
		// A lower bound of zero leaves no room for a critical low.
		"AST":             {Low: 0, High: 40, Unit: "U/L", CriticalHigh: ptr(500)},
		"ALT":             {Low: 0, High: 40, Unit: "U/L", CriticalHigh: ptr(500)},
		"Alk Phos":        {Low: 44, High: 147, Unit: "U/L", CriticalLow: ptr(0), CriticalHigh: ptr(1000)},
		"Albumin":         {Low: 3.5, High: 5.5, Unit: "g/dL", CriticalLow: ptr(2.0), CriticalHigh: ptr(6.0)},
		"Total Bilirubin": {Low: 0.1, High: 1.2, Unit: "mg/dL", CriticalLow: ptr(0), CriticalHigh: ptr(20)},

		// ===== LIPID PANEL =====
		"Total Cholesterol": {Low: 0, High: 200, Unit: "mg/dL", CriticalHigh: ptr(300)},
		"LDL":               {Low: 0, High: 100, Unit: "mg/dL", CriticalHigh: ptr(190)},
		"HDL":               {Low: 50, High: 200, Unit: "mg/dL", CriticalLow: ptr(20)},
		"Triglycerides":     {Low: 0, High: 150, Unit: "mg/dL", CriticalHigh: ptr(500)},

		// ===== GLYCEMIC CONTROL =====
		"A1c": {Low: 4.8, High: 5.6, Unit: "%", CriticalHigh: ptr(10.0)},

		// ===== THYROID =====
		"TSH":     {Low: 0.4, High: 4.0, Unit: "µIU/mL", CriticalLow: ptr(0.01), CriticalHigh: ptr(20.0)},
		"Free T4": {Low: 0.8, High: 1.8, Unit: "ng/dL", CriticalLow: ptr(0.1), CriticalHigh: ptr(5.0)},

		// ===== VITAMIN D =====
		"Vitamin D 25-OH": {Low: 30, High: 100, Unit: "ng/mL", CriticalLow: ptr(10), CriticalHigh: ptr(150)},

		// ===== IRON STUDIES =====
		"Ferritin":               {Low: 30, High: 150, Unit: "ng/mL", CriticalLow: ptr(5), CriticalHigh: ptr(500)},
		"Serum Iron":             {Low: 60, High: 170, Unit: "µg/dL", CriticalLow: ptr(20), CriticalHigh: ptr(300)},
		"TIBC":                   {Low: 240, High: 450, Unit: "µg/dL", CriticalLow: ptr(100), CriticalHigh: ptr(600)},
		"Transferrin Saturation": {Low: 20, High: 50, Unit: "%", CriticalLow: ptr(5), CriticalHigh: ptr(100)},
	}
}
