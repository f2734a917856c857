/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import (
	"fmt"
	"strconv"
)

// analyzeMarker resolves the bounds for a marker and classifies it.
// A per-marker override wins over the table, which wins over the default.
// Critical bounds only ever come from the table.
func (e *Engine) analyzeMarker(m Marker) MarkerFinding {
	rr, known := e.ranges.Lookup(m.Name)

	refLow, refHigh := float64(DefaultRefLow), float64(DefaultRefHigh)
	source := RangeSourceDefault

	var criticalLow, criticalHigh *float64

	if known {
		refLow, refHigh = rr.Low, rr.High
		criticalLow, criticalHigh = rr.CriticalLow, rr.CriticalHigh
		source = RangeSourceTable
	}

	if m.RefLow != nil {
		refLow = *m.RefLow
		source = RangeSourceOverride
	}

	if m.RefHigh != nil {
		refHigh = *m.RefHigh
		source = RangeSourceOverride
	}

	status := Classify(m.Value, refLow, refHigh, criticalLow, criticalHigh)

	return MarkerFinding{
		Marker:      m.Name,
		Value:       m.Value,
		Unit:        m.Unit,
		Status:      status,
		Note:        findingNote(status, refLow, refHigh, m.Unit),
		RefLow:      refLow,
		RefHigh:     refHigh,
		RangeSource: source,
	}
}

func findingNote(status Status, refLow, refHigh float64, unit string) string {
	bounds := formatRange(refLow, refHigh, unit)

	switch status {
	case StatusCriticalLow:
		return "Critically low - significantly below reference range (" + bounds + ")"
	case StatusLow:
		return "Below reference range (" + bounds + ")"
	case StatusHigh:
		return "Above reference range (" + bounds + ")"
	case StatusCriticalHigh:
		return "Critically high - significantly above reference range (" + bounds + ")"
	default:
		return "Within normal range (" + bounds + ")"
	}
}

func formatRange(low, high float64, unit string) string {
	if unit == "" {
		return fmt.Sprintf("%s-%s", formatNumber(low), formatNumber(high))
	}

	return fmt.Sprintf("%s-%s %s", formatNumber(low), formatNumber(high), unit)
}

// formatNumber renders the shortest representation, so 12.0 prints as "12".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatQuantity joins a value and its unit for summary lines.
func formatQuantity(v float64, unit string) string {
	if unit == "" {
		return formatNumber(v)
	}

	return formatNumber(v) + " " + unit
}
