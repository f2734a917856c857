/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package analysis classifies lab markers against reference ranges and
// derives panel and submission summaries. It performs no I/O and keeps no
// state between calls.
package analysis

// moderateAbnormalCount is the number of abnormal markers that raises the
// overall severity to moderate.
const moderateAbnormalCount = 5

// Engine analyzes submissions against a fixed reference table. An Engine is
// safe for concurrent use.
type Engine struct {
	ranges RangeTable
}

// NewEngine returns an engine using the given table. A nil table selects
// the compiled-in defaults. The table must not be modified afterwards.
func NewEngine(ranges RangeTable) *Engine {
	if ranges == nil {
		ranges = DefaultRanges()
	}

	return &Engine{ranges: ranges}
}

// Ranges returns the table used by the engine.
func (e *Engine) Ranges() RangeTable {
	return e.ranges
}

var defaultEngine = NewEngine(nil)

// Analyze runs a submission through the default engine.
func Analyze(sub Submission) AnalysisResult {
	return defaultEngine.Analyze(sub)
}

// Analyze classifies every marker, runs the panel rules and aggregates the
// result. Identical input always yields identical output.
func (e *Engine) Analyze(sub Submission) AnalysisResult {
	panels := make([]PanelFinding, 0, len(sub.Panels))
	for _, p := range sub.Panels {
		panels = append(panels, e.analyzePanel(p))
	}

	var all, criticals, abnormals []MarkerFinding
	for _, pf := range panels {
		all = append(all, pf.Findings...)
	}

	for _, f := range all {
		if f.Status.IsCritical() {
			criticals = append(criticals, f)
		}

		if f.Status.IsAbnormal() {
			abnormals = append(abnormals, f)
		}
	}

	return AnalysisResult{
		OverallSeverity: overallSeverity(len(criticals), len(abnormals)),
		SummaryBullets:  summaryBullets(panels, all, criticals, abnormals),
		PanelFindings:   panels,
	}
}

// overallSeverity: any critical forces severe regardless of the count.
func overallSeverity(criticals, abnormals int) Severity {
	switch {
	case criticals > 0:
		return SeveritySevere
	case abnormals >= moderateAbnormalCount:
		return SeverityModerate
	case abnormals > 0:
		return SeverityMild
	default:
		return SeverityOK
	}
}
