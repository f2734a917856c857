/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

// Status is the classification of a single marker value
type Status string

// Status values, ordered from lowest to highest.
const (
	StatusCriticalLow  Status = "CRITICAL_LOW"
	StatusLow          Status = "LOW"
	StatusNormal       Status = "NORMAL"
	StatusHigh         Status = "HIGH"
	StatusCriticalHigh Status = "CRITICAL_HIGH"
)

// IsCritical reports whether the status is beyond a critical bound.
func (s Status) IsCritical() bool {
	return s == StatusCriticalLow || s == StatusCriticalHigh
}

// IsAbnormal reports whether the status is anything other than normal.
func (s Status) IsAbnormal() bool {
	return s != StatusNormal
}

// IsLow reports whether the value sits below the reference interval.
func (s Status) IsLow() bool {
	return s == StatusLow || s == StatusCriticalLow
}

// Label returns the status with underscores replaced, e.g. "CRITICAL LOW".
func (s Status) Label() string {
	switch s {
	case StatusCriticalLow:
		return "CRITICAL LOW"
	case StatusCriticalHigh:
		return "CRITICAL HIGH"
	default:
		return string(s)
	}
}

// Severity is the worst-case aggregate classification of a submission
type Severity string

// Severity values.
const (
	SeverityOK       Severity = "OK"
	SeverityMild     Severity = "MILD"
	SeverityModerate Severity = "MODERATE"
	SeveritySevere   Severity = "SEVERE"
)

// RangeSource records where the bounds of a finding came from.
type RangeSource string

// RangeSource values.
const (
	RangeSourceOverride RangeSource = "override"
	RangeSourceTable    RangeSource = "table"
	RangeSourceDefault  RangeSource = "default"
)

// Marker is a single named lab result
type Marker struct {
	Name    string   `json:"name"`
	Value   float64  `json:"value"`
	Unit    string   `json:"unit"`
	RefLow  *float64 `json:"refLow,omitempty"`
	RefHigh *float64 `json:"refHigh,omitempty"`
}

// Panel is a group of related markers
type Panel struct {
	PanelName PanelType `json:"panelName"`
	Markers   []Marker  `json:"markers"`
}

// Submission is the validated input to the engine. PatientID and
// CollectedAt are carried through untouched and never read by any rule.
type Submission struct {
	PatientID   string  `json:"patientId,omitempty"`
	CollectedAt string  `json:"collectedAt,omitempty"`
	Panels      []Panel `json:"panels"`
}

// MarkerFinding is the classified outcome for one marker
type MarkerFinding struct {
	Marker      string      `json:"marker"`
	Value       float64     `json:"value"`
	Unit        string      `json:"unit"`
	Status      Status      `json:"status"`
	Note        string      `json:"note"`
	RefLow      float64     `json:"refLow"`
	RefHigh     float64     `json:"refHigh"`
	RangeSource RangeSource `json:"rangeSource"`
}

// PanelFinding holds every marker finding of a panel plus the panel summary
type PanelFinding struct {
	PanelName PanelType       `json:"panelName"`
	Findings  []MarkerFinding `json:"findings"`
	Summary   string          `json:"summary,omitempty"`
}

// AnalysisResult is the output of a single analysis
type AnalysisResult struct {
	OverallSeverity Severity       `json:"overallSeverity"`
	SummaryBullets  []string       `json:"summaryBullets"`
	PanelFindings   []PanelFinding `json:"panelFindings"`
}
