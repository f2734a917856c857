/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package schema validates submissions at the transport boundary and turns
// them into analysis input.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/humaidq/lablens/analysis"
)

// Issue describes a single offending field.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError lists every problem found in a submission
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path == "" {
			parts = append(parts, issue.Message)
			continue
		}

		parts = append(parts, issue.Path+": "+issue.Message)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(path, format string, args ...interface{}) {
	e.Issues = append(e.Issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Wire shapes use pointers so missing fields can be told apart from zero.
type markerInput struct {
	Name    *string  `json:"name"`
	Value   *float64 `json:"value"`
	Unit    *string  `json:"unit"`
	RefLow  *float64 `json:"refLow"`
	RefHigh *float64 `json:"refHigh"`
}

type panelInput struct {
	PanelName *string       `json:"panelName"`
	Markers   []markerInput `json:"markers"`
}

type submissionInput struct {
	PatientID   *string      `json:"patientId"`
	CollectedAt *string      `json:"collectedAt"`
	Panels      []panelInput `json:"panels"`
}

// DecodeSubmission reads one JSON submission and validates it. The returned
// error is a *ValidationError for malformed or invalid input.
func DecodeSubmission(r io.Reader) (analysis.Submission, error) {
	var in submissionInput

	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return analysis.Submission{}, &ValidationError{Issues: []Issue{{
				Path:    typeErr.Field,
				Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}}}
		}

		return analysis.Submission{}, &ValidationError{Issues: []Issue{{Message: "invalid JSON: " + err.Error()}}}
	}

	return in.validate()
}

// ValidateSubmission applies the boundary rules to an already-typed
// submission, e.g. one built in code or decoded elsewhere.
func ValidateSubmission(sub analysis.Submission) error {
	verr := &ValidationError{}

	if len(sub.Panels) == 0 {
		verr.add("panels", "at least one panel is required")
	}

	for i, p := range sub.Panels {
		path := fmt.Sprintf("panels[%d]", i)
		if !p.PanelName.IsValid() {
			verr.add(path+".panelName", "must be one of %s", panelVocabulary())
		}

		if len(p.Markers) == 0 {
			verr.add(path+".markers", "at least one marker is required")
		}

		for j, m := range p.Markers {
			validateMarker(verr, fmt.Sprintf("%s.markers[%d]", path, j), m)
		}
	}

	if len(verr.Issues) > 0 {
		return verr
	}

	return nil
}

func validateMarker(verr *ValidationError, path string, m analysis.Marker) {
	if strings.TrimSpace(m.Name) == "" {
		verr.add(path+".name", "must not be empty")
	}

	if !isFinite(m.Value) {
		verr.add(path+".value", "must be a finite number")
	}

	if m.RefLow != nil && !isFinite(*m.RefLow) {
		verr.add(path+".refLow", "must be a finite number")
	}

	if m.RefHigh != nil && !isFinite(*m.RefHigh) {
		verr.add(path+".refHigh", "must be a finite number")
	}

	if m.RefLow != nil && m.RefHigh != nil && *m.RefLow > *m.RefHigh {
		verr.add(path+".refLow", "must not exceed refHigh")
	}
}

func (in submissionInput) validate() (analysis.Submission, error) {
	verr := &ValidationError{}
	sub := analysis.Submission{Panels: make([]analysis.Panel, 0, len(in.Panels))}

	if in.PatientID != nil {
		sub.PatientID = *in.PatientID
	}

	if in.CollectedAt != nil {
		sub.CollectedAt = *in.CollectedAt
	}

	for i, p := range in.Panels {
		path := fmt.Sprintf("panels[%d]", i)
		panel := analysis.Panel{Markers: make([]analysis.Marker, 0, len(p.Markers))}

		if p.PanelName == nil {
			verr.add(path+".panelName", "is required")
		} else {
			panel.PanelName = analysis.PanelType(*p.PanelName)
		}

		for j, m := range p.Markers {
			mpath := fmt.Sprintf("%s.markers[%d]", path, j)
			marker := analysis.Marker{RefLow: m.RefLow, RefHigh: m.RefHigh}

			if m.Name == nil {
				verr.add(mpath+".name", "is required")
			} else {
				marker.Name = *m.Name
			}

			if m.Value == nil {
				verr.add(mpath+".value", "is required")
			} else {
				marker.Value = *m.Value
			}

			if m.Unit == nil {
				verr.add(mpath+".unit", "is required")
			} else {
				marker.Unit = *m.Unit
			}

			panel.Markers = append(panel.Markers, marker)
		}

		sub.Panels = append(sub.Panels, panel)
	}

	if err := ValidateSubmission(sub); err != nil {
		var inner *ValidationError
		if errors.As(err, &inner) {
			verr.Issues = append(verr.Issues, inner.Issues...)
		}
	}

	if len(verr.Issues) > 0 {
		return analysis.Submission{}, dedupe(verr)
	}

	return sub, nil
}

// dedupe drops follow-up issues for fields already reported as missing.
func dedupe(verr *ValidationError) *ValidationError {
	seen := make(map[string]bool, len(verr.Issues))
	out := &ValidationError{Issues: make([]Issue, 0, len(verr.Issues))}

	for _, issue := range verr.Issues {
		if issue.Path != "" && seen[issue.Path] {
			continue
		}

		seen[issue.Path] = true
		out.Issues = append(out.Issues, issue)
	}

	return out
}

func panelVocabulary() string {
	types := analysis.AllPanelTypes()
	names := make([]string, 0, len(types))
	for _, p := range types {
		names = append(names, string(p))
	}

	return strings.Join(names, ", ")
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
