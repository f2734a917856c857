// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/humaidq/lablens/analysis"
)

func issuePaths(t *testing.T, err error) []string {
	t.Helper()

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}

	paths := make([]string, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		paths = append(paths, issue.Path)
	}

	return paths
}

func TestDecodeSubmissionValid(t *testing.T) {
	t.Parallel()

	body := `{
		"patientId": "abc",
		"collectedAt": "2025-01-15",
		"panels": [
			{"panelName": "LIPID", "markers": [
				{"name": "LDL", "value": 150, "unit": "mg/dL"},
				{"name": "HDL", "value": 35, "unit": "mg/dL", "refLow": 40, "refHigh": 90}
			]}
		]
	}`

	sub, err := DecodeSubmission(strings.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeSubmission failed: %v", err)
	}

	low, high := 40.0, 90.0
	want := analysis.Submission{
		PatientID:   "abc",
		CollectedAt: "2025-01-15",
		Panels: []analysis.Panel{{
			PanelName: analysis.PanelLipid,
			Markers: []analysis.Marker{
				{Name: "LDL", Value: 150, Unit: "mg/dL"},
				{Name: "HDL", Value: 35, Unit: "mg/dL", RefLow: &low, RefHigh: &high},
			},
		}},
	}

	if diff := cmp.Diff(want, sub); diff != "" {
		t.Fatalf("decoded submission mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSubmissionReportsEveryField(t *testing.T) {
	t.Parallel()

	body := `{"panels": [
		{"panelName": "URINE", "markers": [{"value": 1, "unit": "x"}]},
		{"panelName": "CBC", "markers": []},
		{"markers": [{"name": "WBC", "unit": "x"}, {"name": " ", "value": 2}]}
	]}`

	_, err := DecodeSubmission(strings.NewReader(body))

	want := []string{
		"panels[0].markers[0].name",
		"panels[2].panelName",
		"panels[2].markers[0].value",
		"panels[2].markers[1].unit",
		"panels[0].panelName",
		"panels[1].markers",
		"panels[2].markers[1].name",
	}

	if diff := cmp.Diff(want, issuePaths(t, err)); diff != "" {
		t.Fatalf("issue paths mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSubmissionRequiresPanels(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{}`, `{"panels": []}`} {
		_, err := DecodeSubmission(strings.NewReader(body))
		if diff := cmp.Diff([]string{"panels"}, issuePaths(t, err)); diff != "" {
			t.Fatalf("body %s: unexpected issues:\n%s", body, diff)
		}
	}
}

func TestDecodeSubmissionRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"panels": [`, `not json`, `{"panels": [{"panelName": "CBC", "markers": [{"name": "WBC", "value": "high", "unit": ""}]}]}`} {
		_, err := DecodeSubmission(strings.NewReader(body))

		var verr *ValidationError
		if !errors.As(err, &verr) || len(verr.Issues) != 1 {
			t.Fatalf("body %q: expected a single validation issue, got %v", body, err)
		}
	}
}

func TestValidateSubmissionRanges(t *testing.T) {
	t.Parallel()

	low, high := 10.0, 5.0
	sub := analysis.Submission{Panels: []analysis.Panel{{
		PanelName: analysis.PanelBloodCount,
		Markers: []analysis.Marker{
			{Name: "WBC", Value: math.NaN()},
			{Name: "Platelets", Value: 200, RefLow: &low, RefHigh: &high},
		},
	}}}

	want := []string{"panels[0].markers[0].value", "panels[0].markers[1].refLow"}
	if diff := cmp.Diff(want, issuePaths(t, ValidateSubmission(sub))); diff != "" {
		t.Fatalf("issue paths mismatch (-want +got):\n%s", diff)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Issues: []Issue{
		{Path: "panels", Message: "at least one panel is required"},
		{Message: "invalid JSON: EOF"},
	}}

	want := "validation failed: panels: at least one panel is required; invalid JSON: EOF"
	if got := err.Error(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
