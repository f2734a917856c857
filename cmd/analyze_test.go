// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/humaidq/lablens/analysis"
	"github.com/humaidq/lablens/schema"
)

const thyroidSubmission = `{"panels":[{"panelName":"THYROID","markers":[
	{"name":"TSH","value":6.2,"unit":"mIU/L"},
	{"name":"Free T4","value":1.1,"unit":"ng/dL"}
]}]}`

func TestRunAnalyzeText(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := runAnalyze(strings.NewReader(thyroidSubmission), &out, analysis.NewEngine(nil), formatText); err != nil {
		t.Fatalf("runAnalyze failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Overall severity: MILD",
		"Thyroid Panel",
		"TSH",
		"HIGH",
		analysis.Disclaimers[0],
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("text output missing %q:\n%s", want, got)
		}
	}
}

func TestRunAnalyzeJSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := runAnalyze(strings.NewReader(thyroidSubmission), &out, analysis.NewEngine(nil), formatJSON); err != nil {
		t.Fatalf("runAnalyze failed: %v", err)
	}

	var result analysis.AnalysisResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	if result.OverallSeverity != analysis.SeverityMild || len(result.PanelFindings) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRunAnalyzeRejectsInvalidSubmission(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := runAnalyze(strings.NewReader(`{"panels":[]}`), &out, analysis.NewEngine(nil), formatText)

	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if out.Len() != 0 {
		t.Fatalf("nothing should be printed for invalid input, got %q", out.String())
	}
}

func TestWriteRangeTable(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	table := analysis.RangeTable{
		"Hemoglobin": {Low: 12, High: 16, Unit: "g/dL", CriticalLow: float64Ptr(7)},
	}

	if err := writeRangeTable(&out, table); err != nil {
		t.Fatalf("writeRangeTable failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", out.String())
	}

	if fields := strings.Fields(lines[1]); strings.Join(fields, " ") != "Hemoglobin 12 16 g/dL 7 -" {
		t.Fatalf("unexpected row %q", lines[1])
	}
}
