/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/flamego/flamego"

	"github.com/humaidq/lablens/analysis"
	"github.com/humaidq/lablens/schema"
)

type analyzeResponse struct {
	analysis.AnalysisResult
	RefinedText string `json:"refinedText,omitempty"`
	RefineError string `json:"refineError,omitempty"`
}

// Analyze validates a submission and returns its analysis. With
// ?refine=true the response also carries the rephrased text, or the reason
// it is missing; a refinement failure never fails the analysis.
func Analyze(c flamego.Context, engine *analysis.Engine, refiner Refiner, id RequestID) {
	body, err := readBody(c)
	if err != nil {
		writeBodyError(c, err)
		return
	}

	sub, err := schema.DecodeSubmission(bytes.NewReader(body))
	if err != nil {
		analysisLogger.Info("rejected submission", "request_id", string(id), "error_count", issueCount(err))
		writeError(c, http.StatusBadRequest, err)

		return
	}

	result := engine.Analyze(sub)
	analysisLogger.Info("analyzed submission",
		"request_id", string(id),
		"panels", len(sub.Panels),
		"markers", markerCount(sub),
		"severity", result.OverallSeverity,
	)

	resp := analyzeResponse{AnalysisResult: result}

	if wantRefine(c) {
		text, err := refiner.Refine(c.Request().Context(), result)
		if err != nil {
			refineLogger.Warn("refinement skipped", "request_id", string(id), "error", err)
			resp.RefineError = refineErrorMessage(err)
		} else {
			resp.RefinedText = text
		}
	}

	writeJSON(c, http.StatusOK, resp)
}

func wantRefine(c flamego.Context) bool {
	v, err := strconv.ParseBool(c.Query("refine"))
	return err == nil && v
}

func markerCount(sub analysis.Submission) int {
	n := 0
	for _, p := range sub.Panels {
		n += len(p.Markers)
	}

	return n
}

func issueCount(err error) int {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return len(verr.Issues)
	}

	return 1
}
