/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/flamego/flamego"

	"github.com/humaidq/lablens/analysis"
	"github.com/humaidq/lablens/refine"
)

// Refiner rephrases a finished analysis. *refine.Client implements it.
type Refiner interface {
	Refine(ctx context.Context, result analysis.AnalysisResult) (string, error)
	Stream(ctx context.Context, result analysis.AnalysisResult, onChunk func(string) error) error
}

// DisabledRefiner is used when no chat endpoint is configured.
type DisabledRefiner struct{}

// Refine always fails with refine.ErrNotConfigured.
func (DisabledRefiner) Refine(context.Context, analysis.AnalysisResult) (string, error) {
	return "", refine.ErrNotConfigured
}

// Stream always fails with refine.ErrNotConfigured.
func (DisabledRefiner) Stream(context.Context, analysis.AnalysisResult, func(string) error) error {
	return refine.ErrNotConfigured
}

type refineRequest struct {
	AnalysisResult *analysis.AnalysisResult `json:"analysisResult"`
}

type refineResponse struct {
	RefinedText string `json:"refinedText"`
}

// Refine rephrases a previously returned analysis result. With
// ?stream=true the text is sent as server-sent events.
func Refine(c flamego.Context, refiner Refiner, id RequestID) {
	body, err := readBody(c)
	if err != nil {
		writeBodyError(c, err)
		return
	}

	var req refineRequest
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil || req.AnalysisResult == nil {
		writeError(c, http.StatusBadRequest, errAnalysisResultRequired)
		return
	}

	if wantStream(c) {
		streamRefinement(c, refiner, *req.AnalysisResult, id)
		return
	}

	text, err := refiner.Refine(c.Request().Context(), *req.AnalysisResult)
	if err != nil {
		refineLogger.Warn("refinement failed", "request_id", string(id), "error", err)
		writeError(c, http.StatusServiceUnavailable, errors.New(refineErrorMessage(err)))

		return
	}

	writeJSON(c, http.StatusOK, refineResponse{RefinedText: text})
}

// refineErrorMessage keeps upstream details out of responses.
func refineErrorMessage(err error) string {
	if errors.Is(err, refine.ErrNotConfigured) {
		return refine.ErrNotConfigured.Error()
	}

	return errRefineFailed.Error()
}

func wantStream(c flamego.Context) bool {
	v, err := strconv.ParseBool(c.Query("stream"))
	return err == nil && v
}

// streamRefinement relays chunks as "chunk" events and ends with "done" or
// "error". A failure before the first chunk is a plain 503.
func streamRefinement(c flamego.Context, refiner Refiner, result analysis.AnalysisResult, id RequestID) {
	w := c.ResponseWriter()
	started := false

	sendEvent := func(event, data string) {
		w.Write([]byte("event: " + event + "\n"))
		// Multi-line payloads need one data field per line.
		w.Write([]byte("data: " + strings.ReplaceAll(data, "\n", "\ndata: ") + "\n\n"))

		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}

	startStream := func() {
		if started {
			return
		}

		started = true

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)
	}

	err := refiner.Stream(c.Request().Context(), result, func(chunk string) error {
		startStream()
		sendEvent("chunk", chunk)

		return nil
	})
	if err != nil {
		refineLogger.Warn("refinement stream failed", "request_id", string(id), "error", err)

		if !started {
			writeError(c, http.StatusServiceUnavailable, errors.New(refineErrorMessage(err)))
			return
		}

		sendEvent("error", refineErrorMessage(err))

		return
	}

	startStream()
	sendEvent("done", "")
}
