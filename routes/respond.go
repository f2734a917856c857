/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/lablens/schema"
)

// validationFailed is the error text of every 400 caused by schema issues.
const validationFailed = "Validation failed"

type errorResponse struct {
	Error   string         `json:"error"`
	Details []schema.Issue `json:"details,omitempty"`
}

func writeJSON(c flamego.Context, status int, v interface{}) {
	c.ResponseWriter().Header().Set("Content-Type", "application/json; charset=utf-8")
	c.ResponseWriter().WriteHeader(status)

	if err := json.NewEncoder(c.ResponseWriter()).Encode(v); err != nil {
		requestLogger.Warn("failed to write response", "path", c.Request().URL.Path, "error", err)
	}
}

func writeError(c flamego.Context, status int, err error) {
	resp := errorResponse{Error: err.Error()}

	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		resp.Error = validationFailed
		resp.Details = verr.Issues
	}

	writeJSON(c, status, resp)
}

// readBody reads the whole request body, reporting errBodyTooLarge when
// LimitBody cut it short.
func readBody(c flamego.Context) ([]byte, error) {
	req := c.Request().Request
	if req.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}

		return nil, err
	}

	return body, nil
}

// writeBodyError maps a readBody failure to a status.
func writeBodyError(c flamego.Context, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeError(c, http.StatusRequestEntityTooLarge, err)
		return
	}

	writeError(c, http.StatusBadRequest, err)
}
