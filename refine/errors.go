/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package refine

import "errors"

var (
	// ErrNotConfigured is returned when no chat endpoint or model is set.
	ErrNotConfigured = errors.New("AI refinement not available - OLLAMA_URL and OLLAMA_MODEL must be set")
	// ErrUnavailable wraps every failure of the upstream chat service.
	ErrUnavailable = errors.New("refinement service unavailable")
	// ErrEmptyResponse is returned when the service answered with no text.
	ErrEmptyResponse = errors.New("refinement service returned no text")
)
