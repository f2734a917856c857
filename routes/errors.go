/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errBodyTooLarge           = errors.New("request body too large")
	errAnalysisResultRequired = errors.New("analysisResult is required")
	errRefineFailed           = errors.New("failed to refine analysis")
)
