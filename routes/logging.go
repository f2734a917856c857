/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "github.com/humaidq/lablens/logging"

var (
	requestLogger  = logging.Logger(logging.SourceWebRequest)
	analysisLogger = logging.Logger(logging.SourceAnalysis)
	refineLogger   = logging.Logger(logging.SourceRefine)
)
